package jobs

import "golang.org/x/sys/unix"

// Event classifies how a foreground job left the foreground.
type Event int

const (
	// EventNone means the job was already gone and no transition was
	// recorded for it.
	EventNone Event = iota

	// EventExited covers a normal exit and termination by any signal other
	// than SIGINT. Nothing is reported for it.
	EventExited

	// EventInterrupted means the job was terminated by SIGINT.
	EventInterrupted

	// EventStopped means the job's process group was suspended; the job
	// stays in the table as StateStopped.
	EventStopped
)

var eventNames = []string{
	"None",
	"Exited",
	"Interrupted",
	"Stopped",
}

// String returns the event name, or "None" for out-of-range values.
func (e Event) String() string {
	if int(e) < 0 || int(e) >= len(eventNames) {
		return eventNames[0]
	}
	return eventNames[e]
}

// ForegroundStatus describes the transition that let WaitForeground return.
// Signal is meaningful for EventInterrupted and EventStopped.
type ForegroundStatus struct {
	Jid    int
	Pid    int
	Event  Event
	Signal unix.Signal
}

// WaitForeground blocks until the job with the given pid no longer holds the
// foreground: the dispatcher either removed it (exit, interrupt) or demoted
// it to StateStopped. When no job holds the foreground at entry, the job
// already completed and the recorded transition is returned immediately.
//
// The mutex is released while parked, so the dispatcher stays free to run.
// The job's slot may be reclaimed and even reused while blocked, which is
// why the jid is captured up front and the transition record is kept
// separately from the table.
func (c *Control) WaitForeground(pid int) ForegroundStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := ForegroundStatus{Pid: pid}
	if job, ok := c.table.ByPid(pid); ok {
		st.Jid = job.Jid
	}
	for c.table.ForegroundPid() == pid {
		c.wake.Wait()
	}
	return c.resolve(st)
}

// resolve merges the recorded foreground transition into st. Called with the
// mutex held.
func (c *Control) resolve(st ForegroundStatus) ForegroundStatus {
	if c.lastFg.pid == st.Pid && c.lastFg.kind != EventNone {
		st.Event = c.lastFg.kind
		st.Signal = c.lastFg.sig
		if st.Jid == 0 {
			st.Jid = c.lastFg.jid
		}
	}
	return st
}
