package jobs

import "golang.org/x/sys/unix"

// Mode selects where a resumed job continues running.
type Mode int

const (
	// ModeBackground continues the job without giving it the foreground.
	ModeBackground Mode = iota + 1

	// ModeForeground continues the job as the foreground job and waits for
	// it to leave the foreground again.
	ModeForeground
)

// Selector names a job by shell job id or by kernel pid.
type Selector struct {
	jid int
	pid int
}

// ByJid selects a job by its shell-assigned job id.
func ByJid(jid int) Selector { return Selector{jid: jid} }

// ByPid selects a job by its process id.
func ByPid(pid int) Selector { return Selector{pid: pid} }

// ResumeResult reports a successful resume. Foreground is set only for
// ModeForeground, after the wait has returned.
type ResumeResult struct {
	Jid        int
	Pid        int
	Cmdline    string
	Foreground *ForegroundStatus
}

// Resume transitions a stopped or background job and delivers SIGCONT to
// its whole process group. ModeBackground records the job as
// StateBackground and returns at once; ModeForeground records it as
// StateForeground and blocks until the job leaves the foreground again.
//
// The current foreground job cannot be resumed, and no job can take the
// foreground while a different job holds it. SIGCONT on an already-running
// background job is harmless, so resuming one is allowed.
func (c *Control) Resume(sel Selector, mode Mode) (*ResumeResult, error) {
	c.mu.Lock()

	var (
		job Job
		ok  bool
	)
	switch {
	case sel.jid > 0:
		if job, ok = c.table.ByJid(sel.jid); !ok {
			c.mu.Unlock()
			return nil, &NoSuchJobError{Jid: sel.jid}
		}
	case sel.pid > 0:
		if job, ok = c.table.ByPid(sel.pid); !ok {
			c.mu.Unlock()
			return nil, &NoSuchProcessError{Pid: sel.pid}
		}
	default:
		c.mu.Unlock()
		return nil, ErrEmptySelector
	}

	if job.State == StateForeground {
		c.mu.Unlock()
		return nil, &AlreadyForegroundError{Pid: job.Pid}
	}
	if mode == ModeForeground {
		if fg := c.table.ForegroundPid(); fg != 0 {
			c.mu.Unlock()
			return nil, &ForegroundBusyError{Pid: fg}
		}
	}

	state := StateBackground
	if mode == ModeForeground {
		state = StateForeground
	}
	c.table.SetState(job.Pid, state)
	c.log.Debug("resumed job", "jid", job.Jid, "pid", job.Pid, "state", state)
	c.mu.Unlock()

	_ = unix.Kill(-job.Pid, unix.SIGCONT)

	res := &ResumeResult{Jid: job.Jid, Pid: job.Pid, Cmdline: job.Cmdline}
	if mode == ModeForeground {
		st := c.WaitForeground(job.Pid)
		res.Foreground = &st
	}
	return res, nil
}
