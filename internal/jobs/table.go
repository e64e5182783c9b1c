package jobs

import (
	"fmt"
	"iter"
	"slices"
)

const (
	// MaxJobs is the number of slots in the table, and therefore the most
	// jobs the shell tracks at once.
	MaxJobs = 16

	// maxJid bounds the job-id space; live jids stay in [1, maxJid).
	maxJid = 1 << 16
)

// Table is a fixed-capacity registry of live jobs, searched by linear scan.
// Slots are stable: a job keeps its slot for its whole life, and a slot is
// reclaimed only once the kernel confirms the process is gone.
//
// Table does no locking of its own; Control serializes every access.
type Table struct {
	slots   [MaxJobs]Job
	nextJid int
}

// NewTable returns an empty table with the jid counter at 1.
func NewTable() *Table {
	t := &Table{}
	t.Reset()
	return t
}

// Reset clears every slot and restarts jid allocation at 1.
func (t *Table) Reset() {
	for i := range t.slots {
		t.slots[i] = Job{}
	}
	t.nextJid = 1
}

// Len returns the number of live jobs.
func (t *Table) Len() int {
	n := 0
	for i := range t.slots {
		if t.slots[i].Pid != 0 {
			n++
		}
	}
	return n
}

// Full reports whether every slot is occupied.
func (t *Table) Full() bool {
	return t.Len() == MaxJobs
}

// MaxJid returns the largest jid among live jobs, or 0 on an empty table.
func (t *Table) MaxJid() int {
	max := 0
	for i := range t.slots {
		if t.slots[i].Jid > max {
			max = t.slots[i].Jid
		}
	}
	return max
}

// Add registers a live process in the first empty slot and assigns the next
// jid. It fails when the table is full or pid is not a valid process id.
func (t *Table) Add(pid int, state State, cmdline string) (int, error) {
	if pid < 1 {
		return 0, fmt.Errorf("add job: invalid pid %d", pid)
	}
	for i := range t.slots {
		if t.slots[i].Pid != 0 {
			continue
		}
		if t.nextJid >= maxJid {
			t.nextJid = t.MaxJid() + 1
		}
		jid := t.nextJid
		t.nextJid++
		t.slots[i] = Job{Pid: pid, Jid: jid, State: state, Cmdline: cmdline}
		return jid, nil
	}
	return 0, ErrTableFull
}

// Remove reclaims the slot of the job with the given pid and rewinds the jid
// counter to one past the largest live jid, so freed jids come back into use
// once every later job is gone. It reports whether a job was removed.
func (t *Table) Remove(pid int) bool {
	if pid < 1 {
		return false
	}
	for i := range t.slots {
		if t.slots[i].Pid == pid {
			t.slots[i] = Job{}
			t.nextJid = t.MaxJid() + 1
			return true
		}
	}
	return false
}

// ByPid returns a copy of the job with the given pid.
func (t *Table) ByPid(pid int) (Job, bool) {
	if pid < 1 {
		return Job{}, false
	}
	for i := range t.slots {
		if t.slots[i].Pid == pid {
			return t.slots[i], true
		}
	}
	return Job{}, false
}

// ByJid returns a copy of the job with the given jid.
func (t *Table) ByJid(jid int) (Job, bool) {
	if jid < 1 {
		return Job{}, false
	}
	for i := range t.slots {
		if t.slots[i].Jid == jid {
			return t.slots[i], true
		}
	}
	return Job{}, false
}

// JidOf maps a pid to its jid, or 0 when the pid is not tracked.
func (t *Table) JidOf(pid int) int {
	if j, ok := t.ByPid(pid); ok {
		return j.Jid
	}
	return 0
}

// ForegroundPid returns the pid of the unique foreground job, or 0 when no
// job holds the foreground.
func (t *Table) ForegroundPid() int {
	for i := range t.slots {
		if t.slots[i].State == StateForeground {
			return t.slots[i].Pid
		}
	}
	return 0
}

// SetState records a new state for the job with the given pid and reports
// whether the job exists.
func (t *Table) SetState(pid int, s State) bool {
	if pid < 1 {
		return false
	}
	for i := range t.slots {
		if t.slots[i].Pid == pid {
			t.slots[i].State = s
			return true
		}
	}
	return false
}

// Jobs returns an iterator over a snapshot of the live jobs in slot order.
// The snapshot is taken here; ranging over the result more than once replays
// the same jobs even if the table has changed since.
func (t *Table) Jobs() iter.Seq[Job] {
	live := make([]Job, 0, MaxJobs)
	for i := range t.slots {
		if t.slots[i].Pid != 0 {
			live = append(live, t.slots[i])
		}
	}
	return slices.Values(live)
}
