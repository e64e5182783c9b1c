package jobs

// State describes how a tracked job is currently running.
type State int

const (
	// StateUndefined is the zero value. A live job never carries it; it is
	// what an empty table slot holds.
	StateUndefined State = iota

	// StateForeground marks the single job the command loop is waiting on.
	StateForeground

	// StateBackground marks a job running detached from the command loop.
	StateBackground

	// StateStopped marks a job whose process group has been suspended.
	StateStopped
)

var stateNames = []string{
	"Undefined",
	"Foreground",
	"Background",
	"Stopped",
}

// String returns the state name, or "Undefined" for out-of-range values.
func (s State) String() string {
	if int(s) < 0 || int(s) >= len(stateNames) {
		return stateNames[0]
	}
	return stateNames[s]
}

// Job is one tracked child process. The table hands out copies, never
// pointers into its own slots, so a record read before a blocking call
// cannot alias state the dispatcher mutates later.
type Job struct {
	Pid     int // kernel process id; also the job's process group id
	Jid     int // shell-assigned job id, unique among live jobs
	State   State
	Cmdline string // the command line as typed, kept verbatim for reporting
}
