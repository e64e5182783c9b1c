package jobs

import (
	"iter"
	"log/slog"
	"os"
	"os/signal"
	"sync"

	"golang.org/x/sys/unix"
)

// Control owns the job table and mediates between the synchronous command
// loop and the asynchronous signal dispatcher goroutine.
//
// One mutex serializes every table access. The launch path holds it from
// just before the child starts until the table entry exists, so the
// dispatcher can never observe a child the table does not yet know about. A
// condition variable on the same mutex wakes foreground waiters whenever the
// dispatcher changes the table.
type Control struct {
	log *slog.Logger

	mu     sync.Mutex
	wake   *sync.Cond // broadcast after the dispatcher mutates the table
	table  *Table
	lastFg fgTransition

	sigc chan os.Signal
	stop chan struct{}
	done chan struct{}
}

// fgTransition remembers how the most recent foreground job left the
// foreground. The jid and signal are captured while the job record still
// exists; its slot may be reclaimed before a waiter reads this.
type fgTransition struct {
	pid  int
	jid  int
	kind Event
	sig  unix.Signal
}

// New returns a Control with an empty table. The logger carries debug-level
// traces only; nil selects slog.Default().
func New(log *slog.Logger) *Control {
	if log == nil {
		log = slog.Default()
	}
	c := &Control{
		log:   log,
		table: NewTable(),
		sigc:  make(chan os.Signal, 16),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	c.wake = sync.NewCond(&c.mu)
	return c
}

// Start registers the asynchronous entry points (child status changes plus
// the two keyboard signals) and runs the dispatcher goroutine.
func (c *Control) Start() {
	signal.Notify(c.sigc, unix.SIGCHLD, unix.SIGINT, unix.SIGTSTP)
	go c.dispatch()
}

// Close unregisters the signal handlers and stops the dispatcher. Tracked
// processes are left running; the table is shell-lifetime state only. Close
// must be called at most once.
func (c *Control) Close() {
	signal.Stop(c.sigc)
	close(c.stop)
	<-c.done
}

// Jobs returns a snapshot iterator over the live jobs in slot order.
func (c *Control) Jobs() iter.Seq[Job] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.table.Jobs()
}

// ForegroundPid returns the pid of the current foreground job, or 0.
func (c *Control) ForegroundPid() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.table.ForegroundPid()
}

// JidOf maps a pid to its jid, or 0 when the pid is not tracked.
func (c *Control) JidOf(pid int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.table.JidOf(pid)
}
