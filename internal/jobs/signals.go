package jobs

import (
	"errors"
	"syscall"

	"golang.org/x/sys/unix"
)

// dispatch serializes the three asynchronous entry points: each signal is
// handled to completion before the next one is looked at, so handlers never
// interleave with each other.
func (c *Control) dispatch() {
	defer close(c.done)
	for {
		select {
		case sig := <-c.sigc:
			switch sig {
			case unix.SIGCHLD:
				c.reap()
			case unix.SIGINT:
				c.Interrupt()
			case unix.SIGTSTP:
				c.Suspend()
			}
		case <-c.stop:
			return
		}
	}
}

// Interrupt forwards SIGINT to the foreground job's process group, exactly
// as the keyboard would. Dropped when no job holds the foreground; the
// shell's own process group is never signaled.
func (c *Control) Interrupt() { c.forward(unix.SIGINT) }

// Suspend forwards SIGTSTP to the foreground job's process group. Dropped
// when no job holds the foreground.
func (c *Control) Suspend() { c.forward(unix.SIGTSTP) }

func (c *Control) forward(sig syscall.Signal) {
	c.mu.Lock()
	pid := c.table.ForegroundPid()
	c.mu.Unlock()
	if pid == 0 {
		return
	}
	c.log.Debug("forwarding signal", "signal", sig, "pgid", pid)
	// Negative pid addresses the whole process group.
	_ = unix.Kill(-pid, sig)
}

// reap drains every child status change the kernel has pending without
// blocking on still-running children. One SIGCHLD can stand for several
// reapable children, and stopped children must be collected too, so the
// wait loops with WNOHANG|WUNTRACED until nothing is left.
func (c *Control) reap() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for {
		var ws unix.WaitStatus
		pid, err := unix.Wait4(-1, &ws, unix.WNOHANG|unix.WUNTRACED, nil)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil || pid <= 0 {
			break
		}
		c.collect(pid, ws)
	}
	c.wake.Broadcast()
}

// collect applies one kernel-reported status change to the table. Called
// with the mutex held.
func (c *Control) collect(pid int, ws unix.WaitStatus) {
	job, ok := c.table.ByPid(pid)
	if !ok {
		c.log.Debug("reaped untracked child", "pid", pid)
		return
	}
	wasFg := job.State == StateForeground
	switch {
	case ws.Stopped():
		c.table.SetState(pid, StateStopped)
		if wasFg {
			c.lastFg = fgTransition{pid: pid, jid: job.Jid, kind: EventStopped, sig: ws.StopSignal()}
		}
		c.log.Debug("job stopped", "jid", job.Jid, "pid", pid, "signal", ws.StopSignal())
	case ws.Signaled() && ws.Signal() == unix.SIGINT:
		c.table.Remove(pid)
		if wasFg {
			c.lastFg = fgTransition{pid: pid, jid: job.Jid, kind: EventInterrupted, sig: ws.Signal()}
		}
		c.log.Debug("job interrupted", "jid", job.Jid, "pid", pid)
	default:
		c.table.Remove(pid)
		if wasFg {
			c.lastFg = fgTransition{pid: pid, jid: job.Jid, kind: EventExited}
		}
		c.log.Debug("job finished", "jid", job.Jid, "pid", pid, "status", ws.ExitStatus())
	}
}
