package jobs

import (
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// LaunchResult reports a successful launch. Foreground is set only for
// foreground jobs, after the wait has returned.
type LaunchResult struct {
	Jid        int
	Pid        int
	Cmdline    string
	Background bool
	Foreground *ForegroundStatus
}

// Launch starts argv[0] with the remaining arguments as a new job. The child
// detaches into its own process group, so keyboard-generated signals reach
// it only through the relays. The table mutex is held from before the child
// starts until its entry exists, which closes the race against a child that
// exits immediately: the exit notification parks until registration is done.
//
// Foreground jobs are waited for; background jobs return at once with their
// assigned jid. The capacity check happens before the child is started, so a
// full table never leaks a process.
func (c *Control) Launch(argv []string, cmdline string, background bool) (*LaunchResult, error) {
	if len(argv) == 0 {
		return nil, errors.New("launch: empty argument vector")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	state := StateForeground
	if background {
		state = StateBackground
	}

	c.mu.Lock()
	if !background {
		if fg := c.table.ForegroundPid(); fg != 0 {
			c.mu.Unlock()
			return nil, &ForegroundBusyError{Pid: fg}
		}
	}
	if c.table.Full() {
		c.mu.Unlock()
		return nil, ErrTableFull
	}
	if err := cmd.Start(); err != nil {
		c.mu.Unlock()
		return nil, classifyStartError(argv[0], err)
	}
	pid := cmd.Process.Pid
	jid, err := c.table.Add(pid, state, cmdline)
	if err != nil {
		// Unreachable after the capacity check, but a started child must
		// not outlive a failed registration.
		c.mu.Unlock()
		_ = unix.Kill(-pid, unix.SIGKILL)
		return nil, err
	}
	c.log.Debug("added job", "jid", jid, "pid", pid, "cmdline", cmdline)
	c.mu.Unlock()

	res := &LaunchResult{Jid: jid, Pid: pid, Cmdline: cmdline, Background: background}
	if !background {
		st := c.WaitForeground(pid)
		res.Foreground = &st
	}
	return res, nil
}

// classifyStartError separates "this program cannot be executed" (the child
// never existed, the shell keeps going) from "the system could not create a
// process" (fatal).
func classifyStartError(name string, err error) error {
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return &CommandNotFoundError{Name: name, Err: err}
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		switch {
		case errors.Is(pathErr.Err, fs.ErrNotExist),
			errors.Is(pathErr.Err, fs.ErrPermission),
			errors.Is(pathErr.Err, unix.ENOTDIR),
			errors.Is(pathErr.Err, unix.ENOEXEC):
			return &CommandNotFoundError{Name: name, Err: err}
		}
	}
	return &SpawnError{Err: err}
}
