package jobs

import (
	"errors"
	"fmt"
)

var (
	// ErrTableFull is returned by Launch when every job slot is occupied.
	ErrTableFull = errors.New("too many jobs")

	// ErrEmptySelector is returned by Resume when the selector names
	// neither a job id nor a pid.
	ErrEmptySelector = errors.New("empty job selector")
)

// CommandNotFoundError reports that the requested program cannot be executed
// at all: missing, not executable, or not a regular program. The shell keeps
// running after it.
type CommandNotFoundError struct {
	Name string
	Err  error
}

func (e *CommandNotFoundError) Error() string {
	return fmt.Sprintf("%s: command not found", e.Name)
}

func (e *CommandNotFoundError) Unwrap() error { return e.Err }

// SpawnError reports that the system could not create a process for a
// runnable program, e.g. the process table is exhausted. It is fatal to the
// shell.
type SpawnError struct {
	Err error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn failed: %v", e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// NoSuchJobError reports a job id with no live job behind it.
type NoSuchJobError struct {
	Jid int
}

func (e *NoSuchJobError) Error() string {
	return fmt.Sprintf("no such job: %%%d", e.Jid)
}

// NoSuchProcessError reports a pid that no live job is tracking.
type NoSuchProcessError struct {
	Pid int
}

func (e *NoSuchProcessError) Error() string {
	return fmt.Sprintf("no such process: %d", e.Pid)
}

// AlreadyForegroundError reports an attempt to resume the job that is the
// current foreground job.
type AlreadyForegroundError struct {
	Pid int
}

func (e *AlreadyForegroundError) Error() string {
	return fmt.Sprintf("process %d is already in the foreground", e.Pid)
}

// ForegroundBusyError reports an attempt to give a job the foreground while
// a different job still holds it. The command loop blocks while a foreground
// job runs, so this cannot happen in normal interactive use; it is surfaced
// instead of silently waiting on the wrong job.
type ForegroundBusyError struct {
	Pid int // pid of the job currently in the foreground
}

func (e *ForegroundBusyError) Error() string {
	return fmt.Sprintf("process %d already holds the foreground", e.Pid)
}
