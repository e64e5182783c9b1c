package shell

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ggu1012/shell-lab/internal/jobs"
)

func (s *Shell) executeBuiltin(args []string) (bool, error) {
	switch args[0] {
	case "quit", "exit":
		return true, errQuit
	case "jobs":
		return true, s.showJobs()
	case "fg":
		return true, s.resumeJob(args, jobs.ModeForeground)
	case "bg":
		return true, s.resumeJob(args, jobs.ModeBackground)
	case "cd":
		return true, s.changeDirectory(args[1:])
	case "history":
		return true, s.showHistory()
	default:
		return false, nil
	}
}

// launchJob starts an external command and reports the outcome the way
// users expect: a "[jid] (pid) cmdline" line for background jobs, a
// transition line (or silence) once a foreground job finishes.
func (s *Shell) launchJob(args []string, input string, background bool) error {
	res, err := s.control.Launch(args, input, background)
	if err != nil {
		var notFound *jobs.CommandNotFoundError
		switch {
		case errors.As(err, &notFound):
			fmt.Fprintf(s.errOut, "%s : Command not found.\n", notFound.Name)
			return nil
		case errors.Is(err, jobs.ErrTableFull):
			fmt.Fprintln(s.errOut, "Tried to create too many jobs")
			return nil
		default:
			return err
		}
	}

	if res.Background {
		fmt.Fprintf(s.out, "[%d] (%d) %s\n", res.Jid, res.Pid, res.Cmdline)
		return nil
	}
	s.reportForeground(res.Foreground)
	return nil
}

// resumeJob implements the fg and bg builtins.
func (s *Shell) resumeJob(args []string, mode jobs.Mode) error {
	if len(args) < 2 {
		fmt.Fprintf(s.errOut, "%s command requires PID or %%jobid argument\n", args[0])
		return nil
	}
	sel, ok := parseSelector(args[1])
	if !ok {
		fmt.Fprintln(s.errOut, "argument must be a PID or %jobid")
		return nil
	}

	res, err := s.control.Resume(sel, mode)
	if err != nil {
		s.reportResumeError(err)
		return nil
	}

	if mode == jobs.ModeBackground {
		fmt.Fprintf(s.out, "[%d] (%d) %s\n", res.Jid, res.Pid, res.Cmdline)
		return nil
	}
	s.reportForeground(res.Foreground)
	return nil
}

func (s *Shell) reportResumeError(err error) {
	var (
		noJob     *jobs.NoSuchJobError
		noProc    *jobs.NoSuchProcessError
		alreadyFg *jobs.AlreadyForegroundError
		busy      *jobs.ForegroundBusyError
	)
	switch {
	case errors.As(err, &noJob):
		fmt.Fprintf(s.errOut, "%%%d : No such job\n", noJob.Jid)
	case errors.As(err, &noProc):
		fmt.Fprintf(s.errOut, "(%d): No such process\n", noProc.Pid)
	case errors.As(err, &alreadyFg):
		fmt.Fprintf(s.errOut, "(%d): Already in foreground\n", alreadyFg.Pid)
	case errors.As(err, &busy):
		fmt.Fprintf(s.errOut, "(%d): Another job is already in the foreground\n", busy.Pid)
	default:
		fmt.Fprintf(s.errOut, "Error: %v\n", err)
	}
}

// reportForeground prints the status line for a suspended or interrupted
// foreground job. Normal exits print nothing.
func (s *Shell) reportForeground(st *jobs.ForegroundStatus) {
	if st == nil {
		return
	}
	switch st.Event {
	case jobs.EventStopped:
		fmt.Fprintf(s.out, "Job [%d] (%d) is stopped by signal %d\n", st.Jid, st.Pid, st.Signal)
	case jobs.EventInterrupted:
		fmt.Fprintf(s.out, "Job [%d] (%d) is terminated by signal %d\n", st.Jid, st.Pid, st.Signal)
	}
}

// parseSelector understands the "%jid" and bare-pid argument forms.
func parseSelector(arg string) (jobs.Selector, bool) {
	if jidstr, ok := strings.CutPrefix(arg, "%"); ok {
		jid, err := strconv.Atoi(jidstr)
		if err != nil || jid < 1 {
			return jobs.Selector{}, false
		}
		return jobs.ByJid(jid), true
	}
	pid, err := strconv.Atoi(arg)
	if err != nil || pid < 1 {
		return jobs.Selector{}, false
	}
	return jobs.ByPid(pid), true
}

func (s *Shell) showJobs() error {
	for job := range s.control.Jobs() {
		fmt.Fprintf(s.out, "[%d] (%d) %s %s\n", job.Jid, job.Pid, stateLabel(job.State), job.Cmdline)
	}
	return nil
}

// stateLabel maps job states to their listing names. Background jobs list
// as "Running".
func stateLabel(st jobs.State) string {
	switch st {
	case jobs.StateForeground:
		return "Foreground"
	case jobs.StateBackground:
		return "Running"
	case jobs.StateStopped:
		return "Stopped"
	}
	return st.String()
}

func (s *Shell) changeDirectory(args []string) error {
	var dir string
	if len(args) == 0 {
		dir = s.config.HomeDir
	} else {
		dir = args[0]
	}

	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("cd: %w", err)
	}
	return nil
}

func (s *Shell) showHistory() error {
	for i, cmd := range s.history.All() {
		fmt.Fprintf(s.out, "%d: %s\n", i+1, cmd)
	}
	return nil
}
