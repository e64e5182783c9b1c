// Package shell runs the interactive read-eval loop around the job
// controller. Every user-visible message is formatted here; the jobs
// package only reports data.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"golang.org/x/sys/unix"

	"github.com/ggu1012/shell-lab/internal/config"
	"github.com/ggu1012/shell-lab/internal/history"
	"github.com/ggu1012/shell-lab/internal/jobs"
)

// errQuit flows out of the quit and exit builtins to end the loop cleanly.
var errQuit = errors.New("quit")

type Shell struct {
	config  *config.Config
	history *history.History
	control *jobs.Control

	out    io.Writer
	errOut io.Writer
}

func New(cfg *config.Config, ctl *jobs.Control) (*Shell, error) {
	hist, err := history.New(cfg.HistoryFile)
	if err != nil {
		return nil, fmt.Errorf("error initializing history: %w", err)
	}

	return &Shell{
		config:  cfg,
		history: hist,
		control: ctl,
		out:     os.Stdout,
		errOut:  os.Stderr,
	}, nil
}

// Run executes the read-eval loop until EOF or the quit builtin. A process
// creation failure is fatal and is returned for the caller to report.
func (s *Shell) Run() error {
	s.control.Start()
	defer s.control.Close()

	stop := make(chan struct{})
	defer close(stop)
	go s.watchQuit(stop)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      s.config.Prompt,
		HistoryFile: s.config.HistoryFile,
	})
	if err != nil {
		return fmt.Errorf("error initializing readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			// Ctrl-C belongs to the foreground job; the dispatcher has
			// already relayed it. The shell itself just re-prompts.
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return fmt.Errorf("error reading line: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		s.history.Add(line)

		if err := s.Execute(line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			var spawn *jobs.SpawnError
			if errors.As(err, &spawn) {
				return err
			}
			fmt.Fprintf(s.errOut, "Error: %v\n", err)
		}
	}
}

// watchQuit terminates the shell on SIGQUIT, the one keyboard signal that is
// aimed at the shell itself rather than relayed to a job.
func (s *Shell) watchQuit(stop <-chan struct{}) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, unix.SIGQUIT)
	defer signal.Stop(quit)

	select {
	case <-quit:
		fmt.Fprintln(s.out, "Terminating after receipt of SIGQUIT signal")
		os.Exit(1)
	case <-stop:
	}
}

// Execute parses and runs one command line. Builtins run in-process;
// anything else becomes a job. A trailing "&" token requests background
// execution and stays part of the stored command line.
func (s *Shell) Execute(input string) error {
	args, err := shellquote.Split(input)
	if err != nil {
		return fmt.Errorf("parse command: %w", err)
	}
	if len(args) == 0 {
		return nil
	}

	background := false
	if args[len(args)-1] == "&" {
		background = true
		args = args[:len(args)-1]
		if len(args) == 0 {
			return nil
		}
	}

	if ok, err := s.executeBuiltin(args); ok {
		return err
	}
	return s.launchJob(args, input, background)
}
