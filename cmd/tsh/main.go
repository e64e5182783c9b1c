package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ggu1012/shell-lab/internal/config"
	"github.com/ggu1012/shell-lab/internal/jobs"
	"github.com/ggu1012/shell-lab/internal/shell"
)

const version = "0.1.0"

// options holds the command-line settings, kept apart from the config file.
type options struct {
	configPath string
	verbose    bool
	noPrompt   bool
}

func (o *options) register(fs *pflag.FlagSet) {
	fs.StringVarP(&o.configPath, "config", "c", "", "path to the config file")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "print job-control traces to stderr")
	fs.BoolVarP(&o.noPrompt, "no-prompt", "p", false, "do not print a command prompt")
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:     "tsh",
		Short:   "An interactive shell with job control",
		Version: version,
		// Job and status lines are the interface; the loop reports its own
		// recoverable errors.
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}
	opts.register(cmd.Flags())

	return cmd
}

func run(opts *options) error {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	path := opts.configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if opts.noPrompt {
		cfg.Prompt = ""
	}

	sh, err := shell.New(cfg, jobs.New(logger))
	if err != nil {
		return err
	}
	return sh.Run()
}
