package shell

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/ggu1012/shell-lab/internal/config"
	"github.com/ggu1012/shell-lab/internal/jobs"
)

// These tests drive Execute directly, with readline out of the picture and
// output captured in buffers. The ones that launch child processes reap
// process-wide and must not run in parallel.

const (
	waitFor = 5 * time.Second
	tick    = 10 * time.Millisecond
)

type testShell struct {
	*Shell
	control *jobs.Control
	out     *bytes.Buffer
	errOut  *bytes.Buffer
}

func newTestShell(t *testing.T) *testShell {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{
		Prompt:      config.DefaultPrompt,
		HistoryFile: filepath.Join(dir, "history"),
		HomeDir:     dir,
	}

	ctl := jobs.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctl.Start()

	sh, err := New(cfg, ctl)
	require.NoError(t, err)

	ts := &testShell{
		Shell:   sh,
		control: ctl,
		out:     &bytes.Buffer{},
		errOut:  &bytes.Buffer{},
	}
	sh.out = ts.out
	sh.errOut = ts.errOut

	t.Cleanup(func() {
		for job := range ctl.Jobs() {
			_ = unix.Kill(-job.Pid, unix.SIGKILL)
		}
		deadline := time.Now().Add(waitFor)
		for len(slices.Collect(ctl.Jobs())) > 0 && time.Now().Before(deadline) {
			time.Sleep(tick)
		}
		ctl.Close()
	})
	return ts
}

func TestExecuteBackgroundJob(t *testing.T) {
	require := require.New(t)
	ts := newTestShell(t)

	require.NoError(ts.Execute("sleep 30 &"))
	require.Regexp(regexp.MustCompile(`^\[1\] \(\d+\) sleep 30 &\n$`), ts.out.String())

	ts.out.Reset()
	require.NoError(ts.Execute("jobs"))
	require.Regexp(regexp.MustCompile(`^\[1\] \(\d+\) Running sleep 30 &\n$`), ts.out.String())
}

func TestExecuteForegroundExitIsSilent(t *testing.T) {
	require := require.New(t)
	ts := newTestShell(t)

	require.NoError(ts.Execute("true"))
	require.Empty(ts.out.String())
	require.Empty(ts.errOut.String())
	require.Empty(slices.Collect(ts.control.Jobs()))
}

func TestExecuteCommandNotFound(t *testing.T) {
	require := require.New(t)
	ts := newTestShell(t)

	require.NoError(ts.Execute("definitely-not-a-command"))
	require.Equal("definitely-not-a-command : Command not found.\n", ts.errOut.String())
	require.Empty(ts.out.String())
}

func TestExecuteQuit(t *testing.T) {
	ts := newTestShell(t)

	require.ErrorIs(t, ts.Execute("quit"), errQuit)
	require.ErrorIs(t, ts.Execute("exit"), errQuit)
}

func TestExecuteEmptyAndBare(t *testing.T) {
	ts := newTestShell(t)

	require.NoError(t, ts.Execute(""))
	require.NoError(t, ts.Execute("   "))
	require.NoError(t, ts.Execute("&"))
	assert.Empty(t, ts.out.String())
	assert.Empty(t, ts.errOut.String())
}

func TestExecuteUnterminatedQuote(t *testing.T) {
	ts := newTestShell(t)

	err := ts.Execute(`echo "unterminated`)
	require.Error(t, err)
}

func TestChangeDirectory(t *testing.T) {
	require := require.New(t)
	ts := newTestShell(t)

	base := t.TempDir()
	t.Chdir(base)

	target := filepath.Join(base, "sub")
	require.NoError(os.Mkdir(target, 0o755))

	require.NoError(ts.Execute("cd "+target))
	wd, err := os.Getwd()
	require.NoError(err)
	require.Equal(target, wd)

	// Bare cd goes home.
	require.NoError(ts.Execute("cd"))
	wd, err = os.Getwd()
	require.NoError(err)
	require.Equal(ts.config.HomeDir, wd)

	require.Error(ts.Execute("cd "+filepath.Join(base, "missing")))
}

func TestHistoryBuiltin(t *testing.T) {
	require := require.New(t)
	ts := newTestShell(t)

	ts.history.Add("echo one")
	ts.history.Add("echo two")

	require.NoError(ts.Execute("history"))
	require.Equal("1: echo one\n2: echo two\n", ts.out.String())
}

func TestJobsEmpty(t *testing.T) {
	ts := newTestShell(t)

	require.NoError(t, ts.Execute("jobs"))
	assert.Empty(t, ts.out.String())
}

func TestResumeArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"fg without argument", "fg", "fg command requires PID or %jobid argument\n"},
		{"bg without argument", "bg", "bg command requires PID or %jobid argument\n"},
		{"malformed selector", "fg nonsense", "argument must be a PID or %jobid\n"},
		{"malformed jid", "bg %x", "argument must be a PID or %jobid\n"},
		{"unknown jid", "fg %42", "%42 : No such job\n"},
		{"unknown pid", "bg 424242", "(424242): No such process\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestShell(t)
			require.NoError(t, ts.Execute(tt.line))
			assert.Equal(t, tt.want, ts.errOut.String())
		})
	}
}

func TestParseSelector(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arg  string
		want jobs.Selector
		ok   bool
	}{
		{"%1", jobs.ByJid(1), true},
		{"%12", jobs.ByJid(12), true},
		{"123", jobs.ByPid(123), true},
		{"%0", jobs.Selector{}, false},
		{"%-2", jobs.Selector{}, false},
		{"%x", jobs.Selector{}, false},
		{"0", jobs.Selector{}, false},
		{"-5", jobs.Selector{}, false},
		{"abc", jobs.Selector{}, false},
		{"%", jobs.Selector{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			t.Parallel()
			sel, ok := parseSelector(tt.arg)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, sel)
		})
	}
}

func TestSuspendReportAndBg(t *testing.T) {
	require := require.New(t)
	ts := newTestShell(t)

	done := make(chan error, 1)
	go func() { done <- ts.Execute("sleep 30") }()
	require.Eventually(func() bool { return ts.control.ForegroundPid() != 0 }, waitFor, tick)
	pid := ts.control.ForegroundPid()

	ts.control.Suspend()
	require.NoError(waitDone(t, done))

	require.Equal(fmt.Sprintf("Job [1] (%d) is stopped by signal %d\n", pid, unix.SIGTSTP), ts.out.String())

	ts.out.Reset()
	require.NoError(ts.Execute("jobs"))
	require.Equal(fmt.Sprintf("[1] (%d) Stopped sleep 30\n", pid), ts.out.String())

	ts.out.Reset()
	require.NoError(ts.Execute("bg %1"))
	require.Equal(fmt.Sprintf("[1] (%d) sleep 30\n", pid), ts.out.String())

	ts.out.Reset()
	require.NoError(ts.Execute("jobs"))
	require.Equal(fmt.Sprintf("[1] (%d) Running sleep 30\n", pid), ts.out.String())
}

func TestInterruptReport(t *testing.T) {
	require := require.New(t)
	ts := newTestShell(t)

	done := make(chan error, 1)
	go func() { done <- ts.Execute("sleep 30") }()
	require.Eventually(func() bool { return ts.control.ForegroundPid() != 0 }, waitFor, tick)
	pid := ts.control.ForegroundPid()

	ts.control.Interrupt()
	require.NoError(waitDone(t, done))

	require.Equal(fmt.Sprintf("Job [1] (%d) is terminated by signal %d\n", pid, unix.SIGINT), ts.out.String())

	ts.out.Reset()
	require.NoError(ts.Execute("jobs"))
	require.Empty(ts.out.String())
}

func TestFgResumesStoppedJob(t *testing.T) {
	require := require.New(t)
	ts := newTestShell(t)

	done := make(chan error, 1)
	go func() { done <- ts.Execute("sleep 30") }()
	require.Eventually(func() bool { return ts.control.ForegroundPid() != 0 }, waitFor, tick)
	pid := ts.control.ForegroundPid()

	ts.control.Suspend()
	require.NoError(waitDone(t, done))
	ts.out.Reset()

	go func() { done <- ts.Execute("fg %1") }()
	require.Eventually(func() bool { return ts.control.ForegroundPid() == pid }, waitFor, tick)

	ts.control.Interrupt()
	require.NoError(waitDone(t, done))
	require.Equal(fmt.Sprintf("Job [1] (%d) is terminated by signal %d\n", pid, unix.SIGINT), ts.out.String())
}

func waitDone(t *testing.T, done <-chan error) error {
	t.Helper()

	select {
	case err := <-done:
		return err
	case <-time.After(2 * waitFor):
		t.Fatal("timed out waiting for the command to return")
		return nil
	}
}
