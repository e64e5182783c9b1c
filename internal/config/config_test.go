package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ggu1012/shell-lab/internal/config"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(err)

	require.Equal(config.DefaultPrompt, cfg.Prompt)
	require.NotEmpty(cfg.HomeDir)
	require.Equal(filepath.Join(cfg.HomeDir, ".tsh_history"), cfg.HistoryFile)
}

func TestLoadFullFile(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "tsh.yml")
	data := "prompt: \"% \"\nhistory_file: /tmp/hist\nhome_dir: /tmp\n"
	require.NoError(os.WriteFile(path, []byte(data), 0o644))

	cfg, err := config.Load(path)
	require.NoError(err)
	require.Equal("% ", cfg.Prompt)
	require.Equal("/tmp/hist", cfg.HistoryFile)
	require.Equal("/tmp", cfg.HomeDir)
}

func TestLoadPartialFileFillsRest(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "tsh.yml")
	require.NoError(os.WriteFile(path, []byte("home_dir: /opt\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(err)
	require.Equal("/opt", cfg.HomeDir)
	require.Equal("/opt/.tsh_history", cfg.HistoryFile)
	require.Equal(config.DefaultPrompt, cfg.Prompt)
}

func TestLoadMalformedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tsh.yml")
	require.NoError(t, os.WriteFile(path, []byte("prompt: [unclosed\n"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	t.Parallel()

	path, err := config.DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, ".tsh.yml", filepath.Base(path))
}
