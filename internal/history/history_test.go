package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	file := filepath.Join(t.TempDir(), "history")

	h, err := New(file)
	require.NoError(err)
	require.Empty(h.All())

	h.Add("echo one")
	h.Add("sleep 5 &")

	reopened, err := New(file)
	require.NoError(err)
	require.Equal([]string{"echo one", "sleep 5 &"}, reopened.All())
}

func TestMissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	h, err := New(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, h.All())
}

func TestAllReturnsCopy(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	h, err := New(filepath.Join(t.TempDir(), "history"))
	require.NoError(err)
	h.Add("one")

	got := h.All()
	got[0] = "mutated"
	require.Equal([]string{"one"}, h.All())
}

func TestLimitTrimsOldest(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	h := &History{file: filepath.Join(t.TempDir(), "history"), limit: 3}
	for _, line := range []string{"a", "b", "c", "d", "e"} {
		h.Add(line)
	}
	require.Equal([]string{"c", "d", "e"}, h.All())
}

func TestLoadAppliesLimit(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	file := filepath.Join(t.TempDir(), "history")
	require.NoError(os.WriteFile(file, []byte("a\nb\nc\nd\n"), 0o644))

	h := &History{file: file, limit: 2}
	require.NoError(h.load())
	require.Equal([]string{"c", "d"}, h.All())
}
