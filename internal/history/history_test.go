package history

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendIgnoresEmpty(t *testing.T) {
	h := New(afero.NewMemMapFs(), 0)
	h.Append("a")
	h.Append("")
	h.Append("b")
	assert.Equal(t, 2, h.Size())
}

func TestAppendDuplicatesNotSuppressed(t *testing.T) {
	h := New(afero.NewMemMapFs(), 0)
	h.Append("a")
	h.Append("a")
	assert.Equal(t, 2, h.Size())
}

func TestGetOutOfRange(t *testing.T) {
	h := New(afero.NewMemMapFs(), 0)
	h.Append("a")
	_, ok := h.Get(5)
	assert.False(t, ok)
}

func TestAppendTrimsOldestBeyondCap(t *testing.T) {
	h := New(afero.NewMemMapFs(), 2)
	h.Append("a")
	h.Append("b")
	h.Append("c")

	require.Equal(t, 2, h.Size())
	first, _ := h.Get(0)
	second, _ := h.Get(1)
	assert.Equal(t, "b", first)
	assert.Equal(t, "c", second)
}

func TestAppendCapKeepsPendingEntriesPending(t *testing.T) {
	fs := afero.NewMemMapFs()
	h := New(fs, 2)
	h.Append("a")
	require.NoError(t, h.Save("/hist")) // lastWritten advances to 1

	h.Append("b")
	h.Append("c") // trims "a", which was already persisted

	require.NoError(t, h.AppendToFile("/hist"))
	contents, err := afero.ReadFile(fs, "/hist")
	require.NoError(t, err)
	assert.Equal(t, "a\nb\nc\n", string(contents))
}

func TestLoadTrimsOldestBeyondCap(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/hist", []byte("a\nb\nc\n"), 0644))

	h := New(fs, 2)
	require.NoError(t, h.Load("/hist"))

	assert.Equal(t, 2, h.Size())
	first, _ := h.Get(0)
	assert.Equal(t, "b", first)
}

func TestZeroCapIsUnlimited(t *testing.T) {
	h := New(afero.NewMemMapFs(), 0)
	for i := 0; i < 50; i++ {
		h.Append("x")
	}
	assert.Equal(t, 50, h.Size())
}

func TestLoadMissingFileIsNotError(t *testing.T) {
	h := New(afero.NewMemMapFs(), 0)
	require.NoError(t, h.Load("/nope"))
	assert.Equal(t, 0, h.Size())
}

func TestLoadSkipsBlankLines(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/hist", []byte("a\n\nb\n\n"), 0644))

	h := New(fs, 0)
	require.NoError(t, h.Load("/hist"))
	assert.Equal(t, 2, h.Size())
	got, _ := h.Get(0)
	assert.Equal(t, "a", got)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	fs := afero.NewMemMapFs()
	h := New(fs, 0)
	h.Append("one")
	h.Append("two")
	require.NoError(t, h.Save("/hist"))

	h2 := New(fs, 0)
	require.NoError(t, h2.Load("/hist"))
	assert.Equal(t, 2, h2.Size())
}

func TestAppendToFileOnlyWritesPending(t *testing.T) {
	fs := afero.NewMemMapFs()
	h := New(fs, 0)
	h.Append("one")
	require.NoError(t, h.Save("/hist")) // lastWritten advances to 1

	h.Append("two")
	require.NoError(t, h.AppendToFile("/hist"))

	contents, err := afero.ReadFile(fs, "/hist")
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(contents))
}

func TestAppendToFileNoPendingIsNoop(t *testing.T) {
	fs := afero.NewMemMapFs()
	h := New(fs, 0)
	h.Append("one")
	require.NoError(t, h.AppendToFile("/hist"))

	before, _ := afero.ReadFile(fs, "/hist")
	require.NoError(t, h.AppendToFile("/hist"))
	after, _ := afero.ReadFile(fs, "/hist")
	assert.Equal(t, before, after)
}

func TestOverwriteFileUnchangedBufferIsNoop(t *testing.T) {
	fs := afero.NewMemMapFs()
	h := New(fs, 0)
	h.Append("one")
	require.NoError(t, h.OverwriteFile("/a"))
	first, _ := afero.ReadFile(fs, "/a")

	require.NoError(t, h.OverwriteFile("/a"))
	second, _ := afero.ReadFile(fs, "/a")
	assert.Equal(t, first, second)
}
