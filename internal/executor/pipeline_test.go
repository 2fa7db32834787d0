package executor

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/diyarane/basic-shell/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// TestMain re-execs into RunStage whenever the test binary itself is
// invoked as a stage runner. runMulti calls os.Executable() and re-execs
// whatever binary that is; pointing it at the test binary during `go
// test` (the same "helper process" trick os/exec's own tests use for
// subprocess behavior) exercises the real re-exec/pipe/dup2 path end to
// end instead of only the in-process pieces.
func TestMain(m *testing.M) {
	if os.Getenv(StageRunnerEnv) != "" {
		os.Exit(RunStage(os.Args[1:]))
	}
	os.Exit(m.Run())
}

// captureFd temporarily redirects the real file descriptor fd (1 or 2)
// to a pipe for the duration of fn, then restores it and returns what
// was written. It uses the same dup/dup2/close sequence installRedirects
// uses in production, since that's the only way to observe output a
// re-exec'd child inherits directly rather than something this process's
// own io.Writer values see.
func captureFd(t *testing.T, fd int, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)

	saved, err := unix.Dup(fd)
	require.NoError(t, err)
	require.NoError(t, unix.Dup2(int(w.Fd()), fd))

	fn()

	require.NoError(t, unix.Dup2(saved, fd))
	require.NoError(t, unix.Close(saved))
	require.NoError(t, w.Close())

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	return buf.String()
}

func multiDispatcher() *Dispatcher {
	return &Dispatcher{Environ: os.Environ}
}

func TestRunMultiPipesExternalCommands(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "lines.txt")
	require.NoError(t, os.WriteFile(file, []byte("a\nb\nc\n"), 0644))

	d := multiDispatcher()
	pipeline := parser.Parse([]string{"cat", file, "|", "wc", "-l"})

	out := captureFd(t, 1, func() {
		d.Run(pipeline, nil)
	})

	assert.Equal(t, "3", strings.TrimSpace(out))
}

func TestRunMultiBuiltinAsStage(t *testing.T) {
	d := multiDispatcher()
	pipeline := parser.Parse([]string{"echo", "hi", "|", "wc", "-c"})

	out := captureFd(t, 1, func() {
		d.Run(pipeline, nil)
	})

	assert.Equal(t, "3", strings.TrimSpace(out)) // "hi\n" is 3 bytes
}

func TestRunMultiCommandNotFoundWritesStderrNotStdout(t *testing.T) {
	d := multiDispatcher()
	pipeline := parser.Parse([]string{"totally-not-a-real-command", "|", "cat"})

	var stderrOut string
	stdoutOut := captureFd(t, 1, func() {
		stderrOut = captureFd(t, 2, func() {
			d.Run(pipeline, nil)
		})
	})

	assert.Equal(t, "totally-not-a-real-command: command not found\n", stderrOut)
	assert.Empty(t, stdoutOut)
}

func TestRunStageEmptyArgsReturnsZero(t *testing.T) {
	assert.Equal(t, 0, RunStage(nil))
}

func TestRunStageBuiltinExit(t *testing.T) {
	assert.Equal(t, 5, RunStage([]string{"exit", "5"}))
}

func TestRunStageBuiltinEcho(t *testing.T) {
	out := captureFd(t, 1, func() {
		assert.Equal(t, 0, RunStage([]string{"echo", "hi"}))
	})
	assert.Equal(t, "hi\n", out)
}

func TestRunStageHistoryCapFromEnv(t *testing.T) {
	dir := t.TempDir()
	histFile := filepath.Join(dir, "hist")
	require.NoError(t, os.WriteFile(histFile, []byte("a\nb\nc\n"), 0644))

	require.NoError(t, os.Setenv("HISTFILE", histFile))
	require.NoError(t, os.Setenv(HistSizeEnv, "2"))
	defer os.Unsetenv("HISTFILE")
	defer os.Unsetenv(HistSizeEnv)

	out := captureFd(t, 1, func() {
		RunStage([]string{"history"})
	})

	assert.NotContains(t, out, "a")
	assert.Contains(t, out, "b")
	assert.Contains(t, out, "c")
}
