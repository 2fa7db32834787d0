package pathresolver

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkExecutable(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte("#!/bin/sh\n"), 0755))
	return p
}

func TestLookupFirstMatch(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("execute-bit semantics are POSIX only")
	}
	a, b := t.TempDir(), t.TempDir()
	mkExecutable(t, a, "tool")
	mkExecutable(t, b, "tool")

	got, ok := Lookup(a+":"+b, "tool")
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(a, "tool"), got)
}

func TestLookupSkipsEmptyPathComponents(t *testing.T) {
	dir := t.TempDir()
	mkExecutable(t, dir, "tool")
	_, ok := Lookup("::"+dir+":", "tool")
	assert.True(t, ok)
}

func TestLookupMiss(t *testing.T) {
	_, ok := Lookup(t.TempDir(), "does-not-exist")
	assert.False(t, ok)
}

func TestLookupSkipsNonExecutable(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "data")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
	_, ok := Lookup(dir, "data")
	assert.False(t, ok)
}

func TestCompletionCandidatesDedupAndPrefix(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	mkExecutable(t, a, "echo-like")
	mkExecutable(t, b, "echo-like") // shadowed duplicate
	mkExecutable(t, a, "other")

	got := CompletionCandidates(a+":"+b, "echo")
	assert.Equal(t, []string{"echo-like"}, got)
}

func TestCompletionCandidatesSkipsUnreadableDir(t *testing.T) {
	got := CompletionCandidates("/path/does/not/exist", "foo")
	assert.Empty(t, got)
}
