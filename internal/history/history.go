// Package history implements the shell's in-memory command history and
// its persistence to a plain-text file, one entry per line. File access
// goes through an afero.Fs so callers can inject an in-memory filesystem
// in tests instead of touching disk, the way core/config does in the
// teacher repo for its own file-backed state.
package history

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
)

// History is an ordered sequence of input lines plus a cursor tracking
// the boundary between already-persisted and pending entries.
type History struct {
	fs      afero.Fs
	entries []string
	// lastWritten is the number of leading entries already reflected in
	// whatever file they were last written to or loaded from.
	lastWritten int
	// maxEntries caps the number of retained entries, oldest dropped
	// first, per Config.HistSize. Zero or negative means unlimited.
	maxEntries int
}

// New creates an empty history backed by fs, retaining at most maxEntries
// entries (oldest dropped first); zero or negative means unlimited. A nil
// fs uses the real OS filesystem.
func New(fs afero.Fs, maxEntries int) *History {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &History{fs: fs, maxEntries: maxEntries}
}

// Append records line, ignoring it if empty, then trims the oldest
// entries beyond maxEntries.
func (h *History) Append(line string) {
	if line == "" {
		return
	}
	h.entries = append(h.entries, line)
	h.trimToCap()
}

// trimToCap drops the oldest entries until the buffer is at most
// maxEntries long, keeping lastWritten's meaning (the count of leading
// entries already reflected on disk) consistent with the new boundaries.
func (h *History) trimToCap() {
	if h.maxEntries <= 0 || len(h.entries) <= h.maxEntries {
		return
	}
	drop := len(h.entries) - h.maxEntries
	h.entries = h.entries[drop:]
	h.lastWritten -= drop
	if h.lastWritten < 0 {
		h.lastWritten = 0
	}
}

// Size returns the number of entries.
func (h *History) Size() int {
	return len(h.entries)
}

// Get returns the entry at i, or ("", false) if i is out of range.
func (h *History) Get(i int) (string, bool) {
	if i < 0 || i >= len(h.entries) {
		return "", false
	}
	return h.entries[i], true
}

// Load reads path into the history at startup, skipping blank lines, and
// marks every loaded entry as already persisted. A missing file is not an
// error: there is simply nothing to load.
func (h *History) Load(path string) error {
	if path == "" {
		return nil
	}
	lines, err := readNonBlankLines(h.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	h.entries = append(h.entries, lines...)
	h.lastWritten = len(h.entries)
	h.trimToCap()
	return nil
}

// ReadFromFile implements the `history -r file` builtin: it appends path's
// non-blank lines onto the existing buffer and marks them persisted, the
// same as Load, but can be invoked mid-session.
func (h *History) ReadFromFile(path string) error {
	return h.Load(path)
}

// Save rewrites path with the full buffer, used at process exit against
// HISTFILE.
func (h *History) Save(path string) error {
	return h.writeFull(path)
}

// OverwriteFile implements `history -w file`: identical to Save, named
// separately because it targets an arbitrary file named on the command
// line rather than HISTFILE.
func (h *History) OverwriteFile(path string) error {
	return h.writeFull(path)
}

// AppendToFile implements `history -a file`: appends only the entries
// added since the last full write or append.
func (h *History) AppendToFile(path string) error {
	if path == "" {
		return nil
	}
	pending := h.entries[h.lastWritten:]
	if len(pending) == 0 {
		h.lastWritten = len(h.entries)
		return nil
	}

	f, err := h.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, line := range pending {
		if _, err := fmt.Fprintln(f, line); err != nil {
			return err
		}
	}
	h.lastWritten = len(h.entries)
	return nil
}

func (h *History) writeFull(path string) error {
	if path == "" {
		return nil
	}
	var buf bytes.Buffer
	for _, line := range h.entries {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	if err := afero.WriteFile(h.fs, path, buf.Bytes(), 0644); err != nil {
		return err
	}
	h.lastWritten = len(h.entries)
	return nil
}

func readNonBlankLines(fs afero.Fs, path string) ([]string, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}
