// Package diagnostics is the shell's side channel for debug output: it
// never writes to the terminal the user is editing a line on, since that
// would corrupt the line editor's redraw assumptions. It follows the
// teacher's core/logger package in spirit, colored, leveled lines, but
// routes everything to a file instead of stdout, the one place safe to
// write without fighting the line editor for the cursor.
package diagnostics

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
)

// Logger writes timestamped, colorized diagnostic lines to its
// destination. A Logger with a nil destination discards everything,
// which is what New returns when debug mode is off.
type Logger struct {
	out io.Writer
}

// New returns a Logger. When enabled is false, the Logger discards all
// output, so call sites never need their own debug-mode branch.
func New(enabled bool) *Logger {
	if !enabled {
		return &Logger{}
	}
	f, err := os.OpenFile(defaultLogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return &Logger{}
	}
	return &Logger{out: f}
}

// defaultLogPath is where debug output lands when BASICSHELL_DEBUG or
// Config.Debug is set.
func defaultLogPath() string {
	dir := os.TempDir()
	return filepath.Join(dir, "basicshell-debug.log")
}

// Debugf writes a formatted, timestamped line. It is a no-op when the
// Logger was built with debug mode disabled.
func (l *Logger) Debugf(format string, args ...interface{}) {
	if l.out == nil {
		return
	}
	ts := color.CyanString(timestamp())
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.out, "%s %s\n", ts, msg)
}

func timestamp() string {
	return time.Now().Format("15:04:05.000")
}
