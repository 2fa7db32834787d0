// Package lineeditor reads one line at a time from a raw-mode terminal,
// providing history navigation (up/down) and double-tab command-name
// completion. It assumes the caller has already put the terminal into
// raw, no-echo mode; the editor never touches terminal attributes
// itself (the shell driver owns that transition).
package lineeditor

import (
	"bufio"
	"io"
	"sort"
	"strings"
)

const prompt = "$ "

// History is the subset of history.History the editor needs: read-only
// access by index and size, so it can't accidentally mutate the shared
// buffer while navigating it.
type History interface {
	Size() int
	Get(i int) (string, bool)
}

// Completer returns the completion candidate set for the current word.
// The shell driver supplies a closure over the builtin names and PATH.
type Completer func(word string) []string

// Editor reads logical lines from in, echoing to out as it goes.
type Editor struct {
	in  *bufio.Reader
	out io.Writer

	history   History
	complete  Completer
	historyIx int
	stash     string
	tabCount  int
	eof       bool

	buf []byte
}

// New creates an Editor. history and complete may be nil for a minimal
// editor with no navigation or completion (useful in tests of the raw
// byte-handling alone).
func New(in io.Reader, out io.Writer, history History, complete Completer) *Editor {
	e := &Editor{
		in:       bufio.NewReader(in),
		out:      out,
		history:  history,
		complete: complete,
	}
	e.resetHistoryNav()
	return e
}

func (e *Editor) historySize() int {
	if e.history == nil {
		return 0
	}
	return e.history.Size()
}

func (e *Editor) resetHistoryNav() {
	e.historyIx = e.historySize()
	e.stash = ""
	e.tabCount = 0
}

// ReadLine reads until Enter or end of input, returning whatever is
// buffered. It never returns an error for EOF: the caller sees an empty
// (or partial) line instead, per spec.md's "I/O end-of-stream" handling.
func (e *Editor) ReadLine() string {
	e.buf = e.buf[:0]
	e.resetHistoryNav()

	for {
		b, err := e.in.ReadByte()
		if err != nil {
			e.eof = true
			return string(e.buf)
		}

		switch {
		case b == '\x1b':
			e.handleEscape()
		case b == '\n':
			e.write("\n")
			return string(e.buf)
		case b == 0x7f || b == 0x08:
			e.handleBackspace()
		case b == '\t':
			e.handleTab()
			continue // handleTab manages tabCount itself
		case b >= 0x20 && b <= 0x7e:
			e.handlePrintable(b)
		default:
			// Unrecognized control byte: consumed, no effect.
		}
		e.tabCount = 0
	}
}

// AtEOF reports whether the last ReadLine ended because the underlying
// reader hit end of input rather than because the user pressed Enter. The
// driver uses this to tell a closed stdin apart from a bare Enter press,
// both of which surface as an empty string from ReadLine.
func (e *Editor) AtEOF() bool {
	return e.eof
}

func (e *Editor) handlePrintable(b byte) {
	e.buf = append(e.buf, b)
	e.out.Write([]byte{b})
	e.resetHistoryNavKeepingLine()
}

func (e *Editor) handleBackspace() {
	if len(e.buf) > 0 {
		e.buf = e.buf[:len(e.buf)-1]
		e.write("\b \b")
	}
	e.resetHistoryNavKeepingLine()
}

// resetHistoryNavKeepingLine is what spec.md calls resetting history_index
// to size and clearing stash on any printable or editing key. Unlike
// resetHistoryNav used at ReadLine's start, it leaves tabCount to
// ReadLine's loop.
func (e *Editor) resetHistoryNavKeepingLine() {
	e.historyIx = e.historySize()
	e.stash = ""
}

func (e *Editor) handleEscape() {
	first, err := e.in.ReadByte()
	if err != nil || first != '[' {
		return
	}
	code, err := e.in.ReadByte()
	if err != nil {
		return
	}
	switch code {
	case 'A':
		e.historyUp()
	case 'B':
		e.historyDown()
	default:
		// Unsupported escape code: bytes consumed, ignored.
	}
}

func (e *Editor) historyUp() {
	size := e.historySize()
	if size == 0 || e.historyIx == 0 {
		return
	}
	if e.historyIx == size {
		e.stash = string(e.buf)
	}
	e.historyIx--
	line, _ := e.history.Get(e.historyIx)
	e.buf = []byte(line)
	e.redraw()
}

func (e *Editor) historyDown() {
	size := e.historySize()
	if size == 0 {
		return
	}
	switch {
	case e.historyIx < size-1:
		e.historyIx++
		line, _ := e.history.Get(e.historyIx)
		e.buf = []byte(line)
	case e.historyIx == size-1:
		e.historyIx = size
		e.buf = []byte(e.stash)
	default:
		return
	}
	e.redraw()
}

func (e *Editor) redraw() {
	e.write("\r" + prompt + "\x1b[K" + string(e.buf))
}

func (e *Editor) handleTab() {
	word := string(e.buf)
	if strings.Contains(word, " ") {
		return
	}
	if e.complete == nil {
		return
	}

	candidates := e.complete(word)
	switch len(candidates) {
	case 0:
		e.write("\a")
		e.tabCount = 0
	case 1:
		suffix := candidates[0][len(word):] + " "
		e.buf = append(e.buf, suffix...)
		e.write(suffix)
		e.tabCount = 0
	default:
		lcp := longestCommonPrefix(candidates)
		if len(lcp) > len(word) {
			suffix := lcp[len(word):]
			e.buf = append(e.buf, suffix...)
			e.write(suffix)
		} else {
			e.write("\a")
		}
		e.tabCount++
		if e.tabCount == 2 {
			sorted := append([]string(nil), candidates...)
			sort.Strings(sorted)
			e.write("\n" + strings.Join(sorted, "  ") + "\n" + prompt + string(e.buf))
			e.tabCount = 0
		}
	}
}

func (e *Editor) write(s string) {
	e.out.Write([]byte(s))
}

func longestCommonPrefix(strs []string) string {
	if len(strs) == 0 {
		return ""
	}
	prefix := strs[0]
	for _, s := range strs[1:] {
		n := 0
		for n < len(prefix) && n < len(s) && prefix[n] == s[n] {
			n++
		}
		prefix = prefix[:n]
		if prefix == "" {
			break
		}
	}
	return prefix
}
