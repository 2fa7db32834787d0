// Package shell implements the main read-parse-execute loop: it owns the
// history store and the terminal mode transitions, and wires the lexer,
// parser, line editor, and executor together the way the teacher's old
// shell.go drove its own parser and dispatcher, generalized from a single
// global history slice to constructor-time wiring with no static state.
package shell

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/diyarane/basic-shell/internal/builtin"
	"github.com/diyarane/basic-shell/internal/config"
	"github.com/diyarane/basic-shell/internal/diagnostics"
	"github.com/diyarane/basic-shell/internal/executor"
	"github.com/diyarane/basic-shell/internal/history"
	"github.com/diyarane/basic-shell/internal/lexer"
	"github.com/diyarane/basic-shell/internal/lineeditor"
	"github.com/diyarane/basic-shell/internal/parser"
	"github.com/diyarane/basic-shell/internal/pathresolver"
	"golang.org/x/term"
)

const prompt = "$ "

// Driver runs the interactive loop. It owns the history store; the line
// editor sees it only through its read-only History interface, while
// builtins get the store itself through builtin.Env.
type Driver struct {
	in         *os.File
	out        io.Writer
	histFile   string
	pathEnv    func() string
	history    *history.History
	dispatcher *executor.Dispatcher
	log        *diagnostics.Logger
}

// New builds a Driver reading from in and writing to out, persisting
// history to histFile (empty disables persistence). cfg supplies the
// ExtraPath directories folded into PATH for lookup and completion (via
// cfg.ResolvePath) and the HistSize cap on retained history entries; a
// nil cfg behaves like config.Default() (no extra directories, default
// cap).
func New(in *os.File, out io.Writer, histFile string, cfg *config.Config, log *diagnostics.Logger) *Driver {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = diagnostics.New(false)
	}
	pathEnv := func() string { return cfg.ResolvePath(os.Getenv) }
	return &Driver{
		in:       in,
		out:      out,
		histFile: histFile,
		pathEnv:  pathEnv,
		history:  history.New(nil, cfg.HistSize),
		dispatcher: &executor.Dispatcher{
			LookPath: func(name string) (string, bool) { return pathresolver.Lookup(pathEnv(), name) },
			Builtin: func(name string, env *builtin.Env, args []string) (builtin.Outcome, bool) {
				fn, ok := builtin.Registry[name]
				if !ok {
					return builtin.Outcome{}, false
				}
				return fn(env, args), true
			},
			Environ:  os.Environ,
			HistSize: cfg.HistSize,
		},
		log: log,
	}
}

// Run executes the main loop to completion and returns the process exit
// code requested by `exit`, or 0 if the loop ended because stdin reached
// end of input.
func (d *Driver) Run() int {
	if err := d.history.Load(d.histFile); err != nil {
		d.log.Debugf("history load failed: %v", err)
	}

	fd := int(d.in.Fd())
	raw := term.IsTerminal(fd)

	var saved *term.State
	if raw {
		var err error
		saved, err = term.MakeRaw(fd)
		if err != nil {
			d.log.Debugf("MakeRaw failed: %v", err)
			raw = false
		}
	}
	restoreCooked := func() {
		if raw && saved != nil {
			term.Restore(fd, saved)
		}
	}
	defer restoreCooked()

	editor := lineeditor.New(d.in, d.out, d.history, d.completer())
	benv := d.builtinEnv()

	for {
		fmt.Fprint(d.out, prompt)
		line := editor.ReadLine()
		restoreCooked()

		if line == "" {
			// A closed stdin ends the loop like an implicit `exit 0`
			// rather than spinning forever re-reading EOF; a bare Enter
			// press falls through to the ordinary loop-continue below.
			if editor.AtEOF() {
				d.persistHistory()
				return 0
			}
			if raw {
				saved, _ = term.MakeRaw(fd)
			}
			continue
		}

		d.history.Append(line)
		tokens := lexer.Tokenize(line)

		if len(tokens) > 0 && tokens[0] == "exit" {
			outcome := builtin.Exit(benv, tokens[1:])
			d.persistHistory()
			return outcome.Code
		}

		pipeline := parser.Parse(tokens)
		d.dispatcher.Run(pipeline, benv)

		if raw {
			saved, _ = term.MakeRaw(fd)
		}
	}
}

func (d *Driver) persistHistory() {
	if err := d.history.Save(d.histFile); err != nil {
		d.log.Debugf("history save failed: %v", err)
	}
}

func (d *Driver) builtinEnv() *builtin.Env {
	return &builtin.Env{
		Stdout:   d.out,
		Stderr:   os.Stderr,
		History:  d.history,
		LookPath: func(name string) (string, bool) { return pathresolver.Lookup(d.pathEnv(), name) },
		Getenv:   os.Getenv,
		Chdir:    os.Chdir,
		Getwd:    os.Getwd,
	}
}

// completer builds the candidate closure the line editor calls on Tab:
// the union of builtin names and PATH executables matching the prefix.
func (d *Driver) completer() lineeditor.Completer {
	return func(word string) []string {
		seen := make(map[string]bool)
		var candidates []string

		for _, name := range builtin.Names() {
			if strings.HasPrefix(name, word) && !seen[name] {
				seen[name] = true
				candidates = append(candidates, name)
			}
		}
		for _, name := range pathresolver.CompletionCandidates(d.pathEnv(), word) {
			if !seen[name] {
				seen[name] = true
				candidates = append(candidates, name)
			}
		}
		return candidates
	}
}
