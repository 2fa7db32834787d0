// Package builtin implements the shell's in-process commands: echo, exit,
// type, pwd, cd, history. The dispatcher pattern, a name-keyed registry
// of Funcs rather than a chain of string comparisons at call sites, is
// the teacher repo's core/shell_builtins.go shape, generalized from its
// single global history slice to an injected Env.
package builtin

import (
	"io"

	"github.com/diyarane/basic-shell/internal/history"
)

// Outcome is what running a builtin tells the driver to do next, the
// design-notes "Command = Builtin(kind) | External(path, argv)" / exit as
// ordinary data rather than unwinding control flow.
type Outcome struct {
	// Terminate requests that the driver loop end after this command.
	Terminate bool
	// Code is the process exit code, meaningful only when Terminate.
	Code int
}

// Env is what a builtin needs from its surroundings: where to write, and
// a handle on the shared history. Stdout/Stderr are plain io.Writer
// because the executor has already installed any redirection onto the
// process's real descriptors (or, for a piped builtin, onto the pipe
// ends) by the time a builtin runs; the builtin never has to know which.
type Env struct {
	Stdout  io.Writer
	Stderr  io.Writer
	History *history.History
	// LookPath resolves a command name against PATH; used by `type`.
	LookPath func(name string) (string, bool)
	// Getenv and Chdir proxy the process environment and working
	// directory so cd/pwd stay testable.
	Getenv func(key string) string
	Chdir  func(dir string) error
	Getwd  func() (string, error)
}

// Func is a builtin's entry point.
type Func func(env *Env, args []string) Outcome

// Registry holds every builtin by name. It is populated by the init
// function in each builtin's own source file.
var Registry = map[string]Func{}

// Names returns the registered builtin names.
func Names() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	return names
}

// IsBuiltin reports whether name is a registered builtin.
func IsBuiltin(name string) bool {
	_, ok := Registry[name]
	return ok
}

func register(name string, fn Func) {
	Registry[name] = fn
}
