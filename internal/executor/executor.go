// Package executor wires up and runs parsed pipelines: opening
// redirection targets, duplicating descriptors, spawning children (or
// invoking built-ins in place), and waiting for completion with correct
// descriptor accounting.
//
// Go cannot safely fork() a running multi-threaded process and keep
// executing Go code in the child (see runtime/proc.go's comments on
// syscall.ForkExec) the way the original C++ shell does. The multi-stage
// path therefore re-execs the shell's own binary as a single-purpose
// "stage runner" per pipeline stage, the same self-reexec technique
// container runtimes use to run code between fork and exec. That gives
// every stage a real child process to run a builtin or fail a PATH lookup
// in, matching the descriptor-accounting invariants spec.md §5 and §8
// describe. See DESIGN.md's Open Question entry for the reasoning.
package executor

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/diyarane/basic-shell/internal/builtin"
	"github.com/diyarane/basic-shell/internal/parser"
	"golang.org/x/sys/unix"
)

// StageRunnerEnv is the environment variable that, when set in a
// re-exec'd child's environment, tells main() to behave as a stage
// runner instead of starting the interactive shell. Its value is unused;
// the stage's argv carries the command and arguments.
const StageRunnerEnv = "BASICSHELL_STAGE_RUNNER"

// HistSizeEnv carries the configured history cap across the re-exec
// boundary, so a builtin run inside a pipeline stage enforces the same
// retained-entries limit the parent does.
const HistSizeEnv = "BASICSHELL_HIST_SIZE"

// Dispatcher is what the executor needs to run a single command: look it
// up on PATH, or run it in-process if it's a builtin.
type Dispatcher struct {
	LookPath func(name string) (string, bool)
	Builtin  func(name string, env *builtin.Env, args []string) (builtin.Outcome, bool)
	Environ  func() []string
	// HistSize is the configured history cap, passed to re-exec'd stage
	// runners via HistSizeEnv so mid-pipeline history builtins cap the
	// same way the parent does.
	HistSize int
}

// Run executes pipeline to completion, blocking until every stage has
// finished. It returns the outcome of a builtin `exit` if one stage was
// `exit` run as the sole stage (exit is meaningless inside a pipeline of
// more than one stage, matching the source, which only checks args[0]
// before pipeline parsing even happens).
func (d *Dispatcher) Run(pipeline parser.Pipeline, benv *builtin.Env) builtin.Outcome {
	if len(pipeline) == 0 {
		return builtin.Outcome{}
	}
	if len(pipeline) == 1 {
		return d.runSingle(pipeline[0], benv)
	}
	d.runMulti(pipeline)
	return builtin.Outcome{}
}

// runSingle handles the one-stage path: redirection is installed by
// duplicating the real process descriptors 1/2 onto the opened target,
// the command runs (builtin in-process, external via exec.Cmd inheriting
// the now-redirected descriptors), and the originals are restored on
// every exit path.
func (d *Dispatcher) runSingle(stage parser.Stage, benv *builtin.Env) builtin.Outcome {
	if len(stage.Words) == 0 {
		return builtin.Outcome{}
	}

	restore, ok := installRedirects(stage.Redirect, benv.Stderr)
	defer restore()
	if !ok {
		return builtin.Outcome{}
	}

	name, args := stage.Words[0], stage.Words[1:]

	// A redirected descriptor is only reached through the real fd, so
	// builtins and the not-found message write there instead of benv's
	// own writers.
	if len(stage.Redirect) > 0 {
		redirected := *benv
		if _, present := stage.Redirect[1]; present {
			redirected.Stdout = os.Stdout
		}
		if _, present := stage.Redirect[2]; present {
			redirected.Stderr = os.Stderr
		}
		benv = &redirected
	}

	if outcome, isBuiltin := d.Builtin(name, benv, args); isBuiltin {
		return outcome
	}

	path, found := d.LookPath(name)
	if !found {
		fmt.Fprintf(benv.Stdout, "%s: command not found\n", name)
		return builtin.Outcome{}
	}

	cmd := exec.Command(path, args...)
	cmd.Args[0] = name
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = d.Environ()
	_ = cmd.Run()
	return builtin.Outcome{}
}

// installRedirects opens each requested target and dup2s it onto the
// real fd 1/2, returning a func that restores the saved originals. It
// always returns a valid restore func, even on failure, so callers can
// unconditionally defer it.
func installRedirects(redirects map[int]parser.Redirection, diag io.Writer) (restore func(), ok bool) {
	var saved []dupSave
	ok = true

	for _, fd := range []int{1, 2} {
		r, present := redirects[fd]
		if !present {
			continue
		}
		flags := os.O_WRONLY | os.O_CREATE
		if r.Mode == parser.Append {
			flags |= os.O_APPEND
		} else {
			flags |= os.O_TRUNC
		}
		f, err := os.OpenFile(r.Path, flags, 0644)
		if err != nil {
			fmt.Fprintf(diag, "Error opening file: %s\n", r.Path)
			ok = false
			continue
		}

		savedFd, err := unix.Dup(fd)
		if err != nil {
			f.Close()
			ok = false
			continue
		}
		if err := unix.Dup2(int(f.Fd()), fd); err != nil {
			unix.Close(savedFd)
			f.Close()
			ok = false
			continue
		}
		f.Close() // the dup2'd fd keeps the file open; our *os.File handle isn't needed anymore.
		saved = append(saved, dupSave{fd: fd, savedFd: savedFd})
	}

	return func() {
		for _, s := range saved {
			unix.Dup2(s.savedFd, s.fd)
			unix.Close(s.savedFd)
		}
	}, ok
}

type dupSave struct {
	fd      int
	savedFd int
}
