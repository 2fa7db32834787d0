package executor

import (
	"fmt"
	"os"
	"strconv"

	"github.com/diyarane/basic-shell/internal/builtin"
	"github.com/diyarane/basic-shell/internal/history"
	"github.com/diyarane/basic-shell/internal/pathresolver"
	"golang.org/x/sys/unix"
)

// RunStage is the entry point a re-exec'd child runs instead of the
// interactive driver, when BASICSHELL_STAGE_RUNNER is set in its
// environment. args is the stage's words (command plus arguments); its
// stdin/stdout are already the pipe ends the parent wired up, and its
// stderr is inherited directly.
//
// Builtins run in-process and this returns their exit code. External
// commands replace this process's image via execve so the spawned
// program becomes the real pipeline stage, with no extra Go process
// sitting in between; RunStage does not return in that case.
func RunStage(args []string) int {
	if len(args) == 0 {
		return 0
	}
	name := args[0]

	if fn, isBuiltin := builtin.Registry[name]; isBuiltin {
		// A re-exec'd stage has no shared memory with the parent, so it
		// reconstructs its own history from HISTFILE rather than seeing
		// the live in-process buffer, the same loss of sharing a real
		// fork() would produce, approximated from the one place state
		// survives a process boundary. No spec.md scenario exercises
		// `history` inside a pipeline, so this is undocumented-but-inert.
		maxEntries, _ := strconv.Atoi(os.Getenv(HistSizeEnv))
		stageHistory := history.New(nil, maxEntries)
		stageHistory.Load(os.Getenv("HISTFILE"))

		env := &builtin.Env{
			Stdout:   os.Stdout,
			Stderr:   os.Stderr,
			History:  stageHistory,
			LookPath: func(n string) (string, bool) { return pathresolver.Lookup(os.Getenv("PATH"), n) },
			Getenv:   os.Getenv,
			Chdir:    os.Chdir,
			Getwd:    os.Getwd,
		}
		outcome := fn(env, args[1:])
		if outcome.Terminate {
			return outcome.Code
		}
		return 0
	}

	path, found := pathresolver.Lookup(os.Getenv("PATH"), name)
	if !found {
		fmt.Fprintf(os.Stderr, "%s: command not found\n", name)
		return 1
	}

	argv := append([]string{name}, args[1:]...)
	if err := unix.Exec(path, argv, os.Environ()); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		return 1
	}
	return 0 // unreachable: unix.Exec only returns on error.
}
