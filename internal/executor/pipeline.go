package executor

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/diyarane/basic-shell/internal/parser"
)

// runMulti handles the n>=2 stage path: n-1 pipes are created up front,
// then each stage is spawned as a re-exec'd child with its stdin/stdout
// wired to the appropriate pipe ends, in spawn order; the parent closes
// every pipe descriptor itself and waits for every child in the same
// order. Per-stage redirections are not honored here, matching the
// source (see spec.md §4.7, §9 Open Questions).
func (d *Dispatcher) runMulti(pipeline parser.Pipeline) {
	n := len(pipeline)

	readers := make([]*os.File, n-1)
	writers := make([]*os.File, n-1)
	for i := 0; i < n-1; i++ {
		r, w, err := os.Pipe()
		if err != nil {
			fmt.Fprintf(os.Stderr, "pipe: %v\n", err)
			closeAll(readers[:i], writers[:i])
			return
		}
		readers[i] = r
		writers[i] = w
	}

	self, err := os.Executable()
	if err != nil {
		self = os.Args[0]
	}

	cmds := make([]*exec.Cmd, n)
	for i, stage := range pipeline {
		if len(stage.Words) == 0 {
			continue
		}

		cmd := exec.Command(self, stage.Words...)
		cmd.Env = append(d.Environ(), StageRunnerEnv+"=1", HistSizeEnv+"="+strconv.Itoa(d.HistSize))
		cmd.Stderr = os.Stderr

		if i > 0 {
			cmd.Stdin = readers[i-1]
		} else {
			cmd.Stdin = os.Stdin
		}
		if i < n-1 {
			cmd.Stdout = writers[i]
		} else {
			cmd.Stdout = os.Stdout
		}

		if err := cmd.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", stage.Words[0], err)
			continue
		}
		cmds[i] = cmd
	}

	closeAll(readers, writers)

	for _, cmd := range cmds {
		if cmd != nil {
			cmd.Wait()
		}
	}
}

func closeAll(files ...[]*os.File) {
	for _, group := range files {
		for _, f := range group {
			if f != nil {
				f.Close()
			}
		}
	}
}
