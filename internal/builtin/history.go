package builtin

import (
	"fmt"
	"strconv"

	"github.com/pborman/getopt/v2"
)

func init() {
	register("history", History)
}

// History displays, loads, or persists the command history. Flag parsing
// follows the teacher's shell_builtins.go pattern of reaching for
// pborman/getopt rather than hand-rolling a switch over args[0].
func History(env *Env, args []string) Outcome {
	opts := getopt.New()
	readFile := opts.StringLong("read", 'r', "", "read history from file")
	writeFile := opts.StringLong("write", 'w', "", "overwrite file with the full history")
	appendFile := opts.StringLong("append", 'a', "", "append pending history to file")

	// Getopt treats its first element as the program name.
	if err := opts.Getopt(append([]string{"history"}, args...), nil); err != nil {
		fmt.Fprintf(env.Stderr, "history: %v\n", err)
		return Outcome{}
	}

	switch {
	case *readFile != "":
		if err := env.History.ReadFromFile(*readFile); err != nil {
			fmt.Fprintf(env.Stderr, "history: %v\n", err)
		}
		return Outcome{}
	case *writeFile != "":
		if err := env.History.OverwriteFile(*writeFile); err != nil {
			fmt.Fprintf(env.Stderr, "history: %v\n", err)
		}
		return Outcome{}
	case *appendFile != "":
		if err := env.History.AppendToFile(*appendFile); err != nil {
			fmt.Fprintf(env.Stderr, "history: %v\n", err)
		}
		return Outcome{}
	}

	count := env.History.Size()
	start := 0
	if operands := opts.Args(); len(operands) > 0 {
		if n, err := strconv.Atoi(operands[0]); err == nil && n > 0 && n < count {
			start = count - n
		}
	}

	for i := start; i < count; i++ {
		line, _ := env.History.Get(i)
		fmt.Fprintf(env.Stdout, "    %d  %s\n", i+1, line)
	}
	return Outcome{}
}
