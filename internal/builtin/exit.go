package builtin

import "strconv"

func init() {
	register("exit", Exit)
}

// Exit requests that the driver loop terminate. The argument parses as a
// non-negative integer; an absent or invalid argument defaults to 0,
// matching the original's behavior, not the original's bug of computing
// the code and then discarding it (see SPEC_FULL.md §4).
func Exit(env *Env, args []string) Outcome {
	code := 0
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n >= 0 {
			code = n
		}
	}
	return Outcome{Terminate: true, Code: code}
}
