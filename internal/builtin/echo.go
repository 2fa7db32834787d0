package builtin

import (
	"fmt"
	"strings"
)

func init() {
	register("echo", Echo)
}

// Echo writes its arguments separated by a single space, terminated by a
// newline.
func Echo(env *Env, args []string) Outcome {
	fmt.Fprintln(env.Stdout, strings.Join(args, " "))
	return Outcome{}
}
