package builtin

import "fmt"

func init() {
	register("pwd", Pwd)
}

// Pwd writes the current working directory followed by a newline.
func Pwd(env *Env, args []string) Outcome {
	dir, err := env.Getwd()
	if err != nil {
		fmt.Fprintf(env.Stderr, "pwd: %v\n", err)
		return Outcome{}
	}
	fmt.Fprintln(env.Stdout, dir)
	return Outcome{}
}
