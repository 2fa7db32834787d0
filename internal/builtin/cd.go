package builtin

import "fmt"

func init() {
	register("cd", Cd)
}

// Cd changes the working directory. With no argument it uses HOME; "~" is
// also substituted for HOME. Failure reports "No such file or directory"
// regardless of the underlying OS error, matching the source's message.
func Cd(env *Env, args []string) Outcome {
	target := env.Getenv("HOME")
	if len(args) > 0 {
		target = args[0]
		if target == "~" {
			target = env.Getenv("HOME")
		}
	}

	if err := env.Chdir(target); err != nil {
		fmt.Fprintf(env.Stderr, "cd: %s: No such file or directory\n", target)
	}
	return Outcome{}
}
