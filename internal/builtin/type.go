package builtin

import "fmt"

func init() {
	register("type", Type)
}

// Type reports whether name is a builtin, an executable on PATH, or
// neither.
func Type(env *Env, args []string) Outcome {
	if len(args) == 0 {
		return Outcome{}
	}
	name := args[0]

	if IsBuiltin(name) {
		fmt.Fprintf(env.Stdout, "%s is a shell builtin\n", name)
		return Outcome{}
	}

	if path, ok := env.LookPath(name); ok {
		fmt.Fprintf(env.Stdout, "%s is %s\n", name, path)
		return Outcome{}
	}

	fmt.Fprintf(env.Stdout, "%s: not found\n", name)
	return Outcome{}
}
