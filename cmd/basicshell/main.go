// Command basicshell is a POSIX-flavored interactive shell. It takes no
// command-line arguments or flags: cobra is wired up purely so a stray
// flag or subcommand still gets cobra's usual "unknown command" error
// message, the way the teacher repo's cmd/root.go establishes its root
// command even for a binary that mostly reads from stdin.
package main

import (
	"fmt"
	"os"

	"github.com/diyarane/basic-shell/internal/config"
	"github.com/diyarane/basic-shell/internal/diagnostics"
	"github.com/diyarane/basic-shell/internal/executor"
	"github.com/diyarane/basic-shell/internal/shell"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "basicshell",
	Short:         "A POSIX-flavored interactive command shell",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		os.Exit(runShell())
		return nil
	},
}

func main() {
	// A re-exec'd pipeline stage never goes through cobra: its argv is the
	// stage's own words, not basicshell's own flags, and it must not pay
	// cobra's arg-parsing pass on them.
	if os.Getenv(executor.StageRunnerEnv) != "" {
		os.Exit(executor.RunStage(os.Args[1:]))
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runShell() int {
	cfg, err := config.Load(afero.NewOsFs(), config.DefaultPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "basicshell: config: %v\n", err)
		cfg = config.Default()
	}

	debug := cfg.Debug || os.Getenv("BASICSHELL_DEBUG") != ""
	log := diagnostics.New(debug)

	histFile := cfg.ResolveHistFile(os.Getenv)

	driver := shell.New(os.Stdin, os.Stdout, histFile, cfg, log)
	return driver.Run()
}
