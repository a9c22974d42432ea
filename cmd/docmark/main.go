package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to a command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	switch {
	case isCommand(cmd, "render"):
		return runRenderCmd(rest, env)
	case isCommand(cmd, "inspect"):
		return runInspectCmd(rest, env)
	case isCommand(cmd, "version"):
		fmt.Fprintf(env.Stdout, "go-docmark %s\n", Version)
		return ExitSuccess
	case isCommand(cmd, "help"):
		return runHelp(rest, env)
	case isMarkdown(cmd):
		// "docmark notes.md" is shorthand for "docmark render notes.md"
		return runRenderCmd(args[1:], env)
	}

	fmt.Fprintf(env.Stderr, "Unknown command: %s\n\n", cmd)
	printUsage(env.Stderr)
	return ExitUsage
}

// isCommand matches a command name, accepting -h/--help as help.
func isCommand(arg, name string) bool {
	if name == "help" && (arg == "-h" || arg == "--help") {
		return true
	}
	return arg == name
}

// setupMaxprocs aligns GOMAXPROCS with the container CPU quota, logging the
// adjustment only in verbose mode.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply.
func setupMaxprocs(verbose bool, w io.Writer) {
	logf := func(string, ...any) {}
	if verbose {
		logf = func(format string, args ...any) {
			fmt.Fprintf(w, format+"\n", args...)
		}
	}
	_, _ = maxprocs.Set(maxprocs.Logger(logf))
}
