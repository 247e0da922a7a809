package cli

import (
	"fmt"
	"io"
	"strings"
)

// Process exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Handler runs a command with its arguments and returns an exit code.
type Handler func(args []string, stdout, stderr io.Writer) int

// Command is one entry in the toolbench command table.
type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     Handler
}

// Run dispatches args to the matching command.
func Run(args []string, stdout, stderr io.Writer) int {
	switch {
	case len(args) == 0:
		printUsage(stdout)
		return ExitUsage
	case isHelpArg(args[0]):
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n", args[0])
		if guess := suggestCommand(args[0]); guess != "" {
			fmt.Fprintf(stderr, "Did you mean %q?\n", guess)
		}
		fmt.Fprintln(stderr)
		printUsage(stderr)
		return ExitUsage
	}
	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

// suggestCommand returns the only command sharing a prefix with name.
func suggestCommand(name string) string {
	name = strings.ToLower(name)
	match := ""
	for _, cmd := range commands {
		if strings.HasPrefix(cmd.Name, name) || strings.HasPrefix(name, cmd.Name) {
			if match != "" {
				return ""
			}
			match = cmd.Name
		}
	}
	return match
}

func isHelpArg(arg string) bool {
	return arg == "help" || arg == "-h" || arg == "--help"
}

// wantsHelp reports whether any argument asks for command help.
func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	width := 0
	for _, cmd := range commands {
		width = max(width, len(cmd.Name))
	}
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  toolbench <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-*s  %s\n", width, cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"toolbench <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

// command builds a table entry. build receives the entry so handlers can
// print their own usage.
func command(name, summary string, usage []string, build func(*Command) Handler) *Command {
	cmd := &Command{Name: name, Summary: summary, Usage: usage}
	cmd.Run = build(cmd)
	return cmd
}

var commands = []*Command{
	command("init", "Scaffold config, prompts, corpus, and schemas", []string{
		"toolbench init [--spec <path>]",
	}, runInit),
	command("validate", "Validate config, prompts, corpus, and schemas", []string{
		"toolbench validate [--spec <path>]",
	}, runValidate),
	command("run", "Benchmark one model against the corpus", []string{
		"toolbench run [--spec <path>] [--model <name>] [--output-dir <dir>] [--ui auto|live|plain] [--verbose] [--no-color]",
	}, runRun),
	command("compare", "Benchmark several models and compare them", []string{
		"toolbench compare [--spec <path>] [--models a,b] [--output-dir <dir>] [--ui auto|live|plain] [--verbose] [--no-color]",
	}, runCompare),
	command("report", "Render a comparison from saved results", []string{
		"toolbench report --input <results.json> [--input <results.json>]... [--output <file.html>]",
		"toolbench report [--spec <path>] [--db <bench.duckdb>] [--output <file.html>]",
	}, runReport),
	command("serve", "Serve saved results over HTTP", []string{
		"toolbench serve [--spec <path>] [--results-dir <dir>] [--addr <host:port>]",
	}, runServe),
}
