package cli

import (
	"errors"
	"fmt"
	"io"

	"toolbench/internal/config"
	"toolbench/internal/runner"
)

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) Handler {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := newFlagSet(cmd, stderr)
		specPath := flags.String("spec", "", "Path to config file (default: search for .toolbench/config.yml)")
		if ok, code := parseCommandFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}

		proj, err := loadProject(*specPath)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			var validationErr *config.ValidationError
			if errors.As(err, &validationErr) && missingScaffold(validationErr) {
				fmt.Fprintln(stderr, "Hint: run `toolbench init` in a new directory to see a working layout.")
			}
			return ExitError
		}
		suite, err := runner.LoadSuite(proj.Config, proj.RepoRoot)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}

		fmt.Fprintf(stdout, "Config OK: %d cases, %d tools, %d models\n",
			len(suite.Cases), len(suite.Registry.Tools()), len(proj.Config.Models))
		return ExitOK
	}
}

// missingScaffold reports whether validation failed on files init would have written.
func missingScaffold(err *config.ValidationError) bool {
	for _, field := range []string{"prompts", "corpus", "tools"} {
		if err.HasField(field) {
			return true
		}
	}
	return false
}
