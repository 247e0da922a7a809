package cli

import (
	"fmt"
	"io"

	"toolbench/internal/report"
	"toolbench/internal/runner"
)

var runAndWrite = runner.RunAndWrite

// runRun builds the handler for the run command.
func runRun(cmd *Command) Handler {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := newFlagSet(cmd, stderr)
		specPath := flags.String("spec", "", "Path to config file (default: search for .toolbench/config.yml)")
		model := flags.String("model", "", "Model to benchmark (default: default_model)")
		outputDir := flags.String("output-dir", "", "Override output directory")
		uiMode := flags.String("ui", "auto", "Progress display: auto, live, or plain")
		verbose := flags.Bool("verbose", false, "Log every case")
		noColor := flags.Bool("no-color", false, "Disable ANSI colors")
		if ok, code := parseCommandFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}

		proj, err := loadProject(*specPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}

		ctx, stop := signalContext()
		defer stop()

		deps, closeStore, err := withStore(ctx, proj, runDependencies())
		if err != nil {
			fmt.Fprintf(stderr, "Run failed: %v\n", err)
			return ExitError
		}
		defer closeStore()

		prog, err := newProgress(*uiMode, *verbose, *noColor, stdout, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Invalid --ui: %v\n", err)
			return ExitUsage
		}
		results, paths, err := runAndWrite(ctx, proj.Config, runner.RunParams{
			RepoRoot:  proj.RepoRoot,
			OutputDir: *outputDir,
			Model:     *model,
			Observer:  prog.Observer,
			Deps:      deps,
		})
		prog.Stop()
		if err != nil {
			fmt.Fprintf(stderr, "Run failed: %v\n", err)
			return ExitError
		}

		fmt.Fprintf(stdout, "Run %s completed\n", results.RunID)
		fmt.Fprintln(stdout, report.ComparisonTable([]runner.RunSummary{results.Summary}, *noColor))
		fmt.Fprintf(stdout, "Results: %s\n", paths.ResultsPath())
		fmt.Fprintf(stdout, "Report: %s\n", paths.ReportPath())
		return ExitOK
	}
}
