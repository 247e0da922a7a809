package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"toolbench/internal/report"
	"toolbench/internal/runner"
)

var compareModels = runner.Compare

// comparisonFileName is written to the output directory after a compare.
const comparisonFileName = "comparison.html"

// runCompare builds the handler for the compare command.
func runCompare(cmd *Command) Handler {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := newFlagSet(cmd, stderr)
		specPath := flags.String("spec", "", "Path to config file (default: search for .toolbench/config.yml)")
		models := flags.String("models", "", "Comma-separated models (default: all configured models)")
		outputDir := flags.String("output-dir", "", "Override output directory")
		uiMode := flags.String("ui", "plain", "Progress display: auto, live, or plain")
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
			fmt.Fprintf(stderr, "Compare failed: %v\n", err)
			return ExitError
		}
		defer closeStore()

		prog, err := newProgress(*uiMode, *verbose, *noColor, stdout, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Invalid --ui: %v\n", err)
			return ExitUsage
		}
		comparison, err := compareModels(ctx, proj.Config, runner.RunParams{
			RepoRoot:  proj.RepoRoot,
			OutputDir: *outputDir,
			Models:    splitModels(*models),
			Observer:  prog.Observer,
			Deps:      deps,
		})
		prog.Stop()
		if err != nil {
			fmt.Fprintf(stderr, "Compare failed: %v\n", err)
			return ExitError
		}

		failed := 0
		for _, run := range comparison.Runs {
			if run.Err != nil {
				failed++
				fmt.Fprintf(stderr, "Warning: %s failed: %v\n", run.Model, run.Err)
			}
		}

		summaries := comparison.Summaries()
		fmt.Fprintln(stdout, report.ComparisonTable(summaries, *noColor))

		dir := proj.outputDir(*outputDir)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(stderr, "Compare failed: %v\n", err)
			return ExitError
		}
		htmlPath := filepath.Join(dir, comparisonFileName)
		if err := report.WriteComparisonHTML(ctx, htmlPath, summaries); err != nil {
			fmt.Fprintf(stderr, "Compare failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Comparison: %s\n", htmlPath)
		if failed == len(comparison.Runs) {
			fmt.Fprintln(stderr, "Compare failed: no model completed")
			return ExitError
		}
		return ExitOK
	}
}
