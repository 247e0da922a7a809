package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"toolbench/internal/report"
	"toolbench/internal/runner"
)

// runReport builds the handler for the report command.
func runReport(cmd *Command) Handler {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := newFlagSet(cmd, stderr)
		var inputs stringList
		flags.Var(&inputs, "input", "results.json to include (repeatable)")
		specPath := flags.String("spec", "", "Path to config file (default: search for .toolbench/config.yml)")
		dbPath := flags.String("db", "", "Read the latest run per model from a DuckDB database")
		outputPath := flags.String("output", "", "Report output path")
		noColor := flags.Bool("no-color", false, "Disable ANSI colors")
		if ok, code := parseCommandFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if len(inputs) > 0 && *dbPath != "" {
			fmt.Fprintln(stderr, "Use either --input or --db, not both")
			return ExitUsage
		}

		ctx := context.Background()
		summaries, defaultDir, err := collectSummaries(ctx, inputs, *dbPath, *specPath)
		if err != nil {
			fmt.Fprintf(stderr, "Report failed: %v\n", err)
			return ExitError
		}
		if len(summaries) == 0 {
			fmt.Fprintln(stderr, "Report failed: no runs found")
			return ExitError
		}

		fmt.Fprintln(stdout, report.ComparisonTable(summaries, *noColor))
		reportPath := *outputPath
		if reportPath == "" {
			reportPath = filepath.Join(defaultDir, comparisonFileName)
		}
		if err := report.WriteComparisonHTML(ctx, reportPath, summaries); err != nil {
			fmt.Fprintf(stderr, "Report failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Report written to %s\n", reportPath)
		return ExitOK
	}
}

// collectSummaries loads summaries from explicit files, a database, or the
// project's latest results, and returns the default directory for the report.
func collectSummaries(ctx context.Context, inputs []string, dbPath, specPath string) ([]runner.RunSummary, string, error) {
	switch {
	case len(inputs) > 0:
		summaries, err := report.LoadSummaries(inputs)
		if err != nil {
			return nil, "", err
		}
		wd, err := os.Getwd()
		if err != nil {
			return nil, "", err
		}
		return summaries, wd, nil
	case dbPath != "":
		if _, err := os.Stat(dbPath); err != nil {
			return nil, "", fmt.Errorf("database not found: %w", err)
		}
		store, err := openStore(ctx, dbPath)
		if err != nil {
			return nil, "", err
		}
		defer func() { _ = store.Close() }()
		summaries, err := store.LatestSummaries(ctx)
		if err != nil {
			return nil, "", err
		}
		return summaries, filepath.Dir(dbPath), nil
	default:
		proj, err := loadProject(specPath)
		if err != nil {
			return nil, "", err
		}
		dir := proj.outputDir("")
		paths, err := report.FindLatest(dir)
		if err != nil {
			return nil, "", err
		}
		summaries, err := report.LoadSummaries(paths)
		if err != nil {
			return nil, "", err
		}
		return summaries, dir, nil
	}
}
