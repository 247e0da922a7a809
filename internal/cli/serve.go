package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"toolbench/internal/reportserver"
)

// serveReport is a test seam for running the report server.
var serveReport = reportserver.Serve

// runServe builds the handler for the serve command.
func runServe(cmd *Command) Handler {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := newFlagSet(cmd, stderr)
		addr := flags.String("addr", "127.0.0.1:5000", "Address to listen on")
		specPath := flags.String("spec", "", "Path to config file (default: search for .toolbench/config.yml)")
		resultsDir := flags.String("results-dir", "", "Results directory (default: output_dir from config)")
		if ok, code := parseCommandFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if *addr == "" {
			fmt.Fprintln(stderr, "Missing --addr")
			return ExitUsage
		}

		cfg := reportserver.Config{Addr: *addr}
		if *resultsDir != "" {
			abs, err := filepath.Abs(*resultsDir)
			if err != nil {
				fmt.Fprintf(stderr, "Serve failed: %v\n", err)
				return ExitError
			}
			cfg.ResultsDir = abs
		} else {
			proj, err := loadProject(*specPath)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
				return ExitError
			}
			cfg.ResultsDir = proj.outputDir("")
			cfg.DBPath = proj.duckDBPath()
		}
		if info, err := os.Stat(cfg.ResultsDir); err != nil || !info.IsDir() {
			fmt.Fprintf(stderr, "Results directory not found: %s\n", cfg.ResultsDir)
			return ExitError
		}

		ctx, stop := signalContext()
		defer stop()

		cfg.OnListen = func(addr string) {
			fmt.Fprintf(stdout, "Serving results at http://%s\n", addr)
		}
		if err := serveReport(ctx, cfg); err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
