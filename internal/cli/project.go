package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"toolbench/internal/config"
	"toolbench/internal/duckdb"
	"toolbench/internal/runner"
	"toolbench/internal/spec"
)

// project is a loaded config with its resolved locations.
type project struct {
	SpecPath string
	RepoRoot string
	Config   spec.Config
}

// loadProject resolves and loads the config file.
func loadProject(specPath string) (project, error) {
	resolved, err := config.Locate(specPath)
	if errors.Is(err, config.ErrConfigNotFound) {
		return project{}, fmt.Errorf("%w (run `toolbench init` to create one)", err)
	}
	if err != nil {
		return project{}, err
	}
	cfg, err := config.Load(resolved)
	if err != nil {
		return project{}, err
	}
	return project{
		SpecPath: resolved,
		RepoRoot: config.RepoRootFromConfigPath(resolved),
		Config:   cfg,
	}, nil
}

// outputDir returns the absolute results directory for the project.
func (p project) outputDir(override string) string {
	return runner.OutputDirFor(p.Config, p.RepoRoot, override)
}

// duckDBPath returns the configured analytics database path, or "".
func (p project) duckDBPath() string {
	return config.ResolvePath(p.RepoRoot, p.Config.DuckDB)
}

// parseCommandFlags parses flags and rejects positional arguments.
// It returns ok=false with the exit code when the command should stop.
func parseCommandFlags(cmd *Command, flags *flag.FlagSet, args []string, stdout, stderr io.Writer) (bool, int) {
	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			printCommandUsage(cmd, stdout)
			return false, ExitOK
		}
		fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
		printCommandUsage(cmd, stderr)
		return false, ExitUsage
	}
	if flags.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
		printCommandUsage(cmd, stderr)
		return false, ExitUsage
	}
	return true, ExitOK
}

// newFlagSet creates a flag set writing errors to stderr.
func newFlagSet(cmd *Command, stderr io.Writer) *flag.FlagSet {
	flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
	flags.SetOutput(stderr)
	return flags
}

// signalContext cancels on interrupt so an in-flight run stops between calls.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// runDependencies is a test seam for injecting providers and run ids.
var runDependencies = func() runner.RunDependencies {
	return runner.RunDependencies{}
}

// openStore is a test seam for opening the analytics database.
var openStore = duckdb.Open

// withStore attaches the DuckDB sink when the project configures one.
// The returned close function is always safe to call.
func withStore(ctx context.Context, p project, deps runner.RunDependencies) (runner.RunDependencies, func(), error) {
	path := p.duckDBPath()
	if path == "" {
		return deps, func() {}, nil
	}
	store, err := openStore(ctx, path)
	if err != nil {
		return deps, func() {}, err
	}
	deps.Sink = store
	return deps, func() { _ = store.Close() }, nil
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// splitModels parses a comma-separated model list.
func splitModels(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value == "" {
			continue
		}
		out = append(out, value)
	}
	return out
}
