package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"toolbench/internal/config"
	"toolbench/internal/vcs"
)

// runInit builds the handler for the init command.
func runInit(cmd *Command) Handler {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := newFlagSet(cmd, stderr)
		specPath := flags.String("spec", "", "Path to config file (default: .toolbench/config.yml under the git root)")
		if ok, code := parseCommandFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}

		fail := func(err error) int {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}

		target, err := resolveInitTarget(*specPath)
		if err != nil {
			return fail(err)
		}
		if err := ensureNoConfig(target.specPath); err != nil {
			return fail(err)
		}

		ask := newPrompter(initInput, stdout)
		proceed, err := ask.confirm(fmt.Sprintf("Initialize toolbench in %s?", target.projectRoot), true)
		if err != nil {
			return fail(err)
		}
		if !proceed {
			fmt.Fprintln(stderr, "Init cancelled.")
			return ExitError
		}
		outputDir, err := ask.ask("Results folder", config.DefaultOutputDir)
		if err != nil {
			return fail(err)
		}
		ignore := false
		if target.gitRoot != "" {
			if ignore, err = ask.confirm("Add results folder to .gitignore?", true); err != nil {
				return fail(err)
			}
		}

		if err := config.Scaffold(target.specPath, outputDir); err != nil {
			return fail(err)
		}
		fmt.Fprintf(stdout, "Wrote %s\n", target.specPath)
		fmt.Fprintf(stdout, "Wrote prompts, corpus, and schemas under %s\n", target.projectRoot)

		if !ignore {
			return ExitOK
		}
		resultsDir := outputDir
		if !filepath.IsAbs(resultsDir) {
			resultsDir = filepath.Join(target.projectRoot, resultsDir)
		}
		updated, err := ignoreResultsDir(target.gitRoot, resultsDir)
		if err != nil {
			return fail(fmt.Errorf("update .gitignore: %w", err))
		}
		if updated {
			fmt.Fprintf(stdout, "Updated %s\n", filepath.Join(target.gitRoot, ".gitignore"))
		}
		return ExitOK
	}
}

// initTarget locates where init writes its files.
type initTarget struct {
	specPath    string
	projectRoot string
	// gitRoot is empty outside a git work tree.
	gitRoot string
}

// resolveInitTarget picks the config path from --spec, defaulting to
// .toolbench/config.yml under the git root or the working directory.
func resolveInitTarget(specArg string) (initTarget, error) {
	var target initTarget
	if specArg = strings.TrimSpace(specArg); specArg != "" {
		abs, err := filepath.Abs(specArg)
		if err != nil {
			return target, err
		}
		target.specPath = abs
		target.gitRoot = discoverGitRoot(config.RepoRootFromConfigPath(abs))
	} else {
		target.gitRoot = discoverGitRoot("")
		base := target.gitRoot
		if base == "" {
			wd, err := os.Getwd()
			if err != nil {
				return target, err
			}
			base = wd
		}
		target.specPath = config.ConfigPath(base)
	}
	target.projectRoot = config.RepoRootFromConfigPath(target.specPath)
	return target, nil
}

// ensureNoConfig refuses to overwrite an existing config.
func ensureNoConfig(path string) error {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return fmt.Errorf("spec path %q is a directory", path)
	case err == nil:
		return fmt.Errorf("spec file already exists at %q", path)
	case os.IsNotExist(err):
		return nil
	default:
		return fmt.Errorf("stat spec file: %w", err)
	}
}

// initInput allows tests to override stdin for init prompts.
var initInput io.Reader = os.Stdin

// discoverGitRoot returns the git root or empty when not found.
var discoverGitRoot = func(startDir string) string {
	root, err := vcs.DiscoverRepoRoot(context.Background(), startDir)
	if err != nil {
		return ""
	}
	return root
}
