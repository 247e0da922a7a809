package runner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"toolbench/internal/spec"
	"toolbench/internal/vcs"
)

// resolveRepoRoot defaults the repo root to the working directory.
func resolveRepoRoot(repoRoot string) (string, error) {
	if strings.TrimSpace(repoRoot) == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		repoRoot = wd
	}
	return filepath.Abs(repoRoot)
}

// resolveOutputDir resolves relative output paths against the repo root.
func resolveOutputDir(repoRoot, outputDir string) string {
	if outputDir == "" || filepath.IsAbs(outputDir) {
		return outputDir
	}
	return filepath.Join(repoRoot, outputDir)
}

// OutputDirFor returns the absolute results directory, preferring override
// over the configured output_dir.
func OutputDirFor(cfg spec.Config, repoRoot, override string) string {
	outputDir := strings.TrimSpace(override)
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	return resolveOutputDir(repoRoot, outputDir)
}

// ensureRunID uses the injected generator, or stamps a new id with the run clock.
func ensureRunID(deps RunDependencies) (string, error) {
	if deps.RunID != nil {
		return deps.RunID()
	}
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	return NewRunID(now())
}

// repoMetadata reads git state through vcs unless a test overrides it.
func repoMetadata(ctx context.Context, deps RunDependencies, root string, inputs []string) *RepoInfo {
	read := deps.RepoMetadata
	if read == nil {
		read = func(ctx context.Context, root string, inputs []string) (vcs.Metadata, error) {
			repo, err := vcs.Discover(ctx, root)
			if err != nil {
				return vcs.Metadata{}, err
			}
			return repo.Metadata(ctx, inputs...)
		}
	}
	meta, err := read(ctx, root, inputs)
	if err != nil {
		return nil
	}
	return &RepoInfo{Commit: meta.Commit, Branch: meta.Branch, Dirty: meta.Dirty}
}
