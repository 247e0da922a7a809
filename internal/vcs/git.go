// Package vcs reads git state for the checkout that holds benchmark inputs.
package vcs

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// Metadata identifies the checkout a run was executed from.
type Metadata struct {
	Commit string
	// Branch is empty for a detached HEAD.
	Branch string
	// Dirty is set when any watched input has uncommitted changes.
	Dirty bool
	// Changed lists the watched inputs with uncommitted changes, relative to the root.
	Changed []string
}

type gitRunner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

type execGitRunner struct{}

func (execGitRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("git %s: %s: %w", args[0], msg, err)
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return strings.TrimRight(stdout.String(), "\n"), nil
}

// Client runs git queries through an injectable runner.
type Client struct {
	runner gitRunner
}

// NewClient returns a client; a nil runner uses the git binary.
func NewClient(runner gitRunner) Client {
	if runner == nil {
		runner = execGitRunner{}
	}
	return Client{runner: runner}
}

var defaultClient = NewClient(nil)

// DiscoverRepoRoot returns the top-level directory of the checkout containing startDir.
func DiscoverRepoRoot(ctx context.Context, startDir string) (string, error) {
	return defaultClient.DiscoverRepoRoot(ctx, startDir)
}

// Discover returns the checkout containing startDir.
func Discover(ctx context.Context, startDir string) (Repo, error) {
	return defaultClient.Discover(ctx, startDir)
}

func (c Client) DiscoverRepoRoot(ctx context.Context, startDir string) (string, error) {
	dir := strings.TrimSpace(startDir)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		dir = wd
	}
	root, err := c.runner.Run(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("discover git root: %w", err)
	}
	return strings.TrimSpace(root), nil
}

func (c Client) Discover(ctx context.Context, startDir string) (Repo, error) {
	root, err := c.DiscoverRepoRoot(ctx, startDir)
	if err != nil {
		return Repo{}, err
	}
	return Repo{Root: root, runner: c.runner}, nil
}

// Repo is a discovered git checkout.
type Repo struct {
	Root   string
	runner gitRunner
}

// Metadata reads HEAD and the dirty state of inputs. With no inputs the whole
// checkout is inspected. Inputs outside the checkout are ignored.
func (r Repo) Metadata(ctx context.Context, inputs ...string) (Metadata, error) {
	if strings.TrimSpace(r.Root) == "" {
		return Metadata{}, fmt.Errorf("repo root is empty")
	}
	runner := r.runner
	if runner == nil {
		runner = execGitRunner{}
	}
	commit, err := runner.Run(ctx, r.Root, "rev-parse", "HEAD")
	if err != nil {
		return Metadata{}, fmt.Errorf("resolve HEAD: %w", err)
	}
	branch, err := runner.Run(ctx, r.Root, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return Metadata{}, fmt.Errorf("resolve branch: %w", err)
	}
	if branch = strings.TrimSpace(branch); branch == "HEAD" {
		branch = ""
	}

	args := []string{"status", "--porcelain"}
	watched := r.relativeInputs(inputs)
	if len(inputs) > 0 && len(watched) == 0 {
		return Metadata{Commit: strings.TrimSpace(commit), Branch: branch}, nil
	}
	if len(watched) > 0 {
		args = append(append(args, "--"), watched...)
	}
	status, err := runner.Run(ctx, r.Root, args...)
	if err != nil {
		return Metadata{}, fmt.Errorf("check dirty state: %w", err)
	}
	changed := parsePorcelain(status)
	return Metadata{
		Commit:  strings.TrimSpace(commit),
		Branch:  branch,
		Dirty:   len(changed) > 0,
		Changed: changed,
	}, nil
}

// relativeInputs maps inputs to sorted, de-duplicated slash paths under the root.
func (r Repo) relativeInputs(inputs []string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, input := range inputs {
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if !filepath.IsAbs(input) {
			input = filepath.Join(r.Root, input)
		}
		rel, err := filepath.Rel(r.Root, input)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		rel = filepath.ToSlash(rel)
		if _, ok := seen[rel]; ok {
			continue
		}
		seen[rel] = struct{}{}
		out = append(out, rel)
	}
	sort.Strings(out)
	return out
}

// parsePorcelain returns the paths named by `git status --porcelain` output.
func parsePorcelain(status string) []string {
	var paths []string
	for _, line := range strings.Split(status, "\n") {
		if len(line) < 4 {
			continue
		}
		path := line[3:]
		if idx := strings.Index(path, " -> "); idx >= 0 {
			path = path[idx+4:]
		}
		paths = append(paths, strings.Trim(path, `"`))
	}
	return paths
}
