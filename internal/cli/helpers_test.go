package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"toolbench/internal/agent"
	"toolbench/internal/config"
	"toolbench/internal/runner"
	"toolbench/internal/spec"
	"toolbench/internal/vcs"
)

// stubProvider answers every router prompt with "none" and fails broken models.
type stubProvider struct {
	broken map[string]bool
}

func (p stubProvider) Name() string { return "stub" }

func (p stubProvider) Generate(_ context.Context, req agent.GenerateRequest) (string, error) {
	if p.broken[req.Model] {
		return "", &agent.TransportError{Provider: "stub", Kind: agent.TransportUnreachable, Err: os.ErrNotExist}
	}
	return `{"choice":"none","tool":null,"question":null}`, nil
}

// useStubDeps routes runs through provider and restores the seam after the test.
func useStubDeps(t *testing.T, provider agent.Provider) {
	t.Helper()
	original := runDependencies
	counter := 0
	runDependencies = func() runner.RunDependencies {
		return runner.RunDependencies{
			ProviderFactory: func(spec.BackendConfig) (agent.Provider, error) { return provider, nil },
			RunID: func() (string, error) {
				counter++
				return "run-" + string(rune('0'+counter)), nil
			},
			Now: func() time.Time { return time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC) },
			RepoMetadata: func(context.Context, string, []string) (vcs.Metadata, error) {
				return vcs.Metadata{}, os.ErrNotExist
			},
		}
	}
	t.Cleanup(func() { runDependencies = original })
}

// scaffoldProject writes a starter project and returns its root and config path.
func scaffoldProject(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()
	specPath := config.ConfigPath(root)
	if err := config.Scaffold(specPath, ""); err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	return root, specPath
}

// editConfig rewrites one line of the scaffolded config.
func editConfig(t *testing.T, specPath, old, replacement string) {
	t.Helper()
	data, err := os.ReadFile(specPath)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	updated := strings.Replace(string(data), old, replacement, 1)
	if updated == string(data) {
		t.Fatalf("config does not contain %q", old)
	}
	if err := os.WriteFile(specPath, []byte(updated), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// mustExist fails when path is missing.
func mustExist(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s to exist: %v", filepath.Base(path), err)
	}
}
