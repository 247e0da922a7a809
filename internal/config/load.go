package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"toolbench/internal/spec"
)

// Locate turns a --spec argument into a config file path. An empty argument
// searches upward from the working directory; a directory searches upward
// from there; anything else is taken as the config file itself.
func Locate(specArg string) (string, error) {
	specArg = strings.TrimSpace(specArg)
	if specArg == "" {
		return FindConfigPath("")
	}
	abs, err := filepath.Abs(specArg)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		return FindConfigPath(abs)
	}
	return abs, nil
}

// Load reads the config file, fills defaults, and validates it against the
// repo root that holds the .toolbench directory.
func Load(path string) (spec.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return spec.Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := spec.ParseConfig(data)
	if err != nil {
		return spec.Config{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	Normalize(&cfg)
	if err := Validate(&cfg, RepoRootFromConfigPath(path)); err != nil {
		return spec.Config{}, err
	}
	return cfg, nil
}
