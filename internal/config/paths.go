package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	ConfigDirName    = ".toolbench"
	ConfigFileName   = "config.yml"
	DefaultOutputDir = "bench/results"
)

// ErrConfigNotFound is returned when no .toolbench/config.yml exists in a
// directory or any of its parents.
var ErrConfigNotFound = errors.New("config not found")

// ConfigPath returns <root>/.toolbench/config.yml.
func ConfigPath(root string) string {
	return filepath.Join(root, ConfigDirName, ConfigFileName)
}

// RepoRootFromConfigPath returns the directory holding .toolbench, or the
// config's own directory for a config stored elsewhere.
func RepoRootFromConfigPath(configPath string) string {
	dir := filepath.Dir(configPath)
	if filepath.Base(dir) == ConfigDirName {
		return filepath.Dir(dir)
	}
	return dir
}

// ResolvePath makes a config-relative path absolute against the repo root.
func ResolvePath(root, path string) string {
	path = strings.TrimSpace(path)
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// FindConfigPath walks from startDir (default: the working directory) to the
// filesystem root and returns the first .toolbench/config.yml. A .toolbench
// directory without a config stops the search with an error.
func FindConfigPath(startDir string) (string, error) {
	start := strings.TrimSpace(startDir)
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		start = wd
	}
	start, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory: %w", err)
	}

	for dir := start; ; dir = filepath.Dir(dir) {
		path, found, err := configIn(dir)
		if err != nil || found {
			return path, err
		}
		if filepath.Dir(dir) == dir {
			return "", fmt.Errorf("%w: no %s in %s or its parents", ErrConfigNotFound, filepath.Join(ConfigDirName, ConfigFileName), start)
		}
	}
}

// configIn checks dir for .toolbench/config.yml.
func configIn(dir string) (string, bool, error) {
	path := ConfigPath(dir)
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return "", false, fmt.Errorf("config path %q is a directory", path)
	case err == nil:
		return path, true, nil
	case !os.IsNotExist(err):
		return "", false, fmt.Errorf("stat config path %q: %w", path, err)
	}
	if info, err := os.Stat(filepath.Dir(path)); err == nil && info.IsDir() {
		return "", false, fmt.Errorf("found %q but %s is missing", filepath.Dir(path), ConfigFileName)
	}
	return "", false, nil
}
