package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const gitignoreHeader = "# toolbench results"

// ignoreResultsDir adds an anchored directory pattern for resultsDir to the
// repo's .gitignore. It reports false when an equivalent pattern is present.
func ignoreResultsDir(repoRoot, resultsDir string) (bool, error) {
	rel, err := repoRelative(repoRoot, resultsDir)
	if err != nil {
		return false, err
	}

	path := filepath.Join(repoRoot, ".gitignore")
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("read .gitignore: %w", err)
	}
	for _, line := range strings.Split(string(existing), "\n") {
		if ignorePatternKey(line) == rel {
			return false, nil
		}
	}

	var b strings.Builder
	b.Write(existing)
	if len(existing) > 0 && !strings.HasSuffix(string(existing), "\n") {
		b.WriteString("\n")
	}
	if !strings.Contains(string(existing), gitignoreHeader) {
		b.WriteString(gitignoreHeader + "\n")
	}
	b.WriteString("/" + rel + "/\n")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return false, fmt.Errorf("write .gitignore: %w", err)
	}
	return true, nil
}

// repoRelative returns dir as a slash path under repoRoot.
func repoRelative(repoRoot, dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", fmt.Errorf("results folder is required")
	}
	clean := filepath.Clean(dir)
	if filepath.IsAbs(clean) {
		rel, err := filepath.Rel(repoRoot, clean)
		if err != nil {
			return "", fmt.Errorf("resolve results folder: %w", err)
		}
		clean = rel
	}
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("results folder %q is outside the repo root", dir)
	}
	return filepath.ToSlash(clean), nil
}

// ignorePatternKey normalizes "/a/b/", "a/b/", "/a/b" and "a/b" to "a/b".
func ignorePatternKey(line string) string {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
		return ""
	}
	return strings.Trim(line, "/")
}
