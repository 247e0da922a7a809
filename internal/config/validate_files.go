package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"toolbench/internal/eval"
	"toolbench/internal/spec"
)

// validateFiles checks that prompt templates and the corpus exist and that
// the optional DuckDB path is not a directory.
func validateFiles(cfg *spec.Config, baseDir string, add issueAdder) {
	requireFile(baseDir, "prompts.router", cfg.Prompts.Router, add)
	requireFile(baseDir, "prompts.executor", cfg.Prompts.Executor, add)
	if requireFile(baseDir, "corpus", cfg.Corpus, add) {
		switch strings.ToLower(filepath.Ext(cfg.Corpus)) {
		case ".json", ".yml", ".yaml":
		default:
			add("corpus", "must be a .json, .yml, or .yaml file")
		}
	}
	if path := strings.TrimSpace(cfg.DuckDB); path != "" {
		if info, err := os.Stat(ResolvePath(baseDir, path)); err == nil && info.IsDir() {
			add("duckdb", fmt.Sprintf("%q is a directory", path))
		}
	}
}

// validateTools checks tool names and their schema files.
func validateTools(tools []spec.ToolConfig, baseDir string, add issueAdder) {
	names := map[string]struct{}{}
	for i, tool := range tools {
		addTool := within(add, "tools[%d]", i)
		switch {
		case tool.Name == "":
			addTool("name", "is required")
		case eval.ToolID(tool.Name).IsSentinel():
			addTool("name", fmt.Sprintf("%q is reserved", tool.Name))
		default:
			if _, exists := names[tool.Name]; exists {
				add("tools.name", fmt.Sprintf("duplicate name %q", tool.Name))
			}
			names[tool.Name] = struct{}{}
		}
		requireFile(baseDir, "schema", tool.Schema, addTool)
	}
}

// requireFile records an issue unless path names an existing regular file.
func requireFile(baseDir, field, path string, add issueAdder) bool {
	if strings.TrimSpace(path) == "" {
		add(field, "is required")
		return false
	}
	resolved := ResolvePath(baseDir, path)
	info, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			add(field, fmt.Sprintf("file %q does not exist", path))
		} else {
			add(field, fmt.Sprintf("stat %q: %v", path, err))
		}
		return false
	}
	if info.IsDir() {
		add(field, fmt.Sprintf("%q is a directory", path))
		return false
	}
	return true
}
