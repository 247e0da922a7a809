package spec

import (
	"errors"
	"strings"
	"testing"
)

// TestParseConfigValid verifies valid config parsing succeeds.
func TestParseConfigValid(t *testing.T) {
	data := []byte(`version: 1
backend:
  provider: ollama
  temperature: 0.1
  timeout_seconds: 60
models: ["qwen2.5:7b", "llama3.1:8b"]
default_model: "qwen2.5:7b"
prompts:
  router: prompts/router.prompt.txt
  executor: prompts/executor.prompt.txt
corpus: bench/cases.json
output_dir: bench/results
tools:
  - name: item_lookup
    schema: schemas/item_lookup.json
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if len(cfg.Models) != 2 || cfg.Backend.TimeoutSeconds != 60 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if len(cfg.Tools) != 1 || cfg.Tools[0].Schema != "schemas/item_lookup.json" {
		t.Fatalf("unexpected tools %+v", cfg.Tools)
	}
}

// TestParseConfigUnknownField verifies unknown fields are rejected.
func TestParseConfigUnknownField(t *testing.T) {
	data := []byte(`version: 1
corpus: bench/cases.json
unknown: true
`)
	if _, err := ParseConfig(data); err == nil {
		t.Fatalf("expected parse error for unknown field")
	}
}

// TestParseConfigRejectsMultipleDocs verifies multiple YAML docs are rejected.
func TestParseConfigRejectsMultipleDocs(t *testing.T) {
	data := []byte("version: 1\n---\nversion: 1\n")
	_, err := ParseConfig(data)
	if err == nil || !strings.Contains(err.Error(), "second YAML document") {
		t.Fatalf("expected multiple document error, got %v", err)
	}
}

// TestParseConfigEmpty verifies an empty file is reported as such.
func TestParseConfigEmpty(t *testing.T) {
	for _, data := range []string{"", "\n"} {
		if _, err := ParseConfig([]byte(data)); !errors.Is(err, ErrEmptyConfig) {
			t.Fatalf("expected ErrEmptyConfig for %q, got %v", data, err)
		}
	}
}
