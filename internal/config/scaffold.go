package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"toolbench/internal/eval"
)

const defaultConfig = `version: 1
backend:
  provider: ollama
  base_url: ""
  temperature: 0.1
  timeout_seconds: 120
  requests_per_second: 0

models:
  - "qwen2.5:7b"
  - "qwen2.5:14b"
  - "llama3.1:8b"
default_model: "qwen2.5:14b"

prompts:
  router: prompts/router.prompt.txt
  executor: prompts/executor.prompt.txt

corpus: bench/cases.json
output_dir: %s
duckdb: ""

tools:
  - name: item_lookup
    schema: schemas/item_lookup.json
  - name: perk_lookup
    schema: schemas/perk_lookup.json
  - name: activity_lookup
    schema: schemas/activity_lookup.json
`

const defaultRouterPrompt = `You route user queries to tools. Reply with a single JSON object and nothing else.

Tools:
- item_lookup: find items by name or description.
- perk_lookup: look up a perk by its exact name.
- activity_lookup: look up an activity by its exact name.

Reply with one of:
{"choice":"call_tool","tool":"<tool name>","question":null}
{"choice":"clarify","tool":null,"question":"<one short question>"}
{"choice":"none","tool":null,"question":null}

Use clarify when the query is too vague to pick a tool. Use none when no tool applies.`

const defaultExecutorPrompt = `You fill in arguments for a tool call. Reply with a single JSON object and nothing else:
{"tool":"<tool name>","args":{...}}

The args object must match the JSON schema below exactly. Do not add properties the schema does not list.`

const defaultCorpus = `[
  { "query": "find me a sword that does fire damage", "expectedTool": "item_lookup" },
  { "query": "what does the perk Second Wind do?", "expectedTool": "perk_lookup" },
  { "query": "how do I start the Night Market activity", "expectedTool": "activity_lookup" },
  { "query": "show me two healing potions", "expectedTool": "item_lookup" },
  { "query": "help", "expectedTool": "clarify" },
  { "query": "what's the weather like today?", "expectedTool": "none" }
]
`

// Scaffold writes a starter config, prompts, corpus, and tool schemas.
// specPath is the config file location; other files go under its repo root.
// An empty outputDir uses DefaultOutputDir.
func Scaffold(specPath, outputDir string) error {
	if specPath == "" {
		return fmt.Errorf("spec path is required")
	}
	if strings.TrimSpace(outputDir) == "" {
		outputDir = DefaultOutputDir
	}
	root := RepoRootFromConfigPath(specPath)

	files := []scaffoldFile{
		{path: specPath, content: fmt.Sprintf(defaultConfig, strconv.Quote(filepath.ToSlash(outputDir)))},
		{path: filepath.Join(root, "prompts", "router.prompt.txt"), content: defaultRouterPrompt},
		{path: filepath.Join(root, "prompts", "executor.prompt.txt"), content: defaultExecutorPrompt},
		{path: filepath.Join(root, "bench", "cases.json"), content: defaultCorpus},
	}
	for _, schema := range eval.DefaultToolSchemas() {
		files = append(files, scaffoldFile{
			path:    filepath.Join(root, "schemas", string(schema.Name)+".json"),
			content: string(schema.Document) + "\n",
		})
	}

	for _, file := range files {
		if err := ensureAbsent(file.path); err != nil {
			return err
		}
	}
	for _, file := range files {
		if err := os.MkdirAll(filepath.Dir(file.path), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", filepath.Dir(file.path), err)
		}
		if err := os.WriteFile(file.path, []byte(file.content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", file.path, err)
		}
	}
	return nil
}

type scaffoldFile struct {
	path    string
	content string
}

func ensureAbsent(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return fmt.Errorf("path %q is a directory", path)
		}
		return fmt.Errorf("file already exists at %q", path)
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	return nil
}
