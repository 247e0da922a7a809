package bench

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"toolbench/internal/eval"
)

// Case is one benchmark query and the tool it should resolve to.
type Case struct {
	Query        string      `json:"query" yaml:"query"`
	ExpectedTool eval.ToolID `json:"expectedTool" yaml:"expectedTool"`
}

// ToolSet reports which identifiers a corpus may expect.
type ToolSet interface {
	IsKnown(id eval.ToolID) bool
}

// LoadCases reads a corpus file. JSON and YAML corpora are both a top-level
// list of cases. Every expected tool must be known to tools.
func LoadCases(path string, tools ToolSet) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	var cases []Case
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		cases, err = parseYAML(data)
	default:
		cases, err = parseJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parse corpus %s: %w", path, err)
	}
	if err := validateCases(cases, tools); err != nil {
		return nil, fmt.Errorf("corpus %s: %w", path, err)
	}
	return cases, nil
}

func parseJSON(data []byte) ([]Case, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	var cases []Case
	if err := decoder.Decode(&cases); err != nil {
		return nil, err
	}
	if decoder.More() {
		return nil, fmt.Errorf("unexpected data after case list")
	}
	return cases, nil
}

func parseYAML(data []byte) ([]Case, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	var cases []Case
	if err := decoder.Decode(&cases); err != nil {
		return nil, err
	}
	return cases, nil
}

func validateCases(cases []Case, tools ToolSet) error {
	var problems []string
	for i, c := range cases {
		if strings.TrimSpace(c.Query) == "" {
			problems = append(problems, fmt.Sprintf("cases[%d].query: is required", i))
		}
		if c.ExpectedTool == "" {
			problems = append(problems, fmt.Sprintf("cases[%d].expectedTool: is required", i))
		} else if tools != nil && !tools.IsKnown(c.ExpectedTool) {
			problems = append(problems, fmt.Sprintf("cases[%d].expectedTool: unknown tool %q", i, c.ExpectedTool))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, "\n"))
	}
	return nil
}
