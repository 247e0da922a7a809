package runner

import (
	"fmt"
	"path/filepath"
	"strings"
)

// OutputPaths describes filesystem locations for run outputs.
type OutputPaths struct {
	Root  string
	Model string
	RunID string
}

// NewOutputPaths validates and constructs output paths metadata.
func NewOutputPaths(root, model, runID string) (OutputPaths, error) {
	if strings.TrimSpace(root) == "" {
		return OutputPaths{}, fmt.Errorf("output root is empty")
	}
	if strings.TrimSpace(model) == "" {
		return OutputPaths{}, fmt.Errorf("model is empty")
	}
	if strings.TrimSpace(runID) == "" {
		return OutputPaths{}, fmt.Errorf("run ID is empty")
	}
	return OutputPaths{
		Root:  root,
		Model: model,
		RunID: runID,
	}, nil
}

// ModelDir returns the directory holding every run of the model.
func (o OutputPaths) ModelDir() string {
	return filepath.Join(o.Root, ModelDirName(o.Model))
}

// RunDir returns the directory for a specific run.
func (o OutputPaths) RunDir() string {
	return filepath.Join(o.ModelDir(), o.RunID)
}

// ResultsPath returns the path to results.json.
func (o OutputPaths) ResultsPath() string {
	return filepath.Join(o.RunDir(), "results.json")
}

// ReportPath returns the path to the HTML report.
func (o OutputPaths) ReportPath() string {
	return filepath.Join(o.RunDir(), "report.html")
}

// LatestPath returns the path to the model's most recent results.
func (o OutputPaths) LatestPath() string {
	return filepath.Join(o.ModelDir(), "latest.json")
}

// ModelDirName maps a model id such as "qwen2.5:7b" to a safe directory name.
func ModelDirName(model string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, strings.TrimSpace(model))
}
