package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteRunOutputs writes results.json and report.html into the run directory,
// then replaces the model's latest.json. Each file is written to a temporary
// name and renamed, so readers such as the report server never see a partial file.
func WriteRunOutputs(ctx context.Context, results Results, outputDir string) (OutputPaths, error) {
	if outputDir == "" {
		return OutputPaths{}, fmt.Errorf("output directory is required")
	}
	paths, err := NewOutputPaths(outputDir, results.Model, results.RunID)
	if err != nil {
		return OutputPaths{}, err
	}
	if err := os.MkdirAll(paths.RunDir(), 0o755); err != nil {
		return OutputPaths{}, fmt.Errorf("create output dir: %w", err)
	}

	payload, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return OutputPaths{}, fmt.Errorf("marshal results: %w", err)
	}
	payload = append(payload, '\n')
	html, err := renderRunReportHTML(ctx, results)
	if err != nil {
		return OutputPaths{}, fmt.Errorf("render report: %w", err)
	}

	for _, file := range []struct {
		path string
		data []byte
	}{
		{paths.ResultsPath(), payload},
		{paths.ReportPath(), []byte(html)},
		{paths.LatestPath(), payload},
	} {
		if err := writeFileAtomic(file.path, file.data); err != nil {
			return OutputPaths{}, err
		}
	}
	return paths, nil
}

// writeFileAtomic writes data next to path and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	cleanup := func() { _ = os.Remove(tmp.Name()) }
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		cleanup()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		cleanup()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
