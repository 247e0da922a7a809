package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"toolbench/internal/runner"
)

// LoadResults reads a results.json (or latest.json) artifact.
func LoadResults(path string) (runner.Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return runner.Results{}, err
	}
	var results runner.Results
	if err := json.Unmarshal(data, &results); err != nil {
		return runner.Results{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if results.StartedAt.IsZero() {
		if started, ok := runner.RunIDTime(results.RunID); ok {
			results.StartedAt = started
		}
	}
	return results, nil
}

// LoadSummaries reads each artifact and returns its summary in order.
func LoadSummaries(paths []string) ([]runner.RunSummary, error) {
	summaries := make([]runner.RunSummary, 0, len(paths))
	for _, path := range paths {
		results, err := LoadResults(path)
		if err != nil {
			return nil, err
		}
		summary := results.Summary
		if summary.Model == "" {
			summary.Model = results.Model
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// FindLatest returns every <model>/latest.json under outputDir, sorted by path.
func FindLatest(outputDir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(outputDir, "*", "latest.json"))
	if err != nil {
		return nil, fmt.Errorf("find latest results: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}
