package runner

import (
	"context"
	"time"

	"toolbench/internal/agent"
	"toolbench/internal/spec"
	"toolbench/internal/vcs"
)

// ProviderFactory builds the generation provider for a backend config.
type ProviderFactory func(backend spec.BackendConfig) (agent.Provider, error)

// ResultsSink receives every completed model run, for example an analytics store.
type ResultsSink interface {
	Ingest(ctx context.Context, results Results) error
}

// RunDependencies holds injectable collaborators for runs.
type RunDependencies struct {
	ProviderFactory ProviderFactory
	RunID           func() (string, error)
	Now             func() time.Time
	Sink            ResultsSink
	// RepoMetadata reads git state of the suite inputs under root. Errors
	// leave Results.Repo unset.
	RepoMetadata func(ctx context.Context, root string, inputs []string) (vcs.Metadata, error)
}

// RunParams configures a single-model run or a comparison.
type RunParams struct {
	RepoRoot  string
	OutputDir string
	// Model overrides the configured default model for Run.
	Model string
	// Models overrides the configured model list for Compare.
	Models   []string
	Observer RunObserver
	Deps     RunDependencies
}

// ModelRun is one model's entry in a comparison.
type ModelRun struct {
	Model   string
	Results Results
	Paths   OutputPaths
	Err     error
}

// Summary returns the run summary, or a failed placeholder when the run did not complete.
func (m ModelRun) Summary() RunSummary {
	if m.Err != nil {
		return FailedSummary(m.Model)
	}
	return m.Results.Summary
}

// Comparison holds every model run of a compare, in configured order.
type Comparison struct {
	Runs []ModelRun
}

// Summaries returns one summary per model in run order.
func (c Comparison) Summaries() []RunSummary {
	summaries := make([]RunSummary, 0, len(c.Runs))
	for _, run := range c.Runs {
		summaries = append(summaries, run.Summary())
	}
	return summaries
}
