package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"toolbench/internal/spec"
)

// Run evaluates one model over the configured corpus.
func Run(ctx context.Context, cfg spec.Config, params RunParams) (Results, error) {
	repoRoot, err := resolveRepoRoot(params.RepoRoot)
	if err != nil {
		return Results{}, err
	}
	suite, err := LoadSuite(cfg, repoRoot)
	if err != nil {
		return Results{}, err
	}
	harness, err := newHarness(cfg, suite, params)
	if err != nil {
		return Results{}, err
	}
	model, err := selectModel(cfg, params.Model)
	if err != nil {
		return Results{}, err
	}
	runID, err := ensureRunID(params.Deps)
	if err != nil {
		return Results{}, err
	}
	results, err := harness.RunModel(ctx, runID, model, suite.Cases)
	if err != nil {
		return Results{}, err
	}
	results.Repo = repoMetadata(ctx, params.Deps, repoRoot, suite.Inputs)
	return results, nil
}

// RunAndWrite runs one model, writes its outputs, and hands results to the sink.
func RunAndWrite(ctx context.Context, cfg spec.Config, params RunParams) (Results, OutputPaths, error) {
	repoRoot, err := resolveRepoRoot(params.RepoRoot)
	if err != nil {
		return Results{}, OutputPaths{}, err
	}
	params.RepoRoot = repoRoot
	results, err := Run(ctx, cfg, params)
	if err != nil {
		return Results{}, OutputPaths{}, err
	}
	paths, err := persist(ctx, cfg, params, results)
	if err != nil {
		return results, paths, err
	}
	return results, paths, nil
}

// Compare runs every model in order. A model that cannot complete becomes a
// failed entry and the remaining models still run. Loading failures and
// context cancellation abort the whole comparison.
func Compare(ctx context.Context, cfg spec.Config, params RunParams) (Comparison, error) {
	repoRoot, err := resolveRepoRoot(params.RepoRoot)
	if err != nil {
		return Comparison{}, err
	}
	params.RepoRoot = repoRoot
	suite, err := LoadSuite(cfg, repoRoot)
	if err != nil {
		return Comparison{}, err
	}
	harness, err := newHarness(cfg, suite, params)
	if err != nil {
		return Comparison{}, err
	}
	models := params.Models
	if len(models) == 0 {
		models = cfg.Models
	}
	if len(models) == 0 {
		return Comparison{}, fmt.Errorf("no models to compare")
	}

	comparison := Comparison{Runs: make([]ModelRun, 0, len(models))}
	for _, model := range models {
		run := ModelRun{Model: model}
		run.Results, run.Paths, run.Err = compareModel(ctx, cfg, params, harness, model, suite)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return comparison, ctxErr
		}
		comparison.Runs = append(comparison.Runs, run)
	}
	return comparison, nil
}

// ErrModelUnavailable marks a model run in which no case reached the model.
var ErrModelUnavailable = errors.New("model unavailable")

func compareModel(ctx context.Context, cfg spec.Config, params RunParams, harness *Harness, model string, suite Suite) (Results, OutputPaths, error) {
	runID, err := ensureRunID(params.Deps)
	if err != nil {
		return Results{}, OutputPaths{}, err
	}
	results, err := harness.RunModel(ctx, runID, model, suite.Cases)
	if err != nil {
		return Results{}, OutputPaths{}, err
	}
	results.Repo = repoMetadata(ctx, params.Deps, params.RepoRoot, suite.Inputs)
	if reason, unavailable := allCasesUnreachable(results.Results); unavailable {
		return results, OutputPaths{}, fmt.Errorf("%w: %s", ErrModelUnavailable, reason)
	}
	paths, err := persist(ctx, cfg, params, results)
	if err != nil {
		return results, paths, err
	}
	return results, paths, nil
}

// allCasesUnreachable reports whether every case failed before the model answered.
func allCasesUnreachable(results []CaseResult) (string, bool) {
	if len(results) == 0 {
		return "", false
	}
	for _, result := range results {
		if result.FailureKind != FailureTransport && result.FailureKind != FailureTimeout {
			return "", false
		}
	}
	return results[0].Reason, true
}

func persist(ctx context.Context, cfg spec.Config, params RunParams, results Results) (OutputPaths, error) {
	paths, err := WriteRunOutputs(ctx, results, OutputDirFor(cfg, params.RepoRoot, params.OutputDir))
	if err != nil {
		return OutputPaths{}, err
	}
	if params.Deps.Sink != nil {
		if err := params.Deps.Sink.Ingest(ctx, results); err != nil {
			return paths, fmt.Errorf("ingest results: %w", err)
		}
	}
	return paths, nil
}

func selectModel(cfg spec.Config, override string) (string, error) {
	if model := strings.TrimSpace(override); model != "" {
		return model, nil
	}
	if cfg.DefaultModel != "" {
		return cfg.DefaultModel, nil
	}
	if len(cfg.Models) > 0 {
		return cfg.Models[0], nil
	}
	return "", fmt.Errorf("no model selected")
}
