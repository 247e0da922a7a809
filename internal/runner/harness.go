package runner

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"toolbench/internal/agent"
	"toolbench/internal/bench"
	"toolbench/internal/eval"
	"toolbench/internal/prompt"
)

// DefaultCallTimeout bounds a single generation call.
const DefaultCallTimeout = 120 * time.Second

// Harness runs the router and executor stages for one provider.
type Harness struct {
	Provider    agent.Provider
	Prompts     prompt.Templates
	Registry    *eval.SchemaRegistry
	Temperature float64
	// Timeout bounds each generation call. Zero disables the per-call deadline.
	Timeout time.Duration
	// Limiter throttles generation calls. Time spent waiting on it is not
	// part of a stage's latency or its per-call deadline.
	Limiter  *rate.Limiter
	Now      func() time.Time
	Observer RunObserver
}

func (h *Harness) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// generate waits for a limiter turn, then calls the provider under the
// per-call deadline and reports the call's latency in ms.
func (h *Harness) generate(ctx context.Context, model, text string) (string, int64, error) {
	if err := agent.WaitTurn(ctx, h.Limiter, h.Provider.Name()); err != nil {
		return "", 0, err
	}
	callCtx := ctx
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}
	start := h.now()
	completion, err := h.Provider.Generate(callCtx, agent.GenerateRequest{
		Model:       model,
		Prompt:      text,
		Temperature: h.Temperature,
	})
	elapsed := h.now().Sub(start).Milliseconds()
	if elapsed < 0 {
		elapsed = 0
	}
	return completion, elapsed, err
}

// generationFailure classifies a provider error for a stage.
func generationFailure(stage eval.Stage, err error) (error, FailureKind) {
	kind := FailureTransport
	if agent.IsTimeout(err) {
		kind = FailureTimeout
	}
	return fmt.Errorf("%s generation failed: %w", stage, err), kind
}

// RunCase resolves one case through the router and, when a tool is chosen, the executor.
func (h *Harness) RunCase(ctx context.Context, model string, c bench.Case) CaseResult {
	result, _, _ := h.runCase(ctx, model, c)
	return result
}

func (h *Harness) runCase(ctx context.Context, model string, c bench.Case) (CaseResult, string, string) {
	result := CaseResult{
		Query:        c.Query,
		ExpectedTool: c.ExpectedTool,
		Status:       StatusOK,
	}
	route := h.Route(ctx, c.Query, model)
	tool, pending := result.resolveRouted(route)
	if !pending {
		return result, route.Raw, ""
	}
	exec := h.Execute(ctx, c.Query, tool, model)
	result.resolveExecuted(exec)
	return result, route.Raw, exec.Raw
}

// RunModel runs every case in order against model. Only context
// cancellation stops the run early.
func (h *Harness) RunModel(ctx context.Context, runID, model string, cases []bench.Case) (Results, error) {
	observer := h.Observer
	if observer == nil {
		observer = noopObserver{}
	}
	providerName := ""
	if h.Provider != nil {
		providerName = h.Provider.Name()
	}
	startedAt := h.now()
	observer.OnRunStart(runID, model, len(cases))

	caseResults := make([]CaseResult, 0, len(cases))
	for i, c := range cases {
		observer.OnCaseEvent(CaseEvent{
			Model:        model,
			Index:        i,
			Query:        c.Query,
			ExpectedTool: c.ExpectedTool,
			Type:         CaseStarted,
			EmittedAt:    h.now(),
		})
		result, routerRaw, execRaw := h.runCase(ctx, model, c)
		if err := ctx.Err(); err != nil {
			return Results{}, fmt.Errorf("run %s: %w", model, err)
		}
		caseResults = append(caseResults, result)
		observer.OnCaseEvent(CaseEvent{
			Model:        model,
			Index:        i,
			Query:        c.Query,
			ExpectedTool: c.ExpectedTool,
			Type:         CaseFinished,
			Result:       &result,
			RouterRaw:    routerRaw,
			ExecRaw:      execRaw,
			EmittedAt:    h.now(),
		})
	}

	results := Results{
		RunID:      runID,
		Model:      model,
		Provider:   providerName,
		StartedAt:  startedAt,
		FinishedAt: h.now(),
		Summary:    Summarize(model, caseResults),
		Results:    caseResults,
	}
	observer.OnRunEnd(results)
	return results, nil
}
