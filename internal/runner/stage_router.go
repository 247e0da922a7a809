package runner

import (
	"context"

	"toolbench/internal/eval"
)

// RouteResult is the router stage outcome for one query.
type RouteResult struct {
	Decision    eval.RouterDecision
	Raw         string
	LatencyMs   int64
	Err         error
	FailureKind FailureKind
}

// Route asks the model which tool, if any, should answer query.
func (h *Harness) Route(ctx context.Context, query, model string) RouteResult {
	raw, latency, err := h.generate(ctx, model, h.Prompts.RouterPrompt(query))
	result := RouteResult{Raw: raw, LatencyMs: latency}
	if err != nil {
		result.Err, result.FailureKind = generationFailure(eval.StageRouter, err)
		return result
	}
	var tools eval.ToolChecker
	if h.Registry != nil {
		tools = h.Registry
	}
	decision, err := eval.DecodeRouterDecision(raw, tools)
	if err != nil {
		result.Err = err
		result.FailureKind = FailureProtocol
		return result
	}
	result.Decision = decision
	return result
}
