package runner

import (
	"context"
	"fmt"

	"toolbench/internal/eval"
)

// ExecuteResult is the executor stage outcome for one routed query.
type ExecuteResult struct {
	Call        eval.ToolCall
	Raw         string
	LatencyMs   int64
	Err         error
	FailureKind FailureKind
}

// Execute asks the model for arguments to tool and validates them against its schema.
func (h *Harness) Execute(ctx context.Context, query string, tool eval.ToolID, model string) ExecuteResult {
	if h.Registry == nil {
		return ExecuteResult{Err: fmt.Errorf("executor has no schema registry"), FailureKind: FailureProtocol}
	}
	schema, err := h.Registry.PrettySchema(tool)
	if err != nil {
		return ExecuteResult{Err: err, FailureKind: FailureProtocol}
	}
	raw, latency, err := h.generate(ctx, model, h.Prompts.ExecutorPrompt(query, string(tool), schema))
	result := ExecuteResult{Raw: raw, LatencyMs: latency}
	if err != nil {
		result.Err, result.FailureKind = generationFailure(eval.StageExecutor, err)
		return result
	}
	call, err := eval.DecodeToolCall(raw, tool, h.Registry)
	if err != nil {
		result.Err = err
		result.FailureKind = FailureProtocol
		return result
	}
	result.Call = call
	return result
}
