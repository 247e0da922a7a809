package runner

import "toolbench/internal/eval"

// CaseStatus is the terminal outcome of one benchmark case.
type CaseStatus string

const (
	// StatusOK is the initial value before a case resolves. It never appears in results.
	StatusOK CaseStatus = "ok"
	// StatusRouterFail marks a router protocol or generation failure.
	StatusRouterFail CaseStatus = "router_fail"
	// StatusClarify marks a router clarify decision.
	StatusClarify CaseStatus = "clarify"
	// StatusNone marks a router no-tool decision.
	StatusNone CaseStatus = "none"
	// StatusExecutorFail marks an executor protocol or generation failure.
	StatusExecutorFail CaseStatus = "executor_fail"
	// StatusToolCallOK marks a schema-conformant tool call.
	StatusToolCallOK CaseStatus = "toolcall_ok"
)

// FailureKind separates model mistakes from backend trouble.
type FailureKind string

const (
	// FailureProtocol means the model answered but broke the output contract.
	FailureProtocol FailureKind = "protocol"
	// FailureTransport means the backend could not be reached or returned an error.
	FailureTransport FailureKind = "transport"
	// FailureTimeout means the per-call deadline elapsed.
	FailureTimeout FailureKind = "timeout"
)

// CaseResult is the scored record for one case under one model.
type CaseResult struct {
	Query        string      `json:"query"`
	ExpectedTool eval.ToolID `json:"expectedTool"`
	GotTool      eval.ToolID `json:"gotTool"`
	Status       CaseStatus  `json:"status"`
	RouterMs     int64       `json:"routerMs"`
	ExecMs       int64       `json:"execMs"`
	Reason       string      `json:"reason,omitempty"`
	FailureKind  FailureKind `json:"failureKind,omitempty"`
}

// JSONValid reports whether the router produced a well-formed decision.
func (r CaseResult) JSONValid() bool {
	return r.Status != StatusRouterFail
}

// SchemaValid reports whether the executor produced schema-conformant args.
func (r CaseResult) SchemaValid() bool {
	return r.Status == StatusToolCallOK
}

// StrictHit reports an exact tool match. A router failure is never a hit.
func (r CaseResult) StrictHit() bool {
	return r.Status != StatusRouterFail && r.GotTool == r.ExpectedTool
}

// AcceptableHit counts a clarify answer as acceptable.
func (r CaseResult) AcceptableHit() bool {
	return r.StrictHit() || r.GotTool == eval.ToolClarify
}

// resolveRouted applies a router decision to a pending case.
// It returns the tool to execute, or false when the case is already final.
func (r *CaseResult) resolveRouted(route RouteResult) (eval.ToolID, bool) {
	r.RouterMs = route.LatencyMs
	if route.Err != nil {
		r.Status = StatusRouterFail
		r.GotTool = eval.ToolNone
		r.Reason = route.Err.Error()
		r.FailureKind = route.FailureKind
		return "", false
	}
	switch route.Decision.Choice() {
	case eval.ChoiceClarify:
		r.Status = StatusClarify
		r.GotTool = eval.ToolClarify
		return "", false
	case eval.ChoiceNone:
		r.Status = StatusNone
		r.GotTool = eval.ToolNone
		return "", false
	default:
		r.GotTool = route.Decision.Tool()
		return route.Decision.Tool(), true
	}
}

// resolveExecuted applies an executor outcome to a routed case.
func (r *CaseResult) resolveExecuted(exec ExecuteResult) {
	r.ExecMs = exec.LatencyMs
	if exec.Err != nil {
		r.Status = StatusExecutorFail
		r.Reason = exec.Err.Error()
		r.FailureKind = exec.FailureKind
		return
	}
	r.Status = StatusToolCallOK
}
