package runner

import (
	"time"

	"toolbench/internal/eval"
)

// CaseEventType identifies a case status update for observers.
type CaseEventType string

const (
	// CaseStarted marks a case about to be routed.
	CaseStarted CaseEventType = "started"
	// CaseFinished marks a resolved case; Result is set.
	CaseFinished CaseEventType = "finished"
)

// CaseEvent carries a single status update for a case.
type CaseEvent struct {
	Model        string
	Index        int
	Query        string
	ExpectedTool eval.ToolID
	Type         CaseEventType
	Result       *CaseResult
	RouterRaw    string
	ExecRaw      string
	EmittedAt    time.Time
}

// RunObserver receives run lifecycle events for UI or logging.
type RunObserver interface {
	// OnRunStart signals the start of a model run.
	OnRunStart(runID string, model string, total int)
	// OnCaseEvent delivers a case status update.
	OnCaseEvent(event CaseEvent)
	// OnRunEnd signals run completion.
	OnRunEnd(results Results)
}

type noopObserver struct{}

func (noopObserver) OnRunStart(string, string, int) {}
func (noopObserver) OnCaseEvent(CaseEvent)          {}
func (noopObserver) OnRunEnd(Results)               {}

// MultiObserver fans events out to several observers in order.
type MultiObserver []RunObserver

func (m MultiObserver) OnRunStart(runID string, model string, total int) {
	for _, observer := range m {
		observer.OnRunStart(runID, model, total)
	}
}

func (m MultiObserver) OnCaseEvent(event CaseEvent) {
	for _, observer := range m {
		observer.OnCaseEvent(event)
	}
}

func (m MultiObserver) OnRunEnd(results Results) {
	for _, observer := range m {
		observer.OnRunEnd(results)
	}
}
