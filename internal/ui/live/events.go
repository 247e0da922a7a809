package live

import "toolbench/internal/runner"

// Event is a state transition queued by the Controller and applied on
// the Bubble Tea goroutine.
type Event interface {
	apply(State) State
}

// runStarted resets the rows for the next model in a run.
type runStarted struct {
	runID string
	model string
	total int
}

func (e runStarted) apply(s State) State { return StartRun(s, e.runID, e.model, e.total) }

// caseUpdated carries one case lifecycle event.
type caseUpdated struct {
	event runner.CaseEvent
}

func (e caseUpdated) apply(s State) State { return Reduce(s, e.event) }

// runFinished appends a model summary to the completed list.
type runFinished struct {
	summary runner.RunSummary
}

func (e runFinished) apply(s State) State { return FinishRun(s, e.summary) }
