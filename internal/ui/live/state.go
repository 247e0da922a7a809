package live

import (
	"time"

	"toolbench/internal/eval"
	"toolbench/internal/runner"
)

// rowPhase is the display phase of a case row.
type rowPhase string

const (
	phaseQueued  rowPhase = "queued"
	phaseRunning rowPhase = "running"
	phaseDone    rowPhase = "done"
)

// CaseRow holds UI state for a single case.
type CaseRow struct {
	Index      int
	Query      string
	Expected   eval.ToolID
	Phase      rowPhase
	Result     runner.CaseResult
	StartedAt  time.Time
	FinishedAt time.Time
}

// StatusCounts aggregates counts by outcome.
type StatusCounts struct {
	Queued       int
	Running      int
	Done         int
	ToolCallOK   int
	ExecutorFail int
	RouterFail   int
	Clarify      int
	None         int
	StrictHits   int
}

// State captures the live UI state for a model run.
type State struct {
	RunID     string
	Model     string
	StartedAt time.Time
	LastEvent string
	Completed []runner.RunSummary
	Rows      []CaseRow
	Counts    StatusCounts
}
