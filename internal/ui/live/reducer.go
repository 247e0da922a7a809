package live

import (
	"fmt"

	"toolbench/internal/runner"
)

// StartRun resets per-run rows for a new model.
func StartRun(state State, runID, model string, total int) State {
	state.RunID = runID
	state.Model = model
	state.LastEvent = ""
	state.Rows = make([]CaseRow, total)
	for i := range state.Rows {
		state.Rows[i] = CaseRow{Index: i, Phase: phaseQueued}
	}
	state.Counts = recount(state.Rows)
	return state
}

// Reduce applies a case event to the UI state.
func Reduce(state State, event runner.CaseEvent) State {
	state = ensureRow(state, event.Index)
	if event.Index < 0 {
		return state
	}
	row := state.Rows[event.Index]
	row.Query = event.Query
	row.Expected = event.ExpectedTool
	switch event.Type {
	case runner.CaseStarted:
		row.Phase = phaseRunning
		row.StartedAt = event.EmittedAt
	case runner.CaseFinished:
		row.Phase = phaseDone
		row.FinishedAt = event.EmittedAt
		if event.Result != nil {
			row.Result = *event.Result
		}
	}
	state.Rows[event.Index] = row
	state.Counts = recount(state.Rows)
	if message := formatLastEvent(row); message != "" {
		state.LastEvent = message
	}
	return state
}

// FinishRun records a completed model summary.
func FinishRun(state State, summary runner.RunSummary) State {
	state.Completed = append(state.Completed, summary)
	state.LastEvent = fmt.Sprintf("%s finished: strict %s, accept %s", summary.Model,
		runner.FormatRate(summary.StrictToolAccuracyRate), runner.FormatRate(summary.AcceptableAccuracyRate))
	return state
}

// ensureRow grows the state rows to include the target index.
func ensureRow(state State, index int) State {
	if index < 0 || index < len(state.Rows) {
		return state
	}
	rows := make([]CaseRow, index+1)
	copy(rows, state.Rows)
	for i := len(state.Rows); i < len(rows); i++ {
		rows[i] = CaseRow{Index: i, Phase: phaseQueued}
	}
	state.Rows = rows
	return state
}

// recount recomputes status counts for the current rows.
func recount(rows []CaseRow) StatusCounts {
	var counts StatusCounts
	for _, row := range rows {
		switch row.Phase {
		case phaseQueued:
			counts.Queued++
			continue
		case phaseRunning:
			counts.Running++
			continue
		}
		counts.Done++
		if row.Result.StrictHit() {
			counts.StrictHits++
		}
		switch row.Result.Status {
		case runner.StatusToolCallOK:
			counts.ToolCallOK++
		case runner.StatusExecutorFail:
			counts.ExecutorFail++
		case runner.StatusRouterFail:
			counts.RouterFail++
		case runner.StatusClarify:
			counts.Clarify++
		case runner.StatusNone:
			counts.None++
		}
	}
	return counts
}

// formatLastEvent creates a short footer message for a finished row.
func formatLastEvent(row CaseRow) string {
	if row.Phase != phaseDone {
		return ""
	}
	if row.Result.Reason != "" {
		return fmt.Sprintf("#%d %s: %s", row.Index+1, row.Result.Status, row.Result.Reason)
	}
	return fmt.Sprintf("#%d %s (%s)", row.Index+1, row.Result.Status, row.Result.GotTool)
}
