package live

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"toolbench/internal/runner"
)

// renderHeader renders the run header line.
func renderHeader(state State, now time.Time, noColor bool) string {
	line := "Run " + state.RunID
	if state.Model != "" {
		line += " | Model: " + state.Model
	}
	if !state.StartedAt.IsZero() {
		line += " | Elapsed: " + now.Sub(state.StartedAt).Round(100*time.Millisecond).String()
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderSummary renders the status counts line.
func renderSummary(state State, noColor bool) string {
	counts := state.Counts
	line := "Queued: " + strconv.Itoa(counts.Queued) +
		" Running: " + strconv.Itoa(counts.Running) +
		" Done: " + strconv.Itoa(counts.Done) +
		" ToolCall: " + strconv.Itoa(counts.ToolCallOK) +
		" ExecFail: " + strconv.Itoa(counts.ExecutorFail) +
		" RouterFail: " + strconv.Itoa(counts.RouterFail) +
		" Clarify: " + strconv.Itoa(counts.Clarify) +
		" None: " + strconv.Itoa(counts.None) +
		" Strict: " + strconv.Itoa(counts.StrictHits)
	return stylize(line, noColor, lipgloss.Color("242"))
}

// renderCompleted lists models that already finished in this session.
func renderCompleted(state State, noColor bool) string {
	if len(state.Completed) == 0 {
		return ""
	}
	parts := make([]string, 0, len(state.Completed))
	for _, summary := range state.Completed {
		parts = append(parts, summary.Model+" "+runner.FormatRate(summary.StrictToolAccuracyRate))
	}
	return stylize("Completed: "+strings.Join(parts, ", "), noColor, lipgloss.Color("240"))
}

// renderFooter renders the last event line.
func renderFooter(state State, noColor bool) string {
	if state.LastEvent == "" {
		return ""
	}
	return stylize("Last event: "+state.LastEvent, noColor, lipgloss.Color("244"))
}
