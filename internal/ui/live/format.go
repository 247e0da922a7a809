package live

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"toolbench/internal/runner"
)

// formatIndex formats a case index.
func formatIndex(index int) string {
	if index+1 >= 10 {
		return "#" + strconv.Itoa(index+1)
	}
	return "#0" + strconv.Itoa(index+1)
}

// formatQuery truncates query text for display.
func formatQuery(text string) string {
	normalized := strings.Join(strings.Fields(text), " ")
	const limit = 60
	if len(normalized) <= limit {
		return normalized
	}
	return normalized[:limit-3] + "..."
}

// formatStatus renders a status string for a row.
func formatStatus(row CaseRow, noColor bool) string {
	if row.Phase != phaseDone {
		return stylize(string(row.Phase), noColor, lipgloss.Color("246"))
	}
	text := string(row.Result.Status)
	if noColor {
		return text
	}
	return statusStyle(row.Result).Render(text)
}

// formatLatency renders router and executor latency for a finished row.
func formatLatency(row CaseRow, now time.Time) string {
	switch row.Phase {
	case phaseDone:
		if row.Result.ExecMs > 0 {
			return strconv.FormatInt(row.Result.RouterMs, 10) + "+" + strconv.FormatInt(row.Result.ExecMs, 10) + "ms"
		}
		return strconv.FormatInt(row.Result.RouterMs, 10) + "ms"
	case phaseRunning:
		if !row.StartedAt.IsZero() {
			return now.Sub(row.StartedAt).Round(100 * time.Millisecond).String()
		}
	}
	return ""
}

// statusStyle selects a style for a finished case.
func statusStyle(result runner.CaseResult) lipgloss.Style {
	color := lipgloss.Color("244")
	switch {
	case result.Status == runner.StatusRouterFail || result.Status == runner.StatusExecutorFail:
		color = lipgloss.Color("196")
	case result.StrictHit():
		color = lipgloss.Color("42")
	case result.AcceptableHit():
		color = lipgloss.Color("39")
	default:
		color = lipgloss.Color("220")
	}
	return lipgloss.NewStyle().Foreground(color)
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
