package report

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"toolbench/internal/runner"
)

// ComparisonHeaders are the columns of the model comparison table.
var ComparisonHeaders = []string{"model", "strict", "accept", "json", "schema", "clarify", "router", "exec"}

// ComparisonRows formats one row per summary.
func ComparisonRows(summaries []runner.RunSummary) [][]string {
	rows := make([][]string, 0, len(summaries))
	for _, summary := range summaries {
		model := summary.Model
		if summary.Failed {
			model += " (failed)"
		}
		rows = append(rows, []string{
			model,
			runner.FormatRate(summary.StrictToolAccuracyRate),
			runner.FormatRate(summary.AcceptableAccuracyRate),
			runner.FormatRate(summary.JSONValidityRate),
			runner.FormatRate(summary.SchemaValidityRate),
			runner.FormatRate(summary.ClarifyRate),
			fmt.Sprintf("%dms", summary.AvgRouterMs),
			fmt.Sprintf("%dms", summary.AvgExecMs),
		})
	}
	return rows
}

// ComparisonTable renders summaries as a terminal table.
func ComparisonTable(summaries []runner.RunSummary, noColor bool) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	failedStyle := cellStyle
	if !noColor {
		headerStyle = headerStyle.Foreground(lipgloss.Color("252"))
		failedStyle = failedStyle.Foreground(lipgloss.Color("196"))
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(ComparisonHeaders...).
		Rows(ComparisonRows(summaries)...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(summaries) && summaries[row].Failed {
				return failedStyle
			}
			return cellStyle
		}).
		String()
}
