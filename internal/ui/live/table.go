package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// defaultColumns returns the column layout for an 80-column terminal.
func defaultColumns() []table.Column {
	return columnsForWidth(80)
}

// columnsForWidth sizes the query column to the terminal width.
func columnsForWidth(width int) []table.Column {
	fixed := 4 + 16 + 16 + 14 + 12
	query := width - fixed - 12
	if query < 20 {
		query = 20
	}
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Query", Width: query},
		{Title: "Expected", Width: 16},
		{Title: "Got", Width: 16},
		{Title: "Status", Width: 14},
		{Title: "Latency", Width: 12},
	}
}

// rowsForState converts UI state into table rows.
func rowsForState(state State, now time.Time, noColor bool) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		got := ""
		if row.Phase == phaseDone {
			got = string(row.Result.GotTool)
		}
		rows = append(rows, table.Row{
			formatIndex(row.Index),
			formatQuery(row.Query),
			string(row.Expected),
			got,
			formatStatus(row, noColor),
			formatLatency(row, now),
		})
	}
	return rows
}
