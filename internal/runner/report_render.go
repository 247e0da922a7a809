package runner

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// renderRunReportHTML renders the single-run report template into a string.
func renderRunReportHTML(ctx context.Context, results Results) (string, error) {
	var builder strings.Builder
	if err := RunReport(results).Render(ctx, &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// RunReport renders one model run as a standalone HTML page.
func RunReport(results Results) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := "toolbench: " + results.Model
		if _, err := fmt.Fprintf(w, "<!doctype html>\n<html><head><meta charset=\"utf-8\"><title>%s</title>%s</head><body>\n", templ.EscapeString(title), ReportStyle); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "<h1>%s</h1>\n<p>Run %s via %s, %s to %s</p>\n",
			templ.EscapeString(title),
			templ.EscapeString(results.RunID),
			templ.EscapeString(results.Provider),
			results.StartedAt.UTC().Format("2006-01-02 15:04:05Z"),
			results.FinishedAt.UTC().Format("2006-01-02 15:04:05Z"),
		); err != nil {
			return err
		}
		if repo := results.Repo; repo != nil {
			state := "clean"
			if repo.Dirty {
				state = "dirty"
			}
			if _, err := fmt.Fprintf(w, "<p>Prompts at %s (%s, %s)</p>\n",
				templ.EscapeString(repo.Commit), templ.EscapeString(repo.Branch), state); err != nil {
				return err
			}
		}
		if err := SummaryTable([]RunSummary{results.Summary}).Render(ctx, w); err != nil {
			return err
		}
		if err := CaseTable(results.Results).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body></html>\n")
		return err
	})
}

// ReportStyle is the inline stylesheet shared by HTML reports.
const ReportStyle = `<style>
body{font-family:system-ui,sans-serif;margin:2rem;color:#222}
table{border-collapse:collapse;margin:1rem 0}
th,td{border:1px solid #ccc;padding:.3rem .6rem;text-align:left;font-size:.9rem}
th{background:#f3f3f3}
tr.fail td{background:#fdecea}
tr.failed td{color:#999}
</style>`

// SummaryTable renders one row per model summary.
func SummaryTable(summaries []RunSummary) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<table class=\"summary\"><thead><tr>")
		for _, heading := range []string{"model", "cases", "strict", "accept", "json", "schema", "clarify", "router", "exec"} {
			b.WriteString("<th>" + heading + "</th>")
		}
		b.WriteString("</tr></thead><tbody>\n")
		for _, summary := range summaries {
			rowClass := ""
			if summary.Failed {
				rowClass = " class=\"failed\""
			}
			model := summary.Model
			if summary.Failed {
				model += " (failed)"
			}
			fmt.Fprintf(&b, "<tr%s><td>%s</td><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%dms</td><td>%dms</td></tr>\n",
				rowClass,
				templ.EscapeString(model),
				summary.Total,
				FormatRate(summary.StrictToolAccuracyRate),
				FormatRate(summary.AcceptableAccuracyRate),
				FormatRate(summary.JSONValidityRate),
				FormatRate(summary.SchemaValidityRate),
				FormatRate(summary.ClarifyRate),
				summary.AvgRouterMs,
				summary.AvgExecMs,
			)
		}
		b.WriteString("</tbody></table>\n")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// CaseTable renders per-case outcomes.
func CaseTable(results []CaseResult) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<table class=\"cases\"><thead><tr><th>#</th><th>query</th><th>expected</th><th>got</th><th>status</th><th>router</th><th>exec</th><th>reason</th></tr></thead><tbody>\n")
		for i, result := range results {
			rowClass := ""
			if !result.StrictHit() {
				rowClass = " class=\"fail\""
			}
			fmt.Fprintf(&b, "<tr%s><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%dms</td><td>%dms</td><td>%s</td></tr>\n",
				rowClass,
				i+1,
				templ.EscapeString(result.Query),
				templ.EscapeString(string(result.ExpectedTool)),
				templ.EscapeString(string(result.GotTool)),
				templ.EscapeString(string(result.Status)),
				result.RouterMs,
				result.ExecMs,
				templ.EscapeString(result.Reason),
			)
		}
		b.WriteString("</tbody></table>\n")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// FormatRate renders a percentage with one decimal.
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate)
}
