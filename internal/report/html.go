package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/a-h/templ"

	"toolbench/internal/runner"
)

// ComparisonPage renders a standalone HTML page comparing model summaries.
func ComparisonPage(title string, summaries []runner.RunSummary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, "<!doctype html>\n<html><head><meta charset=\"utf-8\"><title>%s</title>%s</head><body>\n<h1>%s</h1>\n",
			templ.EscapeString(title), runner.ReportStyle, templ.EscapeString(title)); err != nil {
			return err
		}
		if err := runner.SummaryTable(summaries).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body></html>\n")
		return err
	})
}

// RenderComparisonHTML renders the comparison page into a string.
func RenderComparisonHTML(ctx context.Context, summaries []runner.RunSummary) (string, error) {
	var builder strings.Builder
	if err := ComparisonPage("toolbench model comparison", summaries).Render(ctx, &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// WriteComparisonHTML renders the comparison page to path.
func WriteComparisonHTML(ctx context.Context, path string, summaries []runner.RunSummary) error {
	html, err := RenderComparisonHTML(ctx, summaries)
	if err != nil {
		return fmt.Errorf("render comparison: %w", err)
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write comparison: %w", err)
	}
	return nil
}
