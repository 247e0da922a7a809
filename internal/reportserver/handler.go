package reportserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"toolbench/internal/report"
	"toolbench/internal/runner"
)

// NewHandler builds the HTTP handler for browsing results and the DuckDB file.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.ResultsDir == "" {
		return nil, errors.New("reportserver: results dir is required")
	}

	mux := http.NewServeMux()
	mux.Handle("/", serveIndex(cfg.ResultsDir))
	mux.Handle("/runs/", http.StripPrefix("/runs/", http.FileServer(http.Dir(cfg.ResultsDir))))
	if cfg.DBPath != "" {
		mux.Handle("/data/bench.duckdb", serveDatabase(cfg.DBPath))
	}
	return mux, nil
}

// serveIndex renders the comparison of every model's latest run.
func serveIndex(resultsDir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		paths, err := report.FindLatest(resultsDir)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		runs := make([]runner.Results, 0, len(paths))
		for _, path := range paths {
			results, err := report.LoadResults(path)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			runs = append(runs, results)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = indexPage(runs).Render(r.Context(), w)
	})
}

// indexPage renders the summary table followed by links to each run report.
func indexPage(runs []runner.Results) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		summaries := make([]runner.RunSummary, 0, len(runs))
		for _, run := range runs {
			summaries = append(summaries, run.Summary)
		}
		if _, err := fmt.Fprintf(w, "<!doctype html>\n<html><head><meta charset=\"utf-8\"><title>toolbench results</title>%s</head><body>\n<h1>toolbench results</h1>\n",
			runner.ReportStyle); err != nil {
			return err
		}
		if len(runs) == 0 {
			_, err := io.WriteString(w, "<p>No runs yet.</p>\n</body></html>\n")
			return err
		}
		if err := runner.SummaryTable(summaries).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "<h2>Latest runs</h2>\n<ul>\n"); err != nil {
			return err
		}
		for _, run := range runs {
			href := "/runs/" + runner.ModelDirName(run.Model) + "/" + run.RunID + "/report.html"
			if _, err := fmt.Fprintf(w, "<li><a href=\"%s\">%s</a> %s</li>\n",
				templ.EscapeString(href), templ.EscapeString(run.Model), templ.EscapeString(run.RunID)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</ul>\n</body></html>\n")
		return err
	})
}

// serveDatabase serves the DuckDB file from disk for download.
func serveDatabase(dbPath string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		http.ServeFile(w, r, dbPath)
	})
}
