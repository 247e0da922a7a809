package duckdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"toolbench/internal/runner"
)

// Ingest stores one model run and its case results. Re-ingesting a run ID
// already present is a no-op.
func (s *Store) Ingest(ctx context.Context, results runner.Results) error {
	if s == nil || s.db == nil {
		return errors.New("duckdb: db is nil")
	}
	if results.RunID == "" {
		return errors.New("duckdb: run id is required")
	}
	exists, err := s.runExists(ctx, results.RunID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	summary, err := json.Marshal(results.Summary)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin ingest: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	sum := results.Summary
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, model, provider, started_at, finished_at, total,
		  strict_rate, acceptable_rate, json_rate, schema_rate, clarify_rate,
		  avg_router_ms, avg_exec_ms, failed, summary)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		results.RunID,
		results.Model,
		results.Provider,
		results.StartedAt.UTC(),
		results.FinishedAt.UTC(),
		sum.Total,
		sum.StrictToolAccuracyRate,
		sum.AcceptableAccuracyRate,
		sum.JSONValidityRate,
		sum.SchemaValidityRate,
		sum.ClarifyRate,
		sum.AvgRouterMs,
		sum.AvgExecMs,
		sum.Failed,
		string(summary),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, result := range results.Results {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO case_results (result_id, run_id, case_index, query, expected_tool,
			  got_tool, status, router_ms, exec_ms, reason, failure_kind)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(),
			results.RunID,
			i,
			result.Query,
			string(result.ExpectedTool),
			string(result.GotTool),
			string(result.Status),
			result.RouterMs,
			result.ExecMs,
			nullString(result.Reason),
			nullString(string(result.FailureKind)),
		); err != nil {
			return fmt.Errorf("insert case %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ingest: %w", err)
	}
	return nil
}

// LatestSummaries returns the most recent run summary per model, ordered by model.
func (s *Store) LatestSummaries(ctx context.Context) ([]runner.RunSummary, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("duckdb: db is nil")
	}
	rows, err := s.db.QueryContext(ctx, `SELECT summary FROM v_latest_runs ORDER BY model`)
	if err != nil {
		return nil, fmt.Errorf("query latest runs: %w", err)
	}
	defer rows.Close()
	var out []runner.RunSummary
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		var summary runner.RunSummary
		if err := json.Unmarshal([]byte(raw), &summary); err != nil {
			return nil, fmt.Errorf("decode summary: %w", err)
		}
		out = append(out, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate latest runs: %w", err)
	}
	return out, nil
}

// Confusion is one (expected, got) cell of a model's tool confusion matrix.
type Confusion struct {
	Model    string
	Expected string
	Got      string
	Cases    int
}

// ToolConfusion aggregates case outcomes across every stored run of a model.
func (s *Store) ToolConfusion(ctx context.Context, model string) ([]Confusion, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("duckdb: db is nil")
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT model, expected_tool, got_tool, cases
		 FROM v_tool_confusion
		 WHERE model = ?
		 ORDER BY expected_tool, got_tool`, model)
	if err != nil {
		return nil, fmt.Errorf("query tool confusion: %w", err)
	}
	defer rows.Close()
	var out []Confusion
	for rows.Next() {
		var cell Confusion
		if err := rows.Scan(&cell.Model, &cell.Expected, &cell.Got, &cell.Cases); err != nil {
			return nil, fmt.Errorf("scan tool confusion: %w", err)
		}
		out = append(out, cell)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tool confusion: %w", err)
	}
	return out, nil
}

func (s *Store) runExists(ctx context.Context, runID string) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE run_id = ?`, runID).Scan(&count); err != nil {
		return false, fmt.Errorf("lookup run: %w", err)
	}
	return count > 0, nil
}

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
