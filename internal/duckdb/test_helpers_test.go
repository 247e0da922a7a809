package duckdb_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"toolbench/internal/duckdb"
	"toolbench/internal/duckdb/testing"
	"toolbench/internal/eval"
	"toolbench/internal/runner"
	"toolbench/internal/testutil"
)

const (
	testTimeout = 2 * time.Second
)

// openTestStore opens an in-memory store with the schema applied.
func openTestStore(t *testing.T) (*duckdb.Store, context.Context) {
	t.Helper()
	ctx := testutil.Context(t, testTimeout)
	return duckdbtesting.OpenStore(t), ctx
}

// queryInt returns a single integer value from the database.
func queryInt(t *testing.T, ctx context.Context, db *sql.DB, query string, args ...interface{}) int {
	t.Helper()
	var out int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&out); err != nil {
		t.Fatalf("query int failed: %v", err)
	}
	return out
}

// sampleResults builds a two-case run for a model.
func sampleResults(runID, model string, started time.Time) runner.Results {
	cases := []runner.CaseResult{
		{
			Query:        "find me a fire sword",
			ExpectedTool: eval.ToolID("item_lookup"),
			GotTool:      eval.ToolID("item_lookup"),
			Status:       runner.StatusToolCallOK,
			RouterMs:     10,
			ExecMs:       20,
		},
		{
			Query:        "hello",
			ExpectedTool: eval.ToolNone,
			GotTool:      eval.ToolNone,
			Status:       runner.StatusRouterFail,
			RouterMs:     5,
			Reason:       "router returned non-JSON",
			FailureKind:  runner.FailureProtocol,
		},
	}
	return runner.Results{
		RunID:      runID,
		Model:      model,
		Provider:   "scripted",
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
		Summary:    runner.Summarize(model, cases),
		Results:    cases,
	}
}
