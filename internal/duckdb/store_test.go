package duckdb_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"toolbench/internal/duckdb"
	"toolbench/internal/duckdb/testing"
	"toolbench/internal/testutil"
)

// TestSchemaObjectsExist verifies core tables and views are created.
func TestSchemaObjectsExist(t *testing.T) {
	store, ctx := openTestStore(t)
	for _, table := range []string{"runs", "case_results", "schema_info"} {
		count := queryInt(t, ctx, store.DB(), "SELECT COUNT(*) FROM information_schema.tables WHERE table_name = ?", table)
		if count != 1 {
			t.Fatalf("expected table %s to exist", table)
		}
	}
	for _, view := range []string{"v_latest_runs", "v_tool_confusion"} {
		count := queryInt(t, ctx, store.DB(), "SELECT COUNT(*) FROM information_schema.tables WHERE table_name = ? AND table_type = 'VIEW'", view)
		if count != 1 {
			t.Fatalf("expected view %s to exist", view)
		}
	}
}

// TestEnsureSchemaIdempotent verifies the DDL can be applied twice with one version row.
func TestEnsureSchemaIdempotent(t *testing.T) {
	store, ctx := openTestStore(t)
	if err := duckdb.EnsureSchema(ctx, store.DB()); err != nil {
		t.Fatalf("reapply schema: %v", err)
	}
	if got := queryInt(t, ctx, store.DB(), "SELECT COUNT(*) FROM schema_info WHERE version = ?", duckdb.SchemaVersion); got != 1 {
		t.Fatalf("expected one schema version row, got %d", got)
	}
}

// TestEnsureSchemaRejectsNewerVersion verifies a newer database is not touched.
func TestEnsureSchemaRejectsNewerVersion(t *testing.T) {
	ctx := testutil.Context(t, testTimeout)
	db := duckdbtesting.Open(t, ":memory:")
	if err := duckdb.EnsureSchema(ctx, db); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	if _, err := db.ExecContext(ctx, "INSERT INTO schema_info (version) VALUES (?)", duckdb.SchemaVersion+1); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	if err := duckdb.EnsureSchema(ctx, db); !errors.Is(err, duckdb.ErrNewerSchema) {
		t.Fatalf("expected ErrNewerSchema, got %v", err)
	}
}

// TestIngestStoresRunAndCases verifies a run and its case rows are persisted.
func TestIngestStoresRunAndCases(t *testing.T) {
	store, ctx := openTestStore(t)
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := store.Ingest(ctx, sampleResults("run-1", "qwen2.5:7b", started)); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if got := queryInt(t, ctx, store.DB(), "SELECT COUNT(*) FROM runs"); got != 1 {
		t.Fatalf("expected 1 run, got %d", got)
	}
	if got := queryInt(t, ctx, store.DB(), "SELECT COUNT(*) FROM case_results WHERE run_id = ?", "run-1"); got != 2 {
		t.Fatalf("expected 2 case rows, got %d", got)
	}
	if got := queryInt(t, ctx, store.DB(), "SELECT COUNT(*) FROM case_results WHERE failure_kind = 'protocol'"); got != 1 {
		t.Fatalf("expected 1 protocol failure, got %d", got)
	}
	if got := queryInt(t, ctx, store.DB(), "SELECT COUNT(*) FROM case_results WHERE reason IS NULL"); got != 1 {
		t.Fatalf("expected empty reason stored as NULL, got %d", got)
	}
}

// TestIngestIsIdempotentPerRunID verifies re-ingesting a run adds no rows.
func TestIngestIsIdempotentPerRunID(t *testing.T) {
	store, ctx := openTestStore(t)
	results := sampleResults("run-1", "m", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	for i := 0; i < 2; i++ {
		if err := store.Ingest(ctx, results); err != nil {
			t.Fatalf("ingest %d: %v", i, err)
		}
	}
	if got := queryInt(t, ctx, store.DB(), "SELECT COUNT(*) FROM case_results"); got != 2 {
		t.Fatalf("expected 2 case rows, got %d", got)
	}
}

// TestIngestRequiresRunID verifies a run without an identifier is rejected.
func TestIngestRequiresRunID(t *testing.T) {
	store, ctx := openTestStore(t)
	if err := store.Ingest(ctx, sampleResults("", "m", time.Now())); err == nil {
		t.Fatalf("expected error for empty run id")
	}
}

// TestLatestSummariesPicksNewestRunPerModel verifies the latest-run view.
func TestLatestSummariesPicksNewestRunPerModel(t *testing.T) {
	store, ctx := openTestStore(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	older := sampleResults("run-old", "b-model", base)
	older.Summary.StrictToolAccuracyRate = 10
	newer := sampleResults("run-new", "b-model", base.Add(time.Hour))
	newer.Summary.StrictToolAccuracyRate = 90
	other := sampleResults("run-a", "a-model", base)
	duckdbtesting.Seed(t, store, older, newer, other)
	summaries, err := store.LatestSummaries(ctx)
	if err != nil {
		t.Fatalf("latest summaries: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].Model != "a-model" || summaries[1].Model != "b-model" {
		t.Fatalf("unexpected order: %s, %s", summaries[0].Model, summaries[1].Model)
	}
	if summaries[1].StrictToolAccuracyRate != 90 {
		t.Fatalf("expected newest run summary, got strict %.1f", summaries[1].StrictToolAccuracyRate)
	}
}

// TestToolConfusionAggregatesAcrossRuns verifies expected/got counts sum over runs.
func TestToolConfusionAggregatesAcrossRuns(t *testing.T) {
	store, ctx := openTestStore(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	duckdbtesting.Seed(t, store, sampleResults("run-1", "m", base), sampleResults("run-2", "m", base.Add(time.Minute)))
	cells, err := store.ToolConfusion(ctx, "m")
	if err != nil {
		t.Fatalf("tool confusion: %v", err)
	}
	if len(cells) != 2 {
		t.Fatalf("expected 2 cells, got %+v", cells)
	}
	if cells[0].Expected != "item_lookup" || cells[0].Cases != 2 {
		t.Fatalf("unexpected first cell %+v", cells[0])
	}
	if cells[1].Expected != "none" || cells[1].Got != "none" || cells[1].Cases != 2 {
		t.Fatalf("unexpected second cell %+v", cells[1])
	}
}

// TestOpenCreatesDatabaseFile verifies Open creates parent dirs and the schema.
func TestOpenCreatesDatabaseFile(t *testing.T) {
	ctx := testutil.Context(t, testTimeout)
	path := filepath.Join(t.TempDir(), "nested", "bench.duckdb")
	store, err := duckdb.Open(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	if err := store.Ingest(ctx, sampleResults("run-1", "m", time.Now().UTC())); err != nil {
		t.Fatalf("ingest: %v", err)
	}
}
