// Package duckdbtesting opens throwaway DuckDB stores for tests.
package duckdbtesting

import (
	"database/sql"
	"testing"
	"time"

	"toolbench/internal/duckdb"
	"toolbench/internal/runner"
	"toolbench/internal/testutil"

	_ "github.com/duckdb/duckdb-go/v2"
)

const timeout = 5 * time.Second

// Open returns a raw connection with no schema applied, closed at cleanup.
func Open(t testing.TB, dsn string) *sql.DB {
	t.Helper()
	conn, err := sql.Open("duckdb", dsn)
	if err != nil {
		t.Fatalf("open duckdb: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	if err := conn.PingContext(testutil.Context(t, timeout)); err != nil {
		t.Fatalf("ping duckdb: %v", err)
	}
	return conn
}

// OpenStore opens an in-memory store through duckdb.Open, closed at cleanup.
func OpenStore(t testing.TB) *duckdb.Store {
	t.Helper()
	store, err := duckdb.Open(testutil.Context(t, timeout), "")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// Seed ingests each run into store.
func Seed(t testing.TB, store *duckdb.Store, runs ...runner.Results) {
	t.Helper()
	ctx := testutil.Context(t, timeout)
	for _, run := range runs {
		if err := store.Ingest(ctx, run); err != nil {
			t.Fatalf("ingest %s: %v", run.RunID, err)
		}
	}
}
