package duckdb

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
)

//go:embed schema.sql
var schemaDDL string

// SchemaVersion is recorded in schema_info and bumped on incompatible DDL changes.
const SchemaVersion = 1

// ErrNewerSchema is returned for a database written by a newer schema version.
var ErrNewerSchema = errors.New("duckdb: database schema is newer than this build")

// EnsureSchema creates missing tables and views and stamps the schema version.
// It is safe to call on every open.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("duckdb: db is nil")
	}
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	var version sql.NullInt64
	if err := db.QueryRowContext(ctx, "SELECT max(version) FROM schema_info").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	switch {
	case !version.Valid:
		if _, err := db.ExecContext(ctx, "INSERT INTO schema_info (version) VALUES (?)", SchemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
	case version.Int64 > SchemaVersion:
		return fmt.Errorf("%w: found version %d, supported %d", ErrNewerSchema, version.Int64, SchemaVersion)
	}
	return nil
}
