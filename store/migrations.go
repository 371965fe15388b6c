package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaVersion is the schema version written to PRAGMA user_version.
const SchemaVersion = 2

// migrations[i] upgrades a database from version i to version i+1.
var migrations = []string{
	`
	CREATE TABLE IF NOT EXISTS tables (
		name        TEXT PRIMARY KEY,
		row_count   INTEGER NOT NULL,
		run_count   INTEGER NOT NULL,
		compression TEXT NOT NULL,
		data        BLOB NOT NULL
	);
	CREATE TABLE IF NOT EXISTS summaries (
		table_name TEXT NOT NULL,
		ord        INTEGER NOT NULL,
		id         TEXT NOT NULL,
		trials     INTEGER NOT NULL,
		heads      INTEGER NOT NULL,
		PRIMARY KEY (table_name, ord)
	);
	CREATE INDEX IF NOT EXISTS idx_summaries_id ON summaries(table_name, id);
	`,
	`
	ALTER TABLE tables ADD COLUMN size INTEGER NOT NULL DEFAULT 0;
	ALTER TABLE tables ADD COLUMN created_at INTEGER NOT NULL DEFAULT 0;
	UPDATE tables SET size = length(data);
	`,
}

// migrate brings db up to SchemaVersion. Each step runs in its own
// transaction together with the version bump.
func migrate(ctx context.Context, db *sql.DB) (from int, err error) {
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&from); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	if from > SchemaVersion {
		return from, fmt.Errorf("schema version %d is newer than supported version %d", from, SchemaVersion)
	}

	for v := from; v < SchemaVersion; v++ {
		if err := applyMigration(ctx, db, v); err != nil {
			return from, err
		}
	}

	return from, nil
}

func applyMigration(ctx context.Context, db *sql.DB, v int) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration %d: %w", v+1, err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, migrations[v]); err != nil {
		return fmt.Errorf("failed to apply migration %d: %w", v+1, err)
	}
	// PRAGMA does not take bind parameters
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", v+1)); err != nil {
		return fmt.Errorf("failed to set schema version %d: %w", v+1, err)
	}

	return tx.Commit()
}
