package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillTimeSpent(db); err != nil {
		return fmt.Errorf("backfilling session time spent: %w", err)
	}
	return nil
}

// migrateBackfillTimeSpent fills time_spent_min for sessions stored before the
// column existed, using the rounded span between start and end.
func migrateBackfillTimeSpent(db *sql.DB) error {
	ctx := context.Background()

	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM production_sessions WHERE time_spent_min IS NULL`).Scan(&count)
	if err != nil {
		return fmt.Errorf("checking production_sessions time_spent_min: %w", err)
	}
	if count == 0 {
		return nil
	}

	_, err = db.ExecContext(ctx, `UPDATE production_sessions
		SET time_spent_min = MAX(0, CAST(ROUND((julianday(end_time) - julianday(start_time)) * 1440) AS INTEGER))
		WHERE time_spent_min IS NULL`)
	return err
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		id         TEXT PRIMARY KEY,
		code       TEXT NOT NULL DEFAULT '',
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_tasks_code ON tasks(code) WHERE code != ''`,

	`CREATE TABLE IF NOT EXISTS production_sessions (
		id         TEXT PRIMARY KEY,
		task_id    TEXT NOT NULL DEFAULT '',
		start_time TEXT NOT NULL,
		end_time   TEXT NOT NULL,
		quantity   INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`,
	`ALTER TABLE production_sessions ADD COLUMN time_spent_min INTEGER`,
	`ALTER TABLE production_sessions ADD COLUMN note TEXT NOT NULL DEFAULT ''`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_start ON production_sessions(start_time)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_end ON production_sessions(end_time)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_task ON production_sessions(task_id)`,

	`CREATE TABLE IF NOT EXISTS cost_records (
		id          TEXT PRIMARY KEY,
		start_date  TEXT NOT NULL,
		end_date    TEXT NOT NULL,
		amount      REAL NOT NULL CHECK(amount >= 0),
		is_paid     INTEGER NOT NULL DEFAULT 0,
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS cost_excluded_tasks (
		cost_id TEXT NOT NULL REFERENCES cost_records(id) ON DELETE CASCADE,
		task_id TEXT NOT NULL,
		PRIMARY KEY (cost_id, task_id)
	)`,

	`CREATE TABLE IF NOT EXISTS cost_analyses (
		cost_id                 TEXT NOT NULL REFERENCES cost_records(id) ON DELETE CASCADE,
		version                 INTEGER NOT NULL,
		effective_minutes       REAL NOT NULL,
		sessions_count          INTEGER NOT NULL,
		merged_periods_count    INTEGER NOT NULL,
		duplicates_eliminated   INTEGER NOT NULL,
		clipped_periods_count   INTEGER NOT NULL,
		excluded_sessions_count INTEGER NOT NULL,
		skipped_sessions        INTEGER NOT NULL DEFAULT 0,
		cost_per_minute         REAL NOT NULL,
		cost_per_hour           REAL NOT NULL,
		calculated_at           TEXT NOT NULL,
		PRIMARY KEY (cost_id, version)
	)`,
}
