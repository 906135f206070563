package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and re-run
// on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// start_unix/end_unix mirror the RFC3339 columns so range and overlap
	// queries compare instants regardless of the stored offset.
	`CREATE TABLE IF NOT EXISTS schedule_entries (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		start_unix INTEGER NOT NULL,
		end_unix INTEGER NOT NULL,
		deleted_at TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		CHECK (start_unix < end_unix)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_schedule_entries_start ON schedule_entries(start_unix)`,
	`CREATE INDEX IF NOT EXISTS idx_schedule_entries_live ON schedule_entries(deleted_at, start_unix, end_unix)`,

	`ALTER TABLE schedule_entries ADD COLUMN source TEXT NOT NULL DEFAULT 'manual'`,

	`CREATE TABLE IF NOT EXISTS reminder_log (
		entry_id TEXT NOT NULL REFERENCES schedule_entries(id) ON DELETE CASCADE,
		start_unix INTEGER NOT NULL,
		notified_at TEXT NOT NULL,
		PRIMARY KEY (entry_id, start_unix)
	)`,
}
