package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/lichhen/internal/db"
)

// SQLiteReminderLogRepo remembers which entry starts were already announced,
// so a restarted watcher does not notify twice.
type SQLiteReminderLogRepo struct {
	db db.DBTX
}

func NewSQLiteReminderLogRepo(conn db.DBTX) *SQLiteReminderLogRepo {
	return &SQLiteReminderLogRepo{db: conn}
}

func (r *SQLiteReminderLogRepo) MarkNotified(ctx context.Context, entryID string, start, at time.Time) (bool, error) {
	// Keyed on start_unix so a rescheduled entry is announced again.
	query := `INSERT OR IGNORE INTO reminder_log (entry_id, start_unix, notified_at) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, entryID, start.Unix(), at.UTC().Format(time.RFC3339))
	if err != nil {
		return false, fmt.Errorf("recording reminder: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading affected rows: %w", err)
	}
	return n == 1, nil
}
