package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/lichhen/internal/db"
	"github.com/alexanderramin/lichhen/internal/domain"
)

const entryColumns = `id, title, description, start_time, end_time, source, deleted_at, created_at, updated_at`

// SQLiteEntryRepo implements EntryRepo. Times are stored as RFC3339 strings
// with their offset plus unix seconds for range comparisons.
type SQLiteEntryRepo struct {
	db  db.DBTX
	loc *time.Location
}

// NewSQLiteEntryRepo creates a repo whose returned times are expressed in loc.
// A nil loc keeps the stored offsets.
func NewSQLiteEntryRepo(conn db.DBTX, loc *time.Location) *SQLiteEntryRepo {
	return &SQLiteEntryRepo{db: conn, loc: loc}
}

func (r *SQLiteEntryRepo) Create(ctx context.Context, e *domain.ScheduleEntry) error {
	if e.Source == "" {
		e.Source = domain.SourceManual
	}
	query := `INSERT INTO schedule_entries
		(id, title, description, start_time, end_time, start_unix, end_unix, source, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.Title,
		e.Description,
		e.StartTime.Format(time.RFC3339),
		e.EndTime.Format(time.RFC3339),
		e.StartTime.Unix(),
		e.EndTime.Unix(),
		string(e.Source),
		e.CreatedAt.UTC().Format(time.RFC3339),
		e.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting schedule entry: %w", err)
	}
	return nil
}

func (r *SQLiteEntryRepo) GetByID(ctx context.Context, id string) (*domain.ScheduleEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM schedule_entries WHERE id = ? AND deleted_at IS NULL`
	return r.scanEntry(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteEntryRepo) List(ctx context.Context) ([]*domain.ScheduleEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM schedule_entries
		WHERE deleted_at IS NULL ORDER BY start_unix, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing schedule entries: %w", err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

func (r *SQLiteEntryRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*domain.ScheduleEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM schedule_entries
		WHERE deleted_at IS NULL AND start_unix >= ? AND start_unix < ?
		ORDER BY start_unix, id`
	rows, err := r.db.QueryContext(ctx, query, from.Unix(), to.Unix())
	if err != nil {
		return nil, fmt.Errorf("listing schedule entries between: %w", err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

func (r *SQLiteEntryRepo) Overlapping(ctx context.Context, start, end time.Time, excludeID string) ([]*domain.ScheduleEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM schedule_entries
		WHERE deleted_at IS NULL AND start_unix < ? AND end_unix > ? AND id != ?
		ORDER BY start_unix, id`
	rows, err := r.db.QueryContext(ctx, query, end.Unix(), start.Unix(), excludeID)
	if err != nil {
		return nil, fmt.Errorf("querying overlapping entries: %w", err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

func (r *SQLiteEntryRepo) Update(ctx context.Context, e *domain.ScheduleEntry) error {
	query := `UPDATE schedule_entries
		SET title = ?, description = ?, start_time = ?, end_time = ?, start_unix = ?, end_unix = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query,
		e.Title,
		e.Description,
		e.StartTime.Format(time.RFC3339),
		e.EndTime.Format(time.RFC3339),
		e.StartTime.Unix(),
		e.EndTime.Unix(),
		e.UpdatedAt.UTC().Format(time.RFC3339),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating schedule entry: %w", err)
	}
	return requireAffected(res, "schedule entry")
}

func (r *SQLiteEntryRepo) Delete(ctx context.Context, id string) error {
	query := `UPDATE schedule_entries SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`
	now := nowUTC()
	res, err := r.db.ExecContext(ctx, query, now, now, id)
	if err != nil {
		return fmt.Errorf("deleting schedule entry: %w", err)
	}
	return requireAffected(res, "schedule entry")
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteEntryRepo) scanEntry(row *sql.Row) (*domain.ScheduleEntry, error) {
	e, err := r.scanInto(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("schedule entry: %w", ErrNotFound)
		}
		return nil, err
	}
	return e, nil
}

func (r *SQLiteEntryRepo) scanEntries(rows *sql.Rows) ([]*domain.ScheduleEntry, error) {
	var entries []*domain.ScheduleEntry
	for rows.Next() {
		e, err := r.scanInto(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schedule entries: %w", err)
	}
	return entries, nil
}

func (r *SQLiteEntryRepo) scanInto(s rowScanner) (*domain.ScheduleEntry, error) {
	var e domain.ScheduleEntry
	var startStr, endStr, source, createdStr, updatedStr string
	var deleted sql.NullString

	err := s.Scan(&e.ID, &e.Title, &e.Description, &startStr, &endStr, &source, &deleted, &createdStr, &updatedStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning schedule entry: %w", err)
	}

	if e.StartTime, err = time.Parse(time.RFC3339, startStr); err != nil {
		return nil, fmt.Errorf("parsing start_time: %w", err)
	}
	if e.EndTime, err = time.Parse(time.RFC3339, endStr); err != nil {
		return nil, fmt.Errorf("parsing end_time: %w", err)
	}
	if e.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if e.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	e.StartTime = inLocation(e.StartTime, r.loc)
	e.EndTime = inLocation(e.EndTime, r.loc)
	e.Source = domain.EntrySource(source)
	e.DeletedAt = parseNullableTime(deleted, time.RFC3339)
	return &e, nil
}
