package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/lichhen/internal/domain"
)

// ErrNotFound is wrapped by every lookup that matches no live row.
var ErrNotFound = errors.New("not found")

type EntryRepo interface {
	Create(ctx context.Context, e *domain.ScheduleEntry) error
	GetByID(ctx context.Context, id string) (*domain.ScheduleEntry, error)
	// List returns every live entry ordered by start time.
	List(ctx context.Context) ([]*domain.ScheduleEntry, error)
	// ListBetween returns live entries whose start lies in [from, to).
	ListBetween(ctx context.Context, from, to time.Time) ([]*domain.ScheduleEntry, error)
	// Overlapping returns live entries intersecting [start, end), skipping excludeID.
	Overlapping(ctx context.Context, start, end time.Time, excludeID string) ([]*domain.ScheduleEntry, error)
	Update(ctx context.Context, e *domain.ScheduleEntry) error
	// Delete soft-deletes the entry.
	Delete(ctx context.Context, id string) error
}

type ReminderLogRepo interface {
	// MarkNotified records a reminder; it reports false if one was already recorded.
	MarkNotified(ctx context.Context, entryID string, start, at time.Time) (bool, error)
}
