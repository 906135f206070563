package testutil

import (
	"time"

	"github.com/alexanderramin/lichhen/internal/domain"
	"github.com/google/uuid"
)

// ICT is the fixed UTC+7 zone used throughout the tests.
var ICT = time.FixedZone("ICT", 7*3600)

// Wednesday13Aug is a fixed reference "now": Wednesday 2025-08-13 10:00 ICT.
var Wednesday13Aug = time.Date(2025, 8, 13, 10, 0, 0, 0, ICT)

// At builds an ICT instant.
func At(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, ICT)
}

type EntryOption func(*domain.ScheduleEntry)

func WithDuration(d time.Duration) EntryOption {
	return func(e *domain.ScheduleEntry) {
		e.EndTime = e.StartTime.Add(d)
	}
}

func WithDescription(desc string) EntryOption {
	return func(e *domain.ScheduleEntry) {
		e.Description = desc
	}
}

func WithEntryID(id string) EntryOption {
	return func(e *domain.ScheduleEntry) {
		e.ID = id
	}
}

func WithSource(s domain.EntrySource) EntryOption {
	return func(e *domain.ScheduleEntry) {
		e.Source = s
	}
}

// NewTestEntry returns a one-hour entry starting at start.
func NewTestEntry(title string, start time.Time, opts ...EntryOption) *domain.ScheduleEntry {
	now := time.Now().UTC().Truncate(time.Second)
	e := &domain.ScheduleEntry{
		ID:        uuid.New().String(),
		Title:     title,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Source:    domain.SourceManual,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}
