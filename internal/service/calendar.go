package service

import (
	"context"
	"time"

	"github.com/alexanderramin/lichhen/internal/domain"
	"github.com/alexanderramin/lichhen/internal/repository"
	"github.com/alexanderramin/lichhen/internal/scheduler"
)

// storeCalendar exposes the entry store to the advisor.
type storeCalendar struct {
	entries repository.EntryRepo
	loc     *time.Location
}

// NewCalendar adapts an EntryRepo to scheduler.Calendar. Days are cut at
// midnight in loc.
func NewCalendar(entries repository.EntryRepo, loc *time.Location) scheduler.Calendar {
	if loc == nil {
		loc = time.Local
	}
	return &storeCalendar{entries: entries, loc: loc}
}

func (c *storeCalendar) EntriesForDay(ctx context.Context, day time.Time) ([]*domain.ScheduleEntry, error) {
	start := domain.StartOfDay(day.In(c.loc))
	return c.entries.Overlapping(ctx, start, start.AddDate(0, 0, 1), "")
}

func (c *storeCalendar) Overlapping(ctx context.Context, start, end time.Time, excludeID string) ([]*domain.ScheduleEntry, error) {
	return c.entries.Overlapping(ctx, start, end, excludeID)
}
