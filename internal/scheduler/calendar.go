package scheduler

import (
	"context"
	"sort"
	"time"

	"github.com/alexanderramin/lichhen/internal/domain"
)

// Calendar is the read side of the schedule store consulted while adjusting
// and searching. EntriesForDay returns every entry intersecting the day.
type Calendar interface {
	EntriesForDay(ctx context.Context, day time.Time) ([]*domain.ScheduleEntry, error)
	Overlapping(ctx context.Context, start, end time.Time, excludeID string) ([]*domain.ScheduleEntry, error)
}

// Overlaps reports whether [s1,e1) and [s2,e2) intersect. Touching intervals
// do not.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

// Snapshot is an immutable in-memory Calendar.
type Snapshot struct {
	entries []*domain.ScheduleEntry
}

// NewSnapshot copies entries, drops soft-deleted ones and sorts by start.
func NewSnapshot(entries []*domain.ScheduleEntry) *Snapshot {
	out := make([]*domain.ScheduleEntry, 0, len(entries))
	for _, e := range entries {
		if e == nil || e.DeletedAt != nil {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return &Snapshot{entries: out}
}

func (s *Snapshot) Len() int { return len(s.entries) }

func (s *Snapshot) EntriesForDay(_ context.Context, day time.Time) ([]*domain.ScheduleEntry, error) {
	from := domain.StartOfDay(day)
	return s.overlapping(from, from.AddDate(0, 0, 1), ""), nil
}

func (s *Snapshot) Overlapping(_ context.Context, start, end time.Time, excludeID string) ([]*domain.ScheduleEntry, error) {
	return s.overlapping(start, end, excludeID), nil
}

func (s *Snapshot) overlapping(start, end time.Time, excludeID string) []*domain.ScheduleEntry {
	var out []*domain.ScheduleEntry
	for _, e := range s.entries {
		if excludeID != "" && e.ID == excludeID {
			continue
		}
		if Overlaps(e.StartTime, e.EndTime, start, end) {
			out = append(out, e)
		}
	}
	return out
}
