package scheduler

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/lichhen/internal/domain"
)

// MaxAlternatives caps GenerateAlternatives.
const MaxAlternatives = 3

// alternativeDays is how many days after the base day alternatives may use.
const alternativeDays = 3

// FindNextSlot returns the first start at or after from where
// [start, start+duration) is free, inside business hours and clear of lunch.
// Days are searched from from's date up to LookaheadDays(priority) days later,
// skipping weekends. Each day first tries the canonical :00 and :30 starts,
// then the gaps between that day's entries.
func (r *Rules) FindNextSlot(ctx context.Context, cal Calendar, from time.Time, duration time.Duration, priority domain.Priority) (time.Time, error) {
	days := r.LookaheadDays(priority)
	for offset := 0; offset <= days; offset++ {
		day := domain.StartOfDay(from).AddDate(0, 0, offset)
		if domain.IsWeekend(day) {
			continue
		}
		earliest := domain.At(day, r.Open, 0)
		if offset == 0 && from.After(earliest) {
			earliest = from
		}

		entries, err := cal.EntriesForDay(ctx, day)
		if err != nil {
			return time.Time{}, fmt.Errorf("loading entries for %s: %w", day.Format("2006-01-02"), err)
		}

		if slot, ok := r.canonicalSlot(day, earliest, duration, entries); ok {
			return slot, nil
		}
		if slot, ok := r.gapSlot(day, earliest, duration, entries); ok {
			return slot, nil
		}
	}
	return time.Time{}, fmt.Errorf("searching %d days from %s: %w", days, from.Format(displayLayout), ErrNoSlotAvailable)
}

// CanonicalStarts lists the :00 and :30 starts of a business day, lunch hours
// excluded, in chronological order.
func (r *Rules) CanonicalStarts(day time.Time) []time.Time {
	var out []time.Time
	for h := r.Open; h < r.Close; h++ {
		if h >= r.LunchStart && h < r.LunchEnd {
			continue
		}
		out = append(out, domain.At(day, h, 0), domain.At(day, h, 30))
	}
	return out
}

func (r *Rules) canonicalSlot(day, earliest time.Time, duration time.Duration, entries []*domain.ScheduleEntry) (time.Time, bool) {
	for _, cand := range r.CanonicalStarts(day) {
		if cand.Before(earliest) {
			continue
		}
		if r.free(cand, cand.Add(duration), entries) {
			return cand, true
		}
	}
	return time.Time{}, false
}

// gapSlot walks the free gaps between the day's sorted entries, from
// earliest to close, moving any start that would touch lunch to lunch end.
func (r *Rules) gapSlot(day, earliest time.Time, duration time.Duration, entries []*domain.ScheduleEntry) (time.Time, bool) {
	sorted := make([]*domain.ScheduleEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartTime.Before(sorted[j].StartTime) })

	closeAt := domain.At(day, r.Close, 0)
	cursor := earliest
	try := func(gapEnd time.Time) (time.Time, bool) {
		cand := cursor
		if r.intersectsLunch(cand, cand.Add(duration)) {
			cand = domain.At(day, r.LunchEnd, 0)
			if cand.Before(cursor) {
				return time.Time{}, false
			}
		}
		end := cand.Add(duration)
		if end.After(gapEnd) || end.After(closeAt) {
			return time.Time{}, false
		}
		return cand, r.fitsDay(cand, end)
	}

	for _, e := range sorted {
		if e.StartTime.After(cursor) {
			if slot, ok := try(e.StartTime); ok {
				return slot, true
			}
		}
		if e.EndTime.After(cursor) {
			cursor = e.EndTime
		}
	}
	if cursor.Before(closeAt) {
		return try(closeAt)
	}
	return time.Time{}, false
}

func (r *Rules) free(start, end time.Time, entries []*domain.ScheduleEntry) bool {
	if !r.fitsDay(start, end) {
		return false
	}
	for _, e := range entries {
		if Overlaps(start, end, e.StartTime, e.EndTime) {
			return false
		}
	}
	return true
}

// GenerateAlternatives suggests up to MaxAlternatives informational starts
// drawn from the best-time window: its start, middle and last hour on the
// base day, then on the following weekdays. Every suggestion is after now,
// differs from base, fits business hours and lunch, and is conflict-free.
func (r *Rules) GenerateAlternatives(ctx context.Context, cal Calendar, base time.Time, window domain.HourWindow, duration time.Duration, now time.Time) ([]time.Time, error) {
	hours := []int{window.Start, (window.Start + window.End) / 2, window.End - 1}

	seen := map[int64]bool{base.Unix(): true}
	var out []time.Time
	for offset := 0; offset <= alternativeDays && len(out) < MaxAlternatives; offset++ {
		day := domain.StartOfDay(base).AddDate(0, 0, offset)
		if domain.IsWeekend(day) {
			continue
		}
		for _, h := range hours {
			if len(out) == MaxAlternatives {
				break
			}
			cand := domain.At(day, h, 0)
			if seen[cand.Unix()] || !cand.After(now) {
				continue
			}
			seen[cand.Unix()] = true
			if !r.fitsDay(cand, cand.Add(duration)) {
				continue
			}
			conflicts, err := cal.Overlapping(ctx, cand, cand.Add(duration), "")
			if err != nil {
				return nil, fmt.Errorf("checking alternative %s: %w", cand.Format(displayLayout), err)
			}
			if len(conflicts) == 0 {
				out = append(out, cand)
			}
		}
	}
	return out, nil
}
