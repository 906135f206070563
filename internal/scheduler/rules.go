package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/lichhen/internal/config"
	"github.com/alexanderramin/lichhen/internal/domain"
)

// ErrNoSlotAvailable is returned when the lookahead window holds no free slot.
var ErrNoSlotAvailable = errors.New("no free slot available")

// Lookahead windows in calendar days, counted from the search start.
const (
	HighPriorityLookaheadDays    = 2
	DefaultPriorityLookaheadDays = 7
	DefaultMaxRelocations        = 5
)

const displayLayout = "15:04 02/01/2006"

type WarningCode string

const (
	WarnWeekend    WarningCode = "weekend"
	WarnBeforeOpen WarningCode = "before_open"
	WarnAfterClose WarningCode = "after_close"
	WarnLunch      WarningCode = "lunch"
	WarnRelocated  WarningCode = "relocated"
	WarnNoSlot     WarningCode = "no_slot"
)

// Warning records one adjustment made to a candidate time.
type Warning struct {
	Code    WarningCode
	Message string
}

// Adjustment is the outcome of Rules.Adjust.
type Adjustment struct {
	Original time.Time
	Start    time.Time
	Warnings []Warning
	// Conflicts holds the entries that overlapped the candidate after the
	// business-hour shifts and before any relocation.
	Conflicts []*domain.ScheduleEntry
	Relocated bool
	// Secured is false when no conflict-free time could be found.
	Secured bool
}

// HasWarning reports whether a warning with the given code was recorded.
func (a *Adjustment) HasWarning(code WarningCode) bool {
	for _, w := range a.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

// Rules holds the working-day constraints. Hours are local wall-clock hours
// in the location of the instants passed in.
type Rules struct {
	Open           int
	Close          int
	NextDayStart   int
	LunchStart     int
	LunchEnd       int
	MaxRelocations int

	HighLookaheadDays    int
	DefaultLookaheadDays int
}

func NewRules(b config.BusinessHours) *Rules {
	maxRelocations := b.MaxRelocationAttempts
	if maxRelocations <= 0 {
		maxRelocations = DefaultMaxRelocations
	}
	return &Rules{
		Open:                 b.Open,
		Close:                b.Close,
		NextDayStart:         b.NextDayStart,
		LunchStart:           b.LunchStart,
		LunchEnd:             b.LunchEnd,
		MaxRelocations:       maxRelocations,
		HighLookaheadDays:    HighPriorityLookaheadDays,
		DefaultLookaheadDays: DefaultPriorityLookaheadDays,
	}
}

// LookaheadDays is the slot-search horizon for a priority.
func (r *Rules) LookaheadDays(p domain.Priority) int {
	if p == domain.PriorityHigh {
		return r.HighLookaheadDays
	}
	return r.DefaultLookaheadDays
}

// Adjust moves start so that [start, start+duration) respects business hours,
// the lunch break and existing entries. Each hour rule fires at most once,
// in order: weekend (warning only), before open, after close, lunch. A
// remaining conflict is relocated through FindNextSlot, at most
// MaxRelocations times. Only calendar failures are returned as errors.
func (r *Rules) Adjust(ctx context.Context, cal Calendar, start time.Time, duration time.Duration, priority domain.Priority) (*Adjustment, error) {
	adj := &Adjustment{Original: start}

	if domain.IsWeekend(start) {
		adj.warn(WarnWeekend, "Thời gian rơi vào cuối tuần")
	}

	if start.Hour() < r.Open {
		start = domain.At(start, r.Open, 0)
		adj.warn(WarnBeforeOpen, fmt.Sprintf("Trước giờ làm việc, điều chỉnh về %02d:00", r.Open))
	}

	if start.Hour() >= r.Close || start.Add(duration).After(domain.At(start, r.Close, 0)) {
		start = domain.At(start.AddDate(0, 0, 1), r.NextDayStart, 0)
		adj.warn(WarnAfterClose, fmt.Sprintf("Sau giờ làm việc, điều chỉnh về %02d:00 ngày hôm sau", r.NextDayStart))
	}

	if r.intersectsLunch(start, start.Add(duration)) {
		start = domain.At(start, r.LunchEnd, 0)
		adj.warn(WarnLunch, fmt.Sprintf("Trùng giờ ăn trưa, điều chỉnh về %02d:00", r.LunchEnd))
	}

	conflicts, err := cal.Overlapping(ctx, start, start.Add(duration), "")
	if err != nil {
		return nil, fmt.Errorf("checking conflicts: %w", err)
	}
	adj.Conflicts = conflicts
	secured := len(conflicts) == 0

	for attempt := 1; !secured && attempt <= r.MaxRelocations; attempt++ {
		next, err := r.FindNextSlot(ctx, cal, start, duration, priority)
		if errors.Is(err, ErrNoSlotAvailable) {
			adj.warn(WarnNoSlot, fmt.Sprintf("Không tìm được khung giờ trống trong %d ngày tới, giữ thời gian %s",
				r.LookaheadDays(priority), start.Format(displayLayout)))
			adj.Start = start
			return adj, nil
		}
		if err != nil {
			return nil, err
		}
		adj.warn(WarnRelocated, fmt.Sprintf("Trùng lịch, dời sang %s (lần %d)", next.Format(displayLayout), attempt))
		start = next
		adj.Relocated = true

		remaining, err := cal.Overlapping(ctx, start, start.Add(duration), "")
		if err != nil {
			return nil, fmt.Errorf("checking conflicts: %w", err)
		}
		secured = len(remaining) == 0
	}

	if !secured {
		adj.warn(WarnNoSlot, fmt.Sprintf("Đã dời lịch %d lần nhưng vẫn trùng, giữ thời gian %s",
			r.MaxRelocations, start.Format(displayLayout)))
	}
	adj.Start = start
	adj.Secured = secured
	return adj, nil
}

func (a *Adjustment) warn(code WarningCode, msg string) {
	a.Warnings = append(a.Warnings, Warning{Code: code, Message: msg})
}

func (r *Rules) intersectsLunch(start, end time.Time) bool {
	return Overlaps(start, end, domain.At(start, r.LunchStart, 0), domain.At(start, r.LunchEnd, 0))
}

// fitsDay reports whether [start, end) lies within the business day of start
// and clear of lunch.
func (r *Rules) fitsDay(start, end time.Time) bool {
	if start.Before(domain.At(start, r.Open, 0)) || end.After(domain.At(start, r.Close, 0)) {
		return false
	}
	return !r.intersectsLunch(start, end)
}
