package advisor

import (
	"time"

	"github.com/alexanderramin/lichhen/internal/classify"
	"github.com/alexanderramin/lichhen/internal/contract"
	"github.com/alexanderramin/lichhen/internal/domain"
	"github.com/alexanderramin/lichhen/internal/timeparse"
)

// Sources reported in Recommendation.ResolvedBy besides parser rule names.
const (
	ResolvedByDateHint      = "date_hint"
	ResolvedByWeekdayHint   = "weekday_hint"
	ResolvedByTimeOfDayHint = "time_of_day_hint"
)

// resolveTime tries, in order: the date or weekday hint, the free text, the
// time-of-day hint. Hints that do not parse or land in the past are skipped.
func (a *Advisor) resolveTime(req contract.AdviceRequest, now time.Time, info classify.TaskInfo) (time.Time, string, bool) {
	hour, minute := a.hintClock(req, info)

	if day, ok := a.parser.ParseDate(req.PreferredDate, now); ok {
		if t := domain.At(day, hour, minute); t.After(now) {
			return t, ResolvedByDateHint, true
		}
	}

	if req.PreferredWeekday != "" {
		if target, ok := timeparse.ParseWeekday(req.PreferredWeekday); ok {
			t := timeparse.ResolveWeekday(target, now, timeparse.ScopeUpcoming, hour, minute)
			if !t.After(now) {
				t = t.AddDate(0, 0, 7)
			}
			return t, ResolvedByWeekdayHint, true
		}
	}

	if m, ok := a.parser.Extract(req.Text, now); ok {
		return m.Time, m.Rule, true
	}

	if tod, ok := domain.ParseTimeOfDay(req.TimeOfDay); ok {
		t := domain.At(now, tod.DefaultHour(), 0)
		if !t.After(now) {
			t = t.AddDate(0, 0, 1)
		}
		return t, ResolvedByTimeOfDayHint, true
	}

	return time.Time{}, "", false
}

// hintClock picks the hour for a date or weekday hint: the time-of-day hint,
// then a clock or period stated in the text, then the start of the
// category's best window.
func (a *Advisor) hintClock(req contract.AdviceRequest, info classify.TaskInfo) (int, int) {
	if tod, ok := domain.ParseTimeOfDay(req.TimeOfDay); ok {
		return tod.DefaultHour(), 0
	}
	if h, m, ok := timeparse.ClockIn(req.Text); ok {
		return h, m
	}
	return info.BestWindow.Start, 0
}
