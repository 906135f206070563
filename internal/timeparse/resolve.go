package timeparse

import (
	"strings"
	"time"

	"github.com/alexanderramin/lichhen/internal/domain"
)

// WeekScope selects how a weekday reference maps onto a day offset.
type WeekScope int

const (
	// ScopeBare never resolves to today: a same-day reference means next week.
	ScopeBare WeekScope = iota
	// ScopeThisWeek allows today (offset 0).
	ScopeThisWeek
	// ScopeNextWeek always lands in the following week.
	ScopeNextWeek
	// ScopeUpcoming allows today; used when an explicit hour accompanies the
	// weekday and the parser's future check decides.
	ScopeUpcoming
)

// DaysAhead returns how many days after now the target weekday (Monday=0)
// falls under the given scope.
func DaysAhead(target int, now time.Time, scope WeekScope) int {
	today := domain.WeekdayIndex(now)
	switch scope {
	case ScopeNextWeek:
		return target - today + 7
	case ScopeThisWeek, ScopeUpcoming:
		return (target - today + 7) % 7
	default:
		d := (target - today + 7) % 7
		if d == 0 {
			d = 7
		}
		return d
	}
}

// ResolveWeekday returns the date of the target weekday at hour:minute.
func ResolveWeekday(target int, now time.Time, scope WeekScope, hour, minute int) time.Time {
	day := now.AddDate(0, 0, DaysAhead(target, now, scope))
	return domain.At(day, hour, minute)
}

// CoerceHour maps a spoken hour into the period's canonical range, so that
// "chiều 3 giờ" is 15:00. A negative hour yields the period's default.
func CoerceHour(period domain.TimeOfDay, hour int) int {
	switch period {
	case domain.Morning:
		if hour >= 6 && hour <= 11 {
			return hour
		}
		return 8
	case domain.Afternoon:
		if hour >= 12 && hour <= 17 {
			return hour
		}
		if hour >= 0 && hour < 12 && hour+12 <= 17 {
			return hour + 12
		}
		return 14
	case domain.Evening:
		if hour >= 18 && hour <= 23 {
			return hour
		}
		if hour >= 0 && hour < 12 && hour+12 >= 18 && hour+12 <= 23 {
			return hour + 12
		}
		if hour >= 12 && hour <= 17 {
			return hour + 6
		}
		return 19
	}
	return hour
}

// periodDefault is the hour used for a period with no explicit hour.
func periodDefault(period domain.TimeOfDay) int {
	return CoerceHour(period, -1)
}

func parsePeriod(s string) (domain.TimeOfDay, bool) {
	switch strings.TrimSpace(s) {
	case "sáng":
		return domain.Morning, true
	case "chiều":
		return domain.Afternoon, true
	case "tối":
		return domain.Evening, true
	}
	return "", false
}

var weekdayWords = map[string]int{
	"2": 0, "hai": 0,
	"3": 1, "ba": 1,
	"4": 2, "tư": 2,
	"5": 3, "năm": 3,
	"6": 4, "sáu": 4,
	"7": 5, "bảy": 5,
}

// parseWeekday maps a weekday token ("thứ 6", "thứ sáu", "t6", "cn",
// "chủ nhật") onto a Monday-based index.
func parseWeekday(tok string) (int, bool) {
	tok = strings.Join(strings.Fields(tok), " ")
	switch {
	case tok == "cn" || strings.HasPrefix(tok, "chủ"):
		return 6, true
	case strings.HasPrefix(tok, "thứ"):
		idx, ok := weekdayWords[strings.TrimSpace(strings.TrimPrefix(tok, "thứ"))]
		return idx, ok
	case len(tok) == 2 && tok[0] == 't':
		idx, ok := weekdayWords[tok[1:]]
		return idx, ok
	}
	return 0, false
}

func parseScope(qual string) WeekScope {
	switch {
	case qual == "":
		return ScopeBare
	case strings.HasSuffix(qual, "này"):
		return ScopeThisWeek
	default:
		return ScopeNextWeek
	}
}

// relativeDayOffset maps "hôm nay", "mai", "ngày kia"... onto a day offset.
func relativeDayOffset(s string) (int, bool) {
	s = strings.Join(strings.Fields(s), " ")
	switch s {
	case "hôm nay", "today":
		return 0, true
	case "mai", "ngày mai", "tomorrow":
		return 1, true
	case "ngày kia", "ngày mốt", "mốt":
		return 2, true
	}
	return 0, false
}

// addMonthsClamped adds n months, clamping the day to the target month's end.
func addMonthsClamped(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), 0, 0, t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), 0, 0, t.Location())
}
