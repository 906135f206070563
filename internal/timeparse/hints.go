package timeparse

import (
	"strings"
	"time"

	"github.com/alexanderramin/lichhen/internal/domain"
)

var dateHintLayouts = []struct {
	layout  string
	hasYear bool
}{
	{"2006-01-02", true},
	{"2/1/2006", true},
	{"2-1-2006", true},
	{"2/1", false},
	{"2-1", false},
}

// ParseDate reads a structured date hint ("15/8", "15/8/2025", "15-08-2025"
// or "2025-08-15") as midnight in the parser's location. Without a year the
// next occurrence on or after today is used.
func (p *Parser) ParseDate(s string, now time.Time) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	now = now.In(p.loc)
	for _, l := range dateHintLayouts {
		t, err := time.ParseInLocation(l.layout, s, p.loc)
		if err != nil {
			continue
		}
		if l.hasYear {
			return t, true
		}
		day := t.Day()
		month := int(t.Month())
		year := now.Year()
		if !validDate(year, month, day) {
			return time.Time{}, false
		}
		t = time.Date(year, time.Month(month), day, 0, 0, 0, 0, p.loc)
		if t.Before(domain.StartOfDay(now)) {
			if !validDate(year+1, month, day) {
				return time.Time{}, false
			}
			t = t.AddDate(1, 0, 0)
		}
		return t, true
	}
	return time.Time{}, false
}

// ParseWeekday maps a weekday name ("thứ 6", "T6", "Chủ nhật") onto a
// Monday-based index.
func ParseWeekday(s string) (int, bool) {
	return parseWeekday(Normalize(s))
}

// ClockIn reports the hour and minute stated anywhere in text: an explicit
// clock, coerced into an accompanying period, or else a period's default hour.
func ClockIn(text string) (hour, minute int, ok bool) {
	normalized := Normalize(text)
	if h, m, per, ok := firstClock(normalized, 0, 0); ok {
		if per != "" {
			h = CoerceHour(per, h)
		}
		return h, m, true
	}
	if per, ok := firstPeriod(normalized); ok {
		return periodDefault(per), 0, true
	}
	return 0, 0, false
}

// TimeOfDayIn reports the period word ("sáng", "chiều", "tối") in text.
func TimeOfDayIn(text string) (domain.TimeOfDay, bool) {
	return firstPeriod(Normalize(text))
}
