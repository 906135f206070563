package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/lichhen/internal/domain"
)

// resolveEntryID accepts a full entry id or an unambiguous prefix of one.
func resolveEntryID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("entry ID is required")
	}

	entries, err := app.Schedule.List(ctx)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, e := range entries {
		if e.ID == input {
			return e.ID, nil
		}
		if strings.HasPrefix(e.ID, input) {
			matches = append(matches, e.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("entry not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("entry ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

var dateTimeLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"02/01/2006 15:04",
	"2/1/2006 15:04",
}

// parseDateTime reads an absolute "YYYY-MM-DD HH:MM" / "DD/MM/YYYY HH:MM"
// value, falling back to the Vietnamese time parser ("ngày mai lúc 9h").
func parseDateTime(app *App, s string) (time.Time, error) {
	return parseDateTimeFrom(app, s, app.now())
}

// parseDateTimeFrom is parseDateTime with relative phrases resolved against ref.
func parseDateTimeFrom(app *App, s string, ref time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	loc := app.Parser.Location()
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	if t, ok := app.Parser.ExtractTime(s, ref); ok {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q (use YYYY-MM-DD HH:MM or e.g. \"ngày mai lúc 9h\")", s)
}

// parseMonth accepts "2025-08", "8/2025" and "08/2025".
func parseMonth(s string) (int, time.Month, error) {
	for _, layout := range []string{"2006-01", "1/2006", "01/2006"} {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t.Year(), t.Month(), nil
		}
	}
	return 0, 0, fmt.Errorf("invalid month %q (use YYYY-MM)", s)
}

func parseYear(s string) (int, error) {
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || y < 1970 || y > 9999 {
		return 0, fmt.Errorf("invalid year %q", s)
	}
	return y, nil
}

// entryEnd picks the end from --end or --duration, defaulting to one hour.
func entryEnd(app *App, start time.Time, end string, minutes int) (time.Time, error) {
	if end != "" {
		// A bare clock ("15:30") ends on the start's day.
		if t, err := time.ParseInLocation("15:04", strings.TrimSpace(end), start.Location()); err == nil {
			return domain.At(start, t.Hour(), t.Minute()), nil
		}
		if t, err := parseDateTimeFrom(app, end, start); err == nil {
			return t, nil
		}
		return time.Time{}, fmt.Errorf("invalid end %q", end)
	}
	if minutes <= 0 {
		minutes = 60
	}
	return start.Add(time.Duration(minutes) * time.Minute), nil
}
