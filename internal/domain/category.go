package domain

// TaskCategory is a static classification rule: if any keyword occurs in a
// request, the request inherits the category's defaults.
type TaskCategory struct {
	Name            string   `yaml:"name"`
	Label           string   `yaml:"label"`
	Keywords        []string `yaml:"keywords"`
	DurationMinutes int      `yaml:"duration_minutes"`
	Priority        Priority `yaml:"priority"`
	BestStartHour   int      `yaml:"best_start_hour"`
	BestEndHour     int      `yaml:"best_end_hour"`
}

// DefaultCategoryName is reported when no category keyword matches.
const DefaultCategoryName = "general"

// HourWindow is an hour range [Start, End) within a day.
type HourWindow struct {
	Start int
	End   int
}

// Contains reports whether hour h falls inside the window.
func (w HourWindow) Contains(h int) bool {
	return h >= w.Start && h < w.End
}
