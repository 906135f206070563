// Package classify maps a free-text request onto a task category with its
// default duration, priority and preferred hours.
package classify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/alexanderramin/lichhen/internal/domain"
	"github.com/alexanderramin/lichhen/internal/timeparse"
)

// Defaults applied when no category keyword matches.
const (
	DefaultDurationMinutes = 60
	DefaultBestStart       = 9
	DefaultBestEnd         = 17
)

// TaskInfo is a fresh value per call; callers may modify it freely.
type TaskInfo struct {
	Category        string
	CategoryLabel   string
	DurationMinutes int
	Priority        domain.Priority
	BestWindow      domain.HourWindow

	// Set when the value came from the text rather than a default.
	CategoryMatched  bool
	PriorityFromText bool
	DurationFromText bool
}

// Classifier holds an immutable, ordered category table.
type Classifier struct {
	categories []domain.TaskCategory
	high       []string
	low        []string
}

// New copies categories and keyword lists; later changes by the caller have
// no effect on the classifier.
func New(categories []domain.TaskCategory, highKeywords, lowKeywords []string) *Classifier {
	c := &Classifier{
		categories: make([]domain.TaskCategory, len(categories)),
		high:       normalizeAll(highKeywords),
		low:        normalizeAll(lowKeywords),
	}
	for i, cat := range categories {
		cat.Keywords = normalizeAll(cat.Keywords)
		c.categories[i] = cat
	}
	return c
}

// Categories returns a copy of the category table.
func (c *Classifier) Categories() []domain.TaskCategory {
	out := make([]domain.TaskCategory, len(c.categories))
	for i, cat := range c.categories {
		cat.Keywords = append([]string(nil), cat.Keywords...)
		out[i] = cat
	}
	return out
}

// Classify returns the first category whose keyword occurs in text, with the
// priority overridden by urgency words and the duration by an explicit
// duration phrase.
func (c *Classifier) Classify(text string) TaskInfo {
	normalized := timeparse.Normalize(text)

	info := TaskInfo{
		Category:        domain.DefaultCategoryName,
		CategoryLabel:   "Công việc chung",
		DurationMinutes: DefaultDurationMinutes,
		Priority:        domain.PriorityNormal,
		BestWindow:      domain.HourWindow{Start: DefaultBestStart, End: DefaultBestEnd},
	}
	if cat, ok := c.match(normalized); ok {
		info.Category = cat.Name
		info.CategoryLabel = cat.Label
		info.DurationMinutes = cat.DurationMinutes
		info.Priority = cat.Priority
		info.BestWindow = domain.HourWindow{Start: cat.BestStartHour, End: cat.BestEndHour}
		info.CategoryMatched = true
	}
	if p, ok := c.urgency(normalized); ok {
		info.Priority = p
		info.PriorityFromText = true
	}
	if minutes, ok := ExtractDuration(normalized); ok {
		info.DurationMinutes = minutes
		info.DurationFromText = true
	}
	return info
}

// Urgency reports a priority stated in the text, if any.
func (c *Classifier) Urgency(text string) (domain.Priority, bool) {
	return c.urgency(timeparse.Normalize(text))
}

func (c *Classifier) match(normalized string) (domain.TaskCategory, bool) {
	for _, cat := range c.categories {
		for _, kw := range cat.Keywords {
			if kw != "" && strings.Contains(normalized, kw) {
				return cat, true
			}
		}
	}
	return domain.TaskCategory{}, false
}

// urgency strips low-urgency phrases first so "không gấp" does not count as
// "gấp"; any remaining high keyword wins over a low phrase.
func (c *Classifier) urgency(normalized string) (domain.Priority, bool) {
	stripped := normalized
	foundLow := false
	for _, kw := range c.low {
		if kw != "" && strings.Contains(stripped, kw) {
			foundLow = true
			stripped = strings.ReplaceAll(stripped, kw, " ")
		}
	}
	for _, kw := range c.high {
		if kw != "" && strings.Contains(stripped, kw) {
			return domain.PriorityHigh, true
		}
	}
	if foundLow {
		return domain.PriorityLow, true
	}
	return "", false
}

var (
	hoursPattern   = regexp.MustCompile(`(?P<n>\d+(?:[.,]\d+)?)\s*tiếng(?:\s*(?P<half>rưỡi)|\s*(?P<m>\d{1,2})\s*phút)?`)
	keywordPattern = regexp.MustCompile(`(?:trong|kéo\s*dài|khoảng|mất|thời\s*gian|thời\s*lượng)\s*(?P<n>\d+(?:[.,]\d+)?)\s*(?P<u>giờ|h|phút)(?:\s*(?P<m>\d{1,2})\s*phút)?`)
)

const maxDurationMinutes = 24 * 60

// ExtractDuration reads an explicit duration such as "2 tiếng",
// "1 tiếng rưỡi" or "kéo dài 45 phút". A clock time like "14 giờ" is not a
// duration; "giờ" only counts after a duration keyword.
func ExtractDuration(text string) (int, bool) {
	normalized := timeparse.Normalize(text)

	if m := hoursPattern.FindStringSubmatch(normalized); m != nil {
		minutes, ok := hoursToMinutes(m[hoursPattern.SubexpIndex("n")])
		if !ok {
			return 0, false
		}
		if m[hoursPattern.SubexpIndex("half")] != "" {
			minutes += 30
		}
		if extra, err := strconv.Atoi(m[hoursPattern.SubexpIndex("m")]); err == nil {
			minutes += extra
		}
		return clampDuration(minutes)
	}

	if m := keywordPattern.FindStringSubmatch(normalized); m != nil {
		n := m[keywordPattern.SubexpIndex("n")]
		if m[keywordPattern.SubexpIndex("u")] == "phút" {
			minutes, err := strconv.Atoi(n)
			if err != nil {
				return 0, false
			}
			return clampDuration(minutes)
		}
		minutes, ok := hoursToMinutes(n)
		if !ok {
			return 0, false
		}
		if extra, err := strconv.Atoi(m[keywordPattern.SubexpIndex("m")]); err == nil {
			minutes += extra
		}
		return clampDuration(minutes)
	}
	return 0, false
}

func hoursToMinutes(s string) (int, bool) {
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return int(f * 60), true
}

func clampDuration(minutes int) (int, bool) {
	if minutes <= 0 || minutes > maxDurationMinutes {
		return 0, false
	}
	return minutes, true
}

func normalizeAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if n := timeparse.Normalize(w); n != "" {
			out = append(out, n)
		}
	}
	return out
}
