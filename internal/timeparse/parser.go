// Package timeparse turns Vietnamese time expressions ("chiều thứ 6 tuần sau",
// "15/8 lúc 14h", "sau 3 ngày") into concrete instants.
//
// Rules are tried in a fixed order from most to least specific. A rule that
// matches but resolves to an instant not after "now" is skipped, and the next
// rule gets a chance.
package timeparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/alexanderramin/lichhen/internal/domain"
	"golang.org/x/text/unicode/norm"
)

// Match is a resolved instant together with the rule that produced it.
type Match struct {
	Time time.Time
	Rule string
}

// Parser resolves expressions in a fixed location. It holds no per-request
// state; "now" is passed to every call.
type Parser struct {
	loc   *time.Location
	rules []rule
}

type resolver func(s *submatch, now time.Time) (time.Time, bool)

type rule struct {
	name    string
	re      *regexp.Regexp
	resolve resolver
}

// New returns a parser producing instants in loc (time.Local when nil).
func New(loc *time.Location) *Parser {
	if loc == nil {
		loc = time.Local
	}
	return &Parser{loc: loc, rules: defaultRules}
}

func (p *Parser) Location() *time.Location { return p.loc }

// ExtractTime returns the first instant strictly after now that text refers to.
func (p *Parser) ExtractTime(text string, now time.Time) (time.Time, bool) {
	m, ok := p.Extract(text, now)
	return m.Time, ok
}

// Extract is ExtractTime that also reports which rule matched.
func (p *Parser) Extract(text string, now time.Time) (Match, bool) {
	now = now.In(p.loc)
	normalized := Normalize(text)
	if normalized == "" {
		return Match{}, false
	}
	for _, r := range p.rules {
		for _, idx := range r.re.FindAllStringSubmatchIndex(normalized, -1) {
			t, ok := r.resolve(&submatch{text: normalized, idx: idx, re: r.re}, now)
			if !ok {
				continue
			}
			t = t.In(p.loc)
			if t.After(now) {
				return Match{Time: t, Rule: r.name}, true
			}
		}
	}
	return Match{}, false
}

// Normalize lower-cases text, composes Vietnamese diacritics (NFC) and
// collapses whitespace.
func Normalize(text string) string {
	lowered := strings.ToLower(norm.NFC.String(text))
	return strings.Join(strings.Fields(lowered), " ")
}

const (
	lb        = `(?:^|[^\p{L}\p{N}])`
	periodAlt = `sáng|chiều|tối`
	weekdayRe = `thứ\s*(?:[2-7]|hai|ba|tư|năm|sáu|bảy)|chủ\s*nhật|cn|t[2-7]`
	qualAlt   = `tuần\s*(?:này|sau|tới)`
	relAlt    = `hôm\s*nay|ngày\s*mai|ngày\s*kia|ngày\s*mốt|mai|mốt|today|tomorrow`
	sep       = `\s*,?\s*`

	// An hour needs either a unit (h, giờ, :) or a "lúc"/"vào" prefix to
	// count; submatch.clock enforces that.
	clockRe = `(?:(?P<at>lúc|vào\s*lúc|vào)\s*)?(?P<hour>\d{1,2})(?:\s*(?P<unit>giờ|h|:)\s*(?P<min>\d{1,2})?(?:\s*phút)?)?`
)

var (
	wdRe    = lb + `(?P<wd>` + weekdayRe + `)`
	per0Re  = `(?:(?P<per0>` + periodAlt + `)\s*)?`
	perRe   = `(?:(?P<per>` + periodAlt + `)\s*)?`
	relRe   = lb + `(?P<rel>` + relAlt + `)`
	clockLB = `(?:^|[^\p{L}\p{N}:/])`

	clockPattern  = regexp.MustCompile(clockLB + `(?:(?P<dur>trong|kéo\s*dài|mất)\s+)?` + per0Re + clockRe + `(?:\s*(?P<per>` + periodAlt + `))?`)
	periodPattern = regexp.MustCompile(lb + `(?P<per>` + periodAlt + `)`)
	relPattern    = regexp.MustCompile(relRe)

	// "tuần này" that belongs to a named weekday, either order.
	weekdayThisWeek = regexp.MustCompile(wdRe + `\s*tuần\s*này|tuần\s*này\s*(?:vào\s*)?,?\s*(?:` + weekdayRe + `)`)
)

var defaultRules = []rule{
	{"iso_date", regexp.MustCompile(`(?:^|[^\d])(?P<y>\d{4})-(?P<mo>\d{1,2})-(?P<d>\d{1,2})`), resolveDate},
	{"date", regexp.MustCompile(`(?:^|[^\d/:-])(?:ngày\s*)?(?P<d>\d{1,2})[/-](?P<mo>\d{1,2})(?:[/-](?P<y>\d{4}|\d{2}))?`), resolveDate},

	{"time_weekday_this_week", regexp.MustCompile(per0Re + clockRe + sep + perRe + wdRe + `\s*tuần\s*này`), resolveTimeWeekday(ScopeThisWeek)},
	{"time_weekday_next_week", regexp.MustCompile(per0Re + clockRe + sep + perRe + wdRe + `\s*tuần\s*(?:sau|tới)`), resolveTimeWeekday(ScopeNextWeek)},
	{"weekday_time", regexp.MustCompile(per0Re + wdRe + `\s*(?:(?P<qual>` + qualAlt + `)\s*)?` + sep + perRe + clockRe + `(?:\s*(?P<per2>` + periodAlt + `))?(?:\s*(?P<qual2>` + qualAlt + `))?`), resolveWeekdayTime},
	{"time_weekday", regexp.MustCompile(per0Re + clockRe + sep + perRe + wdRe), resolveTimeWeekday(ScopeBare)},

	{"period_weekday", regexp.MustCompile(lb + `(?P<per>` + periodAlt + `)` + sep + wdRe + `(?:\s*(?P<qual>` + qualAlt + `))?(?:` + sep + clockRe + `)?`), resolvePeriodWeekday},
	{"weekday", regexp.MustCompile(`(?:(?P<qual0>` + qualAlt + `)\s*(?:vào\s*)?,?\s*)?` + wdRe + `(?:\s*(?P<qual>` + qualAlt + `))?`), resolveWeekday},

	{"time_period_relday", regexp.MustCompile(clockLB + `(?:(?P<dur>trong|kéo\s*dài|mất)\s+)?` + clockRe + sep + `(?P<per>` + periodAlt + `)\s*` + relRe), resolveTimePeriodRelDay},
	{"period_relday", regexp.MustCompile(lb + `(?P<per>` + periodAlt + `)` + sep + relRe + `(?:` + sep + clockRe + `)?`), resolvePeriodRelDay},
	{"relday_period", regexp.MustCompile(relRe + sep + `(?:` + clockRe + `\s*)?(?P<per>` + periodAlt + `)`), resolvePeriodRelDay},

	{"after_n", regexp.MustCompile(lb + `sau\s*(?P<n>\d{1,3})\s*(?P<u>ngày|tuần|tháng)`), resolveOffset},
	{"n_later", regexp.MustCompile(`(?:^|[^\d])(?P<n>\d{1,3})\s*(?P<u>ngày|tuần|tháng)\s*(?:nữa|tới)`), resolveOffset},

	{"clock", clockPattern, resolveClock},
	{"relday", relPattern, resolveRelDay},
	{"next_week", regexp.MustCompile(`tuần\s*(?:sau|tới)|next\s*week`), resolveNextWeek},
	{"this_week", regexp.MustCompile(`tuần\s*này|this\s*week`), resolveThisWeek},
	{"next_month", regexp.MustCompile(`tháng\s*(?:sau|tới)|next\s*month`), resolveNextMonth},
}

func resolveDate(s *submatch, now time.Time) (time.Time, bool) {
	if s.runsInto("d") || s.runsInto("mo") && s.get("y") == "" || s.get("y") != "" && s.runsInto("y") {
		return time.Time{}, false
	}
	day, _ := s.atoi("d")
	month, _ := s.atoi("mo")
	year := now.Year()
	explicitYear := false
	if y, ok := s.atoi("y"); ok {
		if y < 100 {
			y += 2000
		}
		year, explicitYear = y, true
	}
	if !validDate(year, month, day) {
		return time.Time{}, false
	}

	hour, minute := 8, 0
	if h, m, per, ok := firstClock(s.text, s.idx[0], s.idx[1]); ok {
		hour, minute = h, m
		if per != "" {
			hour = CoerceHour(per, hour)
		}
	} else if per, ok := firstPeriod(s.text); ok {
		hour = periodDefault(per)
	}

	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, now.Location())
	if !explicitYear && domain.StartOfDay(t).Before(domain.StartOfDay(now)) {
		if !validDate(year+1, month, day) {
			return time.Time{}, false
		}
		t = t.AddDate(1, 0, 0)
	}
	return t, true
}

func resolveTimeWeekday(scope WeekScope) resolver {
	return func(s *submatch, now time.Time) (time.Time, bool) {
		target, ok := s.weekday()
		if !ok {
			return time.Time{}, false
		}
		hour, minute, ok := s.clock()
		if !ok {
			return time.Time{}, false
		}
		if per, ok := s.period(); ok {
			hour = CoerceHour(per, hour)
		}
		return ResolveWeekday(target, now, scope, hour, minute), true
	}
}

func resolveWeekdayTime(s *submatch, now time.Time) (time.Time, bool) {
	target, ok := s.weekday()
	if !ok {
		return time.Time{}, false
	}
	hour, minute, ok := s.clock()
	if !ok {
		return time.Time{}, false
	}
	if per, ok := s.period(); ok {
		hour = CoerceHour(per, hour)
	}
	if q := s.qual(); q != "" {
		return ResolveWeekday(target, now, parseScope(q), hour, minute), true
	}
	// Without a qualifier today still counts if the hour has not passed yet.
	t := ResolveWeekday(target, now, ScopeUpcoming, hour, minute)
	if !t.After(now) {
		t = t.AddDate(0, 0, 7)
	}
	return t, true
}

func resolvePeriodWeekday(s *submatch, now time.Time) (time.Time, bool) {
	target, ok := s.weekday()
	if !ok {
		return time.Time{}, false
	}
	per, ok := s.period()
	if !ok {
		return time.Time{}, false
	}
	hour, minute := periodDefault(per), 0
	if h, m, ok := s.clock(); ok {
		hour, minute = CoerceHour(per, h), m
	}
	return ResolveWeekday(target, now, parseScope(s.qual()), hour, minute), true
}

func resolveWeekday(s *submatch, now time.Time) (time.Time, bool) {
	target, ok := s.weekday()
	if !ok {
		return time.Time{}, false
	}
	return ResolveWeekday(target, now, parseScope(s.qual()), 8, 0), true
}

func resolvePeriodRelDay(s *submatch, now time.Time) (time.Time, bool) {
	offset, ok := s.relDay()
	if !ok {
		return time.Time{}, false
	}
	per, ok := s.period()
	if !ok {
		return time.Time{}, false
	}
	hour, minute := periodDefault(per), 0
	if h, m, ok := s.clock(); ok {
		hour, minute = CoerceHour(per, h), m
	}
	return domain.At(now.AddDate(0, 0, offset), hour, minute), true
}

func resolveTimePeriodRelDay(s *submatch, now time.Time) (time.Time, bool) {
	if s.get("dur") != "" {
		return time.Time{}, false
	}
	offset, ok := s.relDay()
	if !ok {
		return time.Time{}, false
	}
	hour, minute, ok := s.clock()
	if !ok {
		return time.Time{}, false
	}
	if per, ok := s.period(); ok {
		hour = CoerceHour(per, hour)
	}
	return domain.At(now.AddDate(0, 0, offset), hour, minute), true
}

func resolveOffset(s *submatch, now time.Time) (time.Time, bool) {
	n, ok := s.atoi("n")
	if !ok {
		return time.Time{}, false
	}
	base := domain.At(now, 8, 0)
	switch s.get("u") {
	case "ngày":
		return base.AddDate(0, 0, n), true
	case "tuần":
		return base.AddDate(0, 0, 7*n), true
	case "tháng":
		return addMonthsClamped(base, n), true
	}
	return time.Time{}, false
}

func resolveClock(s *submatch, now time.Time) (time.Time, bool) {
	if s.get("dur") != "" {
		return time.Time{}, false
	}
	hour, minute, ok := s.clock()
	if !ok {
		return time.Time{}, false
	}
	if per, ok := s.period(); ok {
		hour = CoerceHour(per, hour)
	}
	if offset, ok := firstRelDay(s.text); ok {
		return domain.At(now.AddDate(0, 0, offset), hour, minute), true
	}
	t := domain.At(now, hour, minute)
	if !t.After(now) {
		t = t.AddDate(0, 0, 1)
	}
	return t, true
}

func resolveRelDay(s *submatch, now time.Time) (time.Time, bool) {
	offset, ok := s.relDay()
	if !ok {
		return time.Time{}, false
	}
	return domain.At(now.AddDate(0, 0, offset), 8, 0), true
}

func resolveNextWeek(_ *submatch, now time.Time) (time.Time, bool) {
	return domain.At(now.AddDate(0, 0, 7), 8, 0), true
}

// resolveThisWeek prefers today 08:00, then tomorrow 08:00 while tomorrow is
// still in the current week. It never replaces a weekday the text names.
func resolveThisWeek(s *submatch, now time.Time) (time.Time, bool) {
	if weekdayThisWeek.MatchString(s.text) {
		return time.Time{}, false
	}
	if t := domain.At(now, 8, 0); t.After(now) {
		return t, true
	}
	if domain.WeekdayIndex(now) < 6 {
		return domain.At(now.AddDate(0, 0, 1), 8, 0), true
	}
	return time.Time{}, false
}

func resolveNextMonth(_ *submatch, now time.Time) (time.Time, bool) {
	y, m, _ := now.Date()
	return time.Date(y, m+1, 1, 8, 0, 0, 0, now.Location()), true
}

// firstClock finds the first valid clock expression outside [skipFrom, skipTo).
func firstClock(text string, skipFrom, skipTo int) (int, int, domain.TimeOfDay, bool) {
	for _, idx := range clockPattern.FindAllStringSubmatchIndex(text, -1) {
		if idx[0] < skipTo && idx[1] > skipFrom {
			continue
		}
		s := &submatch{text: text, idx: idx, re: clockPattern}
		if s.get("dur") != "" {
			continue
		}
		if h, m, ok := s.clock(); ok {
			per, _ := s.period()
			return h, m, per, true
		}
	}
	return 0, 0, "", false
}

func firstPeriod(text string) (domain.TimeOfDay, bool) {
	m := periodPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return parsePeriod(m[periodPattern.SubexpIndex("per")])
}

func firstRelDay(text string) (int, bool) {
	for _, idx := range relPattern.FindAllStringSubmatchIndex(text, -1) {
		s := &submatch{text: text, idx: idx, re: relPattern}
		if off, ok := s.relDay(); ok {
			return off, true
		}
	}
	return 0, false
}

func validDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Day() == day
}

// submatch gives named access to one regexp match.
type submatch struct {
	text string
	idx  []int
	re   *regexp.Regexp
}

func (s *submatch) span(name string) (int, int, bool) {
	i := s.re.SubexpIndex(name)
	if i < 0 || s.idx[2*i] < 0 {
		return 0, 0, false
	}
	return s.idx[2*i], s.idx[2*i+1], true
}

func (s *submatch) get(name string) string {
	start, end, ok := s.span(name)
	if !ok {
		return ""
	}
	return s.text[start:end]
}

func (s *submatch) atoi(name string) (int, bool) {
	v := s.get(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	return n, err == nil
}

// runsInto reports whether the named group is immediately followed by a
// letter or digit, i.e. it is only the prefix of a longer word.
func (s *submatch) runsInto(name string) bool {
	_, end, ok := s.span(name)
	if !ok || end >= len(s.text) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s.text[end:])
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (s *submatch) weekday() (int, bool) {
	if s.runsInto("wd") {
		return 0, false
	}
	return parseWeekday(s.get("wd"))
}

func (s *submatch) relDay() (int, bool) {
	if s.runsInto("rel") {
		return 0, false
	}
	return relativeDayOffset(s.get("rel"))
}

// period returns the period word closest to the hour: after it, between, then before.
func (s *submatch) period() (domain.TimeOfDay, bool) {
	for _, name := range []string{"per2", "per", "per0"} {
		if p, ok := parsePeriod(s.get(name)); ok {
			return p, true
		}
	}
	return "", false
}

func (s *submatch) qual() string {
	return domain.CoalesceStr(s.get("qual"), s.get("qual2"), s.get("qual0"))
}

// clock validates the hour/minute groups. A bare number without a unit or a
// "lúc"/"vào" prefix is not an hour, and "3 h" followed by a letter is a word.
func (s *submatch) clock() (int, int, bool) {
	if s.get("hour") == "" {
		return 0, 0, false
	}
	unit, at := s.get("unit"), s.get("at")
	if unit == "" && at == "" {
		return 0, 0, false
	}
	if unit == "h" && s.get("min") == "" && s.runsInto("unit") {
		return 0, 0, false
	}
	if unit == "" && s.runsInto("hour") {
		return 0, 0, false
	}
	hour, _ := s.atoi("hour")
	minute, _ := s.atoi("min")
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
