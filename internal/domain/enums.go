package domain

import "strings"

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
	PriorityLow    Priority = "low"
)

// Label returns the Vietnamese label shown to users.
func (p Priority) Label() string {
	switch p {
	case PriorityHigh:
		return "Cao"
	case PriorityLow:
		return "Thấp"
	default:
		return "Bình thường"
	}
}

// ParsePriority accepts the canonical ids as well as the Vietnamese labels.
func ParsePriority(s string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "cao":
		return PriorityHigh, true
	case "normal", "bình thường", "binh thuong", "trung bình":
		return PriorityNormal, true
	case "low", "thấp", "thap":
		return PriorityLow, true
	}
	return "", false
}

type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
)

// ParseTimeOfDay accepts english ids and the Vietnamese period words.
func ParseTimeOfDay(s string) (TimeOfDay, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "morning", "sáng", "buổi sáng":
		return Morning, true
	case "afternoon", "chiều", "buổi chiều":
		return Afternoon, true
	case "evening", "tối", "buổi tối":
		return Evening, true
	}
	return "", false
}

// DefaultHour is the canonical hour used when only the period is known.
func (t TimeOfDay) DefaultHour() int {
	switch t {
	case Morning:
		return 9
	case Afternoon:
		return 14
	case Evening:
		return 19
	}
	return 9
}

// Label returns the Vietnamese period word.
func (t TimeOfDay) Label() string {
	switch t {
	case Morning:
		return "sáng"
	case Afternoon:
		return "chiều"
	case Evening:
		return "tối"
	}
	return string(t)
}

// MissingField names a piece of information the advisor could not resolve.
type MissingField string

const (
	MissingTime      MissingField = "time"
	MissingDuration  MissingField = "duration"
	MissingPriority  MissingField = "priority"
	MissingTimeOfDay MissingField = "time_of_day"
)

// Label returns the Vietnamese description used in clarifying questions.
func (f MissingField) Label() string {
	switch f {
	case MissingTime:
		return "thời gian cụ thể (ngày/giờ)"
	case MissingDuration:
		return "thời lượng dự kiến"
	case MissingPriority:
		return "mức độ ưu tiên"
	case MissingTimeOfDay:
		return "buổi trong ngày (sáng/chiều/tối)"
	}
	return string(f)
}
