package domain

import (
	"fmt"
	"strings"
	"time"
)

// ScheduleEntry is a stored appointment occupying the half-open interval
// [StartTime, EndTime).
type ScheduleEntry struct {
	ID          string
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Source      EntrySource
	DeletedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EntrySource records how an entry was created.
type EntrySource string

const (
	SourceManual  EntrySource = "manual"
	SourceAdvised EntrySource = "advised"
)

// Validate checks the fields every stored entry must satisfy.
func (e *ScheduleEntry) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if e.StartTime.IsZero() || e.EndTime.IsZero() {
		return fmt.Errorf("start and end time are required")
	}
	if !e.StartTime.Before(e.EndTime) {
		return fmt.Errorf("start %s must be before end %s",
			e.StartTime.Format(time.RFC3339), e.EndTime.Format(time.RFC3339))
	}
	return nil
}

func (e *ScheduleEntry) Duration() time.Duration {
	return e.EndTime.Sub(e.StartTime)
}

// Overlaps reports whether the entry intersects [start, end).
func (e *ScheduleEntry) Overlaps(start, end time.Time) bool {
	return e.StartTime.Before(end) && e.EndTime.After(start)
}

// DisplayID truncates the id for terminal output.
func (e *ScheduleEntry) DisplayID() string {
	if len(e.ID) >= 8 {
		return e.ID[:8]
	}
	return e.ID
}
