// Package icsexport renders stored schedule entries as an iCalendar feed
// that calendar clients can import.
package icsexport

import (
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/alexanderramin/lichhen/internal/domain"
)

const productID = "-//lichhen//Lich hen//VI"

// uidDomain qualifies entry ids so UIDs stay unique across producers.
const uidDomain = "lichhen"

// Build returns a calendar with one VEVENT per live entry. now stamps DTSTAMP.
func Build(entries []*domain.ScheduleEntry, now time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, e := range entries {
		if e.DeletedAt != nil {
			continue
		}
		ev := cal.AddEvent(UID(e))
		ev.SetDtStampTime(now)
		ev.SetStartAt(e.StartTime)
		ev.SetEndAt(e.EndTime)
		ev.SetSummary(e.Title)
		if e.Description != "" {
			ev.SetDescription(e.Description)
		}
		if !e.CreatedAt.IsZero() {
			ev.SetCreatedTime(e.CreatedAt)
		}
		if !e.UpdatedAt.IsZero() {
			ev.SetModifiedAt(e.UpdatedAt)
		}
	}
	return cal
}

// Write serializes entries to w.
func Write(w io.Writer, entries []*domain.ScheduleEntry, now time.Time) error {
	if err := Build(entries, now).SerializeTo(w); err != nil {
		return fmt.Errorf("writing icalendar: %w", err)
	}
	return nil
}

func UID(e *domain.ScheduleEntry) string {
	return e.ID + "@" + uidDomain
}
