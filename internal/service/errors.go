package service

import "errors"

var (
	// ErrOverlap is returned when a write would intersect a live entry.
	ErrOverlap = errors.New("entry overlaps an existing entry")
	// ErrInvalidInterval is returned for entries whose start is not before their end.
	ErrInvalidInterval = errors.New("start must be before end")
	// ErrNoTime is returned by SmartAdd when no conflict-free slot was found.
	ErrNoTime = errors.New("no free time slot")
)
