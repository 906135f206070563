package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/lichhen/internal/config"
	"github.com/alexanderramin/lichhen/internal/domain"
	"github.com/alexanderramin/lichhen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRules() *Rules {
	return NewRules(config.Default().Business)
}

// busyCalendar reports a conflict for every interval but lists no entries,
// so the slot finder keeps proposing times that never stick.
type busyCalendar struct{}

func (busyCalendar) EntriesForDay(context.Context, time.Time) ([]*domain.ScheduleEntry, error) {
	return nil, nil
}

func (busyCalendar) Overlapping(_ context.Context, start, end time.Time, _ string) ([]*domain.ScheduleEntry, error) {
	return []*domain.ScheduleEntry{testutil.NewTestEntry("ghost", start)}, nil
}

type failingCalendar struct{ err error }

func (f failingCalendar) EntriesForDay(context.Context, time.Time) ([]*domain.ScheduleEntry, error) {
	return nil, f.err
}

func (f failingCalendar) Overlapping(context.Context, time.Time, time.Time, string) ([]*domain.ScheduleEntry, error) {
	return nil, f.err
}

func TestNewRules_FromConfig(t *testing.T) {
	r := newTestRules()
	assert.Equal(t, 8, r.Open)
	assert.Equal(t, 17, r.Close)
	assert.Equal(t, 9, r.NextDayStart)
	assert.Equal(t, 12, r.LunchStart)
	assert.Equal(t, 13, r.LunchEnd)
	assert.Equal(t, 5, r.MaxRelocations)
	assert.Equal(t, 2, r.LookaheadDays(domain.PriorityHigh))
	assert.Equal(t, 7, r.LookaheadDays(domain.PriorityNormal))
	assert.Equal(t, 7, r.LookaheadDays(domain.PriorityLow))

	r = NewRules(config.BusinessHours{Open: 8, Close: 17})
	assert.Equal(t, DefaultMaxRelocations, r.MaxRelocations)
}

func TestAdjust_CleanInputUnchanged(t *testing.T) {
	start := testutil.At(2025, 8, 13, 14, 0)
	adj, err := newTestRules().Adjust(context.Background(), NewSnapshot(nil), start, time.Hour, domain.PriorityNormal)
	require.NoError(t, err)

	assert.True(t, adj.Start.Equal(start))
	assert.Empty(t, adj.Warnings)
	assert.Empty(t, adj.Conflicts)
	assert.True(t, adj.Secured)
	assert.False(t, adj.Relocated)
}

func TestAdjust_HourRules(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		duration time.Duration
		want     time.Time
		codes    []WarningCode
	}{
		{"lunch", testutil.At(2025, 8, 13, 12, 30), time.Hour, testutil.At(2025, 8, 13, 13, 0), []WarningCode{WarnLunch}},
		{"ends in lunch", testutil.At(2025, 8, 13, 11, 30), time.Hour, testutil.At(2025, 8, 13, 13, 0), []WarningCode{WarnLunch}},
		{"ends at lunch", testutil.At(2025, 8, 13, 11, 0), time.Hour, testutil.At(2025, 8, 13, 11, 0), nil},
		{"before open", testutil.At(2025, 8, 13, 7, 15), time.Hour, testutil.At(2025, 8, 13, 8, 0), []WarningCode{WarnBeforeOpen}},
		{"after close", testutil.At(2025, 8, 13, 17, 30), time.Hour, testutil.At(2025, 8, 14, 9, 0), []WarningCode{WarnAfterClose}},
		{"at close", testutil.At(2025, 8, 13, 17, 0), 30 * time.Minute, testutil.At(2025, 8, 14, 9, 0), []WarningCode{WarnAfterClose}},
		{"ends after close", testutil.At(2025, 8, 13, 16, 30), time.Hour, testutil.At(2025, 8, 14, 9, 0), []WarningCode{WarnAfterClose}},
		{"ends at close", testutil.At(2025, 8, 13, 16, 0), time.Hour, testutil.At(2025, 8, 13, 16, 0), nil},
		{"weekend warns only", testutil.At(2025, 8, 16, 10, 0), time.Hour, testutil.At(2025, 8, 16, 10, 0), []WarningCode{WarnWeekend}},
		{"weekend evening", testutil.At(2025, 8, 16, 20, 0), time.Hour, testutil.At(2025, 8, 17, 9, 0), []WarningCode{WarnWeekend, WarnAfterClose}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adj, err := newTestRules().Adjust(context.Background(), NewSnapshot(nil), tt.start, tt.duration, domain.PriorityNormal)
			require.NoError(t, err)
			assert.Equal(t, tt.want, adj.Start)
			assert.True(t, adj.Original.Equal(tt.start))

			var codes []WarningCode
			for _, w := range adj.Warnings {
				codes = append(codes, w.Code)
				assert.NotEmpty(t, w.Message)
			}
			assert.Equal(t, tt.codes, codes)
		})
	}
}

func TestAdjust_ConflictRelocates(t *testing.T) {
	busy := testutil.NewTestEntry("Họp team", testutil.At(2025, 8, 13, 14, 0))
	snap := NewSnapshot([]*domain.ScheduleEntry{busy})

	start := testutil.At(2025, 8, 13, 14, 0)
	adj, err := newTestRules().Adjust(context.Background(), snap, start, time.Hour, domain.PriorityNormal)
	require.NoError(t, err)

	require.Len(t, adj.Conflicts, 1)
	assert.Equal(t, busy.ID, adj.Conflicts[0].ID)
	assert.True(t, adj.Relocated)
	assert.True(t, adj.Secured)
	assert.Equal(t, testutil.At(2025, 8, 13, 15, 0), adj.Start)
	assert.True(t, adj.HasWarning(WarnRelocated))
	assert.False(t, Overlaps(adj.Start, adj.Start.Add(time.Hour), busy.StartTime, busy.EndTime))
}

func TestAdjust_LunchShiftThenConflict(t *testing.T) {
	busy := testutil.NewTestEntry("Đào tạo", testutil.At(2025, 8, 13, 13, 0), testutil.WithDuration(2*time.Hour))
	snap := NewSnapshot([]*domain.ScheduleEntry{busy})

	adj, err := newTestRules().Adjust(context.Background(), snap, testutil.At(2025, 8, 13, 12, 30), time.Hour, domain.PriorityNormal)
	require.NoError(t, err)

	assert.True(t, adj.HasWarning(WarnLunch))
	assert.True(t, adj.HasWarning(WarnRelocated))
	assert.Equal(t, testutil.At(2025, 8, 13, 15, 0), adj.Start)
}

func TestAdjust_NoSlotKeepsLastAttempt(t *testing.T) {
	var entries []*domain.ScheduleEntry
	for d := 13; d <= 15; d++ {
		entries = append(entries, testutil.NewTestEntry("full day", testutil.At(2025, 8, d, 8, 0), testutil.WithDuration(9*time.Hour)))
	}
	start := testutil.At(2025, 8, 13, 10, 0)

	adj, err := newTestRules().Adjust(context.Background(), NewSnapshot(entries), start, time.Hour, domain.PriorityHigh)
	require.NoError(t, err)

	assert.False(t, adj.Secured)
	assert.False(t, adj.Relocated)
	assert.True(t, adj.HasWarning(WarnNoSlot))
	assert.Equal(t, start, adj.Start)
	assert.Len(t, adj.Conflicts, 1)
}

func TestAdjust_RelocationCeiling(t *testing.T) {
	r := newTestRules()
	adj, err := r.Adjust(context.Background(), busyCalendar{}, testutil.At(2025, 8, 13, 10, 0), time.Hour, domain.PriorityNormal)
	require.NoError(t, err)

	relocations := 0
	for _, w := range adj.Warnings {
		if w.Code == WarnRelocated {
			relocations++
		}
	}
	assert.Equal(t, r.MaxRelocations, relocations)
	assert.False(t, adj.Secured)
	assert.Equal(t, WarnNoSlot, adj.Warnings[len(adj.Warnings)-1].Code)
}

func TestAdjust_CalendarError(t *testing.T) {
	boom := errors.New("disk gone")
	_, err := newTestRules().Adjust(context.Background(), failingCalendar{err: boom}, testutil.At(2025, 8, 13, 10, 0), time.Hour, domain.PriorityNormal)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
