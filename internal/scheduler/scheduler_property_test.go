package scheduler

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/lichhen/internal/domain"
	"github.com/alexanderramin/lichhen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomInstant(rng *rand.Rand) time.Time {
	base := testutil.At(2025, 8, 11, 0, 0)
	return base.Add(time.Duration(rng.Intn(14*24*4)) * 15 * time.Minute)
}

func randomEntries(rng *rand.Rand, n int) []*domain.ScheduleEntry {
	out := make([]*domain.ScheduleEntry, n)
	for i := range out {
		start := randomInstant(rng)
		out[i] = testutil.NewTestEntry("busy", start, testutil.WithDuration(time.Duration(rng.Intn(8)+1)*15*time.Minute))
	}
	return out
}

func calendarDaysBetween(a, b time.Time) int {
	return int(domain.StartOfDay(b).Sub(domain.StartOfDay(a)).Hours() / 24)
}

// TestOverlaps_Symmetric property-tests that overlap is symmetric and that
// touching intervals never overlap.
func TestOverlaps_Symmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 500; trial++ {
		s1 := randomInstant(rng)
		e1 := s1.Add(time.Duration(rng.Intn(16)+1) * 15 * time.Minute)
		s2 := randomInstant(rng)
		e2 := s2.Add(time.Duration(rng.Intn(16)+1) * 15 * time.Minute)

		assert.Equal(t, Overlaps(s1, e1, s2, e2), Overlaps(s2, e2, s1, e1), "trial %d", trial)
		assert.False(t, Overlaps(s1, e1, e1, e1.Add(time.Hour)), "trial %d: touching after", trial)
		assert.False(t, Overlaps(s1.Add(-time.Hour), s1, s1, e1), "trial %d: touching before", trial)
	}
}

// TestFindNextSlot_RespectsBound checks that a found slot stays inside the
// priority's horizon, lands on a weekday, fits business hours and is free.
func TestFindNextSlot_RespectsBound(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	r := newTestRules()
	priorities := []domain.Priority{domain.PriorityHigh, domain.PriorityNormal, domain.PriorityLow}

	for trial := 0; trial < 300; trial++ {
		entries := randomEntries(rng, rng.Intn(60))
		snap := NewSnapshot(entries)
		from := randomInstant(rng)
		duration := time.Duration(rng.Intn(8)+1) * 15 * time.Minute
		priority := priorities[rng.Intn(len(priorities))]

		got, err := r.FindNextSlot(context.Background(), snap, from, duration, priority)
		if err != nil {
			require.True(t, errors.Is(err, ErrNoSlotAvailable), "trial %d: %v", trial, err)
			continue
		}

		assert.LessOrEqual(t, calendarDaysBetween(from, got), r.LookaheadDays(priority), "trial %d", trial)
		assert.False(t, got.Before(from), "trial %d: slot before search start", trial)
		assert.False(t, domain.IsWeekend(got), "trial %d: weekend slot", trial)
		assert.True(t, r.fitsDay(got, got.Add(duration)), "trial %d: outside business hours", trial)

		busy, _ := snap.Overlapping(context.Background(), got, got.Add(duration), "")
		assert.Empty(t, busy, "trial %d: slot %s overlaps", trial, got)
	}
}

// TestAdjust_IdempotentOnCleanInput checks that a conflict-free weekday
// business-hour candidate comes back unchanged.
func TestAdjust_IdempotentOnCleanInput(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	r := newTestRules()

	for trial := 0; trial < 200; trial++ {
		day := testutil.At(2025, 8, 11+rng.Intn(5), 0, 0)
		starts := r.CanonicalStarts(day)
		start := starts[rng.Intn(len(starts))]
		duration := 30 * time.Minute

		adj, err := r.Adjust(context.Background(), NewSnapshot(nil), start, duration, domain.PriorityNormal)
		require.NoError(t, err)
		assert.Equal(t, start, adj.Start, "trial %d", trial)
		assert.Empty(t, adj.Warnings, "trial %d", trial)

		again, err := r.Adjust(context.Background(), NewSnapshot(nil), adj.Start, duration, domain.PriorityNormal)
		require.NoError(t, err)
		assert.Equal(t, adj.Start, again.Start, "trial %d", trial)
	}
}

// TestAdjust_ResultIsConflictFreeWhenSecured checks every secured result
// against the snapshot it was computed from.
func TestAdjust_ResultIsConflictFreeWhenSecured(t *testing.T) {
	rng := rand.New(rand.NewSource(2025))
	r := newTestRules()

	for trial := 0; trial < 200; trial++ {
		snap := NewSnapshot(randomEntries(rng, rng.Intn(40)))
		start := randomInstant(rng)
		duration := time.Duration(rng.Intn(4)+1) * 30 * time.Minute

		adj, err := r.Adjust(context.Background(), snap, start, duration, domain.PriorityNormal)
		require.NoError(t, err)
		if !adj.Secured {
			assert.True(t, adj.HasWarning(WarnNoSlot), "trial %d", trial)
			continue
		}
		busy, _ := snap.Overlapping(context.Background(), adj.Start, adj.Start.Add(duration), "")
		assert.Empty(t, busy, "trial %d", trial)
		if len(adj.Conflicts) > 0 {
			assert.NotEqual(t, start, adj.Start, "trial %d", trial)
		}
	}
}
