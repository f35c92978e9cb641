package schedule

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kids-activity-tracker/backend/internal/domain"
)

func TestSuggestAlternativeTimesEmptyDay(t *testing.T) {
	slot := TimeSlot{Date: "2026-01-15", StartTime: "09:00", EndTime: "10:00"}

	got := SuggestAlternativeTimes(slot, 1, nil, 60)
	require.Len(t, got, 1)
	assert.Equal(t, "08:00", got[0].StartTime)
	assert.Equal(t, "09:00", got[0].EndTime)
	assert.Equal(t, "2026-01-15", got[0].Date)
}

func TestSuggestAlternativeTimesWalksGaps(t *testing.T) {
	existing := []*domain.ScheduledActivity{
		booking(1, 1, "2026-01-15", "09:00", "10:00"),
		booking(2, 1, "2026-01-15", "12:00", "13:00"),
	}
	slot := TimeSlot{Date: "2026-01-15", StartTime: "09:00", EndTime: "10:00"}

	got := SuggestAlternativeTimes(slot, 1, existing, 60)
	require.Len(t, got, 3)
	assert.Equal(t, "08:00", got[0].StartTime)
	assert.Equal(t, "10:00", got[1].StartTime)
	assert.Equal(t, "13:00", got[2].StartTime)
	for _, s := range got {
		assert.Equal(t, 60, TimeToMinutes(s.EndTime)-TimeToMinutes(s.StartTime))
	}
}

func TestSuggestAlternativeTimesTruncatesToThree(t *testing.T) {
	existing := []*domain.ScheduledActivity{
		booking(1, 1, "2026-01-15", "09:00", "09:30"),
		booking(2, 1, "2026-01-15", "10:30", "11:00"),
		booking(3, 1, "2026-01-15", "12:00", "12:30"),
		booking(4, 1, "2026-01-15", "14:00", "14:30"),
	}
	slot := TimeSlot{Date: "2026-01-15", StartTime: "09:00", EndTime: "09:30"}

	got := SuggestAlternativeTimes(slot, 1, existing, 30)
	assert.Len(t, got, 3)
}

// Overlapping or out-of-order bookings must never move the cursor backwards.
func TestSuggestAlternativeTimesCursorGuard(t *testing.T) {
	existing := []*domain.ScheduledActivity{
		booking(1, 1, "2026-01-15", "09:00", "12:00"),
		booking(2, 1, "2026-01-15", "09:30", "10:00"), // ends before the cursor
	}
	slot := TimeSlot{Date: "2026-01-15", StartTime: "09:00", EndTime: "10:00"}

	got := SuggestAlternativeTimes(slot, 1, existing, 60)
	require.Len(t, got, 2)
	assert.Equal(t, "08:00", got[0].StartTime)
	assert.Equal(t, "12:00", got[1].StartTime)
}

func TestSuggestAlternativeTimesDefaultDuration(t *testing.T) {
	slot := TimeSlot{Date: "2026-01-15"}
	got := SuggestAlternativeTimes(slot, 1, nil, 0)
	require.Len(t, got, 1)
	assert.Equal(t, 60, TimeToMinutes(got[0].EndTime)-TimeToMinutes(got[0].StartTime))
}

// No suggestion may ever overlap an existing booking, for any set of
// non-overlapping bookings and any duration up to the full 12-hour window.
func TestSuggestAlternativeTimesNeverOverlaps(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 500; trial++ {
		// carve the day into random non-overlapping bookings
		n := rng.Intn(6)
		starts := make([]int, 0, n)
		for i := 0; i < n; i++ {
			starts = append(starts, rng.Intn(23*60))
		}
		sort.Ints(starts)

		existing := make([]*domain.ScheduledActivity, 0, n)
		for i, start := range starts {
			limit := 24 * 60
			if i+1 < len(starts) {
				limit = starts[i+1]
			}
			if limit-start < 2 {
				continue
			}
			end := start + 1 + rng.Intn(limit-start-1)
			existing = append(existing, booking(int64(i+1), 1, "2026-01-15", MinutesToTime(start), MinutesToTime(end)))
		}

		duration := 1 + rng.Intn(720)
		slot := TimeSlot{Date: "2026-01-15", StartTime: "09:00", EndTime: "10:00"}

		for _, suggestion := range SuggestAlternativeTimes(slot, 1, existing, duration) {
			for _, b := range existing {
				ov := Classify(suggestion.StartTime, suggestion.EndTime, b.StartTime, b.EndTime)
				assert.Equal(t, OverlapNone, ov.Type,
					"trial %d: suggestion %s-%s overlaps booking %s-%s",
					trial, suggestion.StartTime, suggestion.EndTime, b.StartTime, b.EndTime)
			}
		}
	}
}
