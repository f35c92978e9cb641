package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kids-activity-tracker/backend/internal/domain"
)

func booking(id, childID int64, date, start, end string) *domain.ScheduledActivity {
	return &domain.ScheduledActivity{
		ID:            id,
		ChildID:       childID,
		ActivityID:    id * 100,
		ActivityName:  "Activity",
		ScheduledDate: date,
		StartTime:     start,
		EndTime:       end,
	}
}

func TestDetectConflictsEmpty(t *testing.T) {
	got := DetectConflicts(TimeSlot{Date: "2026-01-15", StartTime: "09:00", EndTime: "10:00"}, 1, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDetectConflictsPartialStart(t *testing.T) {
	existing := []*domain.ScheduledActivity{
		booking(1, 1, "2026-01-15", "09:00", "10:00"),
	}
	slot := TimeSlot{Date: "2026-01-15", StartTime: "09:30", EndTime: "10:30"}

	got := DetectConflicts(slot, 1, existing)
	require.Len(t, got, 1)
	assert.Equal(t, OverlapPartialStart, got[0].OverlapType)
	assert.Equal(t, 30, got[0].OverlapMinutes)
	assert.Same(t, existing[0], got[0].ExistingActivity)
	assert.Equal(t, "Overlaps at the start (30 minutes)", got[0].Description)
}

func TestDetectConflictsFiltersChildAndDate(t *testing.T) {
	existing := []*domain.ScheduledActivity{
		booking(1, 2, "2026-01-15", "09:00", "10:00"), // other child
		booking(2, 1, "2026-01-16", "09:00", "10:00"), // other date
	}
	slot := TimeSlot{Date: "2026-01-15", StartTime: "09:00", EndTime: "10:00"}
	assert.Empty(t, DetectConflicts(slot, 1, existing))
}

func TestDetectConflictsNormalizesBookingDates(t *testing.T) {
	existing := []*domain.ScheduledActivity{
		booking(1, 1, "1/15/2026", "09:00", "10:00"),
	}
	slot := TimeSlot{Date: "2026-01-15", StartTime: "09:00", EndTime: "10:00"}
	assert.Len(t, DetectConflicts(slot, 1, existing), 1)
}

// A booking with no recorded time spans the whole day and flags any slot on
// that date.
func TestDetectConflictsDefaultsMissingTimes(t *testing.T) {
	existing := []*domain.ScheduledActivity{
		booking(1, 1, "2026-01-15", "", ""),
	}
	slot := TimeSlot{Date: "2026-01-15", StartTime: "09:00", EndTime: "10:00"}

	got := DetectConflicts(slot, 1, existing)
	require.Len(t, got, 1)
	assert.Equal(t, OverlapFull, got[0].OverlapType)
	assert.Equal(t, 60, got[0].OverlapMinutes)
}

func TestDetectRescheduleConflictsExcludesSelf(t *testing.T) {
	existing := []*domain.ScheduledActivity{
		booking(7, 1, "2026-01-15", "09:00", "10:00"),
		booking(8, 1, "2026-01-15", "11:00", "12:00"),
	}

	// moving booking 7 onto its own old slot must not self-conflict
	slot := TimeSlot{Date: "2026-01-15", StartTime: "09:00", EndTime: "10:00"}
	assert.Empty(t, DetectRescheduleConflicts(7, slot, 1, existing))

	// but moving it onto booking 8 still does
	slot = TimeSlot{Date: "2026-01-15", StartTime: "11:30", EndTime: "12:30"}
	got := DetectRescheduleConflicts(7, slot, 1, existing)
	require.Len(t, got, 1)
	assert.EqualValues(t, 8, got[0].ExistingActivity.ID)
}

func TestDetectDayConflicts(t *testing.T) {
	all := []*domain.ScheduledActivity{
		booking(1, 1, "2026-01-15", "09:00", "10:00"),
		booking(2, 1, "2026-01-15", "09:30", "10:30"), // clashes with 1
		booking(3, 2, "2026-01-15", "09:00", "10:00"),
		booking(4, 2, "2026-01-15", "10:00", "11:00"), // touching, no clash
		booking(5, 3, "2026-01-15", "09:00", "10:00"), // single booking
		booking(6, 4, "2026-01-16", "09:00", "10:00"), // other date
	}

	got := DetectDayConflicts("2026-01-15", all)

	require.Contains(t, got, int64(1))
	require.Len(t, got[1], 1)
	// the pair's conflict references the later-encountered booking
	assert.EqualValues(t, 2, got[1][0].ExistingActivity.ID)
	assert.Equal(t, OverlapPartialEnd, got[1][0].OverlapType)

	assert.NotContains(t, got, int64(2), "non-overlapping pair must be omitted")
	assert.NotContains(t, got, int64(3), "single booking must be omitted")
	assert.NotContains(t, got, int64(4))
	assert.Len(t, got, 1)
}

func TestDetectDayConflictsAllPairs(t *testing.T) {
	// three mutually overlapping bookings produce three unordered pairs
	all := []*domain.ScheduledActivity{
		booking(1, 1, "2026-01-15", "09:00", "12:00"),
		booking(2, 1, "2026-01-15", "09:30", "10:30"),
		booking(3, 1, "2026-01-15", "10:00", "11:00"),
	}

	got := DetectDayConflicts("2026-01-15", all)
	require.Contains(t, got, int64(1))
	assert.Len(t, got[1], 3)
}
