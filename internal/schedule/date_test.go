package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kids-activity-tracker/backend/internal/domain"
)

func TestParseDateFlexible(t *testing.T) {
	cases := []struct {
		raw  string
		want string // canonical yyyy-MM-dd, "" for nil
	}{
		{"2026-01-15", "2026-01-15"},
		{"2026-01-15T10:30:00Z", "2026-01-15"},
		{"1/15/2026", "2026-01-15"},
		{"12/1/2026", "2026-12-01"},
		{"1/15/26", "2026-01-15"},
		{"1/15/99", "1999-01-15"},
		{"Jan 15, 2026", "2026-01-15"},
		{"January 15, 2026", "2026-01-15"},
		{"2/30/2026", ""}, // not a real calendar date
		{"13/1/2026", ""},
		{"garbage", ""},
		{"", ""},
	}

	for _, tc := range cases {
		got := ParseDateFlexible(tc.raw)
		if tc.want == "" {
			assert.Nil(t, got, "input %q", tc.raw)
			continue
		}
		require.NotNil(t, got, "input %q", tc.raw)
		assert.Equal(t, tc.want, FormatDate(*got), "input %q", tc.raw)
	}
}

func TestDayNameToNumber(t *testing.T) {
	for raw, want := range map[string]time.Weekday{
		"Monday": time.Monday,
		"mon":    time.Monday,
		"TUES":   time.Tuesday,
		"thur":   time.Thursday,
		"thurs":  time.Thursday,
		"sun":    time.Sunday,
	} {
		got, ok := DayNameToNumber(raw)
		require.True(t, ok, "input %q", raw)
		assert.Equal(t, want, got, "input %q", raw)
	}

	_, ok := DayNameToNumber("notaday")
	assert.False(t, ok)
}

func TestExpandDateRange(t *testing.T) {
	day := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("single day, no filter", func(t *testing.T) {
		assert.Equal(t, []string{"2026-01-15"}, ExpandDateRange(day, day, nil))
	})

	t.Run("weekday filter", func(t *testing.T) {
		// 2026-01-05 is a Monday
		start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC)
		got := ExpandDateRange(start, end, []string{"mon", "wed"})
		assert.Equal(t, []string{"2026-01-05", "2026-01-07"}, got)
	})

	t.Run("filter with no usable entries returns every date", func(t *testing.T) {
		start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)
		got := ExpandDateRange(start, end, []string{"noday", ""})
		assert.Equal(t, []string{"2026-01-05", "2026-01-06", "2026-01-07"}, got)
	})

	t.Run("start after end is empty", func(t *testing.T) {
		assert.Empty(t, ExpandDateRange(day, day.AddDate(0, 0, -1), nil))
	})
}

func TestIsActivityOnDate(t *testing.T) {
	target := time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC) // a Wednesday

	t.Run("single scheduled date wins", func(t *testing.T) {
		a := &domain.Activity{ScheduledDate: "2026-01-07"}
		assert.True(t, IsActivityOnDate(a, target))

		// a present scheduledDate decides even when sessions would match
		a = &domain.Activity{ScheduledDate: "2026-01-08", SessionDates: []string{"2026-01-07"}}
		assert.False(t, IsActivityOnDate(a, target))
	})

	t.Run("session dates", func(t *testing.T) {
		a := &domain.Activity{SessionDates: []string{"1/5/2026", "1/7/2026"}}
		assert.True(t, IsActivityOnDate(a, target))

		a = &domain.Activity{SessionDates: []string{"2026-01-08"}}
		assert.False(t, IsActivityOnDate(a, target))
	})

	t.Run("date range with weekday filter", func(t *testing.T) {
		a := &domain.Activity{DateStart: "2026-01-01", DateEnd: "2026-01-31", DaysOfWeek: []string{"wed"}}
		assert.True(t, IsActivityOnDate(a, target))

		a.DaysOfWeek = []string{"mon"}
		assert.False(t, IsActivityOnDate(a, target))

		// unresolvable filter behaves like no filter
		a.DaysOfWeek = []string{"notaday"}
		assert.True(t, IsActivityOnDate(a, target))
	})

	t.Run("date range without filter", func(t *testing.T) {
		a := &domain.Activity{DateStart: "2026-01-01", DateEnd: "2026-01-31"}
		assert.True(t, IsActivityOnDate(a, target))
		assert.False(t, IsActivityOnDate(a, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("no schedule fields means no dates", func(t *testing.T) {
		assert.False(t, IsActivityOnDate(&domain.Activity{}, target))
	})
}

func TestExpandActivityDates(t *testing.T) {
	a := &domain.Activity{DateStart: "2026-01-05", DateEnd: "2026-01-18", DaysOfWeek: []string{"sat"}}
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []string{"2026-01-10", "2026-01-17"}, ExpandActivityDates(a, from, to))
}
