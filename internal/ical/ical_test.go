package ical

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kids-activity-tracker/backend/internal/domain"
)

func TestBuildChildCalendar(t *testing.T) {
	child := &domain.Child{ID: 1, Name: "Maya"}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	bookings := []*domain.ScheduledActivity{
		{ID: 10, ChildID: 1, ActivityName: "Swim Lessons", ScheduledDate: "2026-01-15", StartTime: "09:00", EndTime: "10:00"},
		{ID: 11, ChildID: 1, ActivityName: "Art Camp", ScheduledDate: "2026-01-16"}, // no times, all-day
		{ID: 12, ChildID: 1, ActivityName: "Broken", ScheduledDate: "garbage"},      // skipped
	}

	out := BuildChildCalendar(child, bookings, now)

	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "SUMMARY:Swim Lessons")
	assert.Contains(t, out, "SUMMARY:Art Camp")
	assert.Contains(t, out, "booking-10@kids-activity-tracker")
	assert.NotContains(t, out, "SUMMARY:Broken")
}
