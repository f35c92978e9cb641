// Package ical renders a child's bookings as an iCalendar feed so parents
// can subscribe from their own calendar apps.
package ical

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/kids-activity-tracker/backend/internal/domain"
	"github.com/kids-activity-tracker/backend/internal/schedule"
)

const uidDomain = "kids-activity-tracker"

// BuildChildCalendar serializes the bookings into a VCALENDAR. Bookings whose
// date cannot be parsed are skipped; bookings without recorded times become
// all-day events. All times are wall-clock, matching how they are stored.
func BuildChildCalendar(child *domain.Child, bookings []*domain.ScheduledActivity, now time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Kids Activity Tracker//Schedule//EN")
	cal.SetName(fmt.Sprintf("%s's activities", child.Name))

	for _, booking := range bookings {
		day := schedule.ParseDateFlexible(booking.ScheduledDate)
		if day == nil {
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("booking-%d@%s", booking.ID, uidDomain))
		event.SetDtStampTime(now)
		event.SetSummary(booking.ActivityName)

		start := schedule.ParseTimeString(booking.StartTime)
		end := schedule.ParseTimeString(booking.EndTime)
		if start == nil || end == nil {
			event.SetAllDayStartAt(*day)
			event.SetAllDayEndAt(day.AddDate(0, 0, 1))
			continue
		}

		event.SetStartAt(day.Add(time.Duration(start.Hours*60+start.Minutes) * time.Minute))
		event.SetEndAt(day.Add(time.Duration(end.Hours*60+end.Minutes) * time.Minute))
	}

	return cal.Serialize()
}
