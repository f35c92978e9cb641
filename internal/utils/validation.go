package utils

import (
	"errors"
	"fmt"

	"github.com/kids-activity-tracker/backend/internal/domain"
	"github.com/kids-activity-tracker/backend/internal/schedule"
)

// ValidateSlotTimes checks that both times parse and that the slot has a
// positive duration. Degenerate slots never take part in overlap math, so
// they are rejected at the API boundary instead of silently booked.
func ValidateSlotTimes(startTime, endTime string) error {
	start := schedule.ParseTimeString(startTime)
	if start == nil {
		return fmt.Errorf("start time %q is not a valid time", startTime)
	}
	end := schedule.ParseTimeString(endTime)
	if end == nil {
		return fmt.Errorf("end time %q is not a valid time", endTime)
	}

	if schedule.TimeToMinutes(endTime) <= schedule.TimeToMinutes(startTime) {
		return errors.New("end time must be after start time")
	}

	return nil
}

// ValidateActivitySchedule checks the schedule fields an activity was
// submitted with: any dates present must parse, a range must not be inverted,
// and times must be valid when both are given.
func ValidateActivitySchedule(activity *domain.Activity) error {
	if activity.ScheduledDate != "" && schedule.ParseDateFlexible(activity.ScheduledDate) == nil {
		return fmt.Errorf("scheduled date %q is not a valid date", activity.ScheduledDate)
	}

	for _, session := range activity.SessionDates {
		if schedule.ParseDateFlexible(session) == nil {
			return fmt.Errorf("session date %q is not a valid date", session)
		}
	}

	if (activity.DateStart == "") != (activity.DateEnd == "") {
		return errors.New("date range requires both a start and an end date")
	}
	if activity.DateStart != "" {
		start := schedule.ParseDateFlexible(activity.DateStart)
		if start == nil {
			return fmt.Errorf("start date %q is not a valid date", activity.DateStart)
		}
		end := schedule.ParseDateFlexible(activity.DateEnd)
		if end == nil {
			return fmt.Errorf("end date %q is not a valid date", activity.DateEnd)
		}
		if schedule.FormatDate(*start) > schedule.FormatDate(*end) {
			return errors.New("start date must not be after end date")
		}
	}

	// weekday names are resolved leniently at expansion time, but reject a
	// filter made up entirely of unrecognized names at ingest
	if len(activity.DaysOfWeek) > 0 {
		usable := false
		for _, name := range activity.DaysOfWeek {
			if _, ok := schedule.DayNameToNumber(name); ok {
				usable = true
				break
			}
		}
		if !usable {
			return errors.New("none of the weekday names are recognized")
		}
	}

	if activity.StartTime != "" && activity.EndTime != "" {
		return ValidateSlotTimes(activity.StartTime, activity.EndTime)
	}

	return nil
}
