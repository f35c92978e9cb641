package domain

import "time"

// Activity is a catalog entry imported from an activity provider. Its schedule
// fields are free-form strings exactly as the importer recorded them; the
// schedule package normalizes them at read time so bad data degrades instead
// of failing ingest.
//
// An activity is scheduled in one of three ways, checked in this priority
// order: a single ScheduledDate, explicit SessionDates, or a
// DateStart..DateEnd range optionally filtered by DaysOfWeek.
type Activity struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Provider      string    `json:"provider"`
	Location      string    `json:"location"`
	ScheduledDate string    `json:"scheduledDate"`
	SessionDates  []string  `json:"sessionDates"`
	DateStart     string    `json:"dateStart"`
	DateEnd       string    `json:"dateEnd"`
	DaysOfWeek    []string  `json:"daysOfWeek"`
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime"`
	CreatedAt     time.Time `json:"createdAt"`
	Version       int32     `json:"-"`
}
