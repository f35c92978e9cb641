package domain

import "time"

// ScheduledActivity is one booking: a child committed to an activity on a
// concrete date. StartTime/EndTime are HH:mm strings and may be empty when
// the source activity had no recorded time.
type ScheduledActivity struct {
	ID            int64     `json:"id"`
	ChildID       int64     `json:"childID"`
	ActivityID    int64     `json:"activityID"`
	ActivityName  string    `json:"activityName"`
	ScheduledDate string    `json:"scheduledDate"` // yyyy-MM-dd
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime"`
	CreatedAt     time.Time `json:"createdAt"`
	Version       int32     `json:"-"`
}
