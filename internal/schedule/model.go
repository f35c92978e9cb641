package schedule

import "github.com/kids-activity-tracker/backend/internal/domain"

// OverlapType is the qualitative relationship between a proposed slot and an
// existing booking, seen from the proposed slot's side.
type OverlapType string

const (
	OverlapNone         OverlapType = "none"
	OverlapFull         OverlapType = "full"          // proposed slot sits entirely inside the existing one
	OverlapContains     OverlapType = "contains"      // proposed slot swallows the existing one
	OverlapPartialStart OverlapType = "partial-start" // proposed slot starts inside the existing one and runs past its end
	OverlapPartialEnd   OverlapType = "partial-end"   // proposed slot starts first and ends inside the existing one
)

type Overlap struct {
	Type    OverlapType `json:"type"`
	Minutes int         `json:"minutes"`
}

// TimeSlot is one candidate or booked time commitment on a single date.
type TimeSlot struct {
	Date      string `json:"date"`      // yyyy-MM-dd
	StartTime string `json:"startTime"` // HH:mm
	EndTime   string `json:"endTime"`   // HH:mm
}

type Conflict struct {
	ExistingActivity *domain.ScheduledActivity `json:"existingActivity"`
	OverlapType      OverlapType               `json:"overlapType"`
	OverlapMinutes   int                       `json:"overlapMinutes"`
	Description      string                    `json:"description"`
}
