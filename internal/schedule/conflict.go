package schedule

import "github.com/kids-activity-tracker/backend/internal/domain"

// Bookings with no recorded time are treated as spanning the whole day, so a
// proposed slot on that date always gets flagged. Over-reporting beats
// silently missing a clash.
const (
	defaultStartTime = "00:00"
	defaultEndTime   = "23:59"
)

func startOrDefault(b *domain.ScheduledActivity) string {
	if b.StartTime == "" {
		return defaultStartTime
	}
	return b.StartTime
}

func endOrDefault(b *domain.ScheduledActivity) string {
	if b.EndTime == "" {
		return defaultEndTime
	}
	return b.EndTime
}

func sameDate(raw, canonical string) bool {
	if raw == canonical {
		return true
	}
	d := ParseDateFlexible(raw)
	return d != nil && FormatDate(*d) == canonical
}

// DetectConflicts compares a proposed slot against a child's existing
// bookings and returns one Conflict per overlapping booking on the slot's
// date. The existing collection is read as a snapshot and never mutated.
// Always returns a non-nil slice.
func DetectConflicts(slot TimeSlot, childID int64, existing []*domain.ScheduledActivity) []Conflict {
	date := CanonicalDate(slot.Date)

	conflicts := make([]Conflict, 0)
	for _, booking := range existing {
		if booking.ChildID != childID {
			continue
		}
		if !sameDate(booking.ScheduledDate, date) {
			continue
		}

		ov := Classify(slot.StartTime, slot.EndTime, startOrDefault(booking), endOrDefault(booking))
		if ov.Type == OverlapNone || ov.Minutes <= 0 {
			continue
		}

		conflicts = append(conflicts, Conflict{
			ExistingActivity: booking,
			OverlapType:      ov.Type,
			OverlapMinutes:   ov.Minutes,
			Description:      ov.Describe(),
		})
	}
	return conflicts
}

// DetectRescheduleConflicts is DetectConflicts with the booking being moved
// excluded from the comparison set, so a booking never conflicts with its own
// previous slot.
func DetectRescheduleConflicts(bookingID int64, slot TimeSlot, childID int64, existing []*domain.ScheduledActivity) []Conflict {
	others := make([]*domain.ScheduledActivity, 0, len(existing))
	for _, booking := range existing {
		if booking.ID != bookingID {
			others = append(others, booking)
		}
	}
	return DetectConflicts(slot, childID, others)
}

// DetectDayConflicts groups one day's bookings by child, in encounter order,
// and reports every overlapping unordered pair within a child; each pair's
// Conflict references the later-encountered booking. Children without
// conflicts are absent from the map entirely.
func DetectDayConflicts(date string, all []*domain.ScheduledActivity) map[int64][]Conflict {
	day := CanonicalDate(date)

	byChild := make(map[int64][]*domain.ScheduledActivity)
	childOrder := make([]int64, 0)
	for _, booking := range all {
		if !sameDate(booking.ScheduledDate, day) {
			continue
		}
		if _, seen := byChild[booking.ChildID]; !seen {
			childOrder = append(childOrder, booking.ChildID)
		}
		byChild[booking.ChildID] = append(byChild[booking.ChildID], booking)
	}

	result := make(map[int64][]Conflict)
	for _, childID := range childOrder {
		bookings := byChild[childID]
		if len(bookings) < 2 {
			continue
		}

		conflicts := make([]Conflict, 0)
		for i := 0; i < len(bookings); i++ {
			for j := i + 1; j < len(bookings); j++ {
				ov := Classify(
					startOrDefault(bookings[i]), endOrDefault(bookings[i]),
					startOrDefault(bookings[j]), endOrDefault(bookings[j]),
				)
				if ov.Type == OverlapNone || ov.Minutes <= 0 {
					continue
				}
				conflicts = append(conflicts, Conflict{
					ExistingActivity: bookings[j],
					OverlapType:      ov.Type,
					OverlapMinutes:   ov.Minutes,
					Description:      ov.Describe(),
				})
			}
		}

		if len(conflicts) > 0 {
			result[childID] = conflicts
		}
	}
	return result
}
