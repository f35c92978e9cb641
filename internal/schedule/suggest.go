package schedule

import (
	"sort"

	"github.com/kids-activity-tracker/backend/internal/domain"
)

// Suggestions are confined to a fixed day window; nothing is proposed before
// 08:00 or ending after 20:00.
const (
	suggestDayStart = 8 * 60
	suggestDayEnd   = 20 * 60
	maxSuggestions  = 3
)

// DefaultSuggestionMinutes is the slot length used when the caller does not
// ask for a specific duration.
const DefaultSuggestionMinutes = 60

// SuggestAlternativeTimes greedily proposes up to three free windows of the
// requested duration on the slot's date. The child's bookings are sorted by
// start time (a missing start sorts as midnight, per TimeToMinutes) and each
// gap at least durationMinutes wide yields one candidate, plus a trailing
// candidate before 20:00 if room remains. With no bookings the first
// candidate starts at 08:00. durationMinutes <= 0 falls back to
// DefaultSuggestionMinutes.
func SuggestAlternativeTimes(slot TimeSlot, childID int64, existing []*domain.ScheduledActivity, durationMinutes int) []TimeSlot {
	if durationMinutes <= 0 {
		durationMinutes = DefaultSuggestionMinutes
	}
	date := CanonicalDate(slot.Date)

	bookings := make([]*domain.ScheduledActivity, 0)
	for _, booking := range existing {
		if booking.ChildID == childID && sameDate(booking.ScheduledDate, date) {
			bookings = append(bookings, booking)
		}
	}
	sort.SliceStable(bookings, func(i, j int) bool {
		return TimeToMinutes(bookings[i].StartTime) < TimeToMinutes(bookings[j].StartTime)
	})

	candidates := make([]TimeSlot, 0, maxSuggestions)
	cursor := suggestDayStart

	for _, booking := range bookings {
		start := TimeToMinutes(booking.StartTime)
		end := TimeToMinutes(booking.EndTime)

		if start-cursor >= durationMinutes {
			candidates = append(candidates, TimeSlot{
				Date:      date,
				StartTime: MinutesToTime(cursor),
				EndTime:   MinutesToTime(cursor + durationMinutes),
			})
		}

		// max() keeps overlapping or out-of-order bookings from ever moving
		// the cursor backwards
		if end > cursor {
			cursor = end
		}
	}

	if suggestDayEnd-cursor >= durationMinutes {
		candidates = append(candidates, TimeSlot{
			Date:      date,
			StartTime: MinutesToTime(cursor),
			EndTime:   MinutesToTime(cursor + durationMinutes),
		})
	}

	if len(candidates) > maxSuggestions {
		candidates = candidates[:maxSuggestions]
	}
	return candidates
}
