package schedule

import (
	"strconv"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/kids-activity-tracker/backend/internal/domain"
)

const dateLayout = "2006-01-02"

// FormatDate renders a date as the canonical yyyy-MM-dd key. All date
// equality in this package goes through this form, never through the
// underlying instant, so time-of-day and zone drift cannot split two
// bookings on the same calendar day.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// CanonicalDate normalizes raw to yyyy-MM-dd when parseable and returns it
// unchanged otherwise.
func CanonicalDate(raw string) string {
	if d := ParseDateFlexible(raw); d != nil {
		return FormatDate(*d)
	}
	return raw
}

// LooseDateParser is the last-resort step of ParseDateFlexible, covering
// free-form dates like "Jan 15, 2026". The default tries a fixed layout list;
// deployments that need strictness can install their own with
// SetLooseDateParser before serving traffic.
type LooseDateParser interface {
	Parse(raw string) (time.Time, bool)
}

type layoutListParser struct {
	layouts []string
}

func (p layoutListParser) Parse(raw string) (time.Time, bool) {
	for _, layout := range p.layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

var looseParser LooseDateParser = layoutListParser{layouts: []string{
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"January 2 2006",
	"2 Jan 2006",
	"2 January 2006",
	"2006/1/2",
}}

// SetLooseDateParser swaps the free-form parsing step. Call it during startup
// only; the parser is read without locking afterwards.
func SetLooseDateParser(p LooseDateParser) {
	if p != nil {
		looseParser = p
	}
}

// ParseDateFlexible parses a date string, trying strict ISO 8601 first
// (yyyy-MM-dd or a full timestamp), then the slash form M/D/Y (two-digit
// years below 50 map to 20YY, the rest to 19YY), then the loose parser.
// Returns nil when nothing matches; callers treat nil as unscheduled.
func ParseDateFlexible(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	if t, err := time.Parse(dateLayout, s); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = midnight(t)
		return &t
	}

	if t, ok := parseSlashDate(s); ok {
		return &t
	}

	if t, ok := looseParser.Parse(s); ok {
		t = midnight(t)
		return &t
	}

	return nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func parseSlashDate(s string) (time.Time, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, false
	}

	switch len(parts[2]) {
	case 1, 2:
		if year < 50 {
			year += 2000
		} else {
			year += 1900
		}
	case 4:
		// four-digit years are taken as given
	default:
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (2/30 becomes 3/1 or 3/2), so a changed
	// component means the input was not a real calendar date.
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

var dayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"sun":       time.Sunday,
	"monday":    time.Monday,
	"mon":       time.Monday,
	"tuesday":   time.Tuesday,
	"tue":       time.Tuesday,
	"tues":      time.Tuesday,
	"wednesday": time.Wednesday,
	"wed":       time.Wednesday,
	"thursday":  time.Thursday,
	"thu":       time.Thursday,
	"thur":      time.Thursday,
	"thurs":     time.Thursday,
	"friday":    time.Friday,
	"fri":       time.Friday,
	"saturday":  time.Saturday,
	"sat":       time.Saturday,
}

// DayNameToNumber resolves a weekday name (full, 3-letter, or the irregular
// "tues"/"thur"/"thurs" abbreviations, any case) to its weekday. Unrecognized
// names return ok=false and must never be treated as Sunday.
func DayNameToNumber(name string) (time.Weekday, bool) {
	wd, ok := dayNames[strings.ToLower(strings.TrimSpace(name))]
	return wd, ok
}

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Sunday:    rrule.SU,
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
}

func resolveWeekdays(names []string) []rrule.Weekday {
	out := make([]rrule.Weekday, 0, len(names))
	seen := make(map[time.Weekday]bool)
	for _, name := range names {
		wd, ok := DayNameToNumber(name)
		if !ok || seen[wd] {
			continue
		}
		seen[wd] = true
		out = append(out, rruleWeekdays[wd])
	}
	return out
}

// ExpandDateRange lists every yyyy-MM-dd from start to end inclusive, in
// chronological order. When daysOfWeek contains at least one entry that
// resolves to a weekday, only matching dates are kept; a filter whose entries
// all fail to resolve behaves like no filter. A start after end yields an
// empty list.
func ExpandDateRange(start, end time.Time, daysOfWeek []string) []string {
	startDay := midnight(start)
	endDay := midnight(end)
	if startDay.After(endDay) {
		return []string{}
	}

	opts := rrule.ROption{
		Freq:    rrule.DAILY,
		Dtstart: startDay,
		Until:   endDay,
	}
	if weekdays := resolveWeekdays(daysOfWeek); len(weekdays) > 0 {
		opts.Freq = rrule.WEEKLY
		opts.Byweekday = weekdays
	}

	rule, err := rrule.NewRRule(opts)
	if err != nil {
		return []string{}
	}

	dates := rule.Between(startDay, endDay, true)
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, FormatDate(d))
	}
	return out
}

// IsActivityOnDate reports whether the activity occurs on target. Schedule
// fields are checked in priority order, first present field decides: a single
// scheduled date (exact date-string match), explicit session dates, then a
// date range where an accompanying weekday filter additionally restricts the
// match. An activity with none of these fields occurs on no date.
func IsActivityOnDate(activity *domain.Activity, target time.Time) bool {
	targetKey := FormatDate(target)

	if activity.ScheduledDate != "" {
		d := ParseDateFlexible(activity.ScheduledDate)
		return d != nil && FormatDate(*d) == targetKey
	}

	if len(activity.SessionDates) > 0 {
		for _, session := range activity.SessionDates {
			if d := ParseDateFlexible(session); d != nil && FormatDate(*d) == targetKey {
				return true
			}
		}
		return false
	}

	if activity.DateStart != "" && activity.DateEnd != "" {
		start := ParseDateFlexible(activity.DateStart)
		end := ParseDateFlexible(activity.DateEnd)
		if start == nil || end == nil {
			return false
		}
		// yyyy-MM-dd keys order lexicographically
		if targetKey < FormatDate(*start) || targetKey > FormatDate(*end) {
			return false
		}

		resolved := false
		for _, name := range activity.DaysOfWeek {
			wd, ok := DayNameToNumber(name)
			if !ok {
				continue
			}
			resolved = true
			if wd == target.Weekday() {
				return true
			}
		}
		// a filter with no usable entries matches every date in range
		return !resolved
	}

	return false
}

// ExpandActivityDates materializes the concrete dates an activity occurs on
// within [from, to] inclusive, in chronological order.
func ExpandActivityDates(activity *domain.Activity, from, to time.Time) []string {
	out := []string{}
	for d := midnight(from); !d.After(midnight(to)); d = d.AddDate(0, 0, 1) {
		if IsActivityOnDate(activity, d) {
			out = append(out, FormatDate(d))
		}
	}
	return out
}
