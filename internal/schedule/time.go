package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TimeOfDay is a parsed wall-clock time. Values are recomputed per parse and
// never mutated.
type TimeOfDay struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

var timePattern = regexp.MustCompile(`^\s*(\d{1,2}):(\d{2})\s*([AaPp][Mm])?\s*$`)

// ParseTimeString normalizes a free-form time-of-day string. It accepts
// 12-hour forms like "9:30 AM" / "9:30pm" and 24-hour forms like "14:00".
// A bare "h:mm" with no AM/PM suffix keeps its digits as given, so "9:30"
// means 09:30 and "14:00" means 14:00; disambiguating bare morning times is
// the caller's responsibility. Out-of-range or unparsable input returns nil,
// never an error.
func ParseTimeString(raw string) *TimeOfDay {
	m := timePattern.FindStringSubmatch(raw)
	if m == nil {
		return nil
	}

	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])

	switch strings.ToLower(m[3]) {
	case "pm":
		if hours < 12 {
			hours += 12
		}
	case "am":
		if hours == 12 {
			hours = 0
		}
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return nil
	}

	return &TimeOfDay{Hours: hours, Minutes: minutes}
}

// Format24h renders the time as HH:mm.
func (t TimeOfDay) Format24h() string {
	return fmt.Sprintf("%02d:%02d", t.Hours, t.Minutes)
}

// Format12h renders the time with a display hour in 1..12 and an explicit
// AM/PM suffix; midnight is "12:00 AM" and noon "12:00 PM".
func (t TimeOfDay) Format12h() string {
	period := "AM"
	if t.Hours >= 12 {
		period = "PM"
	}

	display := t.Hours % 12
	if display == 0 {
		display = 12
	}

	return fmt.Sprintf("%d:%02d %s", display, t.Minutes, period)
}

// TimeToMinutes returns the offset from midnight in minutes for a parseable
// time string. Unparsable input returns 0, i.e. it sorts like midnight; this
// deliberately conflates "no recorded time" with 00:00 so that ordering and
// defaulting stay total. Callers that must tell the two apart should call
// ParseTimeString and check for nil instead.
func TimeToMinutes(raw string) int {
	t := ParseTimeString(raw)
	if t == nil {
		return 0
	}
	return t.Hours*60 + t.Minutes
}

// MinutesToTime renders a minute offset from midnight as HH:mm.
func MinutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
