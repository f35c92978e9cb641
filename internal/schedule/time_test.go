package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeString12Hour(t *testing.T) {
	got := ParseTimeString("9:30 AM")
	require.NotNil(t, got)
	assert.Equal(t, 9, got.Hours)
	assert.Equal(t, 30, got.Minutes)
	assert.Equal(t, "09:30", got.Format24h())
	assert.Equal(t, "9:30 AM", got.Format12h())

	got = ParseTimeString("9:30pm")
	require.NotNil(t, got)
	assert.Equal(t, 21, got.Hours)
	assert.Equal(t, "9:30 PM", got.Format12h())
}

func TestParseTimeString24Hour(t *testing.T) {
	got := ParseTimeString("14:00")
	require.NotNil(t, got)
	assert.Equal(t, 14, got.Hours)
	assert.Equal(t, 0, got.Minutes)
	assert.Equal(t, "14:00", got.Format24h())
	assert.Equal(t, "2:00 PM", got.Format12h())
}

func TestParseTimeStringMidnightAndNoon(t *testing.T) {
	midnight := ParseTimeString("12:00 am")
	require.NotNil(t, midnight)
	assert.Equal(t, 0, midnight.Hours)
	assert.Equal(t, "12:00 AM", midnight.Format12h())

	noon := ParseTimeString("12:00 PM")
	require.NotNil(t, noon)
	assert.Equal(t, 12, noon.Hours)
	assert.Equal(t, "12:00 PM", noon.Format12h())
}

// A bare h:mm with no AM/PM keeps its digits as given. This is accepted
// ambiguity, not a bug to fix here.
func TestParseTimeStringBareDigits(t *testing.T) {
	got := ParseTimeString("9:30")
	require.NotNil(t, got)
	assert.Equal(t, 9, got.Hours)
	assert.Equal(t, 30, got.Minutes)
}

func TestParseTimeStringRejectsBadInput(t *testing.T) {
	for _, raw := range []string{"", "garbage", "25:00", "9:75", "12", "12:3", "9:30 xm"} {
		assert.Nil(t, ParseTimeString(raw), "input %q", raw)
	}
}

func TestTimeToMinutes(t *testing.T) {
	assert.Equal(t, 870, TimeToMinutes("14:30"))
	assert.Equal(t, 570, TimeToMinutes("9:30 AM"))
	// unparsable input sorts like midnight
	assert.Equal(t, 0, TimeToMinutes("garbage"))
	assert.Equal(t, 0, TimeToMinutes(""))
}

func TestMinutesToTime(t *testing.T) {
	assert.Equal(t, "08:00", MinutesToTime(480))
	assert.Equal(t, "00:00", MinutesToTime(0))
	assert.Equal(t, "19:59", MinutesToTime(1199))
}
