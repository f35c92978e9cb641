package schedule

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyOrdering(t *testing.T) {
	cases := []struct {
		name           string
		ns, ne, es, ee string
		wantType       OverlapType
		wantMinutes    int
	}{
		{"disjoint before", "08:00", "09:00", "10:00", "11:00", OverlapNone, 0},
		{"disjoint after", "12:00", "13:00", "10:00", "11:00", OverlapNone, 0},
		{"touching endpoints do not overlap", "09:00", "10:00", "10:00", "11:00", OverlapNone, 0},
		{"new contains existing", "09:00", "12:00", "10:00", "11:00", OverlapContains, 60},
		{"existing contains new", "10:00", "11:00", "09:00", "12:00", OverlapFull, 60},
		{"identical intervals classify as contains", "10:00", "11:00", "10:00", "11:00", OverlapContains, 60},
		{"new ends inside existing", "09:00", "10:30", "10:00", "11:00", OverlapPartialEnd, 30},
		{"new starts inside existing", "09:30", "10:30", "09:00", "10:00", OverlapPartialStart, 30},
		{"degenerate new slot", "10:00", "10:00", "09:00", "11:00", OverlapNone, 0},
		{"degenerate existing slot", "09:00", "11:00", "10:00", "10:00", OverlapNone, 0},
		{"inverted new slot", "11:00", "10:00", "09:00", "12:00", OverlapNone, 0},
		{"unparsable times degenerate to none", "garbage", "more garbage", "09:00", "10:00", OverlapNone, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.ns, tc.ne, tc.es, tc.ee)
			assert.Equal(t, tc.wantType, got.Type)
			assert.Equal(t, tc.wantMinutes, got.Minutes)
		})
	}
}

// For well-formed intervals the classifier must agree with the plain
// disjointness predicate, and the reported minutes must always be the true
// intersection length, bounded by both durations.
func TestClassifyRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	randInterval := func() (int, int) {
		start := rng.Intn(23 * 60)
		end := start + 1 + rng.Intn(24*60-start-1)
		return start, end
	}

	for i := 0; i < 5000; i++ {
		ns, ne := randInterval()
		es, ee := randInterval()

		got := Classify(MinutesToTime(ns), MinutesToTime(ne), MinutesToTime(es), MinutesToTime(ee))

		if ne <= es || ns >= ee {
			assert.Equal(t, OverlapNone, got.Type, "ns=%d ne=%d es=%d ee=%d", ns, ne, es, ee)
			assert.Zero(t, got.Minutes)
			continue
		}

		assert.NotEqual(t, OverlapNone, got.Type, "ns=%d ne=%d es=%d ee=%d", ns, ne, es, ee)
		assert.Equal(t, min(ne, ee)-max(ns, es), got.Minutes, "ns=%d ne=%d es=%d ee=%d", ns, ne, es, ee)
		assert.LessOrEqual(t, got.Minutes, min(ne-ns, ee-es))
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1 minute", FormatDuration(1))
	assert.Equal(t, "45 minutes", FormatDuration(45))
	assert.Equal(t, "1 hour", FormatDuration(60))
	assert.Equal(t, "2 hours", FormatDuration(120))
	assert.Equal(t, "1h 15m", FormatDuration(75))
}

func TestOverlapDescribe(t *testing.T) {
	assert.Equal(t, "Completely overlaps (45 minutes)", Overlap{Type: OverlapContains, Minutes: 45}.Describe())
	assert.Equal(t, "Overlaps at the start (1h 15m)", Overlap{Type: OverlapPartialStart, Minutes: 75}.Describe())
	assert.Equal(t, "Overlaps at the end (30 minutes)", Overlap{Type: OverlapPartialEnd, Minutes: 30}.Describe())
	assert.Equal(t, "Falls entirely within (1 hour)", Overlap{Type: OverlapFull, Minutes: 60}.Describe())
	assert.Equal(t, "No conflict", Overlap{Type: OverlapNone}.Describe())
}
