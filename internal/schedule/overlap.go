package schedule

import "fmt"

// classifyRule pairs a predicate over the four minute offsets with the
// overlap it reports. ns/ne are the proposed slot's start and end, es/ee the
// existing booking's.
type classifyRule struct {
	match  func(ns, ne, es, ee int) bool
	result func(ns, ne, es, ee int) Overlap
}

func noOverlap(ns, ne, es, ee int) Overlap {
	return Overlap{Type: OverlapNone, Minutes: 0}
}

// classifyRules is evaluated top to bottom and the first match wins; the
// ordering is the tie-break policy, so equal-boundary cases land on the
// containment rules before the partial ones.
var classifyRules = []classifyRule{
	{
		// degenerate interval on either side never overlaps anything
		match:  func(ns, ne, es, ee int) bool { return ne <= ns || ee <= es },
		result: noOverlap,
	},
	{
		// disjoint, touching endpoints included
		match:  func(ns, ne, es, ee int) bool { return ne <= es || ns >= ee },
		result: noOverlap,
	},
	{
		// proposed slot fully contains the existing booking
		match: func(ns, ne, es, ee int) bool { return ns <= es && ne >= ee },
		result: func(ns, ne, es, ee int) Overlap {
			return Overlap{Type: OverlapContains, Minutes: ee - es}
		},
	},
	{
		// existing booking fully contains the proposed slot
		match: func(ns, ne, es, ee int) bool { return es <= ns && ee >= ne },
		result: func(ns, ne, es, ee int) Overlap {
			return Overlap{Type: OverlapFull, Minutes: ne - ns}
		},
	},
	{
		// proposed slot starts first and ends inside the existing booking
		match: func(ns, ne, es, ee int) bool { return ns < es && ne > es && ne < ee },
		result: func(ns, ne, es, ee int) Overlap {
			return Overlap{Type: OverlapPartialEnd, Minutes: ne - es}
		},
	},
	{
		// proposed slot starts inside the existing booking and ends after it
		match: func(ns, ne, es, ee int) bool { return ns > es && ns < ee && ne > ee },
		result: func(ns, ne, es, ee int) Overlap {
			return Overlap{Type: OverlapPartialStart, Minutes: ee - ns}
		},
	},
}

// Classify compares a proposed slot against an existing booking on the same
// date. All inputs are HH:mm strings; unparsable ones count as 00:00 per
// TimeToMinutes, which makes them degenerate and therefore overlap-free.
// The reported minutes are the true intersection length and never exceed
// either interval's duration.
func Classify(newStart, newEnd, existStart, existEnd string) Overlap {
	ns := TimeToMinutes(newStart)
	ne := TimeToMinutes(newEnd)
	es := TimeToMinutes(existStart)
	ee := TimeToMinutes(existEnd)

	for _, rule := range classifyRules {
		if rule.match(ns, ne, es, ee) {
			return rule.result(ns, ne, es, ee)
		}
	}

	// Unreachable for well-formed intervals, the rules above are exhaustive.
	// Report the raw intersection so a reachable gap would still be visible.
	minutes := min(ne, ee) - max(ns, es)
	if minutes < 0 {
		minutes = 0
	}
	return Overlap{Type: OverlapPartialStart, Minutes: minutes}
}

// FormatDuration words a minute count the way the calendar UI shows it:
// "45 minutes", "2 hours", or "1h 15m".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		if minutes == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", minutes)
	}

	hours := minutes / 60
	rem := minutes % 60
	if rem == 0 {
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, rem)
}

// Describe renders the warning phrase shown next to a conflict.
func (o Overlap) Describe() string {
	switch o.Type {
	case OverlapContains:
		return fmt.Sprintf("Completely overlaps (%s)", FormatDuration(o.Minutes))
	case OverlapFull:
		return fmt.Sprintf("Falls entirely within (%s)", FormatDuration(o.Minutes))
	case OverlapPartialStart:
		return fmt.Sprintf("Overlaps at the start (%s)", FormatDuration(o.Minutes))
	case OverlapPartialEnd:
		return fmt.Sprintf("Overlaps at the end (%s)", FormatDuration(o.Minutes))
	default:
		return "No conflict"
	}
}
