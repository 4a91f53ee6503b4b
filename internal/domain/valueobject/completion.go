// Package valueobject contains domain value objects for the LifeScope system.
package valueobject

import (
	"strings"
	"time"
)

// Frequency is the recurrence period of an activity.
type Frequency string

const (
	FrequencyDaily   Frequency = "Daily"
	FrequencyWeekly  Frequency = "Weekly"
	FrequencyMonthly Frequency = "Monthly"
	FrequencyOnce    Frequency = "Once"
)

// Frequencies lists the accepted frequencies in display order.
var Frequencies = []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyOnce}

// IsValid reports whether f is one of the accepted frequencies.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyOnce:
		return true
	}
	return false
}

// IsRecurring reports whether completion of f expires at a period boundary.
func (f Frequency) IsRecurring() bool {
	return f == FrequencyDaily || f == FrequencyWeekly || f == FrequencyMonthly
}

// ParseFrequency matches s case-insensitively against the accepted frequencies.
func ParseFrequency(s string) (Frequency, bool) {
	for _, f := range Frequencies {
		if strings.EqualFold(strings.TrimSpace(s), string(f)) {
			return f, true
		}
	}
	return "", false
}

// CompletionRecord holds the two completion fields of an activity.
// LastCompletedAt is authoritative when set; IsCompleted is the legacy flag
// used when no timestamp was ever recorded.
type CompletionRecord struct {
	IsCompleted     bool
	LastCompletedAt *time.Time
}

// HasTimestamp reports whether the record carries a completion instant.
func (r CompletionRecord) HasTimestamp() bool {
	return r.LastCompletedAt != nil
}

// IsCurrentlyCompleted decides whether the record satisfies the period of
// frequency that contains now. Calendar fields are compared in now's location.
//
// A completed recurring activity silently becomes pending once now leaves
// the period of its last completion; nothing records that transition.
func (r CompletionRecord) IsCurrentlyCompleted(frequency Frequency, now time.Time) bool {
	if !r.HasTimestamp() {
		return r.IsCompleted
	}

	last := r.LastCompletedAt.In(now.Location())

	switch frequency {
	case FrequencyDaily:
		return SameDay(last, now)
	case FrequencyWeekly:
		return SameISOWeek(last, now)
	case FrequencyMonthly:
		return SameMonth(last, now)
	default:
		// Once and unknown frequencies ignore the timestamp.
		return r.IsCompleted
	}
}

// SameDay reports whether a and b fall on the same calendar date.
// Both values are expected in the same location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SameISOWeek reports whether a and b share the ISO-8601 week-year and week number.
func SameISOWeek(a, b time.Time) bool {
	ay, aw := a.ISOWeek()
	by, bw := b.ISOWeek()
	return ay == by && aw == bw
}

// SameMonth reports whether a and b share calendar year and month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// PeriodBounds returns the first instant of the period of frequency containing t
// and the first instant of the following period. Weeks start on Monday.
// Once has no period; both bounds are zero.
func PeriodBounds(frequency Frequency, t time.Time) (start, end time.Time) {
	loc := t.Location()

	switch frequency {
	case FrequencyDaily:
		start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		end = start.AddDate(0, 0, 1)
	case FrequencyWeekly:
		weekday := int(t.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		start = time.Date(t.Year(), t.Month(), t.Day()-(weekday-1), 0, 0, 0, 0, loc)
		end = start.AddDate(0, 0, 7)
	case FrequencyMonthly:
		start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 1, 0)
	}
	return start, end
}
