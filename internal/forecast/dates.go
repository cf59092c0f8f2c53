package forecast

import "time"

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// addMonthClamped advances t by one calendar month, clamping the day of
// month to the last valid day of the target month. Jan 31 steps to Feb 28
// (29 in leap years); the clamp carries forward to later steps.
func addMonthClamped(t time.Time) time.Time {
	year, month, day := t.Date()
	last := DaysInMonth(year, month+1)
	if day > last {
		day = last
	}
	hour, min, sec := t.Clock()
	return time.Date(year, month+1, day, hour, min, sec, t.Nanosecond(), t.Location())
}
