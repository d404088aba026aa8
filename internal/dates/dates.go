// Package dates provides calendar-date arithmetic for the itinerary engine.
//
// A calendar date is a time.Time at midnight UTC with no meaningful
// time-of-day component. All arithmetic here is UTC-anchored: shifting a date
// across a DST boundary in some local zone must never produce an off-by-one,
// so inputs are normalized before any calculation.
package dates

import "time"

// Normalize strips the time-of-day and zone from t, returning the same
// calendar date at midnight UTC. The calendar date is taken from t's own
// location, so a value already representing "June 1st" stays June 1st.
func Normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the calendar date n days after d (n may be negative).
// Month and year boundaries roll over per the Gregorian calendar, including
// leap years; time.Time.AddDate already implements those rules, Normalize
// keeps the result anchored to UTC midnight.
func AddDays(d time.Time, n int) time.Time {
	return Normalize(d).AddDate(0, 0, n)
}

// Enumerate returns every calendar date from start to end inclusive, in
// ascending order. When start is after end, or either input is the zero
// value, it returns an empty sequence rather than an error; callers treat
// malformed ranges as "no days", not as a failure.
func Enumerate(start, end time.Time) []time.Time {
	if start.IsZero() || end.IsZero() {
		return nil
	}
	start, end = Normalize(start), Normalize(end)
	if start.After(end) {
		return nil
	}

	days := make([]time.Time, 0, Count(start, end))
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Count returns the number of calendar days from start to end inclusive,
// or 0 when start is after end or either input is the zero value.
func Count(start, end time.Time) int {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	start, end = Normalize(start), Normalize(end)
	if start.After(end) {
		return 0
	}
	// Both values are UTC midnights, so the hour division is exact.
	return int(end.Sub(start).Hours()/24) + 1
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return Normalize(a).Equal(Normalize(b))
}
