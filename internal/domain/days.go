package domain

import "time"

// StartOfDay returns 00:00:00.000 of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 of t's calendar day in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// AddDays moves t by n calendar days, keeping the wall clock.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// DaysInclusive counts the calendar days of the closed interval [start, end].
// It returns 0 when end falls on a day before start.
func DaysInclusive(start, end time.Time) int {
	s := StartOfDay(start)
	e := StartOfDay(end.In(start.Location()))
	if e.Before(s) {
		return 0
	}
	y1, m1, d1 := s.Date()
	y2, m2, d2 := e.Date()
	// Count through UTC dates so DST shifts do not skew the result.
	a := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	b := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours()/24) + 1
}
