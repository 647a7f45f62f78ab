// Package dateutil provides the calendar-window helpers the analytics
// engine is built on. All functions are pure; callers inject "now".
package dateutil

import "time"

// StartOfMonth returns midnight on the first day of t's month, in t's
// location.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last instant of t's month.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// DaysBetween returns the number of calendar-day boundaries between a and
// b (b - a). Time of day is ignored; same day yields 0.
func DaysBetween(a, b time.Time) int {
	a = truncateToDay(a)
	b = truncateToDay(b)
	return int(b.Sub(a).Hours() / 24)
}

// SameDay reports whether a and b fall on the same calendar day,
// ignoring time of day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysInMonth returns the total number of days in t's month.
func DaysInMonth(t time.Time) int {
	return DaysBetween(StartOfMonth(t), EndOfMonth(t)) + 1
}

// DayOfMonth returns the 1-based day of the month, so the current day
// counts as a full elapsed day.
func DayOfMonth(t time.Time) int {
	return DaysBetween(StartOfMonth(t), t) + 1
}

// RemainingDays returns the number of days left in t's month, inclusive
// of the current day. Never less than 1.
func RemainingDays(t time.Time) int {
	return DaysBetween(t, EndOfMonth(t)) + 1
}

// truncateToDay drops the time of day. The result is anchored in UTC so
// day arithmetic is immune to DST transitions in the local zone.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
