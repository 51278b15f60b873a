// Package timecalc holds the calendar arithmetic used for bucketing entries.
// All functions work in the location of their argument.
package timecalc

import (
	"fmt"
	"time"
)

// DayKey returns the calendar day of t as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of the same day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// MonthRange returns the first and last instant of the calendar month containing t.
func MonthRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// PreviousMonthRange returns the bounds of the calendar month before the one containing t.
func PreviousMonthRange(t time.Time) (time.Time, time.Time) {
	start, _ := MonthRange(t)
	return MonthRange(start.AddDate(0, -1, 0))
}

// WeekRange returns the Monday start and Sunday end of the ISO week containing t.
func WeekRange(t time.Time) (time.Time, time.Time) {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // Sunday
	}
	monday := StartOfDay(t).AddDate(0, 0, -(wd - 1))
	return monday, EndOfDay(monday.AddDate(0, 0, 6))
}

// Within reports whether t lies in [start, end], both ends inclusive.
func Within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// ISOWeekLabel returns a label like "2026-W09".
func ISOWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
