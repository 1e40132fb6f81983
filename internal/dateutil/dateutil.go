// Package dateutil provides the calendar arithmetic behind pass periods.
//
// Every function works on calendar days. Inputs are normalized to midnight
// UTC of their own calendar date, so a time of day or a time zone never
// shifts a day count.
package dateutil

import "time"

// Normalize returns midnight UTC of t's calendar date as seen in t's location.
func Normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date builds a normalized date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole days from a to b (negative when b precedes a).
func DaysBetween(a, b time.Time) int {
	return int(Normalize(b).Sub(Normalize(a)).Hours() / 24)
}

// ElapsedDays counts days from start through end inclusive; the start day
// itself is one used day.
func ElapsedDays(start, end time.Time) int {
	return DaysBetween(start, end) + 1
}

// AddMonths adds n calendar months, clamping to the last day of the target
// month instead of overflowing (Jan 31 + 1 month is Feb 28 or 29).
func AddMonths(t time.Time, n int) time.Time {
	t = Normalize(t)
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	if last := DaysInMonth(first); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of days in t's month.
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// EndDate returns the last valid day of a pass covering the given months:
// the day before the "+months" boundary.
func EndDate(start time.Time, months int) time.Time {
	return AddMonths(start, months).AddDate(0, 0, -1)
}

// UsedMonths returns the 1-based month of the pass period in which refund
// falls. Refunds within the grace period use no months at all.
func UsedMonths(start, refund time.Time, graceDays int) int {
	if ElapsedDays(start, refund) <= graceDays {
		return 0
	}
	refund = Normalize(refund)
	for m := 1; ; m++ {
		if refund.Before(AddMonths(start, m)) {
			return m
		}
	}
}

// RemainingMonths counts the whole calendar months from refund up to end.
func RemainingMonths(refund, end time.Time) int {
	end = Normalize(end)
	months := 0
	for !AddMonths(refund, months+1).After(end) {
		months++
	}
	return months
}

// RemainingDays counts the days after refund through end. It is zero when
// the refund falls on the last day and never negative.
func RemainingDays(refund, end time.Time) int {
	if days := DaysBetween(refund, end); days > 0 {
		return days
	}
	return 0
}

// Format renders a date as YYYY-MM-DD.
func Format(t time.Time) string {
	return Normalize(t).Format("2006-01-02")
}

// Parse reads a YYYY-MM-DD date.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
