package model

import (
	"fmt"
	"time"
)

// NotCalculated is displayed in place of a death date that has not been drawn.
const NotCalculated = "Deathday not calculated yet!"

// DateLayout renders dates as an abbreviated month, unpadded day and year,
// e.g. "Mar 4, 2071".
const DateLayout = "Jan 2, 2006"

// FormatDeathDate renders t using DateLayout, or NotCalculated when t is the
// zero time.
func FormatDeathDate(t time.Time) string {
	if t.IsZero() {
		return NotCalculated
	}
	return t.Format(DateLayout)
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// YearStart returns January 1st of year.
func YearStart(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// YearEnd returns December 31st of year.
func YearEnd(year int) time.Time {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole calendar days from a to b. Both
// dates are truncated with Day first.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// ParseDate parses a date in ISO 8601 form, YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}

// Today parses s as a date, returning the current date when s is empty.
func Today(s string) (time.Time, error) {
	if s == "" {
		return Day(time.Now()), nil
	}
	d, err := ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}
