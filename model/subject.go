package model

import (
	"time"
)

// Subject is the person a death date is estimated for.
type Subject struct {
	Name   string
	Age    int
	Gender Gender

	// DateOfBirth is derived from Age: today's date shifted back Age years.
	// It is only used to find the death year, never as authoritative birth data.
	DateOfBirth time.Time
}

// NewSubject derives a subject's date of birth from their age on today. Age
// should already have been validated.
func NewSubject(name string, age int, today time.Time) *Subject {
	return &Subject{
		Name:        name,
		Age:         age,
		DateOfBirth: DateOfBirth(age, today),
	}
}

// DateOfBirth returns the date age years before today on the same month and
// day. 29 February in a non-leap year of birth becomes 1 March.
func DateOfBirth(age int, today time.Time) time.Time {
	today = Day(today)
	return time.Date(today.Year()-age, today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
}

// Estimate is the result of estimating a subject's death date.
type Estimate struct {
	Name      string
	Age       int
	Gender    Gender
	DeathAge  int
	DeathYear int
	DeathDate time.Time
}

// DeathDateString renders the death date for display.
func (e *Estimate) DeathDateString() string {
	if e == nil {
		return NotCalculated
	}
	return FormatDeathDate(e.DeathDate)
}

// IsCalculated reports whether a death date has been drawn.
func (e *Estimate) IsCalculated() bool {
	return e != nil && !e.DeathDate.IsZero()
}
