package deathclock

import (
	"fmt"
	"time"

	"github.com/iand/deathclock/model"
)

// DrawAge draws a uniform value from rng and maps it to an age of d.
func DrawAge(d *Distribution, rng Source) (int, error) {
	r := rng.Float64()
	age, err := d.AgeAt(r)
	if err != nil {
		return 0, err
	}
	return age, nil
}

// DrawDate draws a death date uniformly from the days of the year dob.Year()+deathAge.
// The window starts on January 1st, or on today when the death year is the
// current year, and ends before December 31st.
func DrawDate(deathAge int, dob, today time.Time, rng Source) (time.Time, error) {
	year := dob.Year() + deathAge

	start := model.YearStart(year)
	if year == today.Year() {
		start = model.Day(today)
	}
	end := model.YearEnd(year)

	days := model.DaysBetween(start, end)
	if days <= 0 {
		return time.Time{}, fmt.Errorf("%w: no days between %s and %s", ErrEmptyDateWindow, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	return start.AddDate(0, 0, int(rng.Int63n(int64(days)))), nil
}
