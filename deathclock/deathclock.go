// Package deathclock estimates a date of death by sampling a death age from a
// life table conditioned on the subject's current age, then sampling a day
// within the resulting year.
package deathclock

import (
	"errors"
	"time"

	"golang.org/x/exp/rand"
)

// DefaultAge replaces any age that is not strictly between zero and the
// maximum age of the life table.
const DefaultAge = 38

var (
	// ErrEmptyDistribution is returned when no rows of the life table lie
	// above the subject's age, or the remaining rows have no weight.
	ErrEmptyDistribution = errors.New("empty distribution")

	// ErrDrawOutOfRange is returned when the boundary correction of an age
	// draw steps past the oldest age in the distribution.
	ErrDrawOutOfRange = errors.New("draw out of range")

	// ErrEmptyDateWindow is returned when there are no days left to draw a
	// death date from, which happens on December 31st of the death year.
	ErrEmptyDateWindow = errors.New("empty date window")

	// ErrState is returned when a Clock operation is called out of order.
	ErrState = errors.New("invalid clock state")
)

// Source is the random capability used by every sampling operation.
type Source interface {
	// Float64 returns a pseudo-random number in [0.0,1.0).
	Float64() float64

	// Int63n returns a non-negative pseudo-random number in [0,n). It panics if n <= 0.
	Int63n(n int64) int64
}

// NewSource returns a deterministic source seeded with seed. It is not safe
// for concurrent use.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewSource(seed))
}

// NewRandomSource returns a source seeded from the current time that is safe
// for concurrent use.
func NewRandomSource() Source {
	r := rand.New(new(rand.LockedSource))
	r.Seed(uint64(time.Now().UnixNano()))
	return r
}

// SeededSource returns NewSource(seed) for a non-zero seed and
// NewRandomSource otherwise.
func SeededSource(seed uint64) Source {
	if seed == 0 {
		return NewRandomSource()
	}
	return NewSource(seed)
}

// ValidateAge returns age if 0 < age < maxAge, otherwise DefaultAge.
func ValidateAge(age, maxAge int) int {
	if age <= 0 || age >= maxAge {
		return DefaultAge
	}
	return age
}
