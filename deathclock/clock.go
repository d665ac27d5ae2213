package deathclock

import (
	"fmt"
	"time"

	"github.com/iand/deathclock/lifetable"
	"github.com/iand/deathclock/logging"
	"github.com/iand/deathclock/model"
)

// State is the progress of a Clock through an estimate.
type State int

const (
	Initialized  State = 0
	AgeValidated State = 1
	AgeDrawn     State = 2
	DateDrawn    State = 3
)

func (s State) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case AgeValidated:
		return "age validated"
	case AgeDrawn:
		return "age drawn"
	case DateDrawn:
		return "date drawn"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// A Clock estimates the death date of one subject. It moves through the states
// Initialized, AgeValidated, AgeDrawn and DateDrawn in order. DrawAge may be
// called again at any point after validation, which discards any drawn date.
type Clock struct {
	Subject *model.Subject
	Today   time.Time
	Mode    DrawMode

	table    *lifetable.Table
	rng      Source
	state    State
	dist     *Distribution
	deathAge int
	date     time.Time
	gender   model.Gender
}

type Option func(*Clock)

// WithDrawMode sets the mode used to compare draws with the cumulative column.
func WithDrawMode(m DrawMode) Option {
	return func(c *Clock) {
		c.Mode = m
	}
}

// WithLegacyDraw selects Legacy when legacy is true and Calibrated otherwise.
func WithLegacyDraw(legacy bool) Option {
	if legacy {
		return WithDrawMode(Legacy)
	}
	return WithDrawMode(Calibrated)
}

// WithGender records the gender of the subject. It does not change the life
// table, which is chosen by the caller.
func WithGender(g model.Gender) Option {
	return func(c *Clock) {
		c.gender = g
	}
}

// NewClock validates age against t and derives the subject's date of birth.
func NewClock(name string, age int, t *lifetable.Table, today time.Time, rng Source, opts ...Option) *Clock {
	c := &Clock{
		Today: model.Day(today),
		table: t,
		rng:   rng,
	}
	for _, opt := range opts {
		opt(c)
	}

	valid := ValidateAge(age, t.MaxAge())
	if valid != age {
		logging.Debug("replaced invalid age with default", "name", name, "age", age, "max_age", t.MaxAge(), "default", valid)
	}
	c.Subject = model.NewSubject(name, valid, c.Today)
	c.Subject.Gender = c.gender
	c.state = AgeValidated
	return c
}

// State reports the current state of the clock.
func (c *Clock) State() State { return c.state }

// Distribution returns the distribution used for the most recent age draw.
func (c *Clock) Distribution() *Distribution { return c.dist }

// DrawAge draws the subject's age at death.
func (c *Clock) DrawAge() (int, error) {
	if c.state < AgeValidated {
		return 0, fmt.Errorf("%w: draw age while %s", ErrState, c.state)
	}

	// a failed redraw leaves no earlier result behind
	c.deathAge = 0
	c.date = time.Time{}
	c.state = AgeValidated

	if c.dist == nil {
		d, err := BuildDistribution(c.table, c.Subject.Age, c.Today)
		if err != nil {
			return 0, err
		}
		d.Mode = c.Mode
		c.dist = d
	}

	age, err := DrawAge(c.dist, c.rng)
	if err != nil {
		return 0, err
	}

	c.deathAge = age
	c.state = AgeDrawn
	logging.Debug("drew death age", "name", c.Subject.Name, "age", c.Subject.Age, "death_age", age, "mode", c.Mode)
	return age, nil
}

// DrawDate draws a death date within the year the subject reaches the drawn
// death age.
func (c *Clock) DrawDate() (time.Time, error) {
	if c.state < AgeDrawn {
		return time.Time{}, fmt.Errorf("%w: draw date while %s", ErrState, c.state)
	}

	d, err := DrawDate(c.deathAge, c.Subject.DateOfBirth, c.Today, c.rng)
	if err != nil {
		return time.Time{}, err
	}

	c.date = d
	c.state = DateDrawn
	logging.Debug("drew death date", "name", c.Subject.Name, "death_date", d.Format(time.DateOnly))
	return d, nil
}

// Estimate returns the current result. The death date is the zero time until
// DrawDate has succeeded.
func (c *Clock) Estimate() *model.Estimate {
	if c.Subject == nil {
		return &model.Estimate{}
	}
	est := &model.Estimate{
		Name:   c.Subject.Name,
		Age:    c.Subject.Age,
		Gender: c.Subject.Gender,
	}
	if c.state >= AgeDrawn {
		est.DeathAge = c.deathAge
		est.DeathYear = c.Subject.DateOfBirth.Year() + c.deathAge
	}
	if c.state == DateDrawn {
		est.DeathDate = c.date
	}
	return est
}

// Run draws an age and then a date.
func (c *Clock) Run() (*model.Estimate, error) {
	if _, err := c.DrawAge(); err != nil {
		return nil, fmt.Errorf("draw age: %w", err)
	}
	if _, err := c.DrawDate(); err != nil {
		return nil, fmt.Errorf("draw date: %w", err)
	}
	return c.Estimate(), nil
}

// Estimate estimates the death date of the named subject of the given age.
// An age outside the table is replaced by DefaultAge.
func Estimate(name string, age int, t *lifetable.Table, today time.Time, rng Source, opts ...Option) (*model.Estimate, error) {
	return NewClock(name, age, t, today, rng, opts...).Run()
}
