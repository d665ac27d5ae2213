package deathclock

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/iand/deathclock/lifetable"
)

const (
	// PercentScale converts a probability to a percentage.
	PercentScale = 100

	// CompoundScale is applied to the running sum of percentages when forming
	// the cumulative column.
	CompoundScale = 100

	// CumulativeMax is the final value of a cumulative column.
	CumulativeMax = PercentScale * CompoundScale
)

// DrawMode selects how a uniform draw is compared with the cumulative column.
type DrawMode int

const (
	// Calibrated scales the uniform draw by CumulativeMax before comparing it
	// with the cumulative column, so the draw follows the distribution.
	Calibrated DrawMode = 0

	// Legacy compares the raw uniform draw with the cumulative column. Since
	// the column runs up to CumulativeMax the draw almost always lands on the
	// first row whose cumulative value is at least one.
	Legacy DrawMode = 1
)

func (m DrawMode) String() string {
	switch m {
	case Calibrated:
		return "calibrated"
	case Legacy:
		return "legacy"
	default:
		return fmt.Sprintf("DrawMode(%d)", int(m))
	}
}

// Point is one age of an adjusted distribution.
type Point struct {
	Age         int
	Year        int     // plotted year, one before the year the subject reaches Age
	Probability float64 // percentage of the remaining weight at this age
	Cumulative  float64 // running sum of Probability scaled by CompoundScale
}

// CalendarYear is the year in which the subject reaches the age of p. It is
// the year DrawDate draws from when p's age is drawn.
func (p Point) CalendarYear() int { return p.Year + 1 }

// Distribution is a life table restricted to ages above a subject's age and
// normalised into probabilities. It is built per estimate and never shared.
type Distribution struct {
	Points []Point
	Mode   DrawMode
}

// BuildDistribution keeps the rows of t whose age is strictly greater than age
// and normalises their weights. Years are assigned consecutively starting at
// the year of today.
func BuildDistribution(t *lifetable.Table, age int, today time.Time) (*Distribution, error) {
	rows := t.Above(age)
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no ages above %d (max age %d)", ErrEmptyDistribution, age, t.MaxAge())
	}

	weights := make([]float64, len(rows))
	for i, r := range rows {
		weights[i] = r.Weight
	}
	total := floats.Sum(weights)
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, fmt.Errorf("%w: no weight above age %d", ErrEmptyDistribution, age)
	}

	prob := make([]float64, len(rows))
	for i, w := range weights {
		prob[i] = w / total * PercentScale
	}
	cum := floats.CumSum(make([]float64, len(prob)), prob)
	floats.Scale(CompoundScale, cum)

	d := &Distribution{Points: make([]Point, len(rows))}
	for i, r := range rows {
		d.Points[i] = Point{
			Age:         r.Age,
			Year:        today.Year() + i,
			Probability: prob[i],
			Cumulative:  cum[i],
		}
	}
	return d, nil
}

// Len returns the number of ages in the distribution.
func (d *Distribution) Len() int { return len(d.Points) }

// Find returns the point whose plotted Year is year.
func (d *Distribution) Find(year int) (Point, bool) {
	for _, p := range d.Points {
		if p.Year == year {
			return p, true
		}
	}
	return Point{}, false
}

// FindAge returns the point for the given age.
func (d *Distribution) FindAge(age int) (Point, bool) {
	for _, p := range d.Points {
		if p.Age == age {
			return p, true
		}
	}
	return Point{}, false
}

// AgeAt maps a uniform value r in [0,1) to an age. The point whose cumulative
// value is nearest to r is chosen, the earliest on a tie. When r is not below
// that cumulative value the next point is taken instead. In Calibrated mode
// points with zero probability are then passed over, since a tie between
// equal cumulative values would otherwise select an age that cannot occur.
func (d *Distribution) AgeAt(r float64) (int, error) {
	if len(d.Points) == 0 {
		return 0, ErrEmptyDistribution
	}

	target := r
	if d.Mode == Calibrated {
		target = r * CumulativeMax
	}

	diffs := make([]float64, len(d.Points))
	for i, p := range d.Points {
		diffs[i] = math.Abs(p.Cumulative - target)
	}
	idx := floats.MinIdx(diffs)
	if target >= d.Points[idx].Cumulative {
		idx++
	}
	if d.Mode == Calibrated {
		for idx < len(d.Points) && d.Points[idx].Probability == 0 {
			idx++
		}
	}
	if idx >= len(d.Points) {
		return 0, fmt.Errorf("%w: r=%v beyond cumulative %v at age %d", ErrDrawOutOfRange, r, d.Points[len(d.Points)-1].Cumulative, d.Points[len(d.Points)-1].Age)
	}

	return d.Points[idx].Age, nil
}
