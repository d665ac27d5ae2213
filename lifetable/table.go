// Package lifetable loads actuarial life tables: one row per integer age with
// the number of deaths observed at that age in a reference population.
package lifetable

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/slices"
)

var (
	// ErrDataFormat is returned when a table is missing required columns or
	// its ages are not unique and contiguous from zero.
	ErrDataFormat = errors.New("life table data format")

	// ErrSourceUnavailable is returned when the underlying resource cannot be read.
	ErrSourceUnavailable = errors.New("life table source unavailable")
)

type Row struct {
	Age    int
	Weight float64
}

// Table is an immutable life table. Rows are sorted by age and the age of row
// i is always i. A Table is safe for concurrent use.
type Table struct {
	column string
	rows   []Row
}

// New builds a table from rows in any order. The rows must cover every age from
// zero to the maximum exactly once and carry non-negative weights.
func New(rows []Row) (*Table, error) {
	return newTable(DefaultColumn, rows)
}

func newTable(column string, rows []Row) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrDataFormat)
	}

	sorted := make([]Row, len(rows))
	seen := make([]bool, len(rows))
	for _, r := range rows {
		if r.Age < 0 || r.Age >= len(rows) {
			return nil, fmt.Errorf("%w: age %d outside contiguous range 0-%d", ErrDataFormat, r.Age, len(rows)-1)
		}
		if seen[r.Age] {
			return nil, fmt.Errorf("%w: duplicate age %d", ErrDataFormat, r.Age)
		}
		if math.IsNaN(r.Weight) || math.IsInf(r.Weight, 0) {
			return nil, fmt.Errorf("%w: weight %v at age %d is not finite", ErrDataFormat, r.Weight, r.Age)
		}
		if r.Weight < 0 {
			return nil, fmt.Errorf("%w: negative weight %v at age %d", ErrDataFormat, r.Weight, r.Age)
		}
		seen[r.Age] = true
		sorted[r.Age] = r
	}

	return &Table{column: column, rows: sorted}, nil
}

// MaxAge returns the highest age present in the table.
func (t *Table) MaxAge() int {
	return t.rows[len(t.rows)-1].Age
}

// Weight returns the weight recorded for age.
func (t *Table) Weight(age int) (float64, bool) {
	if age < 0 || age >= len(t.rows) {
		return 0, false
	}
	return t.rows[age].Weight, true
}

// Rows returns a copy of the rows in ascending age order.
func (t *Table) Rows() []Row {
	return slices.Clone(t.rows)
}

// Above returns the rows whose age is strictly greater than age, in ascending
// age order. The returned slice must not be modified.
func (t *Table) Above(age int) []Row {
	if age < 0 {
		return t.rows
	}
	if age >= t.MaxAge() {
		return nil
	}
	return t.rows[age+1:]
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Column is the name of the source column the weights were read from.
func (t *Table) Column() string { return t.column }
