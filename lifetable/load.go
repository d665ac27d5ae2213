package lifetable

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/iand/deathclock/logging"
)

// DefaultColumn is the weight column used when none is chosen: deaths for the
// whole population regardless of sex.
const DefaultColumn = "all"

// AgeColumn is the name of the required age column.
const AgeColumn = "age"

//go:embed data/life_table_2015.csv
var defaultCSV []byte

type options struct {
	column string
}

type Option func(*options)

// WithWeightColumn reads weights from the named column instead of DefaultColumn.
func WithWeightColumn(name string) Option {
	return func(o *options) {
		if name != "" {
			o.column = name
		}
	}
}

// Load reads a life table from CSV. The first record is a header naming the
// columns; it must include AgeColumn and the weight column. Other columns are
// ignored.
func Load(r io.Reader, opts ...Option) (*Table, error) {
	o := options{column: DefaultColumn}
	for _, opt := range opts {
		opt(&o)
	}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing header", ErrDataFormat)
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, fmt.Errorf("%w: read header: %v", ErrDataFormat, err)
		}
		return nil, fmt.Errorf("%w: read header: %v", ErrSourceUnavailable, err)
	}

	ageIdx, weightIdx := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case AgeColumn:
			ageIdx = i
		case strings.ToLower(o.column):
			weightIdx = i
		}
	}
	if ageIdx == -1 {
		return nil, fmt.Errorf("%w: missing %q column", ErrDataFormat, AgeColumn)
	}
	if weightIdx == -1 {
		return nil, fmt.Errorf("%w: missing %q column", ErrDataFormat, o.column)
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, fmt.Errorf("%w: %v", ErrDataFormat, err)
			}
			return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		}

		line, _ := cr.FieldPos(0)
		age, err := strconv.Atoi(strings.TrimSpace(rec[ageIdx]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: age %q is not an integer", ErrDataFormat, line, rec[ageIdx])
		}
		weight, err := strconv.ParseFloat(strings.TrimSpace(rec[weightIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %s %q is not a number", ErrDataFormat, line, o.column, rec[weightIdx])
		}
		rows = append(rows, Row{Age: age, Weight: weight})
	}

	t, err := newTable(o.column, rows)
	if err != nil {
		return nil, err
	}
	logging.Debug("loaded life table", "column", o.column, "rows", t.Len(), "max_age", t.MaxAge())
	return t, nil
}

// LoadFile reads a life table from the CSV file at path.
func LoadFile(path string, opts ...Option) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer f.Close()

	t, err := Load(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

var defaultTable = sync.OnceValues(func() (*Table, error) {
	return Load(bytes.NewReader(defaultCSV))
})

// Default returns the life table bundled with the program, a 2015 period
// table. It is parsed once and shared by all callers.
func Default() (*Table, error) {
	return defaultTable()
}

// Open returns the table at path, or the bundled table when path is empty.
// The default table is only used with the default weight column; asking for
// another column re-reads the bundled data.
func Open(path string, column string) (*Table, error) {
	if path == "" {
		if column == "" || column == DefaultColumn {
			return Default()
		}
		return Load(bytes.NewReader(defaultCSV), WithWeightColumn(column))
	}
	return LoadFile(path, WithWeightColumn(column))
}
