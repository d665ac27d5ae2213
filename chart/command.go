/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/

package chart

import (
	"fmt"
	"image/color"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"
	"gonum.org/v1/plot/vg"

	"github.com/iand/deathclock/deathclock"
	"github.com/iand/deathclock/lifetable"
	"github.com/iand/deathclock/logging"
	"github.com/iand/deathclock/model"
)

func parseColor(s string) (color.Color, error) {
	intColor, err := strconv.ParseInt(s, 16, 32)
	if err != nil {
		return color.RGBA{}, err
	}

	return color.RGBA{uint8((intColor & 0xFF0000) >> 16), uint8((intColor & 0x00FF00) >> 8), uint8((intColor & 0x0000FF)), 0xFF}, nil
}

var chartopts struct {
	name      string
	age       int
	lifeTable string
	column    string
	today     string
	seed      uint64
	legacy    bool

	gender         string
	outputFilename string
	width          float64
	height         float64
	dpi            int
	lineColor      string
	markerColor    string
	textColor      string
	background     string
}

var Command = &cli.Command{
	Name:   "chart",
	Usage:  "Draw the distribution an estimate was drawn from.",
	Action: chartCmd,
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:        "name",
			Aliases:     []string{"n"},
			Usage:       "Name of the person",
			Destination: &chartopts.name,
		},
		&cli.IntFlag{
			Name:        "age",
			Aliases:     []string{"a"},
			Usage:       "Current age of the person in years",
			Required:    true,
			Destination: &chartopts.age,
		},
		&cli.StringFlag{
			Name:        "gender",
			Aliases:     []string{"g"},
			Usage:       "Gender of the person (male, female or unknown), selects the life table column unless --column is given",
			Destination: &chartopts.gender,
		},
		&cli.StringFlag{
			Name:        "life-table",
			Aliases:     []string{"t"},
			Usage:       "CSV life table to read from, the bundled 2015 table is used if not set",
			EnvVars:     []string{"DEATHCLOCK_LIFE_TABLE"},
			Destination: &chartopts.lifeTable,
		},
		&cli.StringFlag{
			Name:        "column",
			Usage:       "Life table column holding the number of deaths at each age",
			Value:       lifetable.DefaultColumn,
			EnvVars:     []string{"DEATHCLOCK_COLUMN"},
			Destination: &chartopts.column,
		},
		&cli.StringFlag{
			Name:        "today",
			Usage:       "Date to estimate from, as YYYY-MM-DD (default: the current date)",
			Destination: &chartopts.today,
		},
		&cli.Uint64Flag{
			Name:        "seed",
			Usage:       "Seed for the random source, zero seeds from the clock",
			Destination: &chartopts.seed,
		},
		&cli.BoolFlag{
			Name:        "legacy-draw",
			Usage:       "Compare the raw random draw with the cumulative column instead of scaling it",
			Destination: &chartopts.legacy,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "output image filename, a data URI is printed if not set",
			Destination: &chartopts.outputFilename,
		},
		&cli.Float64Flag{
			Name:        "width",
			Usage:       "image width in inches",
			Value:       10,
			Destination: &chartopts.width,
		},
		&cli.Float64Flag{
			Name:        "height",
			Usage:       "image height in inches",
			Value:       4,
			Destination: &chartopts.height,
		},
		&cli.IntFlag{
			Name:        "dpi",
			Usage:       "number of pixels per inch",
			Value:       100,
			Destination: &chartopts.dpi,
		},
		&cli.StringFlag{
			Name:        "line-color",
			Usage:       "hex colour of the distribution line",
			Value:       "FFC0CB",
			Destination: &chartopts.lineColor,
		},
		&cli.StringFlag{
			Name:        "marker-color",
			Usage:       "hex colour of the death year marker",
			Value:       "FF0000",
			Destination: &chartopts.markerColor,
		},
		&cli.StringFlag{
			Name:        "text-color",
			Usage:       "hex colour of labels and axes",
			Value:       "FFFFFF",
			Destination: &chartopts.textColor,
		},
		&cli.StringFlag{
			Name:        "background",
			Usage:       "hex colour of the background",
			Value:       "000000",
			Destination: &chartopts.background,
		},
	}, logging.Flags...),
}

func chartStyle() (Style, error) {
	st := DefaultStyle()
	st.Width = vg.Length(chartopts.width) * vg.Inch
	st.Height = vg.Length(chartopts.height) * vg.Inch
	st.Dpi = chartopts.dpi

	colors := []struct {
		flag  string
		value string
		dest  *color.Color
	}{
		{"line-color", chartopts.lineColor, &st.LineColor},
		{"marker-color", chartopts.markerColor, &st.MarkerColor},
		{"text-color", chartopts.textColor, &st.TextColor},
		{"background", chartopts.background, &st.BackgroundColor},
	}
	for _, c := range colors {
		col, err := parseColor(c.value)
		if err != nil {
			return Style{}, fmt.Errorf("invalid %s %q: %w", c.flag, c.value, err)
		}
		*c.dest = col
	}

	if st.Width <= 0 || st.Height <= 0 || st.Dpi <= 0 {
		return Style{}, fmt.Errorf("image size and dpi must be positive")
	}
	return st, nil
}

func chartCmd(cc *cli.Context) error {
	logging.Setup()

	st, err := chartStyle()
	if err != nil {
		return err
	}

	gender, err := model.ParseGender(chartopts.gender)
	if err != nil {
		return err
	}
	column := chartopts.column
	if !cc.IsSet("column") {
		column = gender.Column()
	}

	t, err := lifetable.Open(chartopts.lifeTable, column)
	if err != nil {
		return fmt.Errorf("load life table: %w", err)
	}

	today, err := model.Today(chartopts.today)
	if err != nil {
		return err
	}

	c := deathclock.NewClock(chartopts.name, chartopts.age, t, today, deathclock.SeededSource(chartopts.seed), deathclock.WithLegacyDraw(chartopts.legacy), deathclock.WithGender(gender))
	est, err := c.Run()
	if err != nil {
		return fmt.Errorf("estimate: %w", err)
	}

	png, err := Draw(c.Distribution(), est, st)
	if err != nil {
		return fmt.Errorf("draw chart: %w", err)
	}

	if chartopts.outputFilename != "" {
		err = os.WriteFile(chartopts.outputFilename, png, 0o666)
		if err != nil {
			return fmt.Errorf("failed writing output file: %w", err)
		}
	} else {
		fmt.Fprintln(cc.App.Writer, DataURI(png))
	}

	return nil
}
