package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/iand/deathclock/chart"
	"github.com/iand/deathclock/deathclock"
	"github.com/iand/deathclock/lifetable"
	"github.com/iand/deathclock/logging"
	"github.com/iand/deathclock/model"
)

var estimateOpts struct {
	name       string
	age        int
	gender     string
	lifeTable  string
	column     string
	today      string
	seed       uint64
	legacy     bool
	showTable  bool
	plotFile   string
	mdFile     string
	dumpResult bool
}

var Command = &cli.Command{
	Name:   "estimate",
	Usage:  "Estimate a date of death from a life table.",
	Action: estimate,
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:        "name",
			Aliases:     []string{"n"},
			Usage:       "Name of the person",
			Required:    true,
			Destination: &estimateOpts.name,
		},
		&cli.IntFlag{
			Name:        "age",
			Aliases:     []string{"a"},
			Usage:       "Current age of the person in years, ages outside the life table are replaced by 38",
			Required:    true,
			Destination: &estimateOpts.age,
		},
		&cli.StringFlag{
			Name:        "gender",
			Aliases:     []string{"g"},
			Usage:       "Gender of the person (male, female or unknown), selects the life table column unless --column is given",
			Destination: &estimateOpts.gender,
		},
		&cli.StringFlag{
			Name:        "life-table",
			Aliases:     []string{"t"},
			Usage:       "CSV life table to read from, the bundled 2015 table is used if not set",
			EnvVars:     []string{"DEATHCLOCK_LIFE_TABLE"},
			Destination: &estimateOpts.lifeTable,
		},
		&cli.StringFlag{
			Name:        "column",
			Usage:       "Life table column holding the number of deaths at each age",
			Value:       lifetable.DefaultColumn,
			EnvVars:     []string{"DEATHCLOCK_COLUMN"},
			Destination: &estimateOpts.column,
		},
		&cli.StringFlag{
			Name:        "today",
			Usage:       "Date to estimate from, as YYYY-MM-DD (default: the current date)",
			Destination: &estimateOpts.today,
		},
		&cli.Uint64Flag{
			Name:        "seed",
			Usage:       "Seed for the random source, zero seeds from the clock",
			Destination: &estimateOpts.seed,
		},
		&cli.BoolFlag{
			Name:        "legacy-draw",
			Usage:       "Compare the raw random draw with the cumulative column instead of scaling it",
			Destination: &estimateOpts.legacy,
		},
		&cli.BoolFlag{
			Name:        "table",
			Usage:       "Print the adjusted distribution",
			Destination: &estimateOpts.showTable,
		},
		&cli.StringFlag{
			Name:        "plot",
			Usage:       "Write a PNG chart of the distribution to this file",
			Destination: &estimateOpts.plotFile,
		},
		&cli.StringFlag{
			Name:        "markdown",
			Usage:       "Write a markdown page describing the estimate to this file, linking to the chart when --plot is given",
			Destination: &estimateOpts.mdFile,
		},
		&cli.BoolFlag{
			Name:        "dump",
			Usage:       "Log a detailed dump of the estimate",
			Destination: &estimateOpts.dumpResult,
		},
	}, logging.Flags...),
}

func estimate(cc *cli.Context) error {
	logging.Setup()

	gender, err := model.ParseGender(estimateOpts.gender)
	if err != nil {
		return err
	}
	column := estimateOpts.column
	if !cc.IsSet("column") {
		column = gender.Column()
	}

	t, err := lifetable.Open(estimateOpts.lifeTable, column)
	if err != nil {
		return fmt.Errorf("load life table: %w", err)
	}

	today, err := model.Today(estimateOpts.today)
	if err != nil {
		return err
	}

	c := deathclock.NewClock(estimateOpts.name, estimateOpts.age, t, today, deathclock.SeededSource(estimateOpts.seed), deathclock.WithLegacyDraw(estimateOpts.legacy), deathclock.WithGender(gender))
	est, err := c.Run()
	if err != nil {
		return fmt.Errorf("estimate: %w", err)
	}
	if estimateOpts.dumpResult {
		logging.Dump(est)
	}

	fmt.Fprintln(cc.App.Writer, Summary(est))

	if estimateOpts.showTable {
		fmt.Fprintln(cc.App.Writer)
		if err := WriteTable(cc.App.Writer, c.Distribution(), est.DeathAge); err != nil {
			return err
		}
	}

	if estimateOpts.plotFile != "" {
		png, err := chart.Draw(c.Distribution(), est, chart.DefaultStyle())
		if err != nil {
			return fmt.Errorf("draw chart: %w", err)
		}
		if err := os.WriteFile(estimateOpts.plotFile, png, 0o666); err != nil {
			return fmt.Errorf("failed writing chart file: %w", err)
		}
		logging.Info("wrote chart", "file", estimateOpts.plotFile)
	}

	if estimateOpts.mdFile != "" {
		var image string
		if estimateOpts.plotFile != "" {
			image = estimateOpts.plotFile
			if rel, err := filepath.Rel(filepath.Dir(estimateOpts.mdFile), estimateOpts.plotFile); err == nil {
				image = filepath.ToSlash(rel)
			}
		}
		doc := Page(est, c.Distribution(), image)
		if err := os.WriteFile(estimateOpts.mdFile, []byte(doc.String()), 0o666); err != nil {
			return fmt.Errorf("failed writing markdown file: %w", err)
		}
		logging.Info("wrote markdown page", "file", estimateOpts.mdFile)
	}

	return nil
}
