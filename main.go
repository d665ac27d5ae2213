/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/iand/deathclock/chart"
	"github.com/iand/deathclock/report"
	"github.com/iand/deathclock/serve"
)

func main() {
	app := &cli.App{
		Name:     "deathclock",
		HelpName: "deathclock",
		Usage:    "Estimate a date of death from a life table",
		Commands: []*cli.Command{
			report.Command,
			chart.Command,
			serve.Command,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}
