package logging

import (
	"log/slog"

	"github.com/iand/pontium/hlog"
	"github.com/kortschak/utter"
	"github.com/urfave/cli/v2"
)

var Flags = []cli.Flag{
	&cli.BoolFlag{
		Name:        "verbose",
		Aliases:     []string{"v"},
		Usage:       "Set logging level more verbose to include info level logs",
		Value:       false,
		Destination: &Opts.Verbose,
	},

	&cli.BoolFlag{
		Name:        "veryverbose",
		Aliases:     []string{"vv"},
		Usage:       "Set logging level more verbose to include debug level logs",
		Destination: &Opts.VeryVerbose,
	},

	&cli.StringSliceFlag{
		Name:        "log-names",
		Usage:       "Always emit debug logging for estimates made for these subject names, comma separated",
		Destination: &Opts.LogNames,
	},
}

var Opts struct {
	Verbose     bool
	VeryVerbose bool
	LogNames    cli.StringSlice
}

// Level reports the level implied by the verbosity flags.
func Level() slog.Level {
	switch {
	case Opts.VeryVerbose:
		return slog.LevelDebug
	case Opts.Verbose:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

func Setup() {
	logLevel := new(slog.LevelVar)
	logLevel.Set(Level())

	h := new(hlog.Handler)
	h = h.WithLevel(logLevel.Level())
	for _, name := range Opts.LogNames.Value() {
		h = h.WithAttrLevel(slog.String("name", name), slog.LevelDebug)
	}

	slog.SetDefault(slog.New(h))
}

var (
	Default = slog.Default
	Debug   = slog.Debug
	Info    = slog.Info
	Warn    = slog.Warn
	Error   = slog.Error
	With    = slog.With
)

// Dump logs a detailed representation of v at info level.
func Dump(v any) {
	switch vt := v.(type) {
	case string:
		slog.Info(vt)
	default:
		slog.Info(utter.Sdump(v))
	}
}
