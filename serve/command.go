package serve

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"github.com/valyala/fasthttp"

	"github.com/iand/deathclock/chart"
	"github.com/iand/deathclock/config"
	"github.com/iand/deathclock/deathclock"
	"github.com/iand/deathclock/lifetable"
	"github.com/iand/deathclock/logging"
)

// Config holds the server settings read from the environment. Flags given on
// the command line take precedence.
type Config struct {
	Addr         string        `env:"DEATHCLOCK_ADDR"          envDefault:":8080"`
	LifeTable    string        `env:"DEATHCLOCK_LIFE_TABLE"`
	Column       string        `env:"DEATHCLOCK_COLUMN"        envDefault:"all"`
	Seed         uint64        `env:"DEATHCLOCK_SEED"`
	LegacyDraw   bool          `env:"DEATHCLOCK_LEGACY_DRAW"`
	ReadTimeout  time.Duration `env:"DEATHCLOCK_READ_TIMEOUT"  envDefault:"10s"`
	WriteTimeout time.Duration `env:"DEATHCLOCK_WRITE_TIMEOUT" envDefault:"30s"`
	MaxBodySize  int           `env:"DEATHCLOCK_MAX_BODY_SIZE" envDefault:"4096"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var Command = &cli.Command{
	Name:   "serve",
	Usage:  "Serve death date estimates over HTTP.",
	Action: serve,
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:  "addr",
			Usage: "Address to listen on (default from DEATHCLOCK_ADDR or :8080)",
		},
		&cli.StringFlag{
			Name:    "life-table",
			Aliases: []string{"t"},
			Usage:   "CSV life table to read from, the bundled 2015 table is used if not set",
		},
		&cli.StringFlag{
			Name:  "column",
			Usage: "Life table column holding the number of deaths at each age",
		},
		&cli.Uint64Flag{
			Name:  "seed",
			Usage: "Seed for the random source, zero seeds from the clock",
		},
		&cli.BoolFlag{
			Name:  "legacy-draw",
			Usage: "Compare the raw random draw with the cumulative column instead of scaling it",
		},
	}, logging.Flags...),
}

func applyFlags(cc *cli.Context, cfg *Config) {
	if cc.IsSet("addr") {
		cfg.Addr = cc.String("addr")
	}
	if cc.IsSet("life-table") {
		cfg.LifeTable = cc.String("life-table")
	}
	if cc.IsSet("column") {
		cfg.Column = cc.String("column")
	}
	if cc.IsSet("seed") {
		cfg.Seed = cc.Uint64("seed")
	}
	if cc.IsSet("legacy-draw") {
		cfg.LegacyDraw = cc.Bool("legacy-draw")
	}
}

func serve(cc *cli.Context) error {
	logging.Setup()

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	applyFlags(cc, &cfg)

	t, err := lifetable.Open(cfg.LifeTable, cfg.Column)
	if err != nil {
		return fmt.Errorf("load life table: %w", err)
	}

	mode := deathclock.Calibrated
	if cfg.LegacyDraw {
		mode = deathclock.Legacy
	}
	h := NewHandler(t, deathclock.SeededSource(cfg.Seed), mode, chart.DefaultStyle())

	srv := &fasthttp.Server{
		Name:               "deathclock",
		Handler:            h.Handle,
		ReadTimeout:        cfg.ReadTimeout,
		WriteTimeout:       cfg.WriteTimeout,
		MaxRequestBodySize: cfg.MaxBodySize,
	}

	ctx, stop := signal.NotifyContext(cc.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		logging.Warn("deathclock starting", "addr", cfg.Addr, "column", t.Column(), "max_age", t.MaxAge(), "mode", mode)
		errs <- srv.ListenAndServe(cfg.Addr)
	}()

	select {
	case err := <-errs:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logging.Warn("deathclock shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
