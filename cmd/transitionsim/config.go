package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config drives one simulation run. Environment variables set the
// defaults; command line flags override them.
type Config struct {
	Level      string        `env:"TRANSITIONSIM_LEVEL"       envDefault:"demo_level.yaml"`
	Settings   string        `env:"TRANSITIONSIM_SETTINGS"`
	Transition string        `env:"TRANSITIONSIM_TRANSITION"  envDefault:"door"`
	Step       float64       `env:"TRANSITIONSIM_STEP"        envDefault:"0.0166666667"`
	MaxTicks   int           `env:"TRANSITIONSIM_MAX_TICKS"   envDefault:"2000"`
	Cycles     int           `env:"TRANSITIONSIM_CYCLES"      envDefault:"2"`
	Mode       string        `env:"TRANSITIONSIM_MODE"        envDefault:"log"`
	FrameDelay time.Duration `env:"TRANSITIONSIM_FRAME_DELAY" envDefault:"16ms"`
}

const (
	modeLog  = "log"
	modeTerm = "term"
)

// parseConfig reads environ and then args. A nil environ reads the process
// environment.
func parseConfig(args []string, environ map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("transitionsim", flag.ContinueOnError)
	fs.StringVar(&cfg.Level, "level", cfg.Level, "level spec whose transition is simulated when -settings is empty")
	fs.StringVar(&cfg.Settings, "settings", cfg.Settings, "transition settings file saved by the game")
	fs.StringVar(&cfg.Transition, "transition", cfg.Transition, "transition name to simulate")
	fs.Float64Var(&cfg.Step, "step", cfg.Step, "seconds per tick")
	fs.IntVar(&cfg.MaxTicks, "max-ticks", cfg.MaxTicks, "tick limit per cycle")
	fs.IntVar(&cfg.Cycles, "cycles", cfg.Cycles, "number of trigger cycles; cycles alternate enter and exit")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "output mode: log or term")
	fs.DurationVar(&cfg.FrameDelay, "frame-delay", cfg.FrameDelay, "delay between frames in term mode")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Mode != modeLog && c.Mode != modeTerm {
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if c.Step <= 0 {
		return fmt.Errorf("step must be positive, got %v", c.Step)
	}
	if c.MaxTicks <= 0 || c.Cycles <= 0 {
		return fmt.Errorf("max ticks and cycles must be positive")
	}
	return nil
}
