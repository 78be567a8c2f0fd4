// Package config assembles runtime configuration from flags, environment variables
// and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"galaxy/internal/logging"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

const envPrefix = "GALAXY_"

const (
	flagParams   = "params"
	flagWatch    = "watch"
	flagMask     = "mask"
	flagSeed     = "seed"
	flagWidth    = "width"
	flagHeight   = "height"
	flagHUD      = "hud"
	flagHeadless = "headless"
	flagHz       = "hz"
	flagTicks    = "ticks"
	flagSnapshot = "snapshot"
	flagLogLevel = "log-level"
	flagLogJSON  = "log-json"
)

type Config struct {
	Window   WindowConfig
	Headless HeadlessConfig
	Logging  logging.Config
	Assets   AssetsConfig
	Params   ParamsConfig
}

type WindowConfig struct {
	Width  int
	Height int
	HUD    bool
}

type HeadlessConfig struct {
	Enabled  bool
	Hz       int
	Ticks    uint64
	Snapshot string
}

type AssetsConfig struct {
	// Mask is the alpha mask image path. Empty selects the built-in radial mask.
	Mask string
}

type ParamsConfig struct {
	// Path is an optional JSON parameter file.
	Path  string
	Watch bool
	// Seed feeds the generator; 0 picks one from the clock.
	Seed uint64
}

// LoadDotEnv loads variables from the given .env files (default ".env") without
// overriding the existing environment. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func env(name string) []string { return []string{envPrefix + name} }

// Flags returns the command-line flags, each bound to a GALAXY_* variable.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: flagParams, Usage: "JSON parameter file", EnvVars: env("PARAMS")},
		&cli.BoolFlag{Name: flagWatch, Usage: "regenerate when the parameter file changes", Value: true, EnvVars: env("WATCH")},
		&cli.StringFlag{Name: flagMask, Usage: "alpha mask image (empty for built-in)", EnvVars: env("MASK")},
		&cli.Uint64Flag{Name: flagSeed, Usage: "random seed (0 = time based)", EnvVars: env("SEED")},
		&cli.IntFlag{Name: flagWidth, Usage: "window width", Value: 960, EnvVars: env("WIDTH")},
		&cli.IntFlag{Name: flagHeight, Usage: "window height", Value: 640, EnvVars: env("HEIGHT")},
		&cli.BoolFlag{Name: flagHUD, Usage: "draw the parameter overlay", Value: true, EnvVars: env("HUD")},
		&cli.BoolFlag{Name: flagHeadless, Usage: "run without a window", EnvVars: env("HEADLESS")},
		&cli.IntFlag{Name: flagHz, Usage: "tick rate in headless mode", Value: 60, EnvVars: env("HZ")},
		&cli.Uint64Flag{Name: flagTicks, Usage: "stop after N ticks in headless mode (0 = run forever)", EnvVars: env("TICKS")},
		&cli.StringFlag{Name: flagSnapshot, Usage: "write the last headless frame to this PNG", EnvVars: env("SNAPSHOT")},
		&cli.StringFlag{Name: flagLogLevel, Usage: "debug, info, warn or error", Value: "info", EnvVars: env("LOG_LEVEL")},
		&cli.BoolFlag{Name: flagLogJSON, Usage: "log as JSON", EnvVars: env("LOG_JSON")},
	}
}

// FromContext builds and validates the configuration from parsed flags.
func FromContext(c *cli.Context) (Config, error) {
	cfg := Config{
		Window: WindowConfig{
			Width:  c.Int(flagWidth),
			Height: c.Int(flagHeight),
			HUD:    c.Bool(flagHUD),
		},
		Headless: HeadlessConfig{
			Enabled:  c.Bool(flagHeadless),
			Hz:       c.Int(flagHz),
			Ticks:    c.Uint64(flagTicks),
			Snapshot: c.String(flagSnapshot),
		},
		Logging: logging.Config{
			Level: c.String(flagLogLevel),
			JSON:  c.Bool(flagLogJSON),
		},
		Assets: AssetsConfig{Mask: c.String(flagMask)},
		Params: ParamsConfig{
			Path:  c.String(flagParams),
			Watch: c.Bool(flagWatch),
			Seed:  c.Uint64(flagSeed),
		},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Headless.Hz <= 0 {
		return fmt.Errorf("hz %d must be positive", c.Headless.Hz)
	}
	if c.Headless.Snapshot != "" && !c.Headless.Enabled {
		return errors.New("--snapshot requires --headless")
	}
	if c.Headless.Snapshot != "" && c.Headless.Ticks == 0 {
		return errors.New("--snapshot requires --ticks")
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}
