package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"galaxy/app"
	"galaxy/cloud"
	"galaxy/hal"
	"galaxy/internal/buildinfo"
	"galaxy/internal/config"
	"galaxy/internal/logging"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cliApp := &cli.App{
		Name:    "galaxy",
		Usage:   "render a procedural spiral galaxy and starfield",
		Version: buildinfo.String(),
		Flags:   config.Flags(),
		Action:  run,
	}
	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.FromContext(c)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	params := cloud.DefaultParams()
	if cfg.Params.Path != "" {
		if params, err = cloud.LoadParams(cfg.Params.Path); err != nil {
			return err
		}
	}
	appCfg := app.Config{
		Params:     params,
		ParamsPath: cfg.Params.Path,
		Watch:      cfg.Params.Watch,
		MaskPath:   cfg.Assets.Mask,
		Seed:       cfg.Params.Seed,
		HUD:        cfg.Window.HUD,
		Snapshot:   cfg.Headless.Snapshot,
	}
	newApp := func(h hal.HAL) (hal.App, error) {
		d, err := app.New(h, appCfg, log.Named("app"))
		if err != nil {
			return nil, err
		}
		return d, nil
	}

	log.Infow("starting", "version", buildinfo.Short(), "headless", cfg.Headless.Enabled)

	if cfg.Headless.Enabled {
		ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
		defer stop()
		err := hal.RunHeadless(ctx, newApp, hal.HeadlessConfig{
			Width:  cfg.Window.Width,
			Height: cfg.Window.Height,
			Hz:     cfg.Headless.Hz,
			Ticks:  cfg.Headless.Ticks,
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	return hal.RunWindow(hal.WindowConfig{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Title:  "Galaxy (" + buildinfo.Short() + ")",
	}, newApp)
}
