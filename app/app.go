// Package app wires the point-cloud generator, the scene and the host together: it
// owns the two clouds, keeps the camera and renderer in step with the viewport, and
// advances one frame per Step.
package app

import (
	"fmt"
	"math/rand/v2"
	"time"

	"galaxy/cloud"
	"galaxy/hal"

	"go.uber.org/zap"
)

type Config struct {
	Params cloud.Params

	// ParamsPath is the file Params came from. When Watch is set, edits to it are
	// reloaded between frames.
	ParamsPath string
	Watch      bool

	MaskPath string
	// Seed feeds the generator; 0 picks one from the clock.
	Seed uint64

	HUD      bool
	Snapshot string
}

// New builds the scene for h and generates both clouds. The returned Driver is
// ready for its first Step.
func New(h hal.HAL, cfg Config, log *zap.SugaredLogger) (*Driver, error) {
	if h == nil || h.Display() == nil || h.Display().Framebuffer() == nil {
		return nil, fmt.Errorf("app: no display")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if err := cfg.Params.Validate(); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	mask, err := LoadMask(cfg.MaskPath)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	disp := h.Display()
	composer := NewComposer(disp.Framebuffer(), disp.Viewport(), log.Named("composer"))
	clouds := NewClouds(composer.Scene, mask, rng, log.Named("clouds"))
	if err := clouds.RegenerateAll(cfg.Params); err != nil {
		clouds.Release()
		return nil, err
	}

	drv := &Driver{
		h:        h,
		cfg:      cfg,
		params:   cfg.Params,
		composer: composer,
		clouds:   clouds,
		hud:      cfg.HUD,
		log:      log,
	}

	if cfg.Watch && cfg.ParamsPath != "" {
		w, err := watchParams(cfg.ParamsPath, reloadDelay, log.Named("reload"))
		if err != nil {
			clouds.Release()
			return nil, err
		}
		drv.watcher = w
	}

	log.Infow("galaxy ready",
		"seed", seed,
		"points", cfg.Params.Count,
		"stars", cfg.Params.Stars,
		"viewport", fmt.Sprintf("%dx%d", composer.Viewport().Width, composer.Viewport().Height),
	)
	return drv, nil
}
