package app

import (
	"galaxy/cloud"
	"galaxy/hal"
	"galaxy/quarkgl"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	galaxySpin    = 0.3
	starfieldSpin = -0.05
)

// Driver is the per-frame unit of work. It implements hal.App.
type Driver struct {
	h   hal.HAL
	cfg Config

	params   cloud.Params
	composer *Composer
	clouds   *Clouds
	watcher  *paramWatcher

	hud    bool
	frames uint64

	log *zap.SugaredLogger
}

var _ hal.App = (*Driver)(nil)

func (d *Driver) Composer() *Composer  { return d.composer }
func (d *Driver) Clouds() *Clouds      { return d.clouds }
func (d *Driver) Params() cloud.Params { return d.params }

// Step runs one frame: viewport, input, reloads, animation, render, present.
func (d *Driver) Step() error {
	if vp := d.h.Display().Viewport(); vp != d.composer.Viewport() {
		d.composer.Resize(vp)
	}

	if err := d.handleInput(); err != nil {
		return err
	}

	if d.watcher != nil && d.watcher.Changed() {
		d.reload()
	}

	elapsed := quarkgl.Scalar(d.h.Clock().Elapsed().Seconds())
	if g := d.clouds.Get(SlotGalaxy); g != nil {
		g.Rotation.Y = elapsed * galaxySpin
	}
	if s := d.clouds.Get(SlotStarfield); s != nil {
		s.Rotation.Y = elapsed * starfieldSpin
	}

	d.composer.Controls.Update()
	d.composer.Render()
	d.frames++

	fb := d.h.Display().Framebuffer()
	if d.hud {
		drawHUD(fb, hudLines(d.params, d.frames))
	}
	return fb.Present()
}

// Close writes the configured snapshot, stops watching and releases both clouds.
func (d *Driver) Close() error {
	var err error
	if d.cfg.Snapshot != "" {
		if serr := SaveSnapshot(d.h.Display().Framebuffer(), d.cfg.Snapshot); serr != nil {
			err = multierr.Append(err, serr)
		} else {
			d.log.Infow("snapshot written", "path", d.cfg.Snapshot, "frames", d.frames)
		}
	}
	if d.watcher != nil {
		err = multierr.Append(err, d.watcher.Close())
		d.watcher = nil
	}
	d.clouds.Release()
	return err
}

// reload re-reads the parameter file. A file that fails to load or validate leaves
// the current clouds on screen.
func (d *Driver) reload() {
	p, err := cloud.LoadParams(d.cfg.ParamsPath)
	if err != nil {
		d.log.Warnw("params reload rejected", "path", d.cfg.ParamsPath, "error", err)
		return
	}
	d.apply(p, true)
	d.log.Infow("params reloaded", "path", d.cfg.ParamsPath)
}

// apply regenerates the galaxy (and the starfield when all is set) from p and
// adopts p only if every regeneration succeeded.
func (d *Driver) apply(p cloud.Params, all bool) {
	var err error
	if all {
		err = d.clouds.RegenerateAll(p)
	} else {
		err = d.clouds.Regenerate(SlotGalaxy, p)
	}
	if err != nil {
		d.log.Warnw("regeneration failed", "error", err)
		return
	}
	d.params = p
}
