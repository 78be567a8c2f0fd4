package app

import (
	"math"

	"galaxy/cloud"
	"galaxy/hal"
	"galaxy/quarkgl"
)

const (
	spinStep  = 0.1
	powerStep = 0.5
	maxCount  = 1 << 21

	// keyOrbitStep is the yaw/pitch added per arrow key press, in radians.
	keyOrbitStep = 0.1
	// wheelZoom is the fraction of the current radius moved per wheel notch.
	wheelZoom = 0.1
)

// handleInput drains pending key and pointer events. It returns hal.ErrQuit when
// the user asks to leave.
func (d *Driver) handleInput() error {
	in := d.h.Input()
	if in == nil {
		return nil
	}
	if kbd := in.Keyboard(); kbd != nil {
		if err := d.drainKeys(kbd.Events()); err != nil {
			return err
		}
	}
	if ptr := in.Pointer(); ptr != nil {
		d.drainPointer(ptr.Events())
	}
	return nil
}

func (d *Driver) drainKeys(ch <-chan hal.KeyEvent) error {
	if ch == nil {
		return nil
	}
	for {
		select {
		case ev := <-ch:
			if err := d.key(ev); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (d *Driver) key(ev hal.KeyEvent) error {
	if !ev.Press {
		return nil
	}
	c := d.composer.Controls
	switch ev.Code {
	case hal.KeyEscape:
		return hal.ErrQuit
	case hal.KeyLeft:
		c.Rotate(-keyOrbitStep, 0)
		return nil
	case hal.KeyRight:
		c.Rotate(keyOrbitStep, 0)
		return nil
	case hal.KeyUp:
		c.Rotate(0, -keyOrbitStep)
		return nil
	case hal.KeyDown:
		c.Rotate(0, keyOrbitStep)
		return nil
	}

	p := d.params
	switch ev.Rune {
	case 'q', 'Q':
		return hal.ErrQuit
	case 'h', 'H':
		d.hud = !d.hud
		return nil
	case 'r', 'R':
		d.apply(p, true)
		return nil
	case '[':
		if p.Branches <= 1 {
			return nil
		}
		p.Branches--
	case ']':
		p.Branches++
	case '-':
		p.Spin = roundTo(p.Spin-spinStep, spinStep)
	case '=', '+':
		p.Spin = roundTo(p.Spin+spinStep, spinStep)
	case ',':
		p.RandomnessPower = math.Max(0, p.RandomnessPower-powerStep)
	case '.':
		p.RandomnessPower += powerStep
	case '9':
		p.Count /= 2
	case '0':
		p.Count = min(maxCount, max(1, p.Count*2))
	default:
		return nil
	}
	if p == d.params {
		return nil
	}
	d.apply(p, false)
	d.log.Debugw("params edited", "key", string(ev.Rune), "params", paramsSummary(p))
	return nil
}

func (d *Driver) drainPointer(ch <-chan hal.PointerEvent) {
	if ch == nil {
		return
	}
	for {
		select {
		case ev := <-ch:
			d.pointer(ev)
		default:
			return
		}
	}
}

// pointer maps drags and the wheel onto the orbit controls. A drag across the full
// screen height orbits one full turn.
func (d *Driver) pointer(ev hal.PointerEvent) {
	fb := d.h.Display().Framebuffer()
	if fb == nil || fb.Height() <= 0 {
		return
	}
	c := d.composer.Controls
	h := float64(fb.Height())

	switch ev.Button {
	case hal.PointerPrimary:
		c.Rotate(quarkgl.Scalar(-2*math.Pi*ev.DX/h), quarkgl.Scalar(-2*math.Pi*ev.DY/h))
	case hal.PointerSecondary:
		// World units per pixel at the target distance.
		fov := float64(d.composer.Camera.FOVYRad)
		k := 2 * float64(c.Radius) * math.Tan(fov/2) / h
		c.Pan(quarkgl.Scalar(ev.DX*k), quarkgl.Scalar(ev.DY*k))
	}
	if ev.Wheel != 0 {
		c.Zoom(quarkgl.Scalar(-ev.Wheel * float64(c.Radius) * wheelZoom))
	}
}

func roundTo(v, step float64) float64 {
	return math.Round(v/step) * step
}

func paramsSummary(p cloud.Params) map[string]any {
	return map[string]any{
		"count":           p.Count,
		"branches":        p.Branches,
		"spin":            p.Spin,
		"randomnessPower": p.RandomnessPower,
	}
}
