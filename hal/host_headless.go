package hal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Width  int
	Height int
	Scale  float64
	Hz     int
	Ticks  uint64
}

// RunHeadless drives the app without opening a window. The clock advances one
// period per tick regardless of wall time.
func RunHeadless(ctx context.Context, newApp func(HAL) (App, error), cfg HeadlessConfig) (err error) {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("invalid headless viewport: %dx%d", cfg.Width, cfg.Height)
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	clock := &stepClock{period: d}
	h := newHost(cfg.Width, cfg.Height, cfg.Scale, clock)
	a, err := newApp(h)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, a.Close()) }()

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if err := a.Step(); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
			clock.step()
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
