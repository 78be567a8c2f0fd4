package hal

import "time"

// wallClock measures real monotonic time from its creation.
type wallClock struct {
	start time.Time
}

func newWallClock() *wallClock { return &wallClock{start: time.Now()} }

func (c *wallClock) Elapsed() time.Duration { return time.Since(c.start) }

// stepClock advances a fixed period per tick, so headless runs are reproducible.
type stepClock struct {
	period time.Duration
	ticks  uint64
}

func (c *stepClock) Elapsed() time.Duration { return time.Duration(c.ticks) * c.period }

func (c *stepClock) step() { c.ticks++ }
