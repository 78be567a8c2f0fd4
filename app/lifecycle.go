package app

import (
	"fmt"
	"math/rand/v2"
	"time"

	"galaxy/cloud"
	"galaxy/quarkgl"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Slot names one of the two point clouds in the scene.
type Slot int

const (
	SlotStarfield Slot = iota
	SlotGalaxy
	slotCount
)

func (s Slot) String() string {
	switch s {
	case SlotStarfield:
		return "starfield"
	case SlotGalaxy:
		return "galaxy"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

// Clouds owns the point-cloud node in each slot. Replacing a cloud releases the
// previous node's geometry and material before the successor is attached, so the
// scene never holds more than one node per slot.
type Clouds struct {
	scene *quarkgl.Scene
	mask  *quarkgl.Texture
	rng   *rand.Rand
	log   *zap.SugaredLogger

	slots [slotCount]*quarkgl.Points
}

func NewClouds(scene *quarkgl.Scene, mask *quarkgl.Texture, rng *rand.Rand, log *zap.SugaredLogger) *Clouds {
	return &Clouds{scene: scene, mask: mask, rng: rng, log: log}
}

// Get returns the node currently in slot, or nil.
func (c *Clouds) Get(slot Slot) *quarkgl.Points {
	if slot < 0 || slot >= slotCount {
		return nil
	}
	return c.slots[slot]
}

// Regenerate builds a fresh cloud for slot from p and swaps it in. Invalid params
// are rejected before anything is released, leaving the current cloud in place.
func (c *Clouds) Regenerate(slot Slot, p cloud.Params) error {
	if slot < 0 || slot >= slotCount {
		return fmt.Errorf("regenerate: unknown %s", slot)
	}

	start := time.Now()
	var (
		buf cloud.Buffers
		err error
	)
	switch slot {
	case SlotStarfield:
		buf, err = cloud.Starfield(p, c.rng)
	case SlotGalaxy:
		buf, err = cloud.Galaxy(p, c.rng)
	}
	if err != nil {
		return fmt.Errorf("regenerate %s: %w", slot, err)
	}
	m, err := c.material(slot, p)
	if err != nil {
		return fmt.Errorf("regenerate %s: %w", slot, err)
	}

	c.release(slot)

	node := quarkgl.NewPoints(quarkgl.NewGeometry(buf.Positions, buf.Colors), m)
	node.Name = slot.String()
	if c.scene.Add(node) < 0 {
		node.Release()
		return fmt.Errorf("regenerate %s: scene is full", slot)
	}
	c.slots[slot] = node

	c.log.Debugw("cloud regenerated", "slot", slot.String(), "points", buf.Count(), "took", time.Since(start))
	return nil
}

// RegenerateAll regenerates every slot, continuing past failures.
func (c *Clouds) RegenerateAll(p cloud.Params) error {
	var err error
	for s := Slot(0); s < slotCount; s++ {
		err = multierr.Append(err, c.Regenerate(s, p))
	}
	return err
}

// Release detaches and disposes every cloud.
func (c *Clouds) Release() {
	for s := Slot(0); s < slotCount; s++ {
		c.release(s)
	}
}

func (c *Clouds) release(slot Slot) {
	old := c.slots[slot]
	if old == nil {
		return
	}
	old.Release()
	c.scene.Remove(old)
	c.slots[slot] = nil
}

// material returns the glow material: alpha-masked, additive, no depth writes,
// size attenuated. The galaxy is colored per point, the starfield by StarColor.
func (c *Clouds) material(slot Slot, p cloud.Params) (*quarkgl.PointsMaterial, error) {
	m := quarkgl.NewPointsMaterial()
	m.Size = quarkgl.Scalar(p.Size)
	m.SizeAttenuation = true
	m.DepthWrite = false
	m.Blending = quarkgl.AdditiveBlending
	m.Transparent = true
	m.AlphaMap = c.mask

	switch slot {
	case SlotGalaxy:
		m.Color = quarkgl.White
		m.VertexColors = true
	case SlotStarfield:
		sc, err := cloud.ParseColor(p.StarColor)
		if err != nil {
			return nil, err
		}
		m.Color = quarkgl.ColorFromFloats(float32(sc.R), float32(sc.G), float32(sc.B))
	}
	return m, nil
}
