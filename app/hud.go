package app

import (
	"fmt"
	"image/color"

	"galaxy/cloud"
	"galaxy/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

var (
	hudFG  = color.RGBA{R: 0xE0, G: 0xE8, B: 0xFF, A: 0xFF}
	hudDim = color.RGBA{R: 0x90, G: 0xA0, B: 0xB8, A: 0xFF}
)

const hudHelp = "[ ] arms  - = spin  , . power  9 0 count  r regen  h hud  q quit"

// hudDisplay adapts the framebuffer to tinyfont, drawing each font pixel as a
// scale×scale block.
type hudDisplay struct {
	fb    hal.Framebuffer
	scale int16
}

var _ drivers.Displayer = (*hudDisplay)(nil)

func (d *hudDisplay) Size() (x, y int16) {
	if d.fb == nil || d.scale <= 0 {
		return 0, 0
	}
	return int16(d.fb.Width()) / d.scale, int16(d.fb.Height()) / d.scale
}

func (d *hudDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGBA8888 {
		return
	}
	buf := d.fb.Buffer()
	w, h := d.fb.Width(), d.fb.Height()
	for dy := int16(0); dy < d.scale; dy++ {
		for dx := int16(0); dx < d.scale; dx++ {
			ix := int(x*d.scale + dx)
			iy := int(y*d.scale + dy)
			if ix < 0 || ix >= w || iy < 0 || iy >= h {
				continue
			}
			off := iy*d.fb.StrideBytes() + ix*4
			if off < 0 || off+3 >= len(buf) {
				continue
			}
			buf[off+0] = c.R
			buf[off+1] = c.G
			buf[off+2] = c.B
			buf[off+3] = 0xFF
		}
	}
}

func (d *hudDisplay) Display() error { return nil }

func hudLines(p cloud.Params, frame uint64) []string {
	return []string{
		fmt.Sprintf("points %d  arms %d  spin %.2f  power %.1f", p.Count, p.Branches, p.Spin, p.RandomnessPower),
		fmt.Sprintf("stars %d  radius %.1f  size %.3f  frame %d", p.Stars, p.Radius, p.Size, frame),
		hudHelp,
	}
}

// drawHUD writes the overlay into the top-left corner of fb.
func drawHUD(fb hal.Framebuffer, lines []string) {
	if fb == nil {
		return
	}
	scale := int16(fb.Height() / 320)
	if scale < 1 {
		scale = 1
	}
	d := &hudDisplay{fb: fb, scale: scale}
	font := &tinyfont.TomThumb
	lh := int16(font.GetYAdvance())
	for i, s := range lines {
		c := hudFG
		if i == len(lines)-1 {
			c = hudDim
		}
		tinyfont.WriteLine(d, font, 4, 4+lh*int16(i+1), s, c)
	}
}
