package quarkgl

// Color is an RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// White is the neutral material color: vertex colors pass through unchanged.
var White = RGB(0xFF, 0xFF, 0xFF)

// ColorFromFloats converts 0..1 channels to a Color, clamping out-of-range values.
func ColorFromFloats(r, g, b float32) Color {
	return RGB(unitToByte(r), unitToByte(g), unitToByte(b))
}

// Floats returns the RGB channels in 0..1.
func (c Color) Floats() (r, g, b float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255
}

func (c Color) MulScalar(s Scalar) Color {
	t := uint32(Clamp01(s) * 255)
	mul := func(ch uint8) uint8 {
		return uint8((uint32(ch) * t) / 255)
	}
	return Color{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: c.A}
}

func (c Color) WithAlpha(a uint8) Color { c.A = a; return c }

func unitToByte(v float32) uint8 {
	return uint8(clampF32(v, 0, 1)*255 + 0.5)
}
