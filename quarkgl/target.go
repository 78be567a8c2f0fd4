package quarkgl

// Target is a minimal pixel target for software rendering.
//
// Implementations should clip out-of-bounds coordinates.
type Target interface {
	Size() (w, h int)
	SetPixel(x, y int, c Color)
}

// RGBATarget renders into an 8-bit RGBA buffer.
//
// Callers provide the backing buffer and layout (stride); no copy is made.
type RGBATarget struct {
	Buf    []byte
	Stride int // bytes per row
	W      int
	H      int
}

func (t *RGBATarget) Size() (w, h int) { return t.W, t.H }

func (t *RGBATarget) SetPixel(x, y int, c Color) {
	if t == nil || t.Buf == nil || t.Stride <= 0 {
		return
	}
	if x < 0 || y < 0 || x >= t.W || y >= t.H {
		return
	}
	off := y*t.Stride + x*4
	if off < 0 || off+3 >= len(t.Buf) {
		return
	}
	t.Buf[off+0] = c.R
	t.Buf[off+1] = c.G
	t.Buf[off+2] = c.B
	t.Buf[off+3] = c.A
}

// At returns the pixel at x, y.
func (t *RGBATarget) At(x, y int) Color {
	if t == nil || x < 0 || y < 0 || x >= t.W || y >= t.H {
		return Color{}
	}
	off := y*t.Stride + x*4
	if off < 0 || off+3 >= len(t.Buf) {
		return Color{}
	}
	return Color{R: t.Buf[off], G: t.Buf[off+1], B: t.Buf[off+2], A: t.Buf[off+3]}
}
