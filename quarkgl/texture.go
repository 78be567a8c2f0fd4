package quarkgl

import (
	"image"
	"math"
)

// Texture is a single-channel alpha map.
type Texture struct {
	W, H  int
	Alpha []uint8
}

// TextureFromImage builds an alpha map from the green channel of img, the channel
// alpha maps conventionally read.
func TextureFromImage(img image.Image) *Texture {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	t := &Texture{W: b.Dx(), H: b.Dy(), Alpha: make([]uint8, b.Dx()*b.Dy())}
	for y := 0; y < t.H; y++ {
		for x := 0; x < t.W; x++ {
			_, g, _, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			t.Alpha[y*t.W+x] = uint8(g >> 8)
		}
	}
	return t
}

// RadialAlphaMap generates a size×size mask that is opaque at the center and fades
// to zero at the inscribed circle.
func RadialAlphaMap(size int) *Texture {
	if size <= 0 {
		size = 1
	}
	t := &Texture{W: size, H: size, Alpha: make([]uint8, size*size)}
	c := float64(size-1) / 2
	rMax := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)-c, float64(y)-c) / rMax
			if d >= 1 {
				continue
			}
			a := 1 - d
			t.Alpha[y*size+x] = uint8(a*a*255 + 0.5)
		}
	}
	return t
}

// Sample returns the alpha at normalized coordinates (nearest neighbour).
// A nil texture is fully opaque.
func (t *Texture) Sample(u, v float32) float32 {
	if t == nil || t.W <= 0 || t.H <= 0 || len(t.Alpha) < t.W*t.H {
		return 1
	}
	x := int(clampF32(u, 0, 1) * float32(t.W-1))
	y := int(clampF32(v, 0, 1) * float32(t.H-1))
	return float32(t.Alpha[y*t.W+x]) / 255
}
