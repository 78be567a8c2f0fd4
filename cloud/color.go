package cloud

import "github.com/lucasb-eyer/go-colorful"

// RGB is a color with channels in 0..1.
type RGB struct {
	R, G, B float64
}

// ParseColor parses "#rrggbb" or "#rgb".
func ParseColor(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, err
	}
	return RGB{R: c.R, G: c.G, B: c.B}, nil
}

// Gradient interpolates linearly in RGB between an inside and an outside color.
type Gradient struct {
	inside  colorful.Color
	outside colorful.Color
}

// NewGradient parses both endpoint colors.
func NewGradient(inside, outside string) (Gradient, error) {
	in, err := colorful.Hex(inside)
	if err != nil {
		return Gradient{}, err
	}
	out, err := colorful.Hex(outside)
	if err != nil {
		return Gradient{}, err
	}
	return Gradient{inside: in, outside: out}, nil
}

// At returns the color at frac (0 = inside, 1 = outside).
func (g Gradient) At(frac float64) RGB {
	c := g.inside.BlendRgb(g.outside, frac)
	return RGB{R: c.R, G: c.G, B: c.B}
}
