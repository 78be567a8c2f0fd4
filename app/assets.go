package app

import (
	"fmt"

	"galaxy/quarkgl"

	"github.com/disintegration/imaging"
)

const (
	defaultMaskSize = 64
	// Sprites rarely cover more than a few dozen pixels, so larger masks are
	// downsampled once at load.
	maxMaskSize = 128
)

// LoadMask loads the point alpha mask from path, or builds the radial default when
// path is empty.
func LoadMask(path string) (*quarkgl.Texture, error) {
	if path == "" {
		return quarkgl.RadialAlphaMap(defaultMaskSize), nil
	}
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load mask: %w", err)
	}
	b := img.Bounds()
	if b.Dx() > maxMaskSize || b.Dy() > maxMaskSize {
		img = imaging.Fit(img, maxMaskSize, maxMaskSize, imaging.Lanczos)
	}
	return quarkgl.TextureFromImage(img), nil
}
