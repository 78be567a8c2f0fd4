package app

import (
	"fmt"
	"image"

	"galaxy/hal"

	"github.com/disintegration/imaging"
)

// SaveSnapshot writes the framebuffer to path; the format follows the extension.
func SaveSnapshot(fb hal.Framebuffer, path string) error {
	if fb == nil || fb.Format() != hal.PixelFormatRGBA8888 {
		return fmt.Errorf("snapshot: unsupported framebuffer")
	}
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width(), fb.Height()))
	src := fb.Buffer()
	for y := 0; y < fb.Height(); y++ {
		copy(img.Pix[y*img.Stride:(y+1)*img.Stride], src[y*fb.StrideBytes():])
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}
