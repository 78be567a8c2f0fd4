package app

import (
	"math"

	"galaxy/hal"
	"galaxy/quarkgl"

	"go.uber.org/zap"
)

const (
	cameraFOVDeg = 75
	cameraNear   = 0.1
	cameraFar    = 100

	sceneCapacity = 4
)

// Composer owns the scene graph, camera, controls and renderer, and keeps them
// consistent with the host viewport.
type Composer struct {
	Scene    *quarkgl.Scene
	Camera   *quarkgl.Camera
	Controls *quarkgl.OrbitController
	Renderer *quarkgl.Renderer

	fb       hal.Framebuffer
	viewport hal.Viewport
	log      *zap.SugaredLogger
}

// NewComposer sets up the camera at (3,3,3) looking at the origin, damped orbit
// controls, and a renderer sized to vp.
func NewComposer(fb hal.Framebuffer, vp hal.Viewport, log *zap.SugaredLogger) *Composer {
	aspect := quarkgl.Scalar(1)
	if vp.Height > 0 {
		aspect = quarkgl.Scalar(vp.Width) / quarkgl.Scalar(vp.Height)
	}
	cam := quarkgl.NewPerspectiveCamera(quarkgl.DegToRad(cameraFOVDeg), aspect, cameraNear, cameraFar)
	cam.Position = quarkgl.V3(3, 3, 3)
	cam.LookAt(quarkgl.V3(0, 0, 0))

	controls := quarkgl.NewOrbitController(cam)
	controls.EnableDamping = true
	controls.MinRadius = 0.5
	controls.MaxRadius = cameraFar / 2

	c := &Composer{
		Scene:    quarkgl.CreateScene(sceneCapacity),
		Camera:   cam,
		Controls: controls,
		Renderer: quarkgl.NewRenderer(vp.Width, vp.Height),
		fb:       fb,
		log:      log,
	}
	c.Resize(vp)
	return c
}

// Resize applies a new viewport to the camera, the renderer and the framebuffer
// together. Zero-sized viewports (minimized windows) are ignored.
func (c *Composer) Resize(vp hal.Viewport) {
	if vp.Width <= 0 || vp.Height <= 0 {
		return
	}
	c.viewport = vp

	c.Camera.Aspect = quarkgl.Scalar(vp.Width) / quarkgl.Scalar(vp.Height)
	c.Camera.UpdateProjectionMatrix()

	c.Renderer.SetSize(vp.Width, vp.Height)
	c.Renderer.SetPixelRatio(quarkgl.Scalar(math.Min(vp.DeviceScale, quarkgl.MaxPixelRatio)))

	dw, dh := c.Renderer.DrawingBufferSize()
	if c.fb != nil && (c.fb.Width() != dw || c.fb.Height() != dh) {
		c.fb.Resize(dw, dh)
	}
	c.log.Debugw("viewport resized", "width", vp.Width, "height", vp.Height, "pixelRatio", c.Renderer.PixelRatio())
}

// Viewport returns the last applied viewport.
func (c *Composer) Viewport() hal.Viewport { return c.viewport }

// Target wraps the framebuffer for the renderer.
func (c *Composer) Target() *quarkgl.RGBATarget {
	return &quarkgl.RGBATarget{
		Buf:    c.fb.Buffer(),
		Stride: c.fb.StrideBytes(),
		W:      c.fb.Width(),
		H:      c.fb.Height(),
	}
}

// Render draws the scene into the framebuffer.
func (c *Composer) Render() {
	if c.fb == nil {
		return
	}
	c.Renderer.Render(c.Target(), c.Scene, c.Camera)
}
