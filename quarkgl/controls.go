package quarkgl

import "math"

const maxPitch = Scalar(math.Pi/2 - 0.01)

// OrbitController provides orbit/zoom/pan interactions for a camera.
//
// Input is fed in as deltas (Rotate, Zoom, Pan) and applied by Update. With damping
// enabled each Update consumes only DampingFactor of the pending rotation and keeps
// the rest, so the view keeps drifting after input stops.
//
// It does not depend on any input system.
type OrbitController struct {
	Target Vec3
	Yaw    Scalar
	Pitch  Scalar
	Radius Scalar

	MinRadius Scalar
	MaxRadius Scalar

	EnableDamping bool
	DampingFactor Scalar

	camera *Camera

	pendingYaw   Scalar
	pendingPitch Scalar
	pendingZoom  Scalar
	pendingPan   Vec3
}

// NewOrbitController binds a controller to cam and derives yaw, pitch and radius
// from the camera's current position relative to its target.
func NewOrbitController(cam *Camera) *OrbitController {
	c := &OrbitController{DampingFactor: 0.05}
	c.Bind(cam)
	return c
}

// Bind attaches the controller to cam, adopting its current placement.
func (c *OrbitController) Bind(cam *Camera) {
	c.camera = cam
	if cam == nil {
		return
	}
	c.Target = cam.Target
	off := cam.Position.Sub(cam.Target)
	c.Radius = Len(off)
	if c.Radius == 0 {
		return
	}
	// Inverse of Apply: off = (sin(yaw)cos(p), -sin(p), cos(yaw)cos(p)) * r.
	c.Yaw = Scalar(math.Atan2(float64(off.X), float64(off.Z)))
	c.Pitch = Scalar(-math.Asin(float64(off.Y / c.Radius)))
}

// Apply places cam from the controller's current yaw, pitch, radius and target.
func (c *OrbitController) Apply(cam *Camera) {
	if cam == nil {
		return
	}
	r := c.Radius
	if r == 0 {
		r = Scalar(3)
	}
	if c.MinRadius != 0 && r < c.MinRadius {
		r = c.MinRadius
	}
	if c.MaxRadius != 0 && r > c.MaxRadius {
		r = c.MaxRadius
	}

	m := Mat4Mul(Mat4RotateY(c.Yaw), Mat4RotateX(c.Pitch))
	p := Mat4MulV4(m, Vec4{X: 0, Y: 0, Z: r, W: 1})

	cam.Position = c.Target.Add(V3(p.X, p.Y, p.Z))
	cam.Target = c.Target
	if cam.Up == (Vec3{}) {
		cam.Up = V3(0, 1, 0)
	}
}

func (c *OrbitController) Rotate(deltaYaw, deltaPitch Scalar) {
	c.pendingYaw += deltaYaw
	c.pendingPitch += deltaPitch
}

func (c *OrbitController) Zoom(delta Scalar) {
	c.pendingZoom += delta
}

// Pan moves the orbit target in the camera's screen plane.
func (c *OrbitController) Pan(dx, dy Scalar) {
	if c.camera == nil {
		return
	}
	fwd := Normalize(c.camera.Target.Sub(c.camera.Position))
	up := c.camera.Up
	if up == (Vec3{}) {
		up = V3(0, 1, 0)
	}
	right := Normalize(Cross(fwd, up))
	camUp := Cross(right, fwd)
	c.pendingPan = c.pendingPan.Add(right.Mul(-dx)).Add(camUp.Mul(dy))
}

// Update advances the controller by one step and places the bound camera.
//
// It reports whether the camera moved.
func (c *OrbitController) Update() bool {
	k := Scalar(1)
	if c.EnableDamping {
		k = Clamp01(c.DampingFactor)
	}

	prevYaw, prevPitch, prevRadius, prevTarget := c.Yaw, c.Pitch, c.Radius, c.Target

	c.Yaw += c.pendingYaw * k
	c.Pitch += c.pendingPitch * k
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
	c.Radius += c.pendingZoom * k
	if c.MinRadius != 0 && c.Radius < c.MinRadius {
		c.Radius = c.MinRadius
	}
	if c.MaxRadius != 0 && c.Radius > c.MaxRadius {
		c.Radius = c.MaxRadius
	}
	c.Target = c.Target.Add(c.pendingPan.Mul(k))

	if c.EnableDamping {
		c.pendingYaw *= 1 - k
		c.pendingPitch *= 1 - k
		c.pendingZoom *= 1 - k
		c.pendingPan = c.pendingPan.Mul(1 - k)
	} else {
		c.pendingYaw, c.pendingPitch, c.pendingZoom, c.pendingPan = 0, 0, 0, Vec3{}
	}

	c.Apply(c.camera)
	return c.Yaw != prevYaw || c.Pitch != prevPitch || c.Radius != prevRadius || c.Target != prevTarget
}
