package quarkgl

// Camera is a perspective camera.
//
// The projection matrix is cached: after changing FOVYRad, Aspect, Near or Far call
// UpdateProjectionMatrix, otherwise the renderer keeps using the previous projection.
type Camera struct {
	Position Vec3
	Target   Vec3
	Up       Vec3

	FOVYRad Scalar
	Aspect  Scalar
	Near    Scalar
	Far     Scalar

	projection Mat4
}

// NewPerspectiveCamera creates a camera looking at the origin from +Z.
func NewPerspectiveCamera(fovYRad, aspect, near, far Scalar) *Camera {
	c := &Camera{
		Position: V3(0, 0, 3),
		Target:   V3(0, 0, 0),
		Up:       V3(0, 1, 0),
		FOVYRad:  fovYRad,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
	}
	c.UpdateProjectionMatrix()
	return c
}

// UpdateProjectionMatrix recomputes the cached projection from the lens fields.
func (c *Camera) UpdateProjectionMatrix() {
	fov := c.FOVYRad
	if fov == 0 {
		fov = Scalar(1.0)
	}
	c.projection = Mat4Perspective(fov, c.Aspect, c.Near, c.Far)
}

// ProjectionMatrix returns the cached projection.
func (c *Camera) ProjectionMatrix() Mat4 {
	if c.projection == (Mat4{}) {
		c.UpdateProjectionMatrix()
	}
	return c.projection
}

// View returns the camera view matrix.
func (c *Camera) View() Mat4 {
	up := c.Up
	if up == (Vec3{}) {
		up = V3(0, 1, 0)
	}
	return Mat4LookAt(c.Position, c.Target, up)
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target Vec3) { c.Target = target }
