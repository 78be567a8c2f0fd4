package quarkgl

import "errors"

// ErrDisposed is returned when a released resource is attached or rendered again.
var ErrDisposed = errors.New("quarkgl: resource disposed")

// Blending selects how point fragments combine with the color buffer.
type Blending uint8

const (
	NormalBlending Blending = iota
	AdditiveBlending
)

// resource carries the dispose bookkeeping shared by geometry and materials.
type resource struct {
	disposed  bool
	listeners []func()
}

func (r *resource) onDispose(fn func()) { r.listeners = append(r.listeners, fn) }

func (r *resource) dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	listeners := r.listeners
	r.listeners = nil
	for _, fn := range listeners {
		fn()
	}
}

// Geometry holds per-point attributes as flat xyz / rgb triples.
type Geometry struct {
	resource

	Positions []float32
	Colors    []float32
}

// NewGeometry wraps position and optional color buffers.
func NewGeometry(positions, colors []float32) *Geometry {
	return &Geometry{Positions: positions, Colors: colors}
}

// Count returns the number of points.
func (g *Geometry) Count() int {
	if g == nil {
		return 0
	}
	return len(g.Positions) / 3
}

// Dispose releases the buffers. Renderers that uploaded them drop their copies.
func (g *Geometry) Dispose() {
	if g == nil {
		return
	}
	g.dispose()
	g.Positions = nil
	g.Colors = nil
}

func (g *Geometry) Disposed() bool { return g == nil || g.disposed }

// PointsMaterial describes how points are shaded.
type PointsMaterial struct {
	resource

	Color Color
	Size  Scalar

	// SizeAttenuation shrinks points with distance from the camera.
	SizeAttenuation bool
	// VertexColors multiplies Color by the geometry's per-point colors.
	VertexColors bool
	// AlphaMap modulates each point sprite's opacity.
	AlphaMap *Texture

	Transparent bool
	Opacity     Scalar
	Blending    Blending
	DepthWrite  bool
	DepthTest   bool
}

// NewPointsMaterial returns a material with renderer defaults: white, size 1,
// opaque, normal blending, depth test and write enabled.
func NewPointsMaterial() *PointsMaterial {
	return &PointsMaterial{
		Color:           White,
		Size:            1,
		SizeAttenuation: true,
		Opacity:         1,
		DepthWrite:      true,
		DepthTest:       true,
	}
}

func (m *PointsMaterial) Dispose() {
	if m == nil {
		return
	}
	m.dispose()
}

func (m *PointsMaterial) Disposed() bool { return m == nil || m.disposed }

// Points is a scene graph node rendering a geometry as point sprites.
type Points struct {
	Name     string
	Geometry *Geometry
	Material *PointsMaterial

	Position Vec3
	Rotation Vec3 // Euler angles in radians, applied Y then X then Z.
	Visible  bool
}

// NewPoints creates a visible node.
func NewPoints(g *Geometry, m *PointsMaterial) *Points {
	return &Points{Geometry: g, Material: m, Visible: true}
}

// Matrix returns the node's model transform.
func (p *Points) Matrix() Mat4 {
	rot := Mat4Mul(Mat4RotateY(p.Rotation.Y), Mat4Mul(Mat4RotateX(p.Rotation.X), Mat4RotateZ(p.Rotation.Z)))
	return Mat4Mul(Mat4Translate(p.Position), rot)
}

// Release disposes the node's geometry and material.
func (p *Points) Release() {
	if p == nil {
		return
	}
	p.Geometry.Dispose()
	p.Material.Dispose()
}

// Released reports whether the node's resources have been disposed.
func (p *Points) Released() bool {
	return p == nil || p.Geometry.Disposed() || p.Material.Disposed()
}
