package quarkgl

import "math"

// MaxPixelRatio caps the drawing-buffer density on very high-DPI displays.
const MaxPixelRatio = 2

// Info reports renderer resource and frame counters.
type Info struct {
	Geometries int // resident geometries (seen by Render, not yet disposed)
	Materials  int // resident materials
	Frames     uint64
	Points     int // points splatted in the last frame
}

// Renderer is a fixed-pipeline software point renderer.
//
// Create it once and reuse it to avoid allocations.
type Renderer struct {
	ClearColor Color

	width      int
	height     int
	pixelRatio Scalar

	accum    []float32 // rgb per pixel
	depthBuf []float32

	geometries map[*Geometry]struct{}
	materials  map[*PointsMaterial]struct{}

	frames     uint64
	lastPoints int
}

// NewRenderer creates a renderer for a viewport of w×h at pixel ratio 1.
func NewRenderer(w, h int) *Renderer {
	r := &Renderer{
		ClearColor: RGB(0, 0, 0),
		pixelRatio: 1,
		geometries: make(map[*Geometry]struct{}),
		materials:  make(map[*PointsMaterial]struct{}),
	}
	r.SetSize(w, h)
	return r
}

// SetSize sets the viewport size in logical pixels.
func (r *Renderer) SetSize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	r.width, r.height = w, h
}

// SetPixelRatio sets the drawing-buffer density, clamped to [1, MaxPixelRatio].
func (r *Renderer) SetPixelRatio(ratio Scalar) {
	if ratio < 1 || math.IsNaN(float64(ratio)) {
		ratio = 1
	}
	if ratio > MaxPixelRatio {
		ratio = MaxPixelRatio
	}
	r.pixelRatio = ratio
}

func (r *Renderer) Size() (w, h int)    { return r.width, r.height }
func (r *Renderer) PixelRatio() Scalar { return r.pixelRatio }

// DrawingBufferSize returns the physical size a target should have.
func (r *Renderer) DrawingBufferSize() (w, h int) {
	return int(float32(r.width) * r.pixelRatio), int(float32(r.height) * r.pixelRatio)
}

// Info returns the current counters.
func (r *Renderer) Info() Info {
	return Info{
		Geometries: len(r.geometries),
		Materials:  len(r.materials),
		Frames:     r.frames,
		Points:     r.lastPoints,
	}
}

func (r *Renderer) ensureBuffers(w, h int) {
	n := w * h
	if cap(r.accum) < n*3 {
		r.accum = make([]float32, n*3)
	} else {
		r.accum = r.accum[:n*3]
	}
	if cap(r.depthBuf) < n {
		r.depthBuf = make([]float32, n)
	} else {
		r.depthBuf = r.depthBuf[:n]
	}
}

func (r *Renderer) clear() {
	cr, cg, cb := r.ClearColor.Floats()
	for i := 0; i+2 < len(r.accum); i += 3 {
		r.accum[i+0] = cr
		r.accum[i+1] = cg
		r.accum[i+2] = cb
	}
	for i := range r.depthBuf {
		r.depthBuf[i] = 1e9
	}
}

// track marks the node's resources resident until they are disposed.
func (r *Renderer) track(p *Points) {
	if _, ok := r.geometries[p.Geometry]; !ok {
		g := p.Geometry
		r.geometries[g] = struct{}{}
		g.onDispose(func() { delete(r.geometries, g) })
	}
	if _, ok := r.materials[p.Material]; !ok {
		m := p.Material
		r.materials[m] = struct{}{}
		m.onDispose(func() { delete(r.materials, m) })
	}
}

// Render renders a scene from cam into the target.
func (r *Renderer) Render(t Target, s *Scene, cam *Camera) {
	if r == nil || t == nil || s == nil || cam == nil {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	r.ensureBuffers(w, h)
	r.clear()
	r.lastPoints = 0

	view := cam.View()
	proj := cam.ProjectionMatrix()

	s.eachPoints(func(p *Points) {
		if !p.Visible || p.Released() {
			return
		}
		r.track(p)
		r.renderPoints(w, h, proj, view, cam, p)
	})

	r.resolve(t, w, h)
	r.frames++
}

func (r *Renderer) renderPoints(w, h int, proj, view Mat4, cam *Camera, p *Points) {
	g, m := p.Geometry, p.Material
	n := g.Count()
	if n == 0 {
		return
	}
	mv := Mat4Mul(view, p.Matrix())

	mr, mg, mb := m.Color.Floats()
	alpha := float32(1)
	if m.Transparent {
		alpha = Clamp01(m.Opacity)
	}
	vertexColors := m.VertexColors && len(g.Colors) >= n*3
	scale := float32(h) / 2

	for i := 0; i < n; i++ {
		e := Mat4MulV4(mv, Vec4{X: g.Positions[i*3], Y: g.Positions[i*3+1], Z: g.Positions[i*3+2], W: 1})
		depth := -e.Z
		if depth <= cam.Near || depth >= cam.Far {
			continue
		}
		c := Mat4MulV4(proj, e)
		ndc, ok := clipToNDC(c)
		if !ok {
			continue
		}
		sx, sy := ndcToScreenF(ndc, w, h)

		size := m.Size
		if m.SizeAttenuation {
			size = m.Size * scale / depth
		}

		cr, cg, cb := mr, mg, mb
		if vertexColors {
			cr *= g.Colors[i*3]
			cg *= g.Colors[i*3+1]
			cb *= g.Colors[i*3+2]
		}

		r.splat(w, h, sx, sy, ndc.Z, size, cr, cg, cb, alpha, m)
		r.lastPoints++
	}
}

// splat draws one point sprite centered at (sx, sy). Sprites smaller than a pixel
// collapse to a single pixel whose alpha is scaled by the covered area.
func (r *Renderer) splat(w, h int, sx, sy, z, size, cr, cg, cb, alpha float32, m *PointsMaterial) {
	if size <= 1 {
		a := alpha * size * size * m.AlphaMap.Sample(0.5, 0.5)
		r.plot(w, h, int(math.Floor(float64(sx))), int(math.Floor(float64(sy))), z, cr, cg, cb, a, m)
		return
	}
	half := size / 2
	left, top := sx-half, sy-half
	x0, x1 := int(math.Floor(float64(left))), int(math.Ceil(float64(sx+half)))
	y0, y1 := int(math.Floor(float64(top))), int(math.Ceil(float64(sy+half)))
	for y := y0; y < y1; y++ {
		v := (float32(y) + 0.5 - top) / size
		if v < 0 || v > 1 {
			continue
		}
		for x := x0; x < x1; x++ {
			u := (float32(x) + 0.5 - left) / size
			if u < 0 || u > 1 {
				continue
			}
			a := alpha * m.AlphaMap.Sample(u, v)
			if a <= 0 {
				continue
			}
			r.plot(w, h, x, y, z, cr, cg, cb, a, m)
		}
	}
}

func (r *Renderer) plot(w, h, x, y int, z, cr, cg, cb, a float32, m *PointsMaterial) {
	if x < 0 || y < 0 || x >= w || y >= h || a <= 0 {
		return
	}
	idx := y*w + x
	if m.DepthTest && !r.depthTest(idx, z, m.DepthWrite) {
		return
	}
	o := idx * 3
	switch m.Blending {
	case AdditiveBlending:
		r.accum[o+0] += cr * a
		r.accum[o+1] += cg * a
		r.accum[o+2] += cb * a
	default:
		a = Clamp01(a)
		r.accum[o+0] = cr*a + r.accum[o+0]*(1-a)
		r.accum[o+1] = cg*a + r.accum[o+1]*(1-a)
		r.accum[o+2] = cb*a + r.accum[o+2]*(1-a)
	}
}

func (r *Renderer) depthTest(idx int, z float32, write bool) bool {
	if idx < 0 || idx >= len(r.depthBuf) {
		return false
	}
	// NDC z is typically in [-1,1]. Map to [0,1].
	d := clampF32(z*0.5+0.5, 0, 1)
	if d >= r.depthBuf[idx] {
		return false
	}
	if write {
		r.depthBuf[idx] = d
	}
	return true
}

func (r *Renderer) resolve(t Target, w, h int) {
	for y := 0; y < h; y++ {
		row := y * w * 3
		for x := 0; x < w; x++ {
			o := row + x*3
			t.SetPixel(x, y, ColorFromFloats(r.accum[o], r.accum[o+1], r.accum[o+2]))
		}
	}
}

type ndcPoint struct {
	X, Y, Z float32
}

func clipToNDC(p Vec4) (ndcPoint, bool) {
	if p.W <= 0 {
		return ndcPoint{}, false
	}
	invW := 1.0 / p.W
	return ndcPoint{X: p.X * invW, Y: p.Y * invW, Z: p.Z * invW}, true
}

func ndcToScreenF(p ndcPoint, w, h int) (x, y float32) {
	x = (p.X*0.5 + 0.5) * float32(w)
	y = (1 - (p.Y*0.5 + 0.5)) * float32(h)
	return x, y
}

func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
