package quarkgl

import "testing"

func newTestTarget(w, h int) *RGBATarget {
	return &RGBATarget{Buf: make([]byte, w*h*4), Stride: w * 4, W: w, H: h}
}

func newTestCamera() *Camera {
	cam := NewPerspectiveCamera(DegToRad(75), 1, 0.1, 100)
	cam.Position = V3(0, 0, 3)
	return cam
}

func TestRenderPointAtCenter(t *testing.T) {
	tg := newTestTarget(32, 32)
	s := CreateScene(1)
	m := NewPointsMaterial()
	m.Size = 0.5
	s.Add(NewPoints(NewGeometry([]float32{0, 0, 0}, nil), m))

	r := NewRenderer(32, 32)
	r.Render(tg, s, newTestCamera())

	if got := tg.At(16, 16); got != White {
		t.Fatalf("center pixel = %+v, want white", got)
	}
	if got := tg.At(0, 0); got != RGB(0, 0, 0) {
		t.Fatalf("corner pixel = %+v, want black", got)
	}
	if info := r.Info(); info.Points != 1 || info.Frames != 1 {
		t.Fatalf("unexpected info %+v", info)
	}
}

func TestRenderAdditiveBlendingAccumulates(t *testing.T) {
	tg := newTestTarget(16, 16)
	s := CreateScene(1)
	m := NewPointsMaterial()
	m.Size = 4
	m.SizeAttenuation = false
	m.VertexColors = true
	m.Blending = AdditiveBlending
	m.DepthWrite = false
	g := NewGeometry(
		[]float32{0, 0, 0, 0, 0, 0},
		[]float32{0.25, 0, 0, 0.25, 0, 0},
	)
	s.Add(NewPoints(g, m))

	NewRenderer(16, 16).Render(tg, s, newTestCamera())

	if got := tg.At(8, 8); got.R != 128 || got.G != 0 || got.B != 0 {
		t.Fatalf("expected accumulated red 128, got %+v", got)
	}
}

func TestRenderDepthWriteOccludes(t *testing.T) {
	tg := newTestTarget(16, 16)
	s := CreateScene(1)
	m := NewPointsMaterial()
	m.Size = 4
	m.SizeAttenuation = false
	m.VertexColors = true
	// Near red point first, then a far green one behind it.
	g := NewGeometry(
		[]float32{0, 0, 1, 0, 0, -1},
		[]float32{1, 0, 0, 0, 1, 0},
	)
	s.Add(NewPoints(g, m))

	NewRenderer(16, 16).Render(tg, s, newTestCamera())

	if got := tg.At(8, 8); got != RGB(255, 0, 0) {
		t.Fatalf("expected near red point to win, got %+v", got)
	}
}

func TestRenderSkipsPointsBehindCamera(t *testing.T) {
	tg := newTestTarget(8, 8)
	s := CreateScene(1)
	s.Add(NewPoints(NewGeometry([]float32{0, 0, 10}, nil), NewPointsMaterial()))

	r := NewRenderer(8, 8)
	r.Render(tg, s, newTestCamera())
	if info := r.Info(); info.Points != 0 {
		t.Fatalf("expected no points drawn, got %d", info.Points)
	}
}

func TestRendererTracksResidentResources(t *testing.T) {
	tg := newTestTarget(8, 8)
	s := CreateScene(2)
	p := NewPoints(NewGeometry([]float32{0, 0, 0}, nil), NewPointsMaterial())
	s.Add(p)

	r := NewRenderer(8, 8)
	r.Render(tg, s, newTestCamera())
	r.Render(tg, s, newTestCamera())
	if info := r.Info(); info.Geometries != 1 || info.Materials != 1 {
		t.Fatalf("expected one resident geometry and material, got %+v", info)
	}

	p.Release()
	s.Remove(p)
	if info := r.Info(); info.Geometries != 0 || info.Materials != 0 {
		t.Fatalf("expected resources to be dropped, got %+v", info)
	}
	if p.Geometry.Positions != nil {
		t.Fatal("expected disposed geometry to drop its buffers")
	}
}

func TestRendererPixelRatioIsCapped(t *testing.T) {
	r := NewRenderer(400, 300)
	r.SetPixelRatio(3)
	if r.PixelRatio() != MaxPixelRatio {
		t.Fatalf("pixel ratio = %v, want %v", r.PixelRatio(), MaxPixelRatio)
	}
	if w, h := r.DrawingBufferSize(); w != 800 || h != 600 {
		t.Fatalf("drawing buffer = %dx%d, want 800x600", w, h)
	}
}

func TestRadialAlphaMapFadesOut(t *testing.T) {
	tex := RadialAlphaMap(32)
	if a := tex.Sample(0.5, 0.5); a < 0.9 {
		t.Fatalf("center alpha = %v, want near 1", a)
	}
	if a := tex.Sample(0, 0); a != 0 {
		t.Fatalf("corner alpha = %v, want 0", a)
	}
}
