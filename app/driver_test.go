package app

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"galaxy/cloud"
	"galaxy/hal"
	"galaxy/quarkgl"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

func newTestDriver(t *testing.T, h *testHAL, cfg Config) *Driver {
	t.Helper()
	if cfg.Params == (cloud.Params{}) {
		cfg.Params = smallParams()
	}
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	d, err := New(h, cfg, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

func TestNewAttachesBothClouds(t *testing.T) {
	h := newTestHAL(160, 120)
	d := newTestDriver(t, h, Config{})
	defer d.Close()

	if n := d.Composer().Scene.Len(); n != 2 {
		t.Fatalf("scene has %d nodes, want 2", n)
	}
	g := d.Clouds().Get(SlotGalaxy)
	s := d.Clouds().Get(SlotStarfield)
	if g == nil || s == nil {
		t.Fatalf("missing cloud: galaxy=%v starfield=%v", g, s)
	}
	if got := g.Geometry.Count(); got != 2000 {
		t.Fatalf("galaxy has %d points, want 2000", got)
	}
	if got := s.Geometry.Count(); got != 100 {
		t.Fatalf("starfield has %d points, want 100", got)
	}
	if !g.Material.VertexColors || s.Material.VertexColors {
		t.Fatal("only the galaxy should use vertex colors")
	}
	if g.Material.Blending != quarkgl.AdditiveBlending || g.Material.DepthWrite {
		t.Fatal("galaxy material should blend additively without depth writes")
	}
}

func TestNewRejectsInvalidParams(t *testing.T) {
	p := smallParams()
	p.Branches = 0
	_, err := New(newTestHAL(32, 32), Config{Params: p, Seed: 1}, nil)
	if !errors.Is(err, cloud.ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}
}

func TestEditRegeneratesWithoutLeaking(t *testing.T) {
	h := newTestHAL(160, 120)
	d := newTestDriver(t, h, Config{})
	defer d.Close()

	if err := d.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if info := d.Composer().Renderer.Info(); info.Geometries != 2 || info.Materials != 2 {
		t.Fatalf("resident after first frame: %+v", info)
	}

	starfield := d.Clouds().Get(SlotStarfield)
	for i := 0; i < 5; i++ {
		old := d.Clouds().Get(SlotGalaxy)
		h.press(']')
		if err := d.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
		if !old.Released() {
			t.Fatalf("edit %d: previous galaxy not released", i)
		}
		if d.Composer().Scene.Contains(old) {
			t.Fatalf("edit %d: previous galaxy still attached", i)
		}
		if n := d.Composer().Scene.Len(); n != 2 {
			t.Fatalf("edit %d: scene has %d nodes, want 2", i, n)
		}
		info := d.Composer().Renderer.Info()
		if info.Geometries != 2 || info.Materials != 2 {
			t.Fatalf("edit %d: resident resources grew: %+v", i, info)
		}
	}
	if got := d.Params().Branches; got != 11 {
		t.Fatalf("branches = %d, want 11", got)
	}
	if d.Clouds().Get(SlotStarfield) != starfield {
		t.Fatal("a galaxy edit should not regenerate the starfield")
	}
}

func TestRegenerateKeepsCloudOnInvalidParams(t *testing.T) {
	h := newTestHAL(64, 64)
	d := newTestDriver(t, h, Config{})
	defer d.Close()

	before := d.Clouds().Get(SlotGalaxy)
	bad := d.Params()
	bad.Radius = -1
	err := d.Clouds().Regenerate(SlotGalaxy, bad)
	if !errors.Is(err, cloud.ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}
	if got := d.Clouds().Get(SlotGalaxy); got != before || got.Released() {
		t.Fatal("invalid params replaced or released the current galaxy")
	}
	if !d.Composer().Scene.Contains(before) {
		t.Fatal("current galaxy detached")
	}
}

func TestKeyEdits(t *testing.T) {
	h := newTestHAL(64, 64)
	d := newTestDriver(t, h, Config{})
	defer d.Close()

	start := d.Params()
	for _, r := range "[-,9" {
		h.press(r)
	}
	if err := d.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	want := start
	want.Branches--
	want.Spin = 0.9
	want.RandomnessPower -= 0.5
	want.Count /= 2
	if diff := cmp.Diff(want, d.Params()); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}
	if got := d.Clouds().Get(SlotGalaxy).Geometry.Count(); got != want.Count {
		t.Fatalf("galaxy has %d points, want %d", got, want.Count)
	}

	// Branches never drop below one.
	for i := 0; i < 10; i++ {
		h.press('[')
	}
	if err := d.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := d.Params().Branches; got != 1 {
		t.Fatalf("branches = %d, want 1", got)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, tc := range []struct {
		name string
		send func(h *testHAL)
	}{
		{"escape", func(h *testHAL) { h.pressKey(hal.KeyEscape) }},
		{"q", func(h *testHAL) { h.press('q') }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHAL(32, 32)
			d := newTestDriver(t, h, Config{})
			defer d.Close()

			tc.send(h)
			if err := d.Step(); !errors.Is(err, hal.ErrQuit) {
				t.Fatalf("expected ErrQuit, got %v", err)
			}
		})
	}
}

func TestRotationFollowsElapsedTime(t *testing.T) {
	h := newTestHAL(64, 64)
	d := newTestDriver(t, h, Config{})
	defer d.Close()

	for _, sec := range []quarkgl.Scalar{0, 0.5, 2, 10} {
		h.clock.now = time.Duration(float64(sec) * float64(time.Second))
		if err := d.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
		g := d.Clouds().Get(SlotGalaxy).Rotation.Y
		s := d.Clouds().Get(SlotStarfield).Rotation.Y
		if !closeTo(g, sec*0.3) {
			t.Fatalf("t=%v: galaxy rotation %v, want %v", sec, g, sec*0.3)
		}
		if !closeTo(s, -sec*0.05) {
			t.Fatalf("t=%v: starfield rotation %v, want %v", sec, s, -sec*0.05)
		}
	}
}

func TestStepFollowsViewport(t *testing.T) {
	h := newTestHAL(160, 120)
	d := newTestDriver(t, h, Config{})
	defer d.Close()

	h.vp = hal.Viewport{Width: 200, Height: 100, DeviceScale: 1.5}
	if err := d.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	c := d.Composer()
	if c.Viewport() != h.vp {
		t.Fatalf("viewport = %+v, want %+v", c.Viewport(), h.vp)
	}
	if c.Camera.Aspect != 2 {
		t.Fatalf("aspect = %v, want 2", c.Camera.Aspect)
	}
	if h.fb.w != 300 || h.fb.h != 150 {
		t.Fatalf("framebuffer %dx%d, want 300x150", h.fb.w, h.fb.h)
	}
	if h.fb.presents != 1 {
		t.Fatalf("presents = %d, want 1", h.fb.presents)
	}
}

func TestPointerDrivesControls(t *testing.T) {
	h := newTestHAL(100, 100)
	d := newTestDriver(t, h, Config{})
	defer d.Close()

	c := d.Composer().Controls
	yaw, radius := c.Yaw, c.Radius

	h.in.ptr.ch <- hal.PointerEvent{Button: hal.PointerPrimary, DX: 25}
	h.in.ptr.ch <- hal.PointerEvent{Wheel: 1}
	for i := 0; i < 300; i++ {
		if err := d.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	// A quarter-height drag is a quarter turn, all of it consumed after damping.
	if got := c.Yaw - yaw; !closeTo(got, -halfPi) {
		t.Fatalf("yaw moved by %v, want %v", got, -halfPi)
	}
	if c.Radius >= radius {
		t.Fatalf("wheel up should zoom in: radius %v -> %v", radius, c.Radius)
	}
}

func TestReloadAppliesValidFilesOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.json")
	if err := os.WriteFile(path, []byte(`{"count": 500, "stars": 10}`), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := cloud.LoadParams(path)
	if err != nil {
		t.Fatalf("LoadParams: %v", err)
	}

	h := newTestHAL(64, 64)
	d := newTestDriver(t, h, Config{Params: p, ParamsPath: path})
	defer d.Close()

	if err := os.WriteFile(path, []byte(`{"count": 500, "branches": 0}`), 0o644); err != nil {
		t.Fatal(err)
	}
	galaxy := d.Clouds().Get(SlotGalaxy)
	d.reload()
	if diff := cmp.Diff(p, d.Params()); diff != "" {
		t.Fatalf("invalid file changed params (-want +got):\n%s", diff)
	}
	if d.Clouds().Get(SlotGalaxy) != galaxy {
		t.Fatal("invalid file replaced the galaxy")
	}

	if err := os.WriteFile(path, []byte(`{"count": 300, "stars": 20, "branches": 3}`), 0o644); err != nil {
		t.Fatal(err)
	}
	d.reload()
	want := cloud.DefaultParams()
	want.Count, want.Stars, want.Branches = 300, 20, 3
	if diff := cmp.Diff(want, d.Params()); diff != "" {
		t.Fatalf("params after reload (-want +got):\n%s", diff)
	}
	if got := d.Clouds().Get(SlotStarfield).Geometry.Count(); got != 20 {
		t.Fatalf("starfield has %d points, want 20", got)
	}
}

func TestWatcherSignalsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := watchParams(path, 10*time.Millisecond, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("watchParams: %v", err)
	}
	defer w.Close()

	if w.Changed() {
		t.Fatal("unexpected change before any write")
	}
	if err := os.WriteFile(path, []byte(`{"spin": 2}`), 0o644); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for !w.Changed() {
		if time.Now().After(deadline) {
			t.Fatal("no change notification")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestCloseReleasesAndSnapshots(t *testing.T) {
	snap := filepath.Join(t.TempDir(), "frame.png")
	h := newTestHAL(48, 32)
	d := newTestDriver(t, h, Config{Snapshot: snap, HUD: true})

	if err := d.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if n := d.Composer().Scene.Len(); n != 0 {
		t.Fatalf("scene has %d nodes after Close", n)
	}
	if info := d.Composer().Renderer.Info(); info.Geometries != 0 || info.Materials != 0 {
		t.Fatalf("resources still resident after Close: %+v", info)
	}
	if _, err := os.Stat(snap); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
}

const halfPi = quarkgl.Scalar(math.Pi / 2)

func closeTo(a, b quarkgl.Scalar) bool {
	d := a - b
	return d > -1e-4 && d < 1e-4
}
