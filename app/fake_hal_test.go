package app

import (
	"time"

	"galaxy/cloud"
	"galaxy/hal"
)

type testFB struct {
	w, h     int
	buf      []byte
	presents int
}

func newTestFB(w, h int) *testFB {
	return &testFB{w: w, h: h, buf: make([]byte, w*h*4)}
}

func (f *testFB) Width() int                  { return f.w }
func (f *testFB) Height() int                 { return f.h }
func (f *testFB) Format() hal.PixelFormat     { return hal.PixelFormatRGBA8888 }
func (f *testFB) StrideBytes() int            { return f.w * 4 }
func (f *testFB) Buffer() []byte              { return f.buf }
func (f *testFB) Present() error              { f.presents++; return nil }
func (f *testFB) Resize(w, h int)             { f.w, f.h, f.buf = w, h, make([]byte, w*h*4) }
func (f *testFB) ClearRGB(r, g, b uint8)      { fill(f.buf, r, g, b) }
func (f *testFB) pixel(x, y int) (r, g, b byte) {
	o := y*f.StrideBytes() + x*4
	return f.buf[o], f.buf[o+1], f.buf[o+2]
}

func fill(buf []byte, r, g, b uint8) {
	for i := 0; i+3 < len(buf); i += 4 {
		buf[i], buf[i+1], buf[i+2], buf[i+3] = r, g, b, 0xFF
	}
}

type testKeyboard struct{ ch chan hal.KeyEvent }

func (k testKeyboard) Events() <-chan hal.KeyEvent { return k.ch }

type testPointer struct{ ch chan hal.PointerEvent }

func (p testPointer) Events() <-chan hal.PointerEvent { return p.ch }

type testInput struct {
	kbd testKeyboard
	ptr testPointer
}

func (in testInput) Keyboard() hal.Keyboard { return in.kbd }
func (in testInput) Pointer() hal.Pointer   { return in.ptr }

type testClock struct{ now time.Duration }

func (c *testClock) Elapsed() time.Duration { return c.now }

// testHAL is an in-memory host: a framebuffer, buffered input and a settable clock.
type testHAL struct {
	fb    *testFB
	vp    hal.Viewport
	in    testInput
	clock *testClock
}

func newTestHAL(w, h int) *testHAL {
	return &testHAL{
		fb: newTestFB(w, h),
		vp: hal.Viewport{Width: w, Height: h, DeviceScale: 1},
		in: testInput{
			kbd: testKeyboard{ch: make(chan hal.KeyEvent, 16)},
			ptr: testPointer{ch: make(chan hal.PointerEvent, 16)},
		},
		clock: &testClock{},
	}
}

func (h *testHAL) Display() hal.Display { return h }
func (h *testHAL) Input() hal.Input     { return h.in }
func (h *testHAL) Clock() hal.Clock     { return h.clock }

func (h *testHAL) Framebuffer() hal.Framebuffer { return h.fb }
func (h *testHAL) Viewport() hal.Viewport       { return h.vp }

func (h *testHAL) press(r rune) { h.in.kbd.ch <- hal.KeyEvent{Press: true, Rune: r} }

func (h *testHAL) pressKey(code hal.KeyCode) {
	h.in.kbd.ch <- hal.KeyEvent{Code: code, Press: true}
}

func smallParams() cloud.Params {
	p := cloud.DefaultParams()
	p.Count = 2000
	p.Stars = 100
	return p
}
