package hal

import (
	"errors"
	"time"
)

// ErrQuit is returned by an App step to end the frame loop cleanly.
var ErrQuit = errors.New("quit")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGBA8888 is 32bpp: r, g, b, a bytes in that order.
	PixelFormatRGBA8888 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	// Resize reallocates the buffer. Contents are undefined afterwards.
	Resize(width, height int)
	ClearRGB(r, g, b uint8)
	Present() error
}

// Viewport is the host surface size in logical pixels and its device scale.
type Viewport struct {
	Width       int
	Height      int
	DeviceScale float64
}

// Display provides access to the framebuffer and the current viewport.
type Display interface {
	Framebuffer() Framebuffer
	Viewport() Viewport
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
)

// KeyEvent is a keyboard event. Text input arrives with Code == KeyUnknown and
// Rune set.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// PointerButton identifies the button held during a drag.
type PointerButton uint8

const (
	PointerNone PointerButton = iota
	PointerPrimary
	PointerSecondary
)

// PointerEvent is a drag or wheel movement. Drag deltas are in screen pixels.
type PointerEvent struct {
	Button PointerButton
	DX, DY float64
	Wheel  float64
}

// Pointer provides pointer events.
type Pointer interface {
	Events() <-chan PointerEvent
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
	Pointer() Pointer
}

// Clock reports monotonic time elapsed since the host started.
type Clock interface {
	Elapsed() time.Duration
}

// HAL provides the only contact point between the app and the outside world.
type HAL interface {
	Display() Display
	Input() Input
	Clock() Clock
}

// App is driven by the host: Step runs once per frame, Close once at exit.
type App interface {
	Step() error
	Close() error
}
