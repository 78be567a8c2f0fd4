package hal

type hostHAL struct {
	fb       *hostFramebuffer
	kbd      *hostKeyboard
	ptr      *hostPointer
	clock    Clock
	viewport Viewport
}

func newHost(width, height int, scale float64, clock Clock) *hostHAL {
	if scale <= 0 {
		scale = 1
	}
	return &hostHAL{
		fb:       newHostFramebuffer(width, height),
		kbd:      newHostKeyboard(),
		ptr:      newHostPointer(),
		clock:    clock,
		viewport: Viewport{Width: width, Height: height, DeviceScale: scale},
	}
}

func (h *hostHAL) Display() Display { return hostDisplay{h: h} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd, ptr: h.ptr} }
func (h *hostHAL) Clock() Clock     { return h.clock }

type hostDisplay struct {
	h *hostHAL
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.h.fb }
func (d hostDisplay) Viewport() Viewport       { return d.h.viewport }

type hostInput struct {
	kbd *hostKeyboard
	ptr *hostPointer
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
func (in hostInput) Pointer() Pointer   { return in.ptr }

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *hostKeyboard) emit(ev KeyEvent) {
	select {
	case k.ch <- ev:
	default:
	}
}

type hostPointer struct {
	ch chan PointerEvent

	lastX, lastY int
	tracking     bool
}

func newHostPointer() *hostPointer {
	return &hostPointer{ch: make(chan PointerEvent, 64)}
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }

func (p *hostPointer) emit(ev PointerEvent) {
	select {
	case p.ch <- ev:
	default:
	}
}
