//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

func (h *hostHAL) pollInput() {
	h.kbd.poll()
	h.ptr.poll()
}

func (k *hostKeyboard) poll() {
	for _, r := range ebiten.AppendInputChars(nil) {
		k.emit(KeyEvent{Press: true, Rune: r})
	}

	keys := []struct {
		key  ebiten.Key
		code KeyCode
	}{
		{ebiten.KeyArrowUp, KeyUp},
		{ebiten.KeyArrowDown, KeyDown},
		{ebiten.KeyArrowLeft, KeyLeft},
		{ebiten.KeyArrowRight, KeyRight},
		{ebiten.KeyEnter, KeyEnter},
		{ebiten.KeyEscape, KeyEscape},
	}
	for _, m := range keys {
		if inpututil.IsKeyJustPressed(m.key) {
			k.emit(KeyEvent{Code: m.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(m.key) {
			k.emit(KeyEvent{Code: m.code, Press: false})
		}
	}
}

func (p *hostPointer) poll() {
	x, y := ebiten.CursorPosition()

	button := PointerNone
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		button = PointerPrimary
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		button = PointerSecondary
	}

	if button != PointerNone {
		if p.tracking && (x != p.lastX || y != p.lastY) {
			p.emit(PointerEvent{Button: button, DX: float64(x - p.lastX), DY: float64(y - p.lastY)})
		}
		p.tracking = true
	} else {
		p.tracking = false
	}
	p.lastX, p.lastY = x, y

	if _, wy := ebiten.Wheel(); wy != 0 {
		p.emit(PointerEvent{Wheel: wy})
	}
}
