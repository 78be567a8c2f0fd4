//go:build cgo

package hal

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/multierr"
)

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Width  int
	Height int
	Title  string
	TPS    int
}

// RunWindow starts a desktop window that displays the framebuffer and forwards
// keyboard, pointer and resize input. It blocks until the window closes or the app
// returns ErrQuit.
func RunWindow(cfg WindowConfig, newApp func(HAL) (App, error)) (err error) {
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	scale := ebiten.Monitor().DeviceScaleFactor()
	h := newHost(cfg.Width, cfg.Height, scale, newWallClock())
	a, err := newApp(h)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, a.Close()) }()

	g := &hostGame{h: h, app: a}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	app     App
	fbImg   *ebiten.Image
	scratch []byte
}

func (g *hostGame) Update() error {
	g.h.pollInput()
	if err := g.app.Step(); err != nil {
		if errors.Is(err, ErrQuit) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if fb.width <= 0 || fb.height <= 0 {
		return
	}
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != fb.width || g.fbImg.Bounds().Dy() != fb.height {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
		g.scratch = make([]byte, fb.width*fb.height*4)
	}

	fb.snapshot(g.scratch)
	g.fbImg.WritePixels(g.scratch)

	op := &ebiten.DrawImageOptions{}
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	if sw != fb.width || sh != fb.height {
		op.GeoM.Scale(float64(sw)/float64(fb.width), float64(sh)/float64(fb.height))
	}
	screen.DrawImage(g.fbImg, op)
}

// Layout records the window size as the viewport and asks for a screen matching the
// framebuffer, which the app sizes to the drawing buffer.
func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.h.viewport = Viewport{
		Width:       outsideWidth,
		Height:      outsideHeight,
		DeviceScale: ebiten.Monitor().DeviceScaleFactor(),
	}
	if g.h.fb.width > 0 && g.h.fb.height > 0 {
		return g.h.fb.width, g.h.fb.height
	}
	return outsideWidth, outsideHeight
}
