//go:build !cgo

package hal

import "errors"

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Width  int
	Height int
	Title  string
	TPS    int
}

func RunWindow(_ WindowConfig, _ func(h HAL) (App, error)) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1); use --headless")
}
