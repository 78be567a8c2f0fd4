// Package cloud generates point clouds: a uniform starfield cube and a spiral galaxy
// with a radial color gradient.
//
// Generation is pure: given Params and a random source it returns flat position and
// color buffers and touches nothing else.
package cloud

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// ErrInvalidParams is wrapped by every parameter validation failure.
var ErrInvalidParams = errors.New("invalid cloud parameters")

// Params is the generation parameter set shared by both clouds.
type Params struct {
	Count    int     `json:"count"`
	Size     float64 `json:"size"`
	Radius   float64 `json:"radius"`
	Branches int     `json:"branches"`
	Spin     float64 `json:"spin"`
	// Randomness is kept for parameter-file compatibility. Jitter is shaped by
	// RandomnessPower alone.
	Randomness      float64 `json:"randomness"`
	RandomnessPower float64 `json:"randomnessPower"`

	Stars     int    `json:"stars"`
	StarColor string `json:"starColor"`

	InsideColor  string `json:"insideColor"`
	OutsideColor string `json:"outsideColor"`
}

// DefaultParams returns the stock galaxy.
func DefaultParams() Params {
	return Params{
		Count:           90000,
		Size:            0.01,
		Radius:          7,
		Branches:        6,
		Spin:            1,
		Randomness:      0.3,
		RandomnessPower: 9,
		Stars:           999,
		StarColor:       "#01baef",
		InsideColor:     "#ff2e00",
		OutsideColor:    "#3b28cc",
	}
}

// Validate reports the first parameter that would make generation undefined.
func (p Params) Validate() error {
	switch {
	case p.Count < 0:
		return fmt.Errorf("%w: count %d < 0", ErrInvalidParams, p.Count)
	case p.Stars < 0:
		return fmt.Errorf("%w: stars %d < 0", ErrInvalidParams, p.Stars)
	case p.Branches < 1:
		return fmt.Errorf("%w: branches %d < 1", ErrInvalidParams, p.Branches)
	case !(p.Radius > 0) || math.IsInf(p.Radius, 0):
		return fmt.Errorf("%w: radius %v must be positive and finite", ErrInvalidParams, p.Radius)
	case !(p.Size > 0):
		return fmt.Errorf("%w: size %v must be positive", ErrInvalidParams, p.Size)
	case math.IsNaN(p.RandomnessPower) || p.RandomnessPower < 0:
		return fmt.Errorf("%w: randomnessPower %v must be >= 0", ErrInvalidParams, p.RandomnessPower)
	case math.IsNaN(p.Spin) || math.IsInf(p.Spin, 0):
		return fmt.Errorf("%w: spin %v must be finite", ErrInvalidParams, p.Spin)
	}
	for name, c := range map[string]string{
		"starColor":    p.StarColor,
		"insideColor":  p.InsideColor,
		"outsideColor": p.OutsideColor,
	} {
		if _, err := ParseColor(c); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidParams, name, err)
		}
	}
	return nil
}

// ReadParams decodes JSON from r on top of DefaultParams, so a file only needs the
// fields it changes.
func ReadParams(r io.Reader) (Params, error) {
	p := DefaultParams()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return Params{}, fmt.Errorf("decode params: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// LoadParams reads a JSON parameter file.
func LoadParams(path string) (Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return Params{}, fmt.Errorf("open params: %w", err)
	}
	defer f.Close()
	p, err := ReadParams(f)
	if err != nil {
		return Params{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
