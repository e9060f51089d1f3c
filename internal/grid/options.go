package grid

import (
	"errors"
	"fmt"

	"github.com/example/celltagger/internal/label"
)

// Options configures a grid session.
type Options struct {
	// CellSize is the cell edge in original image pixels.
	CellSize int

	// Pointer sizes are on-screen diameters in pixels.
	PointerInitial int
	PointerMin     int
	PointerMax     int

	// RadiusMargin is subtracted from the brush radius so cells the circle
	// barely grazes are not painted.
	RadiusMargin float64

	DefaultLabel label.Label
	Brush        label.Label
}

// DefaultOptions mirrors the stock configuration.
func DefaultOptions() Options {
	return Options{
		CellSize:       100,
		PointerInitial: 50,
		PointerMin:     30,
		PointerMax:     200,
		RadiusMargin:   5,
		DefaultLabel:   label.Other,
		Brush:          label.Fire,
	}
}

var errInvalidOptions = errors.New("invalid grid options")

// Validate reports the first inconsistent setting.
func (o Options) Validate() error {
	switch {
	case o.CellSize <= 0:
		return fmt.Errorf("%w: cell size %d must be positive", errInvalidOptions, o.CellSize)
	case o.PointerMin <= 0:
		return fmt.Errorf("%w: pointer minimum %d must be positive", errInvalidOptions, o.PointerMin)
	case o.PointerMin > o.PointerMax:
		return fmt.Errorf("%w: pointer minimum %d exceeds maximum %d", errInvalidOptions, o.PointerMin, o.PointerMax)
	case o.RadiusMargin < 0:
		return fmt.Errorf("%w: radius margin %v is negative", errInvalidOptions, o.RadiusMargin)
	case !o.DefaultLabel.Valid():
		return fmt.Errorf("%w: default label %v", errInvalidOptions, o.DefaultLabel)
	case !o.Brush.Valid():
		return fmt.Errorf("%w: brush %v", errInvalidOptions, o.Brush)
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
