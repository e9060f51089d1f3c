// Package display reports monitor geometry so the annotation window can
// open at a size that fits the screen.
package display

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"
)

// Monitor describes an individual monitor in the X11 layout.
type Monitor struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

// ErrNoMonitors is returned when no connected monitor can be found.
var ErrNoMonitors = errors.New("no monitors available")

// Find resolves a monitor selector against the provided list. The selector
// may be empty (first monitor), "primary", an index with optional "#"
// prefix, or a case-insensitive substring of the output name.
func Find(monitors []Monitor, selector string) (Monitor, error) {
	if len(monitors) == 0 {
		return Monitor{}, ErrNoMonitors
	}
	sel := strings.ToLower(strings.TrimSpace(selector))
	switch sel {
	case "":
		return monitors[0], nil
	case "primary":
		for _, mon := range monitors {
			if mon.Primary {
				return mon, nil
			}
		}
		return monitors[0], nil
	}
	if idx, err := strconv.Atoi(strings.TrimPrefix(sel, "#")); err == nil {
		if idx < 0 || idx >= len(monitors) {
			return Monitor{}, fmt.Errorf("monitor index %d out of range", idx)
		}
		return monitors[idx], nil
	}
	for _, mon := range monitors {
		if strings.Contains(strings.ToLower(mon.Name), sel) {
			return mon, nil
		}
	}
	return Monitor{}, fmt.Errorf("monitor %q not found", selector)
}

// WindowSize picks the initial window size for an image of imgSize shown
// on mon. The canvas takes canvasShare of the window height; the rest holds
// the control panel. The window never exceeds 90% of the monitor and never
// grows beyond what the image needs.
func WindowSize(mon Monitor, imgSize image.Point, canvasShare float64, fallback image.Point) image.Point {
	if mon.Rect.Empty() {
		return fallback
	}
	if canvasShare <= 0 || canvasShare > 1 {
		canvasShare = 1
	}
	maxW := mon.Rect.Dx() * 9 / 10
	maxH := mon.Rect.Dy() * 9 / 10
	if imgSize.X <= 0 || imgSize.Y <= 0 {
		return image.Pt(min(fallback.X, maxW), min(fallback.Y, maxH))
	}

	w := min(imgSize.X, maxW)
	h := min(WindowHeightFor(imgSize.Y, canvasShare), maxH)
	return image.Pt(max(w, 1), max(h, 1))
}

// WindowHeightFor returns the smallest window height whose canvasShare
// fraction holds an image h pixels tall.
func WindowHeightFor(h int, canvasShare float64) int {
	return int(math.Ceil(float64(h)/canvasShare - 1e-9))
}
