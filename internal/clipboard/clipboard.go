// Package clipboard publishes label text and rendered overlays to the
// desktop clipboard.
package clipboard

import (
	"errors"
	"os"
)

var errNoDisplay = errors.New("clipboard requires DISPLAY or WAYLAND_DISPLAY")

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

type format int

const (
	fmtText format = iota
	fmtPNG
)

// WriteText places text on the clipboard.
func WriteText(text string) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return write(fmtText, []byte(text))
}

// WritePNG places encoded PNG data on the clipboard.
func WritePNG(data []byte) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return write(fmtPNG, data)
}
