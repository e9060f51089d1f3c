// Package theme holds the colours used by the window chrome and the label
// overlay.
package theme

import (
	"image/color"

	"github.com/example/celltagger/internal/label"
)

// Theme defines the color palette for the application UI.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window background around the image
	Foreground color.RGBA // Panel text

	// Panel & buttons
	PanelBackground       color.RGBA
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonBorder          color.RGBA

	// Overlay
	GridLine     color.RGBA
	FocusOutline color.RGBA
	Pointer      color.RGBA

	// Labels. The alpha channel is replaced by the configured cell opacity.
	LabelIgnore color.RGBA
	LabelFire   color.RGBA
	LabelSmoke  color.RGBA
	LabelOther  color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{220, 220, 220, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		PanelBackground:       color.RGBA{235, 235, 235, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		GridLine:              color.RGBA{0, 0, 0, 255},
		FocusOutline:          color.RGBA{255, 0, 0, 255},
		Pointer:               color.RGBA{255, 0, 0, 255},
		LabelIgnore:           color.RGBA{128, 128, 128, 255},
		LabelFire:             color.RGBA{255, 69, 0, 255},
		LabelSmoke:            color.RGBA{70, 130, 180, 255},
		LabelOther:            color.RGBA{34, 139, 34, 255},
	}
}

// LabelColor returns the overlay colour of l. Unknown labels are drawn
// transparent.
func (t *Theme) LabelColor(l label.Label) color.RGBA {
	switch l {
	case label.Ignore:
		return t.LabelIgnore
	case label.Fire:
		return t.LabelFire
	case label.Smoke:
		return t.LabelSmoke
	case label.Other:
		return t.LabelOther
	}
	return color.RGBA{}
}
