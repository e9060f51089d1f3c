// Package render draws the label overlay on screen and exports it to PNG.
package render

import (
	"image"

	"github.com/example/celltagger/internal/geom"
	"github.com/example/celltagger/internal/grid"
	"github.com/example/celltagger/internal/theme"
)

// Overlay draws a grid.View on top of the displayed image.
type Overlay struct {
	Theme *theme.Theme

	// Opacity of the label fill, 0 to 1.
	Opacity     float64
	BorderWidth int
	FocusWidth  int

	PointerWidth int
	PointerDash  int
	PointerGap   int
}

// NewOverlay returns an Overlay with the stock line widths and dash pattern.
func NewOverlay(t *theme.Theme, opacity float64, border int) *Overlay {
	if t == nil {
		t = theme.Default()
	}
	return &Overlay{
		Theme:        t,
		Opacity:      opacity,
		BorderWidth:  border,
		FocusWidth:   2,
		PointerWidth: 2,
		PointerDash:  10,
		PointerGap:   8,
	}
}

// Draw renders v onto dst. origin is where the image's top-left corner sits
// inside dst.
func (o *Overlay) Draw(dst *image.RGBA, origin image.Point, v grid.View) {
	if v.ShowCells {
		for row := 0; row < v.Rows; row++ {
			for col := 0; col < v.Columns; col++ {
				c := geom.Cell{Col: col, Row: row}
				fillAlpha(dst, v.CellRect(c).Add(origin), o.Theme.LabelColor(v.Labels.Get(c)), o.Opacity)
			}
		}
	}

	if o.BorderWidth > 0 && v.Columns > 0 && v.Rows > 0 {
		extent := image.Rectangle{
			Min: v.CellRect(geom.Cell{}).Min,
			Max: v.CellRect(geom.Cell{Col: v.Columns - 1, Row: v.Rows - 1}).Max,
		}.Add(origin)
		for row := 0; row <= v.Rows; row++ {
			y := v.CellRect(geom.Cell{Row: row}).Min.Y + origin.Y
			drawLine(dst, extent.Min.X, y, extent.Max.X, y, o.Theme.GridLine, o.BorderWidth)
		}
		for col := 0; col <= v.Columns; col++ {
			x := v.CellRect(geom.Cell{Col: col}).Min.X + origin.X
			drawLine(dst, x, extent.Min.Y, x, extent.Max.Y, o.Theme.GridLine, o.BorderWidth)
		}
	}

	for c := range v.Focused {
		drawRect(dst, v.CellRect(c).Add(origin), o.Theme.FocusOutline, o.FocusWidth)
	}

	p := v.Pointer.Add(origin)
	drawDashedCircle(dst, p.X, p.Y, v.PointerSize/2, o.PointerDash, o.PointerGap, o.PointerWidth, o.Theme.Pointer)
}
