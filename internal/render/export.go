package render

import (
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/example/celltagger/internal/geom"
	"github.com/example/celltagger/internal/grid"
	"github.com/example/celltagger/internal/theme"
	"github.com/gogpu/gg"
)

// ExportOptions configures Export.
type ExportOptions struct {
	Theme       *theme.Theme
	Opacity     float64
	BorderWidth float64
	Logger      *slog.Logger
}

// Export composites the labels of v over src and writes the result as PNG.
// v must describe src at its original size.
func Export(w io.Writer, src image.Image, v grid.View, opts ExportOptions) error {
	t := opts.Theme
	if t == nil {
		t = theme.Default()
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	dc := gg.NewContextForImage(src)
	defer dc.Close()

	filled := 0
	for row := 0; row < v.Rows; row++ {
		for col := 0; col < v.Columns; col++ {
			c := geom.Cell{Col: col, Row: row}
			rgba := t.LabelColor(v.Labels.Get(c))
			r := v.CellRect(c)
			dc.SetRGBA(float64(rgba.R)/255, float64(rgba.G)/255, float64(rgba.B)/255, clamp01(opts.Opacity))
			dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
			if err := dc.Fill(); err != nil {
				return fmt.Errorf("fill cell %d,%d: %w", row, col, err)
			}
			filled++
		}
	}

	if opts.BorderWidth > 0 && v.Columns > 0 && v.Rows > 0 {
		dc.SetColor(t.GridLine)
		dc.SetLineWidth(opts.BorderWidth)
		first := v.CellRect(geom.Cell{})
		last := v.CellRect(geom.Cell{Col: v.Columns - 1, Row: v.Rows - 1})
		for row := 0; row <= v.Rows; row++ {
			y := float64(v.CellRect(geom.Cell{Row: row}).Min.Y)
			dc.DrawLine(float64(first.Min.X), y, float64(last.Max.X), y)
		}
		for col := 0; col <= v.Columns; col++ {
			x := float64(v.CellRect(geom.Cell{Col: col}).Min.X)
			dc.DrawLine(x, float64(first.Min.Y), x, float64(last.Max.Y))
		}
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("stroke grid: %w", err)
		}
	}

	log.Debug("export rendered", "cells", filled, "width", dc.Width(), "height", dc.Height())
	return dc.EncodePNG(w)
}
