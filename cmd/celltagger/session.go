package main

import (
	"errors"
	"image"
	"io/fs"

	"github.com/example/celltagger/internal/appstate"
	"github.com/example/celltagger/internal/cellfile"
	"github.com/example/celltagger/internal/display"
	"github.com/example/celltagger/internal/grid"
	"github.com/example/celltagger/internal/imageio"
)

// openSession decodes the image and restores any labels saved next to it.
func (r *root) openSession(imagePath, cellsPath string) (*image.RGBA, *grid.State, error) {
	img, format, err := imageio.Decode(imagePath)
	if err != nil {
		return nil, nil, err
	}
	b := img.Bounds()
	r.logger.Debug("decoded image", "path", imagePath, "format", format, "width", b.Dx(), "height", b.Dy())

	opts := r.config.GridOptions()
	st, err := grid.New(b.Dx(), b.Dy(), opts)
	if err != nil {
		return nil, nil, err
	}

	doc, err := cellfile.Load(cellsPath, opts.DefaultLabel)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		r.logger.Debug("no saved labels", "path", cellsPath)
	case err != nil:
		return nil, nil, err
	default:
		st.Load(doc.Offset, doc.Labels)
		r.logger.Debug("loaded labels", "path", cellsPath, "cells", doc.Labels.Len(), "offset", doc.Offset)
	}
	return img, st, nil
}

// windowSize picks the initial window for an image, fitted to the selected
// monitor when one can be queried.
func (r *root) windowSize(img image.Point) image.Point {
	fallback := image.Pt(img.X, display.WindowHeightFor(img.Y, appstate.CanvasShare))
	monitors, err := display.List()
	if err != nil {
		r.logger.Debug("monitor query failed", "err", err)
		return fallback
	}
	mon, err := display.Find(monitors, r.display)
	if err != nil {
		r.logger.Warn("display selection failed", "display", r.display, "err", err)
		return fallback
	}
	r.logger.Debug("using monitor", "name", mon.Name, "rect", mon.Rect)
	return display.WindowSize(mon, img, appstate.CanvasShare, fallback)
}
