// Package grid holds the labelling session state and applies transitions to it.
//
// Three coordinate spaces are involved. Logical coordinates are pixels of the
// original image; the cell size and the grid offset live there. Screen
// coordinates are pixels of the possibly shrunken image on screen; pointer
// positions and the pointer size live there. Cell coordinates index the grid.
// Every conversion scales the pointer, the offset and the cell size together
// by the width and height ratios between the on-screen and original image.
package grid

import (
	"fmt"
	"image"
	"iter"
	"math"

	"github.com/example/celltagger/internal/geom"
	"github.com/example/celltagger/internal/history"
	"github.com/example/celltagger/internal/label"
)

// State is a labelling session. It is not safe for concurrent use; the event
// loop serialises transitions.
type State struct {
	opts Options

	imageW, imageH int
	realW, realH   int

	// offset is in logical pixels.
	offset image.Point

	pointer     image.Point
	pointerSize int
	brush       label.Label
	showCells   bool

	dragging         bool
	anchorX, anchorY float64

	history *history.History[label.Map]
}

// New creates a session for an image of imageW × imageH pixels. The image is
// initially assumed to be shown at its original size.
func New(imageW, imageH int, opts Options) (*State, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if imageW <= 0 || imageH <= 0 {
		return nil, fmt.Errorf("image size %dx%d must be positive", imageW, imageH)
	}
	return &State{
		opts:        opts,
		imageW:      imageW,
		imageH:      imageH,
		realW:       imageW,
		realH:       imageH,
		pointerSize: clamp(opts.PointerInitial, opts.PointerMin, opts.PointerMax),
		brush:       opts.Brush,
		showCells:   true,
		history:     history.NewWith(label.NewMap(opts.DefaultLabel), label.Map.Equal),
	}, nil
}

// Reduce applies t. Transitions other than DragGrid and DragGridRelease are
// ignored while the grid is being dragged, and those two are ignored otherwise.
func (s *State) Reduce(t Transition) {
	if s.dragging {
		switch t := t.(type) {
		case DragGrid:
			s.dragTo(t.X, t.Y)
		case DragGridRelease:
			s.dragging = false
		}
		return
	}

	switch t := t.(type) {
	case Move:
		s.pointer = image.Pt(t.X, t.Y)
	case Press:
		s.pointer = image.Pt(t.X, t.Y)
		s.paint()
	case Drag:
		s.pointer = image.Pt(t.X, t.Y)
		s.paint()
	case Undo:
		s.history.Undo()
	case Redo:
		s.history.Redo()
	case ModifyPointerSize:
		s.pointerSize = clamp(s.pointerSize+t.Delta, s.opts.PointerMin, s.opts.PointerMax)
	case ToggleCells:
		s.showCells = !s.showCells
	case ResetCells:
		s.history.Push(s.Labels().Cleared())
	case PrevBrush:
		s.brush = s.brush.Prev()
	case NextBrush:
		s.brush = s.brush.Next()
	case FillWithBrush:
		if t.Label.Valid() {
			s.history.Push(s.Labels().Filled(s.Columns(), s.Rows(), t.Label))
		}
	case ResizeImage:
		if t.W > 0 && t.H > 0 {
			s.realW, s.realH = t.W, t.H
		}
	case DragGridPress:
		ox, oy := s.realOffset()
		s.anchorX = float64(t.X) - ox
		s.anchorY = float64(t.Y) - oy
		s.dragging = true
	}
}

func (s *State) paint() {
	s.history.Push(s.Labels().With(s.FocusedCells(), s.brush))
}

func (s *State) dragTo(x, y int) {
	rw, rh := s.ratios()
	ox := int(math.Floor((float64(x) - s.anchorX) / rw))
	oy := int(math.Floor((float64(y) - s.anchorY) / rh))
	s.offset = s.clampOffset(image.Pt(ox, oy))
}

func (s *State) clampOffset(p image.Point) image.Point {
	return image.Pt(
		clamp(p.X, 0, s.imageW%s.opts.CellSize),
		clamp(p.Y, 0, s.imageH%s.opts.CellSize),
	)
}

func (s *State) ratios() (w, h float64) {
	return float64(s.realW) / float64(s.imageW), float64(s.realH) / float64(s.imageH)
}

// RealCellSize returns the on-screen cell width and height, truncated to
// whole pixels and never below one.
func (s *State) RealCellSize() (w, h float64) {
	rw, rh := s.ratios()
	return max(1, math.Trunc(float64(s.opts.CellSize)*rw)), max(1, math.Trunc(float64(s.opts.CellSize)*rh))
}

func (s *State) realOffset() (x, y float64) {
	rw, rh := s.ratios()
	return float64(s.offset.X) * rw, float64(s.offset.Y) * rh
}

// PointerCell returns the cell directly under the pointer.
func (s *State) PointerCell() geom.Cell {
	cw, ch := s.RealCellSize()
	ox, oy := s.realOffset()
	return geom.Cell{
		Col: int(math.Floor((float64(s.pointer.X) - ox) / cw)),
		Row: int(math.Floor((float64(s.pointer.Y) - oy) / ch)),
	}
}

// BrushRadius returns the radius used to select cells, in screen pixels.
// Odd pointer sizes round down.
func (s *State) BrushRadius() float64 {
	return float64(s.pointerSize/2) - s.opts.RadiusMargin
}

// FocusedCells returns the in-grid cells a paint transition at the current
// pointer position would label.
func (s *State) FocusedCells() geom.CellSet {
	cols, rows := s.Columns(), s.Rows()
	out := geom.CellSet{}
	if pc := s.PointerCell(); pc.In(cols, rows) {
		out[pc] = struct{}{}
	}
	cw, ch := s.RealCellSize()
	ox, oy := s.realOffset()
	cx := float64(s.pointer.X) - ox
	cy := float64(s.pointer.Y) - oy
	for c := range geom.CircleCells(cx, cy, s.BrushRadius(), cw, ch) {
		if c.In(cols, rows) {
			out[c] = struct{}{}
		}
	}
	return out
}

// Load replaces the current labels and offset without creating an undo
// checkpoint. The offset is clamped to the valid range.
func (s *State) Load(offset image.Point, labels label.Map) {
	s.offset = s.clampOffset(offset)
	s.history.OverrideLast(labels)
}

// Labels returns the current label map.
func (s *State) Labels() label.Map {
	m, ok := s.history.Current()
	if !ok {
		return label.NewMap(s.opts.DefaultLabel)
	}
	return m
}

// AllCells yields every grid cell and its label in row-major order.
func (s *State) AllCells() iter.Seq2[geom.Cell, label.Label] {
	labels := s.Labels()
	cols, rows := s.Columns(), s.Rows()
	return func(yield func(geom.Cell, label.Label) bool) {
		for row := 0; row < rows; row++ {
			for col := 0; col < cols; col++ {
				c := geom.Cell{Col: col, Row: row}
				if !yield(c, labels.Get(c)) {
					return
				}
			}
		}
	}
}

// Columns returns the number of whole cells across the original image.
func (s *State) Columns() int { return s.imageW / s.opts.CellSize }

// Rows returns the number of whole cells down the original image.
func (s *State) Rows() int { return s.imageH / s.opts.CellSize }

// CellSize returns the logical cell size.
func (s *State) CellSize() int { return s.opts.CellSize }

// ImageSize returns the original image dimensions.
func (s *State) ImageSize() (w, h int) { return s.imageW, s.imageH }

// RealImageSize returns the on-screen image dimensions.
func (s *State) RealImageSize() (w, h int) { return s.realW, s.realH }

// Offset returns the grid offset in logical pixels.
func (s *State) Offset() image.Point { return s.offset }

// Pointer returns the last pointer position in screen pixels.
func (s *State) Pointer() image.Point { return s.pointer }

// PointerSize returns the on-screen brush diameter.
func (s *State) PointerSize() int { return s.pointerSize }

// Brush returns the label applied by paint transitions.
func (s *State) Brush() label.Label { return s.brush }

// ShowCells reports whether the label overlay is visible.
func (s *State) ShowCells() bool { return s.showCells }

// Dragging reports whether the grid is being panned.
func (s *State) Dragging() bool { return s.dragging }

// CanUndo reports whether an undo would change the labels.
func (s *State) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether a redo would change the labels.
func (s *State) CanRedo() bool { return s.history.CanRedo() }

// Checkpoint returns the history cursor and the number of checkpoints.
func (s *State) Checkpoint() (index, total int) {
	return s.history.Index(), s.history.Len()
}
