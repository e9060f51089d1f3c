package grid

import (
	"image"

	"github.com/example/celltagger/internal/geom"
	"github.com/example/celltagger/internal/label"
)

// View is a read-only snapshot of everything a renderer needs, expressed in
// screen pixels relative to the top-left corner of the displayed image.
type View struct {
	Columns int
	Rows    int

	CellW, CellH     float64
	OffsetX, OffsetY float64

	Labels    label.Map
	ShowCells bool
	Focused   geom.CellSet

	Pointer     image.Point
	PointerSize int
	Brush       label.Label
	Dragging    bool

	HistoryIndex int
	HistoryLen   int
}

// CellRect returns the on-screen rectangle of c.
func (v View) CellRect(c geom.Cell) image.Rectangle {
	x0 := int(v.OffsetX + float64(c.Col)*v.CellW)
	y0 := int(v.OffsetY + float64(c.Row)*v.CellH)
	x1 := int(v.OffsetX + float64(c.Col+1)*v.CellW)
	y1 := int(v.OffsetY + float64(c.Row+1)*v.CellH)
	return image.Rect(x0, y0, x1, y1)
}

// PointerBounds returns the square enclosing the pointer circle.
func (v View) PointerBounds() image.Rectangle {
	half := v.PointerSize / 2
	return image.Rect(v.Pointer.X-half, v.Pointer.Y-half, v.Pointer.X-half+v.PointerSize, v.Pointer.Y-half+v.PointerSize)
}

// View captures the current state for rendering.
func (s *State) View() View {
	cw, ch := s.RealCellSize()
	ox, oy := s.realOffset()
	idx, total := s.Checkpoint()
	var focused geom.CellSet
	if !s.dragging {
		focused = s.FocusedCells()
	}
	return View{
		Columns:      s.Columns(),
		Rows:         s.Rows(),
		CellW:        cw,
		CellH:        ch,
		OffsetX:      ox,
		OffsetY:      oy,
		Labels:       s.Labels(),
		ShowCells:    s.showCells,
		Focused:      focused,
		Pointer:      s.pointer,
		PointerSize:  s.pointerSize,
		Brush:        s.brush,
		Dragging:     s.dragging,
		HistoryIndex: idx,
		HistoryLen:   total,
	}
}
