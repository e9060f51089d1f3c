package grid

import "github.com/example/celltagger/internal/label"

// Transition is an input to State.Reduce. The set of implementations is closed.
type Transition interface {
	transition()
}

// Move updates the pointer position without painting.
type Move struct{ X, Y int }

// Press paints the cells under the pointer at (X, Y).
type Press struct{ X, Y int }

// Drag paints the cells under the pointer while the paint button is held.
type Drag struct{ X, Y int }

// Undo steps the label history back.
type Undo struct{}

// Redo steps the label history forward.
type Redo struct{}

// ModifyPointerSize grows or shrinks the brush by Delta screen pixels.
type ModifyPointerSize struct{ Delta int }

// ToggleCells shows or hides the label overlay.
type ToggleCells struct{}

// ResetCells records an empty label map as a new checkpoint.
type ResetCells struct{}

// PrevBrush selects the previous label as brush.
type PrevBrush struct{}

// NextBrush selects the next label as brush.
type NextBrush struct{}

// FillWithBrush records a checkpoint where every cell carries Label.
type FillWithBrush struct{ Label label.Label }

// ResizeImage reports the on-screen size of the displayed image.
type ResizeImage struct{ W, H int }

// DragGridPress starts panning the grid from screen position (X, Y).
type DragGridPress struct{ X, Y int }

// DragGrid pans the grid to follow the pointer at (X, Y).
type DragGrid struct{ X, Y int }

// DragGridRelease stops panning.
type DragGridRelease struct{}

func (Move) transition()              {}
func (Press) transition()             {}
func (Drag) transition()              {}
func (Undo) transition()              {}
func (Redo) transition()              {}
func (ModifyPointerSize) transition() {}
func (ToggleCells) transition()       {}
func (ResetCells) transition()        {}
func (PrevBrush) transition()         {}
func (NextBrush) transition()         {}
func (FillWithBrush) transition()     {}
func (ResizeImage) transition()       {}
func (DragGridPress) transition()     {}
func (DragGrid) transition()          {}
func (DragGridRelease) transition()   {}
