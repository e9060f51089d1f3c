// Package geom maps circles onto the integer cells of a rectangular grid.
package geom

import (
	"iter"
	"math"
	"sort"
)

// Epsilon is the tolerance below which a circle/line determinant counts as a
// tangent point.
const Epsilon = 1e-4

// Cell addresses one grid square by column and row.
type Cell struct {
	Col int
	Row int
}

// Add returns c translated by (dc, dr).
func (c Cell) Add(dc, dr int) Cell { return Cell{Col: c.Col + dc, Row: c.Row + dr} }

// In reports whether c lies inside a grid of cols × rows cells.
func (c Cell) In(cols, rows int) bool {
	return c.Col >= 0 && c.Row >= 0 && c.Col < cols && c.Row < rows
}

// CellSet is an unordered set of cells.
type CellSet map[Cell]struct{}

// Collect drains seq into a set, dropping duplicates.
func Collect(seq iter.Seq[Cell]) CellSet {
	out := CellSet{}
	for c := range seq {
		out[c] = struct{}{}
	}
	return out
}

// Has reports whether c is a member of s.
func (s CellSet) Has(c Cell) bool {
	_, ok := s[c]
	return ok
}

// Sorted returns the members of s in row-major order.
func (s CellSet) Sorted() []Cell {
	out := make([]Cell, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// lineIntersections solves the intersection of a circle centred at (c, o) with
// the line at coordinate line on the first axis. It returns the roots on the
// other axis. A tangent contact yields a single root.
func lineIntersections(c, o, r, line float64) []float64 {
	det := r*r - (line-c)*(line-c)
	switch {
	case det < 0:
		return nil
	case math.Abs(det) < Epsilon:
		return []float64{o}
	}
	root := math.Sqrt(det)
	return []float64{o + root, o - root}
}

// span normalises two roots by size and returns the closed index range they
// cover. ok is false unless exactly two roots were found.
func span(roots []float64, size float64) (lo, hi int, ok bool) {
	if len(roots) != 2 {
		return 0, 0, false
	}
	a, b := roots[0]/size, roots[1]/size
	if a > b {
		a, b = b, a
	}
	return int(math.Floor(a)), int(math.Floor(b)), true
}

// CircleCells yields every cell of a cellW × cellH grid that overlaps the
// circle centred at (cx, cy) with the given radius.
//
// Cells strictly inside the circle's bounding box come first; the four grid
// lines just inside the box edges are then intersected with the circle and the
// crossed cells along each line are emitted. Lines the circle only touches
// contribute nothing. The same cell may be produced more than once.
func CircleCells(cx, cy, radius, cellW, cellH float64) iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		if cellW <= 0 || cellH <= 0 {
			return
		}
		nx, ny := cx/cellW, cy/cellH
		rx, ry := radius/cellW, radius/cellH

		north := int(math.Floor(ny - ry))
		south := int(math.Floor(ny + ry))
		west := int(math.Floor(nx - rx))
		east := int(math.Floor(nx + rx))

		for y := north + 1; y < south; y++ {
			for x := west + 1; x < east; x++ {
				if !yield(Cell{Col: x, Row: y}) {
					return
				}
			}
		}

		northRow := north + 1
		if lo, hi, ok := span(lineIntersections(cy, cx, radius, float64(northRow)*cellH), cellW); ok {
			for x := lo; x <= hi; x++ {
				if !yield(Cell{Col: x, Row: northRow - 1}) {
					return
				}
			}
		}
		southRow := south
		if lo, hi, ok := span(lineIntersections(cy, cx, radius, float64(southRow)*cellH), cellW); ok {
			for x := lo; x <= hi; x++ {
				if !yield(Cell{Col: x, Row: southRow}) {
					return
				}
			}
		}
		westCol := west + 1
		if lo, hi, ok := span(lineIntersections(cx, cy, radius, float64(westCol)*cellW), cellH); ok {
			for y := lo; y <= hi; y++ {
				if !yield(Cell{Col: westCol - 1, Row: y}) {
					return
				}
			}
		}
		eastCol := east
		if lo, hi, ok := span(lineIntersections(cx, cy, radius, float64(eastCol)*cellW), cellH); ok {
			for y := lo; y <= hi; y++ {
				if !yield(Cell{Col: eastCol, Row: y}) {
					return
				}
			}
		}
	}
}
