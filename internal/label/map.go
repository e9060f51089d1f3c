package label

import (
	"iter"
	"maps"

	"github.com/example/celltagger/internal/geom"
)

// Map assigns labels to cells. Cells without an entry resolve to the default
// label. A Map is never modified after construction; every update returns a
// new value.
type Map struct {
	def   Label
	cells map[geom.Cell]Label
}

// NewMap returns an empty map resolving every cell to def.
func NewMap(def Label) Map {
	return Map{def: def}
}

// FromCells returns a map holding a copy of cells.
func FromCells(def Label, cells map[geom.Cell]Label) Map {
	return Map{def: def, cells: maps.Clone(cells)}
}

// Default returns the label of cells without an explicit entry.
func (m Map) Default() Label { return m.def }

// Get returns the label of c, falling back to the default.
func (m Map) Get(c geom.Cell) Label {
	if l, ok := m.cells[c]; ok {
		return l
	}
	return m.def
}

// Len returns the number of explicit entries.
func (m Map) Len() int { return len(m.cells) }

// Entries iterates over the explicit entries in unspecified order.
func (m Map) Entries() iter.Seq2[geom.Cell, Label] {
	return func(yield func(geom.Cell, Label) bool) {
		for c, l := range m.cells {
			if !yield(c, l) {
				return
			}
		}
	}
}

// With returns a copy of m where every cell of set carries l.
func (m Map) With(set geom.CellSet, l Label) Map {
	out := Map{def: m.def, cells: make(map[geom.Cell]Label, len(m.cells)+len(set))}
	maps.Copy(out.cells, m.cells)
	for c := range set {
		out.cells[c] = l
	}
	return out
}

// Set returns a copy of m with c labelled l.
func (m Map) Set(c geom.Cell, l Label) Map {
	return m.With(geom.CellSet{c: {}}, l)
}

// Cleared returns an empty map sharing m's default.
func (m Map) Cleared() Map { return NewMap(m.def) }

// Filled returns a map where every cell of a cols × rows grid carries l.
func (m Map) Filled(cols, rows int, l Label) Map {
	out := Map{def: m.def, cells: make(map[geom.Cell]Label, cols*rows)}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			out.cells[geom.Cell{Col: col, Row: row}] = l
		}
	}
	return out
}

// Equal reports whether m and o resolve every cell to the same label.
func (m Map) Equal(o Map) bool {
	if m.def != o.def {
		return false
	}
	for c, l := range m.cells {
		if o.Get(c) != l {
			return false
		}
	}
	for c, l := range o.cells {
		if m.Get(c) != l {
			return false
		}
	}
	return true
}
