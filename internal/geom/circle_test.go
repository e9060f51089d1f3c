package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircleCellsCoversNeighbourhood(t *testing.T) {
	got := Collect(CircleCells(15, 15, 12, 10, 10))

	want := CellSet{}
	for row := 0; row <= 2; row++ {
		for col := 0; col <= 2; col++ {
			want[Cell{Col: col, Row: row}] = struct{}{}
		}
	}
	assert.Equal(t, want, got)
}

// A circle that crosses no grid line yields nothing; the cell under the
// pointer is added by the caller.
func TestCircleCellsInsideSingleCellIsEmpty(t *testing.T) {
	assert.Empty(t, Collect(CircleCells(15, 15, 3, 10, 10)))
}

func TestCircleCellsZeroAndNegativeRadius(t *testing.T) {
	assert.Empty(t, Collect(CircleCells(15, 15, 0, 10, 10)))
	assert.Empty(t, Collect(CircleCells(15, 15, -4, 10, 10)))
}

func TestCircleCellsDegenerateCellSize(t *testing.T) {
	assert.Empty(t, Collect(CircleCells(15, 15, 5, 0, 10)))
	assert.Empty(t, Collect(CircleCells(15, 15, 5, 10, -1)))
}

func TestCircleCellsHalfCellRadiusOnlyTouchesLines(t *testing.T) {
	// Every boundary line is tangent and the interior range is empty.
	assert.Empty(t, Collect(CircleCells(15, 15, 5, 10, 10)))
}

func TestCircleCellsJustPastHalfCellStaysLocal(t *testing.T) {
	got := Collect(CircleCells(15, 15, 6, 10, 10))
	require.NotEmpty(t, got)
	centre := Cell{Col: 1, Row: 1}
	for c := range got {
		assert.Less(t, abs(c.Col-centre.Col), 2, "cell %v is two or more columns away", c)
		assert.Less(t, abs(c.Row-centre.Row), 2, "cell %v is two or more rows away", c)
	}
}

func TestCircleCellsTangentLinesContributeNothing(t *testing.T) {
	// The circle touches x=20 and y=20 exactly; neither line adds cells.
	got := Collect(CircleCells(15, 15, 5, 10, 10))
	assert.False(t, got.Has(Cell{Col: 2, Row: 1}))
	assert.False(t, got.Has(Cell{Col: 1, Row: 2}))
}

func TestCircleCellsPeriodic(t *testing.T) {
	cases := []struct {
		name         string
		cx, cy, r    float64
		cellW, cellH float64
	}{
		{"square cells", 15, 15, 12, 10, 10},
		{"off centre", 23, 37, 16, 10, 10},
		{"wide cells", 33, 12, 26, 20, 10},
		{"large brush", 41, 44, 37, 10, 10},
	}
	shifts := []Cell{{Col: 3, Row: 0}, {Col: 0, Row: 2}, {Col: 5, Row: 7}}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			base := Collect(CircleCells(tc.cx, tc.cy, tc.r, tc.cellW, tc.cellH))
			require.NotEmpty(t, base)
			for _, s := range shifts {
				moved := Collect(CircleCells(
					tc.cx+float64(s.Col)*tc.cellW,
					tc.cy+float64(s.Row)*tc.cellH,
					tc.r, tc.cellW, tc.cellH,
				))
				want := CellSet{}
				for c := range base {
					want[c.Add(s.Col, s.Row)] = struct{}{}
				}
				assert.Equal(t, want, moved, "shift %v", s)
			}
		})
	}
}

func TestCircleCellsStopsEarly(t *testing.T) {
	n := 0
	for range CircleCells(50, 50, 40, 10, 10) {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestCellSetSortedRowMajor(t *testing.T) {
	s := CellSet{{Col: 2, Row: 1}: {}, {Col: 0, Row: 1}: {}, {Col: 5, Row: 0}: {}}
	assert.Equal(t, []Cell{{Col: 5, Row: 0}, {Col: 0, Row: 1}, {Col: 2, Row: 1}}, s.Sorted())
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
