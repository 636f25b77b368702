package gridgeom_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridflood/gridgeom"
)

//----------------------------------------------------------------------------//
// New
//----------------------------------------------------------------------------//

// TestNew_Errors verifies that New rejects non-positive sizes and boards
// that do not divide into whole cells.
func TestNew_Errors(t *testing.T) {
	cases := []struct {
		name      string
		cell      int
		w, h      int
		wantError error
	}{
		{"ZeroCell", 0, 300, 300, gridgeom.ErrBadCellSize},
		{"NegativeCell", -30, 300, 300, gridgeom.ErrBadCellSize},
		{"ZeroWidth", 30, 0, 300, gridgeom.ErrBadBoard},
		{"NegativeHeight", 30, 300, -1, gridgeom.ErrBadBoard},
		{"PartialColumn", 30, 100, 90, gridgeom.ErrBadBoard},
		{"PartialRow", 30, 90, 100, gridgeom.ErrBadBoard},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := gridgeom.New(tc.cell, tc.w, tc.h)
			if !errors.Is(err, tc.wantError) {
				t.Errorf("New(%d,%d,%d) error = %v; want %v", tc.cell, tc.w, tc.h, err, tc.wantError)
			}
		})
	}
}

//----------------------------------------------------------------------------//
// Conversions
//----------------------------------------------------------------------------//

func TestToCell(t *testing.T) {
	g, err := gridgeom.New(30, 300, 300)
	require.NoError(t, err)

	cases := []struct {
		x, y float64
		want gridgeom.Cell
	}{
		{0, 0, gridgeom.Cell{X: 0, Y: 0}},
		{29.9, 29.9, gridgeom.Cell{X: 0, Y: 0}},
		{30, 0, gridgeom.Cell{X: 30, Y: 0}},
		{75.5, 61, gridgeom.Cell{X: 60, Y: 60}},
		{-1, -0.5, gridgeom.Cell{X: -30, Y: -30}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, g.ToCell(tc.x, tc.y), "ToCell(%v,%v)", tc.x, tc.y)
	}
}

// TestScreenToCell checks the y flip used by pixel input (origin top-left).
func TestScreenToCell(t *testing.T) {
	g, err := gridgeom.New(30, 960, 540)
	require.NoError(t, err)

	// top-left pixel lands in the top row of the board
	assert.Equal(t, gridgeom.Cell{X: 0, Y: 510}, g.ScreenToCell(0, 0))
	// bottom-left pixel lands in row zero
	assert.Equal(t, gridgeom.Cell{X: 0, Y: 0}, g.ScreenToCell(5, 539))
	assert.Equal(t, gridgeom.Cell{X: 90, Y: 480}, g.ScreenToCell(100, 45))
}

func TestCellBounds(t *testing.T) {
	g, err := gridgeom.New(30, 300, 300)
	require.NoError(t, err)

	r := g.CellBounds(gridgeom.Cell{X: 60, Y: 90})
	assert.Equal(t, gridgeom.Rect{X: 60, Y: 90, Width: 30, Height: 30}, r)
}

//----------------------------------------------------------------------------//
// Bounds and adjacency
//----------------------------------------------------------------------------//

// TestInBounds covers the permissive lower bound (-S, exclusive).
func TestInBounds(t *testing.T) {
	g, err := gridgeom.New(30, 300, 300)
	require.NoError(t, err)

	valid := []gridgeom.Cell{{0, 0}, {270, 270}, {-29, 0}, {0, -29}, {299, 299}}
	for _, c := range valid {
		if !g.InBounds(c) {
			t.Errorf("InBounds(%v)=false; want true", c)
		}
	}
	invalid := []gridgeom.Cell{{-30, 0}, {0, -30}, {300, 0}, {0, 300}, {-60, -60}}
	for _, c := range invalid {
		if g.InBounds(c) {
			t.Errorf("InBounds(%v)=true; want false", c)
		}
	}
	assert.Equal(t, g.InBounds(gridgeom.Cell{X: 30}), gridgeom.InBounds(gridgeom.Cell{X: 30}, 30, 300, 300))
}

// TestNeighbors_Order pins the right, top, left, bottom order.
func TestNeighbors_Order(t *testing.T) {
	g, err := gridgeom.New(30, 300, 300)
	require.NoError(t, err)

	got := g.Neighbors(gridgeom.Cell{X: 60, Y: 60})
	want := [4]gridgeom.Cell{{90, 60}, {60, 90}, {30, 60}, {60, 30}}
	assert.Equal(t, want, got)
	for _, n := range got {
		assert.True(t, g.Adjacent(gridgeom.Cell{X: 60, Y: 60}, n))
	}
}

func TestAdjacent(t *testing.T) {
	g, err := gridgeom.New(30, 300, 300)
	require.NoError(t, err)

	assert.True(t, g.Adjacent(gridgeom.Cell{0, 0}, gridgeom.Cell{0, 30}))
	assert.False(t, g.Adjacent(gridgeom.Cell{0, 0}, gridgeom.Cell{30, 30}), "diagonal")
	assert.False(t, g.Adjacent(gridgeom.Cell{0, 0}, gridgeom.Cell{0, 0}), "same cell")
	assert.False(t, g.Adjacent(gridgeom.Cell{0, 0}, gridgeom.Cell{60, 0}), "two steps")
}

func TestAlignedAndDimensions(t *testing.T) {
	g, err := gridgeom.New(30, 300, 90)
	require.NoError(t, err)

	assert.True(t, g.Aligned(gridgeom.Cell{X: -30, Y: 60}))
	assert.False(t, g.Aligned(gridgeom.Cell{X: 15, Y: 60}))
	assert.Equal(t, 10, g.Columns())
	assert.Equal(t, 3, g.Rows())
	assert.Equal(t, "(30,-60)", gridgeom.Cell{X: 30, Y: -60}.String())
}
