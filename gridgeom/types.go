package gridgeom

import (
	"errors"
	"fmt"
)

// DefaultCellSize is the edge length of a cell in screen units.
const DefaultCellSize = 30

// Sentinel errors for gridgeom construction.
var (
	// ErrBadCellSize indicates a cell size of zero or less.
	ErrBadCellSize = errors.New("gridgeom: cell size must be positive")
	// ErrBadBoard indicates a board with no area or one that does not
	// divide into whole cells.
	ErrBadBoard = errors.New("gridgeom: board width and height must be positive multiples of the cell size")
)

// Cell is a grid-aligned position. X and Y are multiples of the cell size.
type Cell struct {
	X, Y int
}

// String renders the cell as "(x,y)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Rect is a drawable rectangle in screen units, anchored at its
// bottom-left corner.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Geometry holds the cell size and the board dimensions in screen units.
// It is immutable once built.
type Geometry struct {
	CellSize      int
	Width, Height int

	// offsets in right, top, left, bottom order, scaled by CellSize
	neighborOffsets [4][2]int
}
