package gridgeom

import (
	"fmt"
	"math"
)

// New builds a Geometry for a board of width×height screen units divided
// into square cells of edge cellSize.
// Returns ErrBadCellSize if cellSize <= 0, ErrBadBoard if either board
// dimension is <= 0 or not a whole number of cells.
func New(cellSize, width, height int) (*Geometry, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBadCellSize, cellSize)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrBadBoard, width, height)
	}
	if width%cellSize != 0 || height%cellSize != 0 {
		return nil, fmt.Errorf("%w: %dx%d is not a whole number of %d-unit cells", ErrBadBoard, width, height, cellSize)
	}
	s := cellSize
	return &Geometry{
		CellSize: cellSize,
		Width:    width,
		Height:   height,
		// right, top, left, bottom
		neighborOffsets: [4][2]int{{s, 0}, {0, s}, {-s, 0}, {0, -s}},
	}, nil
}

// ToCell returns the cell containing the point (x, y).
// Points left of or below the origin floor toward negative infinity, so
// (-1, -1) maps to (-S, -S) rather than (0, 0).
func (g *Geometry) ToCell(x, y float64) Cell {
	s := float64(g.CellSize)
	return Cell{
		X: int(math.Floor(x/s)) * g.CellSize,
		Y: int(math.Floor(y/s)) * g.CellSize,
	}
}

// ScreenToCell maps pixel coordinates with a top-left origin (terminals,
// windows) to the cell under them in the bottom-left board space.
func (g *Geometry) ScreenToCell(px, py int) Cell {
	s := g.CellSize
	return Cell{
		X: (px / s) * s,
		Y: g.Height - (py/s)*s - s,
	}
}

// CellBounds returns the drawable rectangle covering c.
func (g *Geometry) CellBounds(c Cell) Rect {
	return Rect{X: c.X, Y: c.Y, Width: g.CellSize, Height: g.CellSize}
}

// InBounds reports whether c lies on the board under the permissive
// -S < coordinate < size rule.
func (g *Geometry) InBounds(c Cell) bool {
	return InBounds(c, g.CellSize, g.Width, g.Height)
}

// InBounds is the free form of (*Geometry).InBounds for callers that only
// know the cell size and board dimensions.
func InBounds(c Cell, cellSize, width, height int) bool {
	return -cellSize < c.X && c.X < width && -cellSize < c.Y && c.Y < height
}

// Neighbors returns the four axis-aligned neighbors of c in right, top,
// left, bottom order. Bounds are not checked.
func (g *Geometry) Neighbors(c Cell) [4]Cell {
	var out [4]Cell
	for i, d := range g.neighborOffsets {
		out[i] = Cell{X: c.X + d[0], Y: c.Y + d[1]}
	}
	return out
}

// Adjacent reports whether a and b differ by exactly one axis-aligned step
// of CellSize.
func (g *Geometry) Adjacent(a, b Cell) bool {
	dx, dy := abs(a.X-b.X), abs(a.Y-b.Y)
	return (dx == g.CellSize && dy == 0) || (dx == 0 && dy == g.CellSize)
}

// Aligned reports whether both coordinates of c are multiples of CellSize.
func (g *Geometry) Aligned(c Cell) bool {
	return c.X%g.CellSize == 0 && c.Y%g.CellSize == 0
}

// Columns is the number of whole cells across the board.
func (g *Geometry) Columns() int { return g.Width / g.CellSize }

// Rows is the number of whole cells up the board.
func (g *Geometry) Rows() int { return g.Height / g.CellSize }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
