// Package gridgeom maps between continuous screen space and the discrete
// cells of a uniform square grid.
//
// What:
//
//   - Cell is a grid-aligned (x, y) pair; both coordinates are multiples of
//     the cell size S. Equality is structural, so Cell works as a map key.
//   - Geometry fixes S and the board size and converts points, pixels and
//     cells into each other.
//   - Neighbors yields the four axis-aligned neighbors in a fixed order:
//     right, top, left, bottom. The order decides tie-breaks in a search,
//     never reachability.
//
// Coordinates:
//
//	The board origin is bottom-left: "top" is y+S. Pixel input from a
//	terminal or window (origin top-left) goes through ScreenToCell, which
//	applies the y flip.
//
// Bounds:
//
//	InBounds accepts -S < x < width and -S < y < height. The lower bound is
//	exclusive at -S rather than 0, so no cell with a negative coordinate is
//	ever in bounds (the nearest such cell sits exactly at -S), while any
//	unaligned point in (-S, 0) is still accepted.
//
// Complexity:
//
//   - Every operation is O(1) and allocation-free.
//
// Errors:
//
//   - ErrBadCellSize: cell size is not positive.
//   - ErrBadBoard: board width or height is not positive.
package gridgeom
