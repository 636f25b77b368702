// Package obstacle holds the set of impassable cells on a board.
//
// Walls are only ever added: the set is idempotent under Add and offers no
// single-cell removal. Clear exists for replacing a whole board at once.
// The search engine reads the set as a filter during expansion and never
// mutates it.
package obstacle

import (
	"cmp"
	"slices"

	"github.com/zyedidia/generic/mapset"

	"github.com/katalvlaran/gridflood/gridgeom"
)

// Set is a membership set of blocked cells. The zero value is not usable;
// call New.
type Set struct {
	cells mapset.Set[gridgeom.Cell]
}

// New returns a Set seeded with cells. Duplicates collapse.
func New(cells ...gridgeom.Cell) *Set {
	s := &Set{cells: mapset.New[gridgeom.Cell]()}
	for _, c := range cells {
		s.cells.Put(c)
	}
	return s
}

// Add inserts c and reports whether it was not already present.
func (s *Set) Add(c gridgeom.Cell) bool {
	if s.cells.Has(c) {
		return false
	}
	s.cells.Put(c)
	return true
}

// Contains reports whether c is blocked.
func (s *Set) Contains(c gridgeom.Cell) bool {
	return s.cells.Has(c)
}

// Len is the number of distinct blocked cells.
func (s *Set) Len() int {
	return s.cells.Size()
}

// Cells returns the blocked cells sorted bottom row first, then left to right.
func (s *Set) Cells() []gridgeom.Cell {
	out := make([]gridgeom.Cell, 0, s.cells.Size())
	s.cells.Each(func(c gridgeom.Cell) {
		out = append(out, c)
	})
	slices.SortFunc(out, compareCells)
	return out
}

// Clear removes every cell.
func (s *Set) Clear() {
	s.cells = mapset.New[gridgeom.Cell]()
}

func compareCells(a, b gridgeom.Cell) int {
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.X, b.X)
}
