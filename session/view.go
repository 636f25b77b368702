package session

import (
	"github.com/katalvlaran/gridflood/flood"
	"github.com/katalvlaran/gridflood/gridgeom"
)

// View is everything a presentation layer needs to draw one frame.
type View struct {
	State         flood.State
	Start, Target *gridgeom.Cell
	Walls         []gridgeom.Cell
	Frontier      []gridgeom.Cell
	Visited       []gridgeom.Cell
	// Path runs target → origin and is empty unless State is Found.
	Path  []gridgeom.Cell
	Steps int
	Err   error
}

// View copies the current board and search state.
func (s *Session) View() View {
	return View{
		State:    s.engine.State(),
		Start:    copyCell(s.start),
		Target:   copyCell(s.target),
		Walls:    s.walls.Cells(),
		Frontier: s.engine.Frontier(),
		Visited:  s.engine.Visited(),
		Path:     s.engine.Path(),
		Steps:    s.engine.Steps(),
		Err:      s.engine.Err(),
	}
}

// Layer names what a primitive depicts.
type Layer int

// Layers in draw order; later layers cover earlier ones.
const (
	// LayerWall is an obstacle cell.
	LayerWall Layer = iota
	// LayerVisited is a cell the search has expanded.
	LayerVisited
	// LayerFrontier is a discovered cell waiting for expansion.
	LayerFrontier
	// LayerPath is a cell on the found route.
	LayerPath
	// LayerStart is the origin marker.
	LayerStart
	// LayerTarget is the target marker.
	LayerTarget
)

var layerNames = [...]string{"wall", "visited", "frontier", "path", "start", "target"}

// String returns the lowercase layer name.
func (l Layer) String() string {
	if l < 0 || int(l) >= len(layerNames) {
		return "layer?"
	}
	return layerNames[l]
}

// Primitive is one filled rectangle to draw.
type Primitive struct {
	Layer Layer
	Rect  gridgeom.Rect
}

// Primitives flattens the view into rectangles in draw order: walls,
// visited, frontier, path, then the start and target markers on top.
func (s *Session) Primitives() []Primitive {
	v := s.View()
	out := make([]Primitive, 0, len(v.Walls)+len(v.Visited)+len(v.Frontier)+len(v.Path)+2)
	emit := func(l Layer, cells []gridgeom.Cell) {
		for _, c := range cells {
			out = append(out, Primitive{Layer: l, Rect: s.geom.CellBounds(c)})
		}
	}
	emit(LayerWall, v.Walls)
	emit(LayerVisited, v.Visited)
	emit(LayerFrontier, v.Frontier)
	emit(LayerPath, v.Path)
	if v.Start != nil {
		emit(LayerStart, []gridgeom.Cell{*v.Start})
	}
	if v.Target != nil {
		emit(LayerTarget, []gridgeom.Cell{*v.Target})
	}
	return out
}

func copyCell(c *gridgeom.Cell) *gridgeom.Cell {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
