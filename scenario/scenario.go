// Package scenario loads board setups from HCL files: board size, cell
// size, start and target cells, walls, tick interval and expansion order.
//
// A scenario is decoded in two passes. The board block is read first; its
// values are then exposed to every other expression as the variables cell,
// width, height, cols and rows, so walls can be written in cell units:
//
//	board {
//	  width     = 300
//	  height    = 300
//	  cell_size = 30
//	}
//	start  = [0, 0]
//	target = [cell * 2, 0]
//	walls  = [[cell, cell]]
//	wall_rect {
//	  from = [0, cell * 3]
//	  to   = [cell * 4, cell * 3]
//	}
//	tick  = "20ms"
//	order = "breadth"
//
// Scenario files are inputs only; nothing is ever written back.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zyedidia/generic/mapset"

	"github.com/katalvlaran/gridflood/ctxlog"
	"github.com/katalvlaran/gridflood/flood"
	"github.com/katalvlaran/gridflood/gridgeom"
)

// Sentinel errors for scenario decoding and validation.
var (
	ErrMissingBoard = errors.New("scenario: board block is required")
	ErrBadPoint     = errors.New("scenario: a point must be a list of two numbers")
	ErrMisaligned   = errors.New("scenario: coordinates must be multiples of the cell size")
	ErrBadTick      = errors.New("scenario: tick must be a positive duration")
	ErrBadOrder     = errors.New("scenario: unknown expansion order")
	ErrOffBoard     = errors.New("scenario: point lies off the board")
)

// DefaultTick is the step interval used when a scenario sets none.
const DefaultTick = 30 * time.Millisecond

// Scenario is a decoded and validated board setup.
type Scenario struct {
	CellSize      int
	Width, Height int
	// Start and Target are nil when the file leaves them out.
	Start, Target *gridgeom.Cell
	// Walls holds every blocked cell, from walls and wall_rect, without duplicates.
	Walls []gridgeom.Cell
	Tick  time.Duration
	Order flood.Order
}

// Geometry builds the board geometry described by s.
func (s *Scenario) Geometry() (*gridgeom.Geometry, error) {
	return gridgeom.New(s.CellSize, s.Width, s.Height)
}

type hclBoard struct {
	Width    int  `hcl:"width"`
	Height   int  `hcl:"height"`
	CellSize *int `hcl:"cell_size,optional"`
}

// hclHead is the first pass: only the board block, everything else deferred.
type hclHead struct {
	Board  *hclBoard `hcl:"board,block"`
	Remain hcl.Body  `hcl:",remain"`
}

type hclRect struct {
	From []int `hcl:"from"`
	To   []int `hcl:"to"`
}

// hclBody is the second pass, evaluated with the board variables in scope.
type hclBody struct {
	Start  []int      `hcl:"start,optional"`
	Target []int      `hcl:"target,optional"`
	Walls  [][]int    `hcl:"walls,optional"`
	Rects  []*hclRect `hcl:"wall_rect,block"`
	Tick   *string    `hcl:"tick,optional"`
	Order  *string    `hcl:"order,optional"`
}

// Parse decodes a scenario from HCL source. filename is used in diagnostics only.
func Parse(src []byte, filename string) (*Scenario, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("scenario: failed to parse %s: %w", filename, diags)
	}
	return decode(file, filename)
}

// Load reads and decodes the scenario file at path.
func Load(ctx context.Context, path string) (*Scenario, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading scenario", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("scenario: failed to parse %s: %w", path, diags)
	}
	sc, err := decode(file, path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Scenario loaded", "path", path, "walls", len(sc.Walls), "order", sc.Order.String())
	return sc, nil
}

func decode(file *hcl.File, filename string) (*Scenario, error) {
	var head hclHead
	if diags := gohcl.DecodeBody(file.Body, nil, &head); diags.HasErrors() {
		return nil, fmt.Errorf("scenario: failed to decode %s: %w", filename, diags)
	}
	if head.Board == nil {
		return nil, fmt.Errorf("%w (%s)", ErrMissingBoard, filename)
	}

	sc := &Scenario{
		CellSize: gridgeom.DefaultCellSize,
		Width:    head.Board.Width,
		Height:   head.Board.Height,
		Tick:     DefaultTick,
		Order:    flood.Breadth,
	}
	if head.Board.CellSize != nil {
		sc.CellSize = *head.Board.CellSize
	}
	geom, err := sc.Geometry()
	if err != nil {
		return nil, fmt.Errorf("scenario: %s: %w", filename, err)
	}

	var body hclBody
	if diags := gohcl.DecodeBody(head.Remain, evalContext(geom), &body); diags.HasErrors() {
		return nil, fmt.Errorf("scenario: failed to decode %s: %w", filename, diags)
	}

	if sc.Start, err = optionalPoint(geom, "start", body.Start); err != nil {
		return nil, err
	}
	if sc.Target, err = optionalPoint(geom, "target", body.Target); err != nil {
		return nil, err
	}
	if sc.Walls, err = collectWalls(geom, body.Walls, body.Rects); err != nil {
		return nil, err
	}
	if body.Tick != nil {
		d, err := time.ParseDuration(*body.Tick)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrBadTick, *body.Tick)
		}
		sc.Tick = d
	}
	if body.Order != nil {
		o, err := flood.ParseOrder(*body.Order)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadOrder, *body.Order)
		}
		sc.Order = o
	}

	return sc, nil
}

// evalContext exposes the board dimensions to scenario expressions.
func evalContext(geom *gridgeom.Geometry) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"cell":   cty.NumberIntVal(int64(geom.CellSize)),
			"width":  cty.NumberIntVal(int64(geom.Width)),
			"height": cty.NumberIntVal(int64(geom.Height)),
			"cols":   cty.NumberIntVal(int64(geom.Columns())),
			"rows":   cty.NumberIntVal(int64(geom.Rows())),
		},
	}
}

func optionalPoint(geom *gridgeom.Geometry, name string, raw []int) (*gridgeom.Cell, error) {
	if raw == nil {
		return nil, nil
	}
	c, err := point(geom, name, raw)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func point(geom *gridgeom.Geometry, name string, raw []int) (gridgeom.Cell, error) {
	if len(raw) != 2 {
		return gridgeom.Cell{}, fmt.Errorf("%w: %s has %d elements", ErrBadPoint, name, len(raw))
	}
	c := gridgeom.Cell{X: raw[0], Y: raw[1]}
	if !geom.Aligned(c) {
		return gridgeom.Cell{}, fmt.Errorf("%w: %s %v with cell size %d", ErrMisaligned, name, c, geom.CellSize)
	}
	if c.X < 0 || c.Y < 0 || !geom.InBounds(c) {
		return gridgeom.Cell{}, fmt.Errorf("%w: %s %v on a %dx%d board", ErrOffBoard, name, c, geom.Width, geom.Height)
	}
	return c, nil
}

// collectWalls merges single walls and filled rectangles, dropping duplicates
// and keeping first-seen order. Rectangle corners are checked against the
// board before any cell is filled.
func collectWalls(geom *gridgeom.Geometry, singles [][]int, rects []*hclRect) ([]gridgeom.Cell, error) {
	seen := mapset.New[gridgeom.Cell]()
	var out []gridgeom.Cell
	add := func(c gridgeom.Cell) {
		if !seen.Has(c) {
			seen.Put(c)
			out = append(out, c)
		}
	}

	for i, raw := range singles {
		c, err := point(geom, fmt.Sprintf("walls[%d]", i), raw)
		if err != nil {
			return nil, err
		}
		add(c)
	}
	for i, r := range rects {
		from, err := point(geom, fmt.Sprintf("wall_rect[%d].from", i), r.From)
		if err != nil {
			return nil, err
		}
		to, err := point(geom, fmt.Sprintf("wall_rect[%d].to", i), r.To)
		if err != nil {
			return nil, err
		}
		x0, x1 := min(from.X, to.X), max(from.X, to.X)
		y0, y1 := min(from.Y, to.Y), max(from.Y, to.Y)
		for y := y0; y <= y1; y += geom.CellSize {
			for x := x0; x <= x1; x += geom.CellSize {
				add(gridgeom.Cell{X: x, Y: y})
			}
		}
	}

	return out, nil
}
