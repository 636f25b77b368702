package scenario_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridflood/ctxlog"
	"github.com/katalvlaran/gridflood/flood"
	"github.com/katalvlaran/gridflood/gridgeom"
	"github.com/katalvlaran/gridflood/scenario"
)

const full = `
board {
  width     = 300
  height    = 240
  cell_size = 30
}

start  = [0, 0]
target = [cell * 2, 0]
walls  = [[cell, cell], [cell, cell]]

wall_rect {
  from = [cell * 2, cell * 3]
  to   = [0, cell * 4]
}

tick  = "20ms"
order = "depth"
`

func TestParse_Full(t *testing.T) {
	sc, err := scenario.Parse([]byte(full), "full.hcl")
	require.NoError(t, err)

	assert.Equal(t, 30, sc.CellSize)
	assert.Equal(t, 300, sc.Width)
	assert.Equal(t, 240, sc.Height)
	require.NotNil(t, sc.Start)
	require.NotNil(t, sc.Target)
	assert.Equal(t, gridgeom.Cell{X: 0, Y: 0}, *sc.Start)
	assert.Equal(t, gridgeom.Cell{X: 60, Y: 0}, *sc.Target)
	assert.Equal(t, 20*time.Millisecond, sc.Tick)
	assert.Equal(t, flood.Depth, sc.Order)

	// one single wall (duplicate dropped) + a 3×2 rectangle
	want := []gridgeom.Cell{
		{X: 30, Y: 30},
		{X: 0, Y: 90}, {X: 30, Y: 90}, {X: 60, Y: 90},
		{X: 0, Y: 120}, {X: 30, Y: 120}, {X: 60, Y: 120},
	}
	assert.Equal(t, want, sc.Walls)

	geom, err := sc.Geometry()
	require.NoError(t, err)
	assert.Equal(t, 10, geom.Columns())
	assert.Equal(t, 8, geom.Rows())
}

// TestParse_Defaults covers a board-only file.
func TestParse_Defaults(t *testing.T) {
	sc, err := scenario.Parse([]byte(`board {
  width  = 90
  height = 90
}
`), "min.hcl")
	require.NoError(t, err)
	assert.Equal(t, gridgeom.DefaultCellSize, sc.CellSize)
	assert.Nil(t, sc.Start)
	assert.Nil(t, sc.Target)
	assert.Empty(t, sc.Walls)
	assert.Equal(t, scenario.DefaultTick, sc.Tick)
	assert.Equal(t, flood.Breadth, sc.Order)
}

// TestParse_BoardVariables checks that cols and rows are in scope.
func TestParse_BoardVariables(t *testing.T) {
	sc, err := scenario.Parse([]byte(`board {
  width     = 100
  height    = 60
  cell_size = 10
}
target = [(cols - 1) * cell, (rows - 1) * cell]
`), "vars.hcl")
	require.NoError(t, err)
	require.NotNil(t, sc.Target)
	assert.Equal(t, gridgeom.Cell{X: 90, Y: 50}, *sc.Target)
}

func TestParse_Errors(t *testing.T) {
	const board = "board {\n  width = 300\n  height = 300\n}\n"
	cases := []struct {
		name string
		src  string
		err  error
	}{
		{"MissingBoard", `start = [0, 0]`, scenario.ErrMissingBoard},
		{"BadCellSize", "board {\n  width = 300\n  height = 300\n  cell_size = 0\n}\n", gridgeom.ErrBadCellSize},
		{"BadBoard", "board {\n  width = 0\n  height = 300\n}\n", gridgeom.ErrBadBoard},
		{"PartialCells", "board {\n  width = 100\n  height = 90\n}\n", gridgeom.ErrBadBoard},
		{"ShortPoint", board + `start = [0]`, scenario.ErrBadPoint},
		{"Misaligned", board + `target = [15, 0]`, scenario.ErrMisaligned},
		{"MisalignedWall", board + `walls = [[0, 0], [31, 0]]`, scenario.ErrMisaligned},
		{"MisalignedRect", board + "wall_rect {\n  from = [0, 0]\n  to = [45, 0]\n}\n", scenario.ErrMisaligned},
		{"OffBoardTarget", board + `target = [300, 0]`, scenario.ErrOffBoard},
		{"NegativeStart", board + `start = [0, -30]`, scenario.ErrOffBoard},
		{"OffBoardWall", board + `walls = [[0, 0], [0, 330]]`, scenario.ErrOffBoard},
		{"HugeRect", board + "wall_rect {\n  from = [0, 0]\n  to = [cell * 100000, cell * 100000]\n}\n", scenario.ErrOffBoard},
		{"BadTick", board + `tick = "soon"`, scenario.ErrBadTick},
		{"NegativeTick", board + `tick = "-5ms"`, scenario.ErrBadTick},
		{"BadOrder", board + `order = "astar"`, scenario.ErrBadOrder},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := scenario.Parse([]byte(tc.src), tc.name+".hcl")
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := scenario.Parse([]byte(`board {`), "broken.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.hcl")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.hcl")
	require.NoError(t, os.WriteFile(path, []byte(full), 0o600))

	ctx := ctxlog.WithLogger(context.Background(), ctxlog.Discard())
	sc, err := scenario.Load(ctx, path)
	require.NoError(t, err)
	assert.Len(t, sc.Walls, 7)

	_, err = scenario.Load(ctx, filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Error(t, err)
}
