package tui

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridflood/flood"
	"github.com/katalvlaran/gridflood/gridgeom"
	"github.com/katalvlaran/gridflood/session"
)

// newUI builds a 5×3 board on a simulation screen.
func newUI(t *testing.T, opts ...Option) (*UI, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(40, 10)

	geom, err := gridgeom.New(30, 150, 90)
	require.NoError(t, err)
	sess, err := session.New(geom)
	require.NoError(t, err)
	return New(screen, sess, opts...), screen
}

func styleAt(s tcell.SimulationScreen, x, y int) tcell.Style {
	_, _, st, _ := s.GetContent(x, y)
	return st
}

func TestMouseAndKeys_PlaceMarkers(t *testing.T) {
	u, _ := newUI(t)

	// bottom-left terminal cell is board (0,0)
	u.mouse(0, 2, tcell.Button1)
	// move to the top-right cell, then Tab
	u.mouse(9, 0, tcell.ButtonNone)
	require.True(t, u.key(tcell.KeyTab, 0))
	// right click on the middle row, second column
	u.mouse(2, 1, tcell.Button2)
	// off-board pointer is ignored
	u.mouse(30, 8, tcell.ButtonNone)
	require.True(t, u.key(tcell.KeyRune, 'w'))

	v := u.sess.View()
	require.NotNil(t, v.Start)
	require.NotNil(t, v.Target)
	assert.Equal(t, gridgeom.Cell{X: 0, Y: 0}, *v.Start)
	assert.Equal(t, gridgeom.Cell{X: 120, Y: 60}, *v.Target)
	assert.Equal(t, []gridgeom.Cell{{X: 30, Y: 30}}, v.Walls)
}

func TestKeys_SearchLifecycle(t *testing.T) {
	var ticks, stops int
	u, _ := newUI(t,
		WithOnTick(func(flood.Snapshot) { ticks++ }),
		WithOnStop(func() { stops++ }),
	)

	require.True(t, u.key(tcell.KeyRune, ' '))
	assert.ErrorIs(t, u.lastErr, flood.ErrInvalidStart)

	require.NoError(t, u.sess.PlaceStart(gridgeom.Cell{X: 0, Y: 0}))
	require.NoError(t, u.sess.PlaceTarget(gridgeom.Cell{X: 120, Y: 0}))
	require.True(t, u.key(tcell.KeyRune, ' '))
	assert.NoError(t, u.lastErr)

	u.advance()
	assert.Equal(t, 1, ticks)
	require.True(t, u.key(tcell.KeyRune, 's'))
	assert.Equal(t, 1, stops)
	assert.Equal(t, flood.Idle, u.sess.View().State)

	// stopping an idle engine does not count again
	require.True(t, u.key(tcell.KeyRune, 's'))
	assert.Equal(t, 1, stops)
	u.advance()
	assert.Equal(t, 1, ticks)

	require.True(t, u.key(tcell.KeyRune, ' '))
	for i := 0; i < 100 && u.sess.View().State == flood.Running; i++ {
		u.advance()
	}
	assert.Equal(t, flood.Found, u.sess.View().State)

	require.True(t, u.key(tcell.KeyRune, 'r'))
	assert.Equal(t, flood.Idle, u.sess.View().State)
	require.True(t, u.key(tcell.KeyRune, 'c'))
	assert.Nil(t, u.sess.View().Start)
}

func TestKeys_Quit(t *testing.T) {
	u, _ := newUI(t)
	assert.False(t, u.key(tcell.KeyRune, 'q'))
	assert.False(t, u.key(tcell.KeyEscape, 0))
	assert.False(t, u.key(tcell.KeyCtrlC, 0))
	assert.True(t, u.key(tcell.KeyF1, 0))
}

func TestDraw(t *testing.T) {
	u, screen := newUI(t)
	require.NoError(t, u.sess.PlaceStart(gridgeom.Cell{X: 0, Y: 0}))
	require.NoError(t, u.sess.PlaceTarget(gridgeom.Cell{X: 60, Y: 0}))
	require.NoError(t, u.sess.AddWall(gridgeom.Cell{X: 30, Y: 60}))
	require.NoError(t, u.sess.StartSearch())
	for u.sess.View().State == flood.Running {
		u.advance()
	}
	u.draw()

	// rows: 0 is y=60, 2 is y=0
	assert.Equal(t, styleStart, styleAt(screen, 0, 2))
	assert.Equal(t, styleStart, styleAt(screen, 1, 2))
	assert.Equal(t, stylePath, styleAt(screen, 2, 2))
	assert.Equal(t, styleTarget, styleAt(screen, 4, 2))
	assert.Equal(t, styleWall, styleAt(screen, 2, 0))

	r, _, st, _ := screen.GetContent(0, 3)
	assert.Equal(t, 'f', r, "status line starts with the state name")
	assert.Equal(t, styleFound, st)
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "idle  steps 0  frontier 0  visited 0", Status(session.View{}))
	assert.Equal(t, "found  steps 3  frontier 1  visited 3  path 3", Status(session.View{
		State:    flood.Found,
		Steps:    3,
		Frontier: make([]gridgeom.Cell, 1),
		Visited:  make([]gridgeom.Cell, 3),
		Path:     make([]gridgeom.Cell, 3),
	}))
	assert.Contains(t, Status(session.View{State: flood.Unreachable}), "unreachable")
}

// TestRun_Cancel drives the loop with a running search until ctx expires.
func TestRun_Cancel(t *testing.T) {
	var ticks int
	u, _ := newUI(t, WithTick(time.Millisecond), WithOnTick(func(flood.Snapshot) { ticks++ }))
	require.NoError(t, u.sess.PlaceStart(gridgeom.Cell{X: 0, Y: 0}))
	require.NoError(t, u.sess.PlaceTarget(gridgeom.Cell{X: 120, Y: 60}))
	require.NoError(t, u.sess.StartSearch())

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, u.Run(ctx), context.DeadlineExceeded)
	assert.Equal(t, flood.Found, u.sess.View().State)
	assert.Positive(t, ticks)
}
