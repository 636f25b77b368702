// Package tui draws a session on a terminal and turns keys and mouse
// clicks into session commands.
//
// Every board cell is two terminal columns wide and one row high, the top
// row being the highest y. The line under the board is the status line.
//
//	left click   place start
//	right click  add wall
//	w            add wall under the pointer
//	Tab          place target under the pointer
//	space        start search
//	s            stop
//	r            reset search
//	c            clear board
//	q, Esc       quit
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/katalvlaran/gridflood/flood"
	"github.com/katalvlaran/gridflood/session"
)

// DefaultTick is the frame interval when none is configured.
const DefaultTick = 30 * time.Millisecond

var (
	styleBoard    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleWall     = tcell.StyleDefault.Background(tcell.ColorSlateGray)
	styleVisited  = tcell.StyleDefault.Background(tcell.ColorNavy)
	styleFrontier = tcell.StyleDefault.Background(tcell.ColorOlive)
	stylePath     = tcell.StyleDefault.Background(tcell.ColorFuchsia)
	styleStart    = tcell.StyleDefault.Background(tcell.ColorGreen)
	styleTarget   = tcell.StyleDefault.Background(tcell.ColorRed)

	styleStatus      = tcell.StyleDefault
	styleFound       = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleUnreachable = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

var layerStyles = map[session.Layer]tcell.Style{
	session.LayerWall:     styleWall,
	session.LayerVisited:  styleVisited,
	session.LayerFrontier: styleFrontier,
	session.LayerPath:     stylePath,
	session.LayerStart:    styleStart,
	session.LayerTarget:   styleTarget,
}

// UI runs one session on one screen.
type UI struct {
	screen tcell.Screen
	sess   *session.Session
	tick   time.Duration
	logger *slog.Logger
	onTick func(flood.Snapshot)
	onStop func()

	// pointer is the last mouse position in terminal cells
	pointerX, pointerY int
	lastErr            error
}

// Option configures a UI.
type Option func(*UI)

// WithTick sets the frame interval; non-positive values are ignored.
func WithTick(d time.Duration) Option {
	return func(u *UI) {
		if d > 0 {
			u.tick = d
		}
	}
}

// WithLogger sets the logger for quit, finish and rejected-command records.
// A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(u *UI) {
		if l != nil {
			u.logger = l
		}
	}
}

// WithOnTick registers a callback receiving a snapshot after every frame in
// which the search was running.
func WithOnTick(fn func(flood.Snapshot)) Option {
	return func(u *UI) { u.onTick = fn }
}

// WithOnStop registers a callback for searches halted with s.
func WithOnStop(fn func()) Option {
	return func(u *UI) { u.onStop = fn }
}

// New binds sess to an initialized screen. The caller owns the screen and
// finalizes it after Run returns.
func New(screen tcell.Screen, sess *session.Session, opts ...Option) *UI {
	u := &UI{
		screen: screen,
		sess:   sess,
		tick:   DefaultTick,
		logger: slog.New(slog.DiscardHandler),
		onTick: func(flood.Snapshot) {},
		onStop: func() {},
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Run polls input and advances the search once per tick until the user
// quits or ctx is done.
func (u *UI) Run(ctx context.Context) error {
	u.screen.EnableMouse()
	defer u.screen.DisableMouse()

	ticker := time.NewTicker(u.tick)
	defer ticker.Stop()

	quit := make(chan struct{})
	defer close(quit)
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := u.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	u.draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !u.handle(ev) {
				u.logger.Info("quit requested")
				return nil
			}
			u.draw()
		case <-ticker.C:
			u.advance()
			u.draw()
		}
	}
}

// advance performs one frame of search.
func (u *UI) advance() {
	if u.sess.Engine().State() != flood.Running {
		return
	}
	state, err := u.sess.Tick()
	if err != nil {
		u.lastErr = err
	}
	u.onTick(u.sess.Engine().Snapshot())
	if state.Terminal() {
		u.logger.Info("search finished", "state", state.String(), "steps", u.sess.Engine().Steps())
	}
}

// handle applies one event and reports whether the loop should continue.
func (u *UI) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return u.key(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		x, y := ev.Position()
		u.mouse(x, y, ev.Buttons())
	case *tcell.EventResize:
		u.screen.Sync()
	}
	return true
}

func (u *UI) key(k tcell.Key, r rune) bool {
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyTab:
		u.pointer(session.ActionTarget)
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch r {
	case 'q':
		return false
	case 'w':
		u.pointer(session.ActionWall)
	case ' ':
		u.report(u.sess.StartSearch())
	case 's':
		if u.sess.Engine().State() == flood.Running {
			u.sess.Stop()
			u.onStop()
		}
	case 'r':
		u.sess.Reset()
		u.lastErr = nil
	case 'c':
		u.sess.Clear()
		u.lastErr = nil
	}
	return true
}

func (u *UI) mouse(x, y int, buttons tcell.ButtonMask) {
	u.pointerX, u.pointerY = x, y
	switch {
	case buttons&tcell.Button1 != 0:
		u.pointer(session.ActionStart)
	case buttons&tcell.Button2 != 0:
		u.pointer(session.ActionWall)
	}
}

// pointer applies a at the last mouse position if it lies on the board.
func (u *UI) pointer(a session.Action) {
	geom := u.sess.Geometry()
	if u.pointerY >= geom.Rows() || u.pointerX/2 >= geom.Columns() {
		return
	}
	s := geom.CellSize
	u.report(u.sess.Pointer(a, (u.pointerX/2)*s, u.pointerY*s))
}

func (u *UI) report(err error) {
	u.lastErr = err
	if err != nil {
		u.logger.Debug("command rejected", "error", err)
	}
}

func (u *UI) draw() {
	geom := u.sess.Geometry()
	s := geom.CellSize
	nc, nr := geom.Columns(), geom.Rows()

	u.screen.Clear()
	for r := 0; r < nr; r++ {
		for c := 0; c < nc; c++ {
			u.screen.SetContent(2*c, r, '·', nil, styleBoard)
			u.screen.SetContent(2*c+1, r, ' ', nil, styleBoard)
		}
	}
	for _, p := range u.sess.Primitives() {
		c, r := p.Rect.X/s, nr-1-p.Rect.Y/s
		if c < 0 || c >= nc || r < 0 || r >= nr {
			continue
		}
		st := layerStyles[p.Layer]
		u.screen.SetContent(2*c, r, ' ', nil, st)
		u.screen.SetContent(2*c+1, r, ' ', nil, st)
	}
	u.status(nr)
	u.screen.Show()
}

// status writes the state line under the board.
func (u *UI) status(row int) {
	v := u.sess.View()
	st := styleStatus
	switch v.State {
	case flood.Found:
		st = styleFound
	case flood.Unreachable:
		st = styleUnreachable
	}

	line := Status(v)
	if u.lastErr != nil && u.lastErr != v.Err {
		line += "  " + u.lastErr.Error()
	}
	col := 0
	for _, ch := range line {
		u.screen.SetContent(col, row, ch, nil, st)
		col++
	}
}

// Status formats the one-line summary of v.
func Status(v session.View) string {
	line := fmt.Sprintf("%s  steps %d  frontier %d  visited %d", v.State, v.Steps, len(v.Frontier), len(v.Visited))
	switch v.State {
	case flood.Found:
		line += fmt.Sprintf("  path %d", len(v.Path))
	case flood.Unreachable:
		line += "  target unreachable"
	}
	return line
}
