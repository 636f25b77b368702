package flood

import (
	"context"
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/katalvlaran/gridflood/gridgeom"
	"github.com/katalvlaran/gridflood/obstacle"
)

// Engine is a step-able flood-fill search. It is not safe for concurrent
// use: one goroutine issues commands and reads state, others consume
// Snapshot copies.
type Engine struct {
	geom  *gridgeom.Geometry
	walls *obstacle.Set
	opts  Options

	state          State
	origin, target gridgeom.Cell

	nodes      []Node // arena; Parent indexes into it
	frontier   []int  // arena indices awaiting expansion, oldest first
	visited    []int  // arena indices in expansion order
	discovered mapset.Set[gridgeom.Cell]
	path       []gridgeom.Cell
	steps      int
	err        error
}

// New builds an Idle engine over geom, filtering expansion through walls.
// A nil walls set is treated as an empty board.
// Returns ErrNilGeometry or ErrOptionViolation.
func New(geom *gridgeom.Geometry, walls *obstacle.Set, opts ...Option) (*Engine, error) {
	if geom == nil {
		return nil, ErrNilGeometry
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if walls == nil {
		walls = obstacle.New()
	}

	return &Engine{
		geom:       geom,
		walls:      walls,
		opts:       o,
		state:      Idle,
		discovered: mapset.New[gridgeom.Cell](),
	}, nil
}

// Start begins a new run from origin toward target, discarding any run in
// progress. A nil origin yields ErrInvalidStart and a nil target ErrNoTarget;
// in both cases the engine is left as it was.
func (e *Engine) Start(origin, target *gridgeom.Cell) error {
	if origin == nil {
		return ErrInvalidStart
	}
	if target == nil {
		return ErrNoTarget
	}

	e.clear()
	e.origin, e.target = *origin, *target
	e.state = Running
	e.discover(e.origin, NoParent)
	e.opts.Logger.Debug("search started",
		"origin", e.origin.String(), "target", e.target.String(), "order", e.opts.Order.String())

	return nil
}

// Step expands one frontier node and returns the resulting state.
// It is a no-op returning the current state unless the engine is Running.
// The error is ErrUnreachable on the step that exhausts the frontier and
// nil otherwise.
func (e *Engine) Step() (State, error) {
	if e.state != Running {
		return e.state, nil
	}
	e.steps++

	pos := e.head()
	cur := e.frontier[pos]
	cell := e.nodes[cur].Cell
	e.opts.OnExpand(cell)

	for _, nb := range e.geom.Neighbors(cell) {
		if cell == e.target && e.state == Running {
			e.finish(Found, Reconstruct(e.nodes, cur), nil)
		}
		if e.discovered.Has(nb) || e.walls.Contains(nb) || !e.geom.InBounds(nb) {
			continue
		}
		e.discover(nb, cur)
	}

	e.take(pos)
	e.visited = append(e.visited, cur)

	if e.state == Running && len(e.frontier) == 0 {
		e.finish(Unreachable, nil, ErrUnreachable)
	}
	if e.opts.OnStep != nil {
		e.opts.OnStep(e.Snapshot())
	}

	return e.state, e.err
}

// Run steps until the engine leaves Running. It checks ctx once per step
// and honours WithMaxSteps. A run ending in Unreachable returns
// ErrUnreachable; calling Run on a non-Running engine returns ErrNotRunning.
func (e *Engine) Run(ctx context.Context) (State, error) {
	if e.state != Running {
		return e.state, ErrNotRunning
	}
	for e.state == Running {
		select {
		case <-ctx.Done():
			return e.state, ctx.Err()
		default:
		}
		if e.opts.MaxSteps > 0 && e.steps >= e.opts.MaxSteps {
			return e.state, fmt.Errorf("%w: %d", ErrStepLimit, e.opts.MaxSteps)
		}
		if _, err := e.Step(); err != nil {
			return e.state, err
		}
	}

	return e.state, nil
}

// Stop halts a running search without restarting it. The sets are kept for
// inspection until the next Start or Reset.
func (e *Engine) Stop() {
	if e.state == Running {
		e.state = Idle
		e.opts.Logger.Debug("search stopped", "steps", e.steps)
	}
}

// Reset returns the engine to Idle with every set cleared.
func (e *Engine) Reset() {
	e.clear()
	e.state = Idle
}

// State returns the current lifecycle state.
func (e *Engine) State() State { return e.state }

// Err returns the terminal error of the last run (ErrUnreachable) or nil.
func (e *Engine) Err() error { return e.err }

// Steps returns the number of expansions performed in the current run.
func (e *Engine) Steps() int { return e.steps }

// Origin returns the origin of the current or last run.
func (e *Engine) Origin() gridgeom.Cell { return e.origin }

// Target returns the target of the current or last run.
func (e *Engine) Target() gridgeom.Cell { return e.target }

// Discovered returns how many cells have been enqueued in this run.
func (e *Engine) Discovered() int { return e.discovered.Size() }

// Current returns the cell the next Step will expand. ok is false unless
// the engine is Running.
func (e *Engine) Current() (c gridgeom.Cell, ok bool) {
	if e.state != Running || len(e.frontier) == 0 {
		return gridgeom.Cell{}, false
	}
	return e.nodes[e.frontier[e.head()]].Cell, true
}

// Frontier returns the cells awaiting expansion, oldest first.
func (e *Engine) Frontier() []gridgeom.Cell { return e.cells(e.frontier) }

// Visited returns the expanded cells in expansion order.
func (e *Engine) Visited() []gridgeom.Cell { return e.cells(e.visited) }

// Path returns the reconstructed route, target → origin. It is empty
// unless the state is Found.
func (e *Engine) Path() []gridgeom.Cell {
	out := make([]gridgeom.Cell, len(e.path))
	copy(out, e.path)
	return out
}

// Snapshot copies the observable state.
func (e *Engine) Snapshot() Snapshot {
	cur, ok := e.Current()
	return Snapshot{
		State:      e.state,
		Origin:     e.origin,
		Target:     e.target,
		Current:    cur,
		HasCurrent: ok,
		Frontier:   e.Frontier(),
		Visited:    e.Visited(),
		Path:       e.Path(),
		Discovered: e.Discovered(),
		Steps:      e.steps,
	}
}

// head is the frontier position Step expands next.
func (e *Engine) head() int {
	if e.opts.Order == Depth {
		return len(e.frontier) - 1
	}
	return 0
}

// take removes the frontier entry at pos.
func (e *Engine) take(pos int) {
	if pos == 0 {
		e.frontier = e.frontier[1:]
		return
	}
	e.frontier = append(e.frontier[:pos], e.frontier[pos+1:]...)
}

// discover appends a node for c to the arena and the frontier and marks c
// discovered.
func (e *Engine) discover(c gridgeom.Cell, parent int) {
	e.nodes = append(e.nodes, Node{Cell: c, Parent: parent})
	e.frontier = append(e.frontier, len(e.nodes)-1)
	e.discovered.Put(c)
	e.opts.OnDiscover(c)
}

// finish moves the engine to a terminal state and fires OnFinish once.
func (e *Engine) finish(s State, path []gridgeom.Cell, err error) {
	e.state = s
	e.path = path
	e.err = err
	e.opts.Logger.Debug("search finished",
		"state", s.String(), "steps", e.steps, "discovered", e.discovered.Size(), "path_len", len(path))
	e.opts.OnFinish(s, e.Path())
}

func (e *Engine) clear() {
	e.nodes = e.nodes[:0]
	e.frontier = nil
	e.visited = e.visited[:0]
	e.discovered = mapset.New[gridgeom.Cell]()
	e.path = nil
	e.steps = 0
	e.err = nil
}

func (e *Engine) cells(idx []int) []gridgeom.Cell {
	out := make([]gridgeom.Cell, len(idx))
	for i, n := range idx {
		out[i] = e.nodes[n].Cell
	}
	return out
}
