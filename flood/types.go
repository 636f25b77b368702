package flood

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/katalvlaran/gridflood/gridgeom"
)

// Sentinel errors for engine construction and execution.
var (
	// ErrNilGeometry is returned by New when no geometry is supplied.
	ErrNilGeometry = errors.New("flood: geometry is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("flood: invalid option supplied")

	// ErrInvalidStart is returned when a search is started without an origin.
	ErrInvalidStart = errors.New("flood: invalid start: origin not set")

	// ErrNoTarget is returned when a search is started without a target.
	ErrNoTarget = errors.New("flood: target not set")

	// ErrUnreachable reports that the frontier emptied before the target was reached.
	ErrUnreachable = errors.New("flood: target unreachable")

	// ErrNotRunning is returned by Run when there is no search in progress.
	ErrNotRunning = errors.New("flood: no search running")

	// ErrStepLimit is returned by Run when the configured step budget is spent.
	ErrStepLimit = errors.New("flood: step limit reached")
)

// State is the lifecycle position of an Engine.
type State int

const (
	// Idle: no search in progress.
	Idle State = iota
	// Running: Step expands one node per call.
	Running
	// Found: the target was expanded and Path is populated.
	Found
	// Unreachable: the frontier emptied without reaching the target.
	Unreachable
)

var stateNames = [...]string{"idle", "running", "found", "unreachable"}

// String returns the lower-case state name.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Terminal reports whether s is Found or Unreachable.
func (s State) Terminal() bool {
	return s == Found || s == Unreachable
}

// Order selects which frontier node is expanded next.
type Order int

const (
	// Breadth expands the oldest frontier node (FIFO).
	Breadth Order = iota
	// Depth expands the most recently discovered frontier node (LIFO).
	Depth
)

// String returns "breadth" or "depth".
func (o Order) String() string {
	switch o {
	case Breadth:
		return "breadth"
	case Depth:
		return "depth"
	default:
		return fmt.Sprintf("order(%d)", int(o))
	}
}

// ParseOrder accepts "breadth"/"bfs" and "depth"/"dfs", case-insensitively.
// The empty string yields Breadth.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "breadth", "bfs":
		return Breadth, nil
	case "depth", "dfs":
		return Depth, nil
	default:
		return 0, fmt.Errorf("%w: unknown order %q", ErrOptionViolation, s)
	}
}

// NoParent marks the root node of the discovery tree.
const NoParent = -1

// Node is a discovered cell and the arena index of the node it was
// discovered from. The origin node has Parent == NoParent.
type Node struct {
	Cell   gridgeom.Cell
	Parent int
}

// Snapshot is a copy of the engine state at one point in time. It shares
// no memory with the engine.
type Snapshot struct {
	State          State
	Origin, Target gridgeom.Cell
	// Current is the node Step will expand next; valid only when HasCurrent.
	Current    gridgeom.Cell
	HasCurrent bool
	Frontier   []gridgeom.Cell
	Visited    []gridgeom.Cell
	// Path runs target → origin; empty unless State is Found.
	Path       []gridgeom.Cell
	Discovered int
	Steps      int
}

// Option configures an Engine via functional arguments.
// Invalid options are recorded and surfaced as ErrOptionViolation by New.
type Option func(*Options)

// Options holds the tunables and callbacks of an Engine.
type Options struct {
	// Order picks the next frontier node to expand.
	Order Order

	// MaxSteps, if > 0, bounds Run. Step itself is never limited.
	MaxSteps int

	// OnDiscover is called when a cell enters the frontier, including the origin.
	OnDiscover func(c gridgeom.Cell)

	// OnExpand is called when a node is taken from the frontier for expansion.
	OnExpand func(c gridgeom.Cell)

	// OnFinish is called once per run on the transition to Found or
	// Unreachable. path is target → origin and empty for Unreachable.
	OnFinish func(s State, path []gridgeom.Cell)

	// OnStep, if set, receives a snapshot at the end of every expansion,
	// after any transition to Found or Unreachable.
	OnStep func(s Snapshot)

	// Logger receives Debug records on start and finish.
	Logger *slog.Logger

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Breadth order, no step limit, no-op hooks, no
// OnStep callback and a discarding logger.
func DefaultOptions() Options {
	return Options{
		Order:      Breadth,
		MaxSteps:   0,
		OnDiscover: func(gridgeom.Cell) {},
		OnExpand:   func(gridgeom.Cell) {},
		OnFinish:   func(State, []gridgeom.Cell) {},
		Logger:     slog.New(slog.DiscardHandler),
	}
}

// WithOrder selects the expansion order.
func WithOrder(o Order) Option {
	return func(opts *Options) {
		if o != Breadth && o != Depth {
			opts.err = fmt.Errorf("%w: unknown order %d", ErrOptionViolation, int(o))
			return
		}
		opts.Order = o
	}
}

// WithMaxSteps bounds Run to n expansions.
//
//	n > 0:  limit to n steps
//	n == 0: explicit no limit
//	n < 0:  invalid option → ErrOptionViolation
func WithMaxSteps(n int) Option {
	return func(opts *Options) {
		if n < 0 {
			opts.err = fmt.Errorf("%w: MaxSteps cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		opts.MaxSteps = n
	}
}

// WithOnDiscover registers a discovery callback. Repeated registrations
// run in registration order.
func WithOnDiscover(fn func(c gridgeom.Cell)) Option {
	return func(opts *Options) {
		if fn == nil {
			return
		}
		prev := opts.OnDiscover
		opts.OnDiscover = func(c gridgeom.Cell) { prev(c); fn(c) }
	}
}

// WithOnExpand registers an expansion callback. Repeated registrations
// run in registration order.
func WithOnExpand(fn func(c gridgeom.Cell)) Option {
	return func(opts *Options) {
		if fn == nil {
			return
		}
		prev := opts.OnExpand
		opts.OnExpand = func(c gridgeom.Cell) { prev(c); fn(c) }
	}
}

// WithOnFinish registers a terminal-state callback. Repeated registrations
// run in registration order.
func WithOnFinish(fn func(s State, path []gridgeom.Cell)) Option {
	return func(opts *Options) {
		if fn == nil {
			return
		}
		prev := opts.OnFinish
		opts.OnFinish = func(s State, path []gridgeom.Cell) { prev(s, path); fn(s, path) }
	}
}

// WithOnStep registers a per-expansion snapshot callback. Repeated
// registrations run in registration order and share one snapshot.
func WithOnStep(fn func(s Snapshot)) Option {
	return func(opts *Options) {
		if fn == nil {
			return
		}
		if prev := opts.OnStep; prev != nil {
			opts.OnStep = func(s Snapshot) { prev(s); fn(s) }
			return
		}
		opts.OnStep = fn
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(opts *Options) {
		if l != nil {
			opts.Logger = l
		}
	}
}
