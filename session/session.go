// Package session is the command surface between a presentation layer and
// the flood engine.
//
// A Session owns everything the presentation layer used to keep as loose
// fields: the board geometry, the wall set, the start and target cells and
// the engine. The presentation layer issues commands (PlaceStart,
// PlaceTarget, AddWall, StartSearch), calls Tick once per frame, and reads
// View or Primitives to draw.
//
// Wall edits are rejected while a search is running: the engine filters
// expansion through the wall set, and changing it mid-run would leave
// already-discovered cells inconsistent with the board.
package session

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/gridflood/flood"
	"github.com/katalvlaran/gridflood/gridgeom"
	"github.com/katalvlaran/gridflood/obstacle"
	"github.com/katalvlaran/gridflood/scenario"
)

// Sentinel errors for rejected commands.
var (
	ErrSearchRunning = errors.New("session: board is locked while a search is running")
	ErrOutOfBounds   = errors.New("session: cell is off the board")
	ErrOccupied      = errors.New("session: cell is already taken by a wall or marker")
	ErrNilScenario   = errors.New("session: scenario is nil")
)

// Session couples a board with its search engine. Like the engine, it is
// driven from a single goroutine.
type Session struct {
	geom   *gridgeom.Geometry
	walls  *obstacle.Set
	engine *flood.Engine
	logger *slog.Logger

	engineOpts []flood.Option
	start      *gridgeom.Cell
	target     *gridgeom.Cell
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger; the engine inherits it.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithEngineOptions forwards options to every engine the session builds.
func WithEngineOptions(opts ...flood.Option) Option {
	return func(s *Session) {
		s.engineOpts = append(s.engineOpts, opts...)
	}
}

// New builds a Session over geom with an empty board.
func New(geom *gridgeom.Geometry, opts ...Option) (*Session, error) {
	s := &Session{
		geom:   geom,
		walls:  obstacle.New(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.rebuild(); err != nil {
		return nil, err
	}
	return s, nil
}

// rebuild replaces the engine, e.g. after the geometry or order changed.
// extra options apply after the session-wide ones.
func (s *Session) rebuild(extra ...flood.Option) error {
	opts := append([]flood.Option{flood.WithLogger(s.logger)}, s.engineOpts...)
	opts = append(opts, extra...)
	e, err := flood.New(s.geom, s.walls, opts...)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	s.engine = e
	return nil
}

// Geometry returns the board geometry.
func (s *Session) Geometry() *gridgeom.Geometry { return s.geom }

// Engine exposes the underlying engine for read-only inspection.
func (s *Session) Engine() *flood.Engine { return s.engine }

// PlaceStart moves the start marker onto a free cell. A running search
// keeps its origin until the next StartSearch.
func (s *Session) PlaceStart(c gridgeom.Cell) error {
	if err := s.placeable(c); err != nil {
		return err
	}
	if s.walls.Contains(c) {
		return fmt.Errorf("%w: %v", ErrOccupied, c)
	}
	s.start = &c
	return nil
}

// PlaceTarget moves the target marker onto a free cell. A running search
// keeps its target until the next StartSearch.
func (s *Session) PlaceTarget(c gridgeom.Cell) error {
	if err := s.placeable(c); err != nil {
		return err
	}
	if s.walls.Contains(c) {
		return fmt.Errorf("%w: %v", ErrOccupied, c)
	}
	s.target = &c
	return nil
}

// AddWall blocks c. Adding an existing wall is a no-op. Walls cannot be
// added while a search runs, off the board, or on the start or target cell.
func (s *Session) AddWall(c gridgeom.Cell) error {
	if s.engine.State() == flood.Running {
		s.logger.Debug("wall rejected", "cell", c.String(), "reason", "running")
		return ErrSearchRunning
	}
	if err := s.placeable(c); err != nil {
		return err
	}
	if (s.start != nil && *s.start == c) || (s.target != nil && *s.target == c) {
		s.logger.Debug("wall rejected", "cell", c.String(), "reason", "occupied")
		return fmt.Errorf("%w: %v", ErrOccupied, c)
	}
	s.walls.Add(c)
	return nil
}

// StartSearch begins a new run from the start marker to the target marker,
// discarding any run in progress. It returns flood.ErrInvalidStart without a
// start marker and flood.ErrNoTarget without a target marker.
func (s *Session) StartSearch() error {
	if err := s.engine.Start(s.start, s.target); err != nil {
		s.logger.Debug("search not started", "error", err)
		return err
	}
	return nil
}

// Tick advances the search by one expansion. It is meant to be called
// once per frame and is a no-op unless a search is running.
func (s *Session) Tick() (flood.State, error) {
	return s.engine.Step()
}

// Stop halts the running search, keeping its sets on screen.
func (s *Session) Stop() { s.engine.Stop() }

// Reset clears the search sets, leaving markers and walls in place.
func (s *Session) Reset() { s.engine.Reset() }

// Clear wipes the whole board: search, markers and walls.
func (s *Session) Clear() {
	s.engine.Reset()
	s.walls.Clear()
	s.start, s.target = nil, nil
}

// Load replaces the board with the scenario's geometry, walls, markers and
// expansion order. Walls landing on a marker are skipped.
func (s *Session) Load(sc *scenario.Scenario) error {
	if sc == nil {
		return ErrNilScenario
	}
	geom, err := sc.Geometry()
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}

	s.geom = geom
	s.walls = obstacle.New()
	s.start, s.target = nil, nil
	if err := s.rebuild(flood.WithOrder(sc.Order)); err != nil {
		return err
	}

	if sc.Start != nil {
		if err := s.PlaceStart(*sc.Start); err != nil {
			return err
		}
	}
	if sc.Target != nil {
		if err := s.PlaceTarget(*sc.Target); err != nil {
			return err
		}
	}
	for _, w := range sc.Walls {
		if err := s.AddWall(w); err != nil {
			if errors.Is(err, ErrOccupied) {
				continue
			}
			return err
		}
	}
	s.logger.Debug("scenario applied", "walls", s.walls.Len(), "order", sc.Order.String())
	return nil
}

// placeable checks that c is on the visible board.
func (s *Session) placeable(c gridgeom.Cell) error {
	if !s.geom.Aligned(c) || c.X < 0 || c.Y < 0 || !s.geom.InBounds(c) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, c)
	}
	return nil
}
