package session

import "fmt"

// Action is a user command bound to a pointer position.
type Action int

const (
	// ActionStart places the start marker (mouse click).
	ActionStart Action = iota
	// ActionTarget places the target marker (Tab).
	ActionTarget
	// ActionWall adds a wall (holding w).
	ActionWall
)

func (a Action) String() string {
	switch a {
	case ActionStart:
		return "start"
	case ActionTarget:
		return "target"
	case ActionWall:
		return "wall"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Pointer applies a to the cell under the pixel (px, py), where the pixel
// origin is top-left as reported by terminals and windows.
func (s *Session) Pointer(a Action, px, py int) error {
	c := s.geom.ScreenToCell(px, py)
	switch a {
	case ActionStart:
		return s.PlaceStart(c)
	case ActionTarget:
		return s.PlaceTarget(c)
	case ActionWall:
		return s.AddWall(c)
	default:
		return fmt.Errorf("session: unknown action %d", int(a))
	}
}
