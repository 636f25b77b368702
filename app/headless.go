package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/gridflood/flood"
	"github.com/katalvlaran/gridflood/session"
)

// headless runs the loaded search to a terminal state without pausing
// between steps and prints the outcome to outW. The engine publishes each
// expansion through the hook set up by engineOptions; headless publishes
// only the starting snapshot. An unreachable target is reported and
// returned as flood.ErrUnreachable. A step limit or a cancelled ctx stops
// the search and is returned without a summary.
func (a *App) headless(ctx context.Context, sess *session.Session, publish func(flood.Snapshot)) error {
	if err := sess.StartSearch(); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	engine := sess.Engine()
	publish(engine.Snapshot())

	state, err := engine.Run(ctx)
	if err != nil && !errors.Is(err, flood.ErrUnreachable) {
		sess.Stop()
		a.recorder.Stopped()
		a.logger.Warn("search stopped", "steps", engine.Steps(), "error", err)
		return err
	}

	v := sess.View()
	a.logger.Info("search finished", "state", state.String(), "steps", v.Steps, "path_len", len(v.Path))
	fmt.Fprintln(a.outW, Summary(v))
	return err
}

// Summary renders the outcome of a finished search. A found path is listed
// from origin to target.
func Summary(v session.View) string {
	switch v.State {
	case flood.Found:
		walk := flood.Reverse(v.Path)
		cells := make([]string, len(walk))
		for i, c := range walk {
			cells[i] = c.String()
		}
		return fmt.Sprintf("found: %d moves in %d steps\n%s", len(walk)-1, v.Steps, strings.Join(cells, " "))
	case flood.Unreachable:
		return fmt.Sprintf("unreachable: %d cells explored in %d steps", len(v.Visited), v.Steps)
	default:
		return fmt.Sprintf("%s after %d steps", v.State, v.Steps)
	}
}
