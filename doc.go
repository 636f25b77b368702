// Package gridflood is a step-by-step flood-fill search over a square grid,
// built to be watched: every call to Step expands one frontier cell, so a
// render loop can draw the frontier, the visited set and finally the path
// as the search spreads.
//
// What is inside?
//
//	gridgeom/  cell size, board bounds, neighbor order, pixel → cell mapping
//	obstacle/  the wall set
//	flood/     the step-able engine (Idle → Running → Found | Unreachable)
//	             and parent-chain path reconstruction
//	session/   board state and commands for a presentation layer
//	scenario/  HCL board files
//	tui/       tcell terminal front end
//	metrics/   Prometheus series fed by engine hooks
//	relay/     socket.io snapshot stream for spectators
//	cue/       audio cue when a search ends
//	app/       wiring and the headless runner
//	cmd/gridflood/  the command
//
// Quick start:
//
//	geom, _ := gridgeom.New(30, 300, 300)
//	e, _ := flood.New(geom, obstacle.New(gridgeom.Cell{X: 30, Y: 0}))
//	_ = e.Start(&gridgeom.Cell{X: 0, Y: 0}, &gridgeom.Cell{X: 60, Y: 0})
//	for e.State() == flood.Running {
//		e.Step()
//	}
//	fmt.Println(flood.Reverse(e.Path()))
//
// Coordinates are board units with the origin at the bottom-left; cells are
// identified by their lower-left corner, always a multiple of the cell size.
package gridflood
