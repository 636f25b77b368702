// Package flood implements an incremental, unweighted frontier search over a
// uniform grid: a flood fill that can be advanced one expansion at a time and
// inspected between steps.
//
// What
//
//   - Engine owns the search state: origin, target, the frontier of
//     discovered-but-unexpanded nodes, the visited list, the discovered set
//     and, once the target is reached, the reconstructed path.
//   - Step expands exactly one frontier node. It never blocks, so a render
//     loop can call it once per frame and draw the sets in between.
//   - Run drives Step to a terminal state for headless callers.
//   - Reconstruct walks parent links from a terminal node back to the root.
//
// States
//
//	Idle ──Start──▶ Running ──Step──▶ Found
//	                   │        └──▶ Unreachable
//	                   └──Stop──▶ Idle
//
//	Found and Unreachable are terminal until the next Start, which clears
//	every set. Start while Running discards the run in progress.
//
// Expansion order
//
//	Neighbors are examined right, top, left, bottom. The node expanded next
//	is chosen by Order:
//	  - Breadth (default): the oldest frontier node. Spread is level by level
//	    and the first path found is a shortest one.
//	  - Depth: the newest frontier node. Spread snakes along one branch; the
//	    path is valid but not necessarily shortest.
//	Every cell is registered as discovered at most once per run, so the
//	parent links form a tree rooted at the origin and the engine terminates
//	after at most one expansion per reachable cell.
//
// Target check
//
//	The check that the expanded node is the target runs inside the
//	neighbor loop, before filtering. The transition to Found happens on the
//	first neighbor; discovery of the target's own neighbors still completes
//	in that step.
//
// Complexity (C = reachable cells)
//
//   - Step: O(1) amortized; Found additionally costs O(depth) to rebuild the path.
//   - Full run: O(C) time, O(C) memory for the node arena and sets.
//
// Errors
//
//   - ErrNilGeometry      New without a geometry.
//   - ErrOptionViolation  invalid Option (negative step limit, unknown order).
//   - ErrInvalidStart     Start without an origin.
//   - ErrNoTarget         Start without a target; the engine state is untouched.
//   - ErrUnreachable      the frontier emptied before the target was expanded.
//   - ErrNotRunning       Run called on an engine that is not Running.
//   - ErrStepLimit        Run stopped by WithMaxSteps.
package flood
