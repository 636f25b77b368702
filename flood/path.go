package flood

import "github.com/katalvlaran/gridflood/gridgeom"

// Reconstruct walks Parent links from nodes[terminal] back to the root and
// returns the visited cells in target → origin order.
// The walk is bounded by len(nodes), so a malformed arena containing a
// cycle yields a truncated path instead of looping. An out-of-range
// terminal yields nil.
func Reconstruct(nodes []Node, terminal int) []gridgeom.Cell {
	if terminal < 0 || terminal >= len(nodes) {
		return nil
	}
	path := make([]gridgeom.Cell, 0, 8)
	for at := terminal; at != NoParent && len(path) < len(nodes); at = nodes[at].Parent {
		if at < 0 || at >= len(nodes) {
			break
		}
		path = append(path, nodes[at].Cell)
	}
	return path
}

// Reverse returns a copy of path in the opposite order, turning a
// target → origin route into origin → target.
func Reverse(path []gridgeom.Cell) []gridgeom.Cell {
	out := make([]gridgeom.Cell, len(path))
	for i, c := range path {
		out[len(path)-1-i] = c
	}
	return out
}
