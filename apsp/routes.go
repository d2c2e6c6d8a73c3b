// SPDX-License-Identifier: MIT

package apsp

import "github.com/katalvlaran/planb/starmap"

// Routes returns every shortest route start → goal, depth-first by ascending
// gate slot. ok is false when goal is unreachable or either system is unknown.
//
// The number of routes is the product of tie branchings along the way and
// can grow exponentially.
func (t *Table) Routes(start, goal starmap.SystemID) ([][]starmap.SystemID, bool) {
	s, g, ok := t.cell(start, goal)
	if !ok {
		return nil, false
	}
	d := t.DistanceAt(s, g)
	if d < 0 {
		return nil, false
	}

	dense := t.expand(s, g)
	out := make([][]starmap.SystemID, len(dense))
	for k, r := range dense {
		if len(r)-1 != d {
			panic("apsp: invariant violated: route length disagrees with distance")
		}
		out[k] = t.ids(r)
	}

	return out, true
}

// expand follows single successors from s and branches on ties.
func (t *Table) expand(s, g int) [][]int {
	prefix := []int{s}
	for cur := s; cur != g; {
		nx := t.next(cur, g)
		want := t.DistanceAt(cur, g) - 1
		for _, x := range nx {
			if t.DistanceAt(x, g) != want {
				panic("apsp: invariant violated: successor off the shortest route")
			}
		}
		switch len(nx) {
		case 0:
			panic("apsp: invariant violated: reachable cell without successor")
		case 1:
			prefix = append(prefix, nx[0])
			cur = nx[0]
		default:
			var out [][]int
			for _, x := range nx {
				for _, rest := range t.expand(x, g) {
					r := make([]int, 0, len(prefix)+len(rest))
					r = append(r, prefix...)
					out = append(out, append(r, rest...))
				}
			}
			return out
		}
	}

	return [][]int{prefix}
}
