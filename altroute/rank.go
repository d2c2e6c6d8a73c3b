// SPDX-License-Identifier: MIT

package altroute

import (
	"fmt"
	"math"

	"github.com/katalvlaran/planb/apsp"
	"github.com/katalvlaran/planb/bfs"
	"github.com/katalvlaran/planb/starmap"
)

// candidate is an admissible single-via route in dense indices.
type candidate struct {
	via   int
	route []int
	edges map[int]struct{}
}

// ranker holds the state of one Rank call.
type ranker struct {
	m    *starmap.Map
	t    *apsp.Table
	o    Options
	n    int
	s, g int
	d    int
}

// Rank returns up to o.MaxRoutes routes from start to goal, the shortest
// route first. ok is false only when goal is unreachable.
//
// Errors: ErrInvalidConfig, ErrNilTable, or a wrapped
// starmap.ErrSystemNotFound for unknown systems.
//
// Complexity: O(V·L²) candidate checks for routes of L jumps, plus
// O(k·C·L) selection for k routes over C candidates.
func Rank(m *starmap.Map, t *apsp.Table, start, goal starmap.SystemID, o Options) ([][]starmap.SystemID, bool, error) {
	if err := o.Validate(); err != nil {
		return nil, false, err
	}
	if t == nil || m == nil || t.Map() != m {
		return nil, false, ErrNilTable
	}
	if _, err := m.ByID(start); err != nil {
		return nil, false, fmt.Errorf("altroute: start: %w", err)
	}
	if _, err := m.ByID(goal); err != nil {
		return nil, false, fmt.Errorf("altroute: goal: %w", err)
	}
	if start == goal {
		return [][]starmap.SystemID{{start}}, true, nil
	}

	res, err := bfs.Search(m, start, bfs.WithGoal(goal))
	if err != nil {
		return nil, false, fmt.Errorf("altroute: baseline: %w", err)
	}
	baseline, ok := res.PathTo(goal)
	if !ok {
		return nil, false, nil
	}

	r := &ranker{m: m, t: t, o: o, n: m.Len(), d: len(baseline) - 1}
	r.s, _ = m.Index(start)
	r.g, _ = m.Index(goal)
	base := make([]int, len(baseline))
	for i, id := range baseline {
		base[i], _ = m.Index(id)
	}

	picked := r.pick(base, r.candidates(base))
	out := make([][]starmap.SystemID, 0, len(picked)+1)
	out = append(out, baseline)
	for _, c := range picked {
		out = append(out, r.ids(c.route))
	}

	return out, true, nil
}

// candidates enumerates admissible single-via routes in ascending via order.
func (r *ranker) candidates(base []int) []candidate {
	baseEdges := r.edgeSet(base)
	seen := map[string]bool{key(base): true}
	window := int(math.Ceil(r.o.LocalOpt * float64(r.d)))

	var out []candidate
	for v := 0; v < r.n; v++ {
		if v == r.s || v == r.g || r.t.DistanceAt(r.s, v) < 0 || r.t.DistanceAt(v, r.g) < 0 {
			continue
		}
		head := r.t.RouteAt(r.s, v)
		tail := r.t.RouteAt(v, r.g)
		route := make([]int, 0, len(head)+len(tail)-1)
		route = append(route, head...)
		route = append(route, tail[1:]...)

		k := key(route)
		if seen[k] || !simple(route) {
			continue
		}
		seen[k] = true

		edges := r.edgeSet(route)
		if float64(shared(edges, baseEdges)) > r.o.Sharing*float64(r.d) {
			continue
		}
		if !r.locallyOptimal(route, window) || !r.boundedStretch(route, len(head)-1) {
			continue
		}
		out = append(out, candidate{via: v, route: route, edges: edges})
	}

	return out
}

// pick greedily selects up to MaxRoutes-1 candidates.
func (r *ranker) pick(base []int, cands []candidate) []candidate {
	chosen := []map[int]struct{}{r.edgeSet(base)}
	chosenLen := []int{r.d}
	var out []candidate

	alive := cands
	for len(out) < r.o.MaxRoutes-1 && len(alive) > 0 {
		best, bestScore := -1, math.Inf(1)
		next := alive[:0]
		for _, c := range alive {
			overlap := 0.0
			for k, e := range chosen {
				overlap = max(overlap, float64(shared(c.edges, e))/float64(chosenLen[k]))
			}
			if overlap > r.o.Sharing {
				continue
			}
			next = append(next, c)
			stretch := float64(len(c.route)-1-r.d) / float64(r.d)
			if score := 2*stretch + overlap; score < bestScore {
				best, bestScore = len(next)-1, score
			}
		}
		alive = next
		if best < 0 {
			break
		}
		c := alive[best]
		out = append(out, c)
		chosen = append(chosen, c.edges)
		chosenLen = append(chosenLen, len(c.route)-1)
		alive = append(alive[:best], alive[best+1:]...)
	}

	return out
}

// locallyOptimal reports whether every window of w jumps is a shortest route.
func (r *ranker) locallyOptimal(route []int, w int) bool {
	if w <= 1 {
		return true
	}
	for i := 0; i+w < len(route); i++ {
		if r.t.DistanceAt(route[i], route[i+w]) != w {
			return false
		}
	}

	return true
}

// boundedStretch checks every sub-route strictly spanning position at.
func (r *ranker) boundedStretch(route []int, at int) bool {
	limit := 1 + r.o.UBStretch
	for i := 0; i < at; i++ {
		for k := at + 1; k < len(route); k++ {
			d := r.t.DistanceAt(route[i], route[k])
			if float64(k-i) > limit*float64(d) {
				return false
			}
		}
	}

	return true
}

func (r *ranker) edgeSet(route []int) map[int]struct{} {
	out := make(map[int]struct{}, len(route))
	for i := 1; i < len(route); i++ {
		out[route[i-1]*r.n+route[i]] = struct{}{}
	}

	return out
}

func (r *ranker) ids(route []int) []starmap.SystemID {
	out := make([]starmap.SystemID, len(route))
	for i, x := range route {
		out[i] = r.m.At(x).ID
	}

	return out
}

func shared(a, b map[int]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for e := range a {
		if _, ok := b[e]; ok {
			n++
		}
	}

	return n
}

func simple(route []int) bool {
	seen := make(map[int]bool, len(route))
	for _, x := range route {
		if seen[x] {
			return false
		}
		seen[x] = true
	}

	return true
}

func key(route []int) string {
	return fmt.Sprint(route)
}
