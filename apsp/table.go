// SPDX-License-Identifier: MIT

package apsp

import (
	"math/bits"
	"slices"

	"github.com/katalvlaran/planb/starmap"
)

// maskSlots is the number of gate slots held in a cell's bitmask.
const maskSlots = 16

// Table is the immutable all-pairs table of one Map. Safe for concurrent
// reads once Build returns.
type Table struct {
	m *starmap.Map
	n int

	// dist[i*n+j] is the distance i → j, -1 if unreachable.
	dist []int32

	// mask[i*n+j] has bit k set when Successors(i)[k] is a tied next hop.
	mask []uint16

	// wide[j][i] lists tied slots ≥ maskSlots for cell (i, j).
	// Only column j's pass writes wide[j].
	wide []map[int][]int
}

func newTable(m *starmap.Map) *Table {
	n := m.Len()
	t := &Table{
		m:    m,
		n:    n,
		dist: make([]int32, n*n),
		mask: make([]uint16, n*n),
		wide: make([]map[int][]int, n),
	}
	for c := range t.dist {
		t.dist[c] = -1
	}

	return t
}

// Map returns the map the table was built from.
func (t *Table) Map() *starmap.Map { return t.m }

// Len reports the number of systems per row.
func (t *Table) Len() int { return t.n }

// merge folds one relaxation (i reaches j in d jumps via successor p) into
// cell (i, j).
func (t *Table) merge(i, j, d, p int) {
	c := i*t.n + j
	cur := t.dist[c]
	switch {
	case cur < 0 || int(cur) > d:
		t.dist[c] = int32(d)
		t.mask[c] = 0
		if t.wide[j] != nil {
			delete(t.wide[j], i)
		}
	case int(cur) < d:
		return
	}

	slot := t.m.Slot(i, p)
	if slot < 0 {
		panic("apsp: invariant violated: discovery without gate")
	}
	if slot < maskSlots {
		t.mask[c] |= 1 << slot
		return
	}
	if t.wide[j] == nil {
		t.wide[j] = make(map[int][]int)
	}
	for _, s := range t.wide[j][i] {
		if s == slot {
			return
		}
	}
	t.wide[j][i] = append(t.wide[j][i], slot)
}

// next returns the dense indices of every tied successor of i towards j,
// in ascending slot order.
func (t *Table) next(i, j int) []int {
	c := i*t.n + j
	succ := t.m.Successors(i)
	out := make([]int, 0, bits.OnesCount16(t.mask[c]))
	for mk := t.mask[c]; mk != 0; mk &= mk - 1 {
		out = append(out, succ[bits.TrailingZeros16(mk)])
	}
	if w := t.wide[j]; w != nil {
		slots := append([]int(nil), w[i]...)
		slices.Sort(slots)
		for _, s := range slots {
			out = append(out, succ[s])
		}
	}

	return out
}

// first returns the lowest-slot tied successor of i towards j, or -1.
func (t *Table) first(i, j int) int {
	c := i*t.n + j
	if mk := t.mask[c]; mk != 0 {
		return t.m.Successors(i)[bits.TrailingZeros16(mk)]
	}
	if w := t.wide[j]; w != nil && len(w[i]) > 0 {
		return t.m.Successors(i)[slices.Min(w[i])]
	}

	return -1
}

// DistanceAt is Distance over dense indices; -1 when unreachable.
func (t *Table) DistanceAt(i, j int) int { return int(t.dist[i*t.n+j]) }

// RouteAt is Route over dense indices; nil when unreachable.
func (t *Table) RouteAt(i, j int) []int {
	d := t.DistanceAt(i, j)
	if d < 0 {
		return nil
	}
	route := make([]int, 0, d+1)
	route = append(route, i)
	for cur := i; cur != j; {
		cur = t.first(cur, j)
		if cur < 0 {
			panic("apsp: invariant violated: reachable cell without successor")
		}
		route = append(route, cur)
	}
	if len(route)-1 != d {
		panic("apsp: invariant violated: route length disagrees with distance")
	}

	return route
}

// Hop returns the cell (from, to). ok is false for unknown systems and
// unreachable pairs.
func (t *Table) Hop(from, to starmap.SystemID) (Hop, bool) {
	i, j, ok := t.cell(from, to)
	if !ok || t.DistanceAt(i, j) < 0 {
		return Hop{}, false
	}
	nx := t.next(i, j)
	h := Hop{Distance: t.DistanceAt(i, j), Next: make([]starmap.SystemID, len(nx))}
	for k, x := range nx {
		h.Next[k] = t.m.At(x).ID
	}

	return h, true
}

// Distance returns the jump count from → to.
func (t *Table) Distance(from, to starmap.SystemID) (int, bool) {
	i, j, ok := t.cell(from, to)
	if !ok || t.DistanceAt(i, j) < 0 {
		return 0, false
	}

	return t.DistanceAt(i, j), true
}

// Route returns one shortest route, always taking the lowest tied gate.
func (t *Table) Route(from, to starmap.SystemID) ([]starmap.SystemID, bool) {
	i, j, ok := t.cell(from, to)
	if !ok {
		return nil, false
	}
	r := t.RouteAt(i, j)
	if r == nil {
		return nil, false
	}

	return t.ids(r), true
}

func (t *Table) cell(from, to starmap.SystemID) (int, int, bool) {
	i, ok := t.m.Index(from)
	if !ok {
		return 0, 0, false
	}
	j, ok := t.m.Index(to)

	return i, j, ok
}

func (t *Table) ids(route []int) []starmap.SystemID {
	out := make([]starmap.SystemID, len(route))
	for k, x := range route {
		out[k] = t.m.At(x).ID
	}

	return out
}
