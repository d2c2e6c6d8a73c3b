// SPDX-License-Identifier: MIT

package starmap

import (
	"fmt"
	"iter"
)

// Map is the immutable universe graph. Build it with New.
type Map struct {
	systems []System
	byID    map[SystemID]int
	byName  map[string]int

	// succ[i] and pred[i] hold dense indices of gate heads and tails.
	succ [][]int
	pred [][]int

	gates    int
	excluded []SystemID
}

// New validates specs and builds a Map.
//
// Validation order: empty names, duplicate IDs, then unknown destinations.
// The first violation is returned and no Map is produced.
//
// Complexity: O(V + E) time and space.
func New(specs []SystemSpec, opts ...Option) (*Map, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	// Pass 1: every input id, including those that will be dropped.
	known := make(map[SystemID]bool, len(specs))
	for _, s := range specs {
		if s.Name == "" {
			return nil, fmt.Errorf("%w: id %d", ErrEmptyName, s.ID)
		}
		if known[s.ID] {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, s.ID)
		}
		known[s.ID] = true
	}

	m := &Map{
		systems: make([]System, 0, len(specs)),
		byID:    make(map[SystemID]int, len(specs)),
		byName:  make(map[string]int, len(specs)),
	}

	// Pass 2: assign dense indices to retained systems.
	for _, s := range specs {
		if s.Stargates == nil && !o.keepGateless {
			m.excluded = append(m.excluded, s.ID)
			continue
		}
		idx := len(m.systems)
		m.systems = append(m.systems, System{ID: s.ID, Name: s.Name, Index: idx})
		m.byID[s.ID] = idx
		m.byName[s.Name] = idx // last insert wins
	}

	// Pass 3: resolve gates.
	m.succ = make([][]int, len(m.systems))
	m.pred = make([][]int, len(m.systems))
	for _, s := range specs {
		from, ok := m.byID[s.ID]
		if !ok {
			continue
		}
		sys := &m.systems[from]
		sys.Stargates = make([]SystemID, 0, len(s.Stargates))
		seen := make(map[int]bool, len(s.Stargates))
		for _, dest := range s.Stargates {
			if !known[dest] {
				return nil, fmt.Errorf("%w: %d → %d", ErrUnknownDestination, s.ID, dest)
			}
			to, ok := m.byID[dest]
			if !ok {
				// destination was dropped for missing gate data
				continue
			}
			sys.Stargates = append(sys.Stargates, dest)
			if seen[to] {
				continue
			}
			seen[to] = true
			m.succ[from] = append(m.succ[from], to)
			m.pred[to] = append(m.pred[to], from)
			m.gates++
		}
	}

	return m, nil
}

// ByName returns the system with the given name.
func (m *Map) ByName(name string) (*System, bool) {
	i, ok := m.byName[name]
	if !ok {
		return nil, false
	}

	return &m.systems[i], true
}

// ByID returns the system with the given id or ErrSystemNotFound.
func (m *Map) ByID(id SystemID) (*System, error) {
	i, ok := m.byID[id]
	if !ok {
		return nil, notFound(id)
	}

	return &m.systems[i], nil
}

// Systems yields every system in construction order. The sequence can be
// ranged over any number of times.
func (m *Map) Systems() iter.Seq[*System] {
	return func(yield func(*System) bool) {
		for i := range m.systems {
			if !yield(&m.systems[i]) {
				return
			}
		}
	}
}

// Len reports the number of systems.
func (m *Map) Len() int { return len(m.systems) }

// Gates reports the number of distinct directed gates between systems.
func (m *Map) Gates() int { return m.gates }

// Excluded lists input systems dropped for missing gate data.
func (m *Map) Excluded() []SystemID {
	out := make([]SystemID, len(m.excluded))
	copy(out, m.excluded)

	return out
}

// Index returns the dense index of id.
func (m *Map) Index(id SystemID) (int, bool) {
	i, ok := m.byID[id]

	return i, ok
}

// At returns the system at dense index i. It panics if i is out of range.
func (m *Map) At(i int) *System { return &m.systems[i] }

// Successors returns dense indices reachable from i through one gate, in
// gate order without duplicates. The slice must not be modified.
func (m *Map) Successors(i int) []int { return m.succ[i] }

// Predecessors returns dense indices with a gate into i.
// The slice must not be modified.
func (m *Map) Predecessors(i int) []int { return m.pred[i] }

// Slot returns the position of to within Successors(from), or -1.
func (m *Map) Slot(from, to int) int {
	for k, s := range m.succ[from] {
		if s == to {
			return k
		}
	}

	return -1
}
