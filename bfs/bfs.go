// SPDX-License-Identifier: MIT

// Package bfs provides breadth-first search over a starmap.Map,
// returning unweighted shortest-path distances and parent links.
package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/planb/starmap"
)

// queueItem pairs a dense index with its BFS depth and its parent's index.
type queueItem struct {
	idx    int
	depth  int
	parent int // -1 for root
}

// walker encapsulates mutable BFS state.
type walker struct {
	m          *starmap.Map
	opts       Options
	ctx        context.Context
	queue      []queueItem
	head       int
	discovered []bool
	goal       int
	res        *Result
}

// Search runs breadth-first search on m from start, applying any number of
// functional Options.
// Returns ErrMapNil, ErrStartNotFound or ErrGoalNotFound for invalid input,
// ErrOptionViolation for bad options, ctx.Err() on cancellation, or a
// wrapped OnVisit error.
func Search(m *starmap.Map, start starmap.SystemID, opts ...Option) (*Result, error) {
	if m == nil {
		return nil, ErrMapNil
	}
	// Build options and catch any invalid ones immediately
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	s, ok := m.Index(start)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrStartNotFound, start)
	}
	goal := -1
	if o.HasGoal {
		if goal, ok = m.Index(o.Goal); !ok {
			return nil, fmt.Errorf("%w: %d", ErrGoalNotFound, o.Goal)
		}
	}

	n := m.Len()
	w := &walker{
		m:          m,
		opts:       o,
		ctx:        o.Ctx,
		queue:      make([]queueItem, 0, n),
		discovered: make([]bool, n),
		goal:       goal,
		res: &Result{
			m:      m,
			start:  s,
			order:  make([]int, 0, n),
			depth:  make([]int, n),
			parent: make([]int, n),
			rev:    o.Reverse,
		},
	}
	for i := range w.res.depth {
		w.res.depth[i] = -1
		w.res.parent[i] = -1
	}

	// Seed queue with start (no parent)
	w.enqueue(s, 0, -1)

	return w.res, w.loop()
}

// enqueue marks idx discovered and appends it to the queue.
func (w *walker) enqueue(idx, d, parent int) {
	w.discovered[idx] = true
	w.queue = append(w.queue, queueItem{idx: idx, depth: d, parent: parent})
}

// loop processes the queue until empty, goal, error, or cancellation.
func (w *walker) loop() error {
	for w.head < len(w.queue) {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.queue[w.head]
		w.head++
		if w.res.depth[item.idx] >= 0 {
			continue
		}
		if err := w.visit(item); err != nil {
			return err
		}
		if item.idx == w.goal {
			return nil
		}
		w.enqueueNeighbors(item)
	}

	return nil
}

// visit finalizes the item and calls OnVisit.
func (w *walker) visit(item queueItem) error {
	w.res.depth[item.idx] = item.depth
	w.res.parent[item.idx] = item.parent
	w.res.order = append(w.res.order, item.idx)
	if err := w.opts.OnVisit(w.m.At(item.idx).ID, item.depth); err != nil {
		return fmt.Errorf("bfs: OnVisit error at %d: %w", w.m.At(item.idx).ID, err)
	}

	return nil
}

// enqueueNeighbors relaxes every gate out of item (into item in reverse
// mode), reporting discoveries and enqueueing unseen systems.
func (w *walker) enqueueNeighbors(item queueItem) {
	var neighbors []int
	if w.opts.Reverse {
		neighbors = w.m.Predecessors(item.idx)
	} else {
		neighbors = w.m.Successors(item.idx)
	}

	nextDepth := item.depth + 1
	if w.opts.MaxDepth > 0 && nextDepth > w.opts.MaxDepth {
		return
	}
	for _, nbr := range neighbors {
		if w.res.depth[nbr] >= 0 {
			continue
		}
		if w.opts.OnDiscover != nil {
			w.opts.OnDiscover(Discovery{Current: nbr, Distance: nextDepth, Parent: item.idx})
		}
		if !w.discovered[nbr] {
			w.enqueue(nbr, nextDepth, item.idx)
		}
	}
}
