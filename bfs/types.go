// SPDX-License-Identifier: MIT

// Package bfs provides tunable options, error definitions and result types
// for breadth-first search over a starmap.Map.
package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/planb/starmap"
)

// Sentinel errors for BFS execution.
var (
	// ErrStartNotFound is returned when the start ID is absent.
	ErrStartNotFound = errors.New("bfs: start system not found")

	// ErrGoalNotFound is returned when the goal ID is absent.
	ErrGoalNotFound = errors.New("bfs: goal system not found")

	// ErrMapNil is returned if a nil map pointer is passed.
	ErrMapNil = errors.New("bfs: map is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")
)

// Waypoint is one finalized search record.
type Waypoint struct {
	// Distance is the number of jumps from the start (or to it, in reverse mode).
	Distance int

	// Current is the system this record describes.
	Current starmap.SystemID

	// Parent is the previous system on the route; valid only when HasParent.
	// In reverse mode it is the next system toward the start.
	Parent starmap.SystemID

	// HasParent is false only for the start system.
	HasParent bool
}

// Discovery describes one gate relaxation in dense-index form.
type Discovery struct {
	Current  int // system reached
	Distance int // its tentative distance
	Parent   int // system it was reached from
}

// Option configures Search via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds parameters and callbacks for one Search.
type Options struct {
	// Ctx allows cancellation; checked once per dequeue.
	Ctx context.Context

	// Goal, if HasGoal, stops the search once it is finalized.
	Goal    starmap.SystemID
	HasGoal bool

	// Reverse follows gates backwards.
	Reverse bool

	// MaxDepth, if > 0, stops exploring beyond this depth.
	MaxDepth int

	// OnDiscover, if set, sees every relaxation onto an unfinalized system.
	OnDiscover func(d Discovery)

	// OnVisit is called on finalization; an error aborts the search.
	OnVisit func(id starmap.SystemID, depth int) error

	err error
}

// DefaultOptions returns background context, no goal, forward gates,
// no depth limit and no hooks.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		OnVisit: func(starmap.SystemID, int) error { return nil },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithGoal stops the search as soon as goal is finalized.
func WithGoal(goal starmap.SystemID) Option {
	return func(o *Options) {
		o.Goal = goal
		o.HasGoal = true
	}
}

// WithReverse follows gates from head to tail.
func WithReverse() Option {
	return func(o *Options) { o.Reverse = true }
}

// WithMaxDepth stops the search at the given depth (inclusive).
//
//	d > 0: limit to depth d
//	d == 0: explicit no depth limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithOnDiscover registers a relaxation hook.
func WithOnDiscover(fn func(d Discovery)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnDiscover = fn
		}
	}
}

// WithOnVisit registers a finalization hook; returning an error stops the search.
func WithOnVisit(fn func(id starmap.SystemID, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// Result holds the outcome of a Search in dense form.
type Result struct {
	m      *starmap.Map
	start  int
	order  []int
	depth  []int // -1: not finalized
	parent []int // -1: none
	rev    bool
}

// Start returns the start system ID.
func (r *Result) Start() starmap.SystemID { return r.m.At(r.start).ID }

// Order returns finalized systems in visit sequence.
func (r *Result) Order() []starmap.SystemID {
	out := make([]starmap.SystemID, len(r.order))
	for k, i := range r.order {
		out[k] = r.m.At(i).ID
	}

	return out
}

// Distance returns the jump count for id if it was finalized.
func (r *Result) Distance(id starmap.SystemID) (int, bool) {
	i, ok := r.m.Index(id)
	if !ok || r.depth[i] < 0 {
		return 0, false
	}

	return r.depth[i], true
}

// Waypoint returns the finalized record for id.
func (r *Result) Waypoint(id starmap.SystemID) (Waypoint, bool) {
	i, ok := r.m.Index(id)
	if !ok || r.depth[i] < 0 {
		return Waypoint{}, false
	}

	return r.waypoint(i), true
}

// Waypoints returns every finalized record keyed by system.
func (r *Result) Waypoints() map[starmap.SystemID]Waypoint {
	out := make(map[starmap.SystemID]Waypoint, len(r.order))
	for _, i := range r.order {
		out[r.m.At(i).ID] = r.waypoint(i)
	}

	return out
}

func (r *Result) waypoint(i int) Waypoint {
	w := Waypoint{Distance: r.depth[i], Current: r.m.At(i).ID}
	if p := r.parent[i]; p >= 0 {
		w.Parent = r.m.At(p).ID
		w.HasParent = true
	}

	return w
}

// PathTo reconstructs the route from the start to goal. It returns false if
// goal was not finalized. In reverse mode the route runs from goal to start.
func (r *Result) PathTo(goal starmap.SystemID) ([]starmap.SystemID, bool) {
	i, ok := r.m.Index(goal)
	if !ok || r.depth[i] < 0 {
		return nil, false
	}
	// build reversed path
	path := make([]starmap.SystemID, 0, r.depth[i]+1)
	for cur := i; cur >= 0; cur = r.parent[cur] {
		path = append(path, r.m.At(cur).ID)
	}
	if r.rev {
		return path, true
	}
	// reverse to get start → goal
	for a, b := 0, len(path)-1; a < b; a, b = a+1, b-1 {
		path[a], path[b] = path[b], path[a]
	}

	return path, true
}
