// SPDX-License-Identifier: MIT

// Package bfs provides breadth-first search over a starmap.Map, returning
// unweighted shortest-path distances and parent links (waypoints).
//
// What
//
//   - Explore systems in non-decreasing jump count from a start system.
//   - A system is finalized when it is dequeued; the first finalization is
//     its true shortest distance because every gate costs one jump.
//   - WithGoal stops the search as soon as the goal is finalized; without it
//     every reachable system is finalized.
//   - Result exposes the finalized Waypoints, the visit order and PathTo,
//     which walks parent links back to the start and reverses them.
//   - WithReverse follows gates backwards, so distances are measured *to*
//     the start system. The all-pairs table is built this way.
//   - WithOnDiscover reports every gate relaxation onto a system that is not
//     finalized yet, ties included. WithMaxDepth bounds the frontier.
//
// Determinism
//
//	Successors are scanned in gate order, so the visit order and every parent
//	link are reproducible for an unmodified Map.
//
// Complexity (V = systems, E = gates)
//
//   - Time:   O(V + E)
//   - Memory: O(V) (queue, depth and parent arrays)
//
// Usage
//
//	res, err := bfs.Search(m, start, bfs.WithGoal(goal))
//	if err != nil {
//		// ErrMapNil, ErrStartNotFound, ErrGoalNotFound, ErrOptionViolation,
//		// context errors, or a wrapped OnVisit error
//	}
//	route, ok := res.PathTo(goal) // ok == false: unreachable
//
// Errors
//
//   - ErrMapNil           if the map pointer is nil.
//   - ErrStartNotFound    if the start system does not exist.
//   - ErrGoalNotFound     if WithGoal names a missing system.
//   - ErrOptionViolation  for invalid options (e.g. negative MaxDepth).
//   - ctx.Err()           when the WithContext context is done.
package bfs
