// SPDX-License-Identifier: MIT

// Package starmap provides the immutable universe graph used by every routing
// query: solar systems (vertices) joined by one-way stargates (directed,
// unit-cost edges).
//
// What
//
//   - Systems are stored in a flat arena ([]System) and addressed by a dense
//     index 0..N-1; stargates are kept as dense successor and predecessor
//     lists. No pointer graph is ever built, so gate cycles need no special care.
//   - Two lookup indices: SystemID → index and name → index.
//   - Construction order is preserved; Systems() iterates in that order.
//
// Construction policy
//
//   - Duplicate SystemID values are rejected (ErrDuplicateID).
//   - A gate whose destination is absent from the input is rejected
//     (ErrUnknownDestination).
//   - Duplicate names alias to the last-inserted system.
//   - A SystemSpec with nil Stargates carries no gate data and is dropped,
//     together with every gate that points at it. An empty, non-nil slice is
//     a real system with no outgoing gates. WithGatelessSystems keeps the
//     former as isolated systems instead.
//
// Concurrency
//
//	A *Map is never mutated after New returns. Any number of goroutines may
//	read it concurrently without locks.
//
// Complexity (V = systems, E = gates)
//
//   - New:          O(V + E) time and space.
//   - ByID, ByName: O(1).
//   - Successors:   O(1), returns the stored slice (do not modify).
package starmap
