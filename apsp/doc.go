// SPDX-License-Identifier: MIT

// Package apsp builds and queries the all-pairs shortest-route table of a
// starmap.Map: for every ordered pair (from, to) the jump distance and the
// set of *all* gates out of from that lie on some shortest route to to.
//
// Build
//
//	One reverse breadth-first search per destination column j (V passes,
//	O(V·(V+E)) total, preferred over O(V³) relaxation on sparse maps). Every
//	relaxation (i, d, p) reported by the search updates cell (i, j):
//
//	  - empty, or strictly larger distance → {d, {p}}
//	  - equal distance                     → add p to the tied set
//
//	so Next always lists every tied successor, never an arbitrary winner.
//	Passes run on WithWorkers goroutines (errgroup), each writing only its
//	own column; the context is checked between passes and inside each pass.
//
// Queries
//
//   - Hop / Distance / Route: O(1) / O(1) / O(distance).
//   - Routes: every tied-shortest route; exponential in tie branches by nature.
//   - Diameter: one scan over all ordered pairs i ≠ j; unreachable pairs are
//     skipped, not counted as infinite.
//
// Storage
//
//	Distances live in a flat row-major []int32 (-1 = unreachable); tied
//	successors are a bitmask over the row system's gate slots, with an
//	overflow list for systems with more than 16 gates. Space is O(V²): about
//	6 bytes per ordered pair.
//
// Invariant violations (a reachable cell with no successor, a reconstructed
// route whose length disagrees with the table) are programming errors and
// panic.
package apsp
