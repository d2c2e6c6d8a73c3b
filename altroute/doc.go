// SPDX-License-Identifier: MIT

// Package altroute ranks meaningfully different alternatives to the shortest
// route between two systems, using single-via candidates in the manner of
// Abraham, Delling, Goldberg and Werneck ("Alternative routes in road
// networks").
//
// For a baseline of d jumps, every system v reachable from the start and
// able to reach the goal yields the candidate Route(start, v) ++ Route(v, goal).
// A candidate is admissible when
//
//   - it visits no system twice and differs from every earlier candidate;
//   - it shares at most Sharing·d gates with the baseline;
//   - every window of ceil(LocalOpt·d) jumps is itself a shortest route;
//   - every sub-route through v is at most (1+UBStretch) times the shortest
//     distance between its endpoints.
//
// Admissible candidates are then picked greedily, cheapest first, where the
// cost of a candidate is twice its stretch over the baseline plus its largest
// gate overlap with any route already picked. Candidates overlapping a picked
// route by more than Sharing are dropped. Equal scores go to the lower via
// index, so the output is fully deterministic.
package altroute
