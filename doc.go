// SPDX-License-Identifier: MIT

// Package planb plans routes through a universe of solar systems joined by
// one-way stargates.
//
// Every gate costs one jump, so shortest routes come from breadth-first
// search. The packages build on each other, leaves first:
//
//	starmap/    immutable system graph with dense indices
//	bfs/        single-source search and path reconstruction
//	apsp/       all-pairs next-hop table, tied routes, diameter
//	altroute/   dissimilar alternatives to the shortest route
//	planner/    concurrent query facade with a lazily built table
//	mapdata/    universe dump decoding and the ESI downloader
//	builder/    synthetic universes for tests and benchmarks
//
// The planb command (cmd/planb) exposes all of it on the command line and
// over HTTP.
package planb
