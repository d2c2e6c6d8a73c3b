// SPDX-License-Identifier: MIT

// Package builder produces deterministic synthetic universes for tests,
// examples and benchmarks. Each Constructor appends systems and stargates to
// a shared accumulator; Build returns the starmap.SystemSpec slice and Map
// goes one step further and calls starmap.New.
//
// The package offers:
//
//   - Topologies: Path (chains), Cycle, Star, Wheel, Complete, Grid,
//     RandomSparse, Isolated (a system with an empty gate list) and Gateless
//     (a system with no gate data, dropped by starmap.New by default).
//   - Name schemes (IDFn): DefaultIDFn ("0","1",…), SymbolIDFn ("A"…"Z"),
//     SymbolNumberIDFn(prefix) ("L1","L2",…).
//   - Options: WithIDScheme, WithSeed, WithRand, WithOneWay, WithFirstID.
//
// Guarantees:
//
//   - Systems are keyed by name: constructors that emit the same name share
//     one system, so topologies compose (two Paths meeting at "D" form a fork).
//   - Gates are two-way unless WithOneWay is set.
//   - Same options, seed and constructor order ⇒ identical output.
//   - Constructors never panic; they return the sentinels from errors.go.
//     Option constructors panic on nil arguments.
package builder
