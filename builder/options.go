// SPDX-License-Identifier: MIT
// Package: planb/builder
//
// options.go — functional options for the builder package.
//
// Contract:
//   • Option constructors panic on meaningless input (nil functions).
//   • Determinism is explicit: seeding is done via WithSeed or WithRand.

package builder

import "math/rand"

// BuilderOption customizes constructor behavior.
type BuilderOption func(*builderConfig)

// WithIDScheme sets the system name generator: idx -> name.
func WithIDScheme(fn func(int) string) BuilderOption {
	if fn == nil {
		panic("builder: WithIDScheme(nil)")
	}
	return func(c *builderConfig) { c.idFn = fn }
}

// WithSymbolIDs names systems "A", "B", … (at most 26 per constructor).
func WithSymbolIDs() BuilderOption { return WithIDScheme(SymbolIDFn) }

// WithSymbNumb names systems prefix+index.
func WithSymbNumb(prefix string) BuilderOption { return WithIDScheme(SymbolNumberIDFn(prefix)) }

// WithRand provides an explicit RNG for stochastic constructors.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) { c.rng = r }
}

// WithSeed creates a seeded RNG, locking stochastic outcomes.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithOneWay emits every gate in the constructor's direction only.
func WithOneWay() BuilderOption {
	return func(c *builderConfig) { c.oneWay = true }
}

// WithFirstID sets the SystemID given to the first new system; later systems
// get consecutive ids.
func WithFirstID(id int64) BuilderOption {
	return func(c *builderConfig) { c.firstID = id }
}
