// SPDX-License-Identifier: MIT
// Package: planb/builder
//
// errors.go — sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Constructors attach method context with %w.

package builder

import "errors"

// ErrTooFewSystems indicates a size parameter below the constructor minimum.
var ErrTooFewSystems = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates a probability outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates a stochastic constructor ran without WithSeed/WithRand.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates a nil constructor or a failing starmap.New.
var ErrConstructFailed = errors.New("builder: construction failed")
