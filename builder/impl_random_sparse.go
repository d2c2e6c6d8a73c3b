// SPDX-License-Identifier: MIT
// Package: planb/builder
//
// impl_random_sparse.go — RandomSparse(n, p) constructor.
//
// Contract:
//   - n ≥ 1 (else ErrTooFewSystems); p ∈ [0,1] (else ErrInvalidProbability).
//   - RNG required for 0 < p < 1 (else ErrNeedRandSource).
//   - Ordered pairs (i,j), i ≠ j, are sampled row-major; each accepted pair
//     becomes a gate (two-way unless cfg.oneWay).

package builder

import "fmt"

const (
	methodRandomSparse      = "RandomSparse"
	minRandomSparseVertices = 1
)

// RandomSparse returns a Constructor sampling gates independently with
// probability p.
func RandomSparse(n int, p float64) Constructor {
	return func(u *Universe, cfg builderConfig) error {
		if n < minRandomSparseVertices {
			return fmt.Errorf("%s: n=%d < min=%d: %w",
				methodRandomSparse, n, minRandomSparseVertices, ErrTooFewSystems)
		}
		if p < 0 || p > 1 {
			return fmt.Errorf("%s: p=%.6f not in [0,1]: %w", methodRandomSparse, p, ErrInvalidProbability)
		}
		if cfg.rng == nil && p > 0 && p < 1 {
			return fmt.Errorf("%s: rng is required: %w", methodRandomSparse, ErrNeedRandSource)
		}

		for i := 0; i < n; i++ {
			u.System(cfg.idFn(i))
		}
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				switch {
				case p == 0:
					continue
				case p == 1:
				case cfg.rng.Float64() > p:
					continue
				}
				u.Gate(cfg.idFn(i), cfg.idFn(j), cfg.oneWay)
			}
		}

		return nil
	}
}
