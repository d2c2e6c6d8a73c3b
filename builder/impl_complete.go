// SPDX-License-Identifier: MIT
// Package: planb/builder
//
// impl_complete.go — Complete(n) constructor.
//
// Contract:
//   - n ≥ 1 (else ErrTooFewSystems).
//   - A gate i→j for every ordered pair i ≠ j, row-major. cfg.oneWay has no
//     effect since both directions are always present.

package builder

import "fmt"

const (
	methodComplete   = "Complete"
	minCompleteNodes = 1
)

// Complete returns a Constructor that builds the complete universe Kₙ.
func Complete(n int) Constructor {
	return func(u *Universe, cfg builderConfig) error {
		if n < minCompleteNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodComplete, n, minCompleteNodes, ErrTooFewSystems)
		}
		for i := 0; i < n; i++ {
			u.System(cfg.idFn(i))
		}
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i != j {
					u.Gate(cfg.idFn(i), cfg.idFn(j), true)
				}
			}
		}

		return nil
	}
}
