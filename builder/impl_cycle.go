// SPDX-License-Identifier: MIT
// Package: planb/builder
//
// impl_cycle.go — Cycle(n) constructor.
//
// Contract:
//   - n ≥ 3 (else ErrTooFewSystems).
//   - Gates i→(i+1) mod n in ascending i; reverse gates unless cfg.oneWay.

package builder

import "fmt"

const (
	methodCycle   = "Cycle"
	minCycleNodes = 3
)

// Cycle returns a Constructor that builds an n-system ring.
func Cycle(n int) Constructor {
	return func(u *Universe, cfg builderConfig) error {
		if n < minCycleNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodCycle, n, minCycleNodes, ErrTooFewSystems)
		}
		for i := 0; i < n; i++ {
			u.System(cfg.idFn(i))
		}
		for i := 0; i < n; i++ {
			u.Gate(cfg.idFn(i), cfg.idFn((i+1)%n), cfg.oneWay)
		}

		return nil
	}
}
