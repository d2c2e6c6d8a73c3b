// SPDX-License-Identifier: MIT
// Package: planb/builder
//
// impl_wheel.go — Wheel(n) constructor.
//
// Canonical definition:
//   - Wₙ = Cₙ₋₁ + "Center": a ring of n-1 systems plus a hub.
//   - Therefore n ≥ 4 (the ring must be a valid Cycle).
//
// Contract:
//   - Builds the ring with Cycle(n-1) under the same cfg.
//   - Spokes Center→rim in ring order; rim→Center unless cfg.oneWay.

package builder

import "fmt"

const (
	methodWheel   = "Wheel"
	minWheelNodes = 4
)

// Wheel returns a Constructor that builds a wheel Wₙ.
func Wheel(n int) Constructor {
	return func(u *Universe, cfg builderConfig) error {
		if n < minWheelNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodWheel, n, minWheelNodes, ErrTooFewSystems)
		}
		if err := Cycle(n-1)(u, cfg); err != nil {
			return fmt.Errorf("%s: base cycle C_%d: %w", methodWheel, n-1, err)
		}
		u.System(CenterName)
		for i := 0; i < n-1; i++ {
			u.Gate(CenterName, cfg.idFn(i), cfg.oneWay)
		}

		return nil
	}
}
