// SPDX-License-Identifier: MIT
// Package: planb/builder
//
// impl_star.go — Star(n) constructor.
//
// Contract:
//   - n ≥ 2 (else ErrTooFewSystems).
//   - Hub system has the fixed name "Center"; leaves are cfg.idFn(1..n-1).
//   - Spokes Center→leaf in ascending leaf index; leaf→Center unless cfg.oneWay.

package builder

import "fmt"

const (
	methodStar   = "Star"
	minStarNodes = 2

	// CenterName is the hub system name used by Star.
	CenterName = "Center"
)

// Star returns a Constructor that builds a hub with n-1 leaves.
func Star(n int) Constructor {
	return func(u *Universe, cfg builderConfig) error {
		if n < minStarNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodStar, n, minStarNodes, ErrTooFewSystems)
		}
		u.System(CenterName)
		for i := 1; i < n; i++ {
			u.Gate(CenterName, cfg.idFn(i), cfg.oneWay)
		}

		return nil
	}
}
