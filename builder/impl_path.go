// SPDX-License-Identifier: MIT
// Package: planb/builder
//
// impl_path.go — Path(n) and Chain(names...) constructors.
//
// Contract:
//   - Path: n ≥ 2 (else ErrTooFewSystems); systems cfg.idFn(0..n-1).
//   - Chain: at least two names; systems named as given.
//   - Gates (i-1)→i in increasing i; reverse gates unless cfg.oneWay.

package builder

import "fmt"

const (
	methodPath   = "Path"
	methodChain  = "Chain"
	minPathNodes = 2
)

// Path returns a Constructor that builds a simple path P_n.
func Path(n int) Constructor {
	return func(u *Universe, cfg builderConfig) error {
		if n < minPathNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewSystems)
		}
		names := make([]string, n)
		for i := range names {
			names[i] = cfg.idFn(i)
		}
		chain(u, names, cfg.oneWay)

		return nil
	}
}

// Chain returns a Constructor linking the named systems in order.
func Chain(names ...string) Constructor {
	return func(u *Universe, cfg builderConfig) error {
		if len(names) < minPathNodes {
			return fmt.Errorf("%s: %d names < min=%d: %w", methodChain, len(names), minPathNodes, ErrTooFewSystems)
		}
		chain(u, names, cfg.oneWay)

		return nil
	}
}

func chain(u *Universe, names []string, oneWay bool) {
	for _, name := range names {
		u.System(name)
	}
	for i := 1; i < len(names); i++ {
		u.Gate(names[i-1], names[i], oneWay)
	}
}
