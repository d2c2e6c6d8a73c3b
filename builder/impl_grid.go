// SPDX-License-Identifier: MIT
// Package: planb/builder
//
// impl_grid.go — Grid(rows, cols) constructor.
//
// Contract:
//   - rows, cols ≥ 1 (else ErrTooFewSystems).
//   - Systems are named "r,c" (fixed scheme) in row-major order.
//   - For each (r,c): gate Right then Bottom when present; reverse gates
//     unless cfg.oneWay.

package builder

import "fmt"

const (
	methodGrid = "Grid"
	minGridDim = 1
	gridIDFmt  = "%d,%d"
)

// GridName returns the name Grid gives to cell (r, c).
func GridName(r, c int) string { return fmt.Sprintf(gridIDFmt, r, c) }

// Grid returns a Constructor that builds a rows×cols orthogonal grid.
func Grid(rows, cols int) Constructor {
	return func(u *Universe, cfg builderConfig) error {
		if rows < minGridDim || cols < minGridDim {
			return fmt.Errorf("%s: rows=%d, cols=%d (each must be ≥ %d): %w",
				methodGrid, rows, cols, minGridDim, ErrTooFewSystems)
		}
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				u.System(GridName(r, c))
			}
		}
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if c+1 < cols {
					u.Gate(GridName(r, c), GridName(r, c+1), cfg.oneWay)
				}
				if r+1 < rows {
					u.Gate(GridName(r, c), GridName(r+1, c), cfg.oneWay)
				}
			}
		}

		return nil
	}
}
