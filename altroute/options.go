// SPDX-License-Identifier: MIT

package altroute

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidConfig is returned when Options fail validation.
	ErrInvalidConfig = errors.New("altroute: invalid configuration")

	// ErrNilTable is returned when the table is nil or was built for
	// another map.
	ErrNilTable = errors.New("altroute: table is nil or belongs to another map")
)

// Defaults used by DefaultOptions.
const (
	DefaultMaxRoutes = 3
	DefaultSharing   = 0.8
	DefaultLocalOpt  = 0.25
	DefaultUBStretch = 0.5
)

// Options tunes Rank. All fractions are in [0,1].
type Options struct {
	// MaxRoutes bounds the result size, baseline included (≥ 1).
	MaxRoutes int

	// Sharing is the largest fraction of gates a candidate may share with
	// the baseline, and with each other picked route.
	Sharing float64

	// LocalOpt is the fraction of the baseline length over which every
	// candidate window must be a shortest route.
	LocalOpt float64

	// UBStretch bounds the excess length of any sub-route through the via.
	UBStretch float64
}

// DefaultOptions returns 3 routes, 80 % sharing, 25 % local optimality and
// 50 % stretch.
func DefaultOptions() Options {
	return Options{
		MaxRoutes: DefaultMaxRoutes,
		Sharing:   DefaultSharing,
		LocalOpt:  DefaultLocalOpt,
		UBStretch: DefaultUBStretch,
	}
}

// Validate reports the first out-of-range field as ErrInvalidConfig.
func (o Options) Validate() error {
	if o.MaxRoutes < 1 {
		return fmt.Errorf("%w: max routes %d < 1", ErrInvalidConfig, o.MaxRoutes)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"sharing", o.Sharing},
		{"local optimality", o.LocalOpt},
		{"stretch", o.UBStretch},
	} {
		if math.IsNaN(f.v) || f.v < 0 || f.v > 1 {
			return fmt.Errorf("%w: %s %v not in [0,1]", ErrInvalidConfig, f.name, f.v)
		}
	}

	return nil
}
