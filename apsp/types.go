// SPDX-License-Identifier: MIT

package apsp

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/katalvlaran/planb/starmap"
)

// Sentinel errors for table construction.
var (
	// ErrMapNil is returned if a nil map pointer is passed to Build.
	ErrMapNil = errors.New("apsp: map is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("apsp: invalid option supplied")
)

// Hop is one table cell.
type Hop struct {
	// Distance is the jump count from the row system to the column system.
	Distance int

	// Next lists every successor of the row system lying on a shortest
	// route to the column system, in gate order. Empty on the diagonal.
	Next []starmap.SystemID
}

// Pair is an ordered (From, To) pair of systems.
type Pair struct {
	From starmap.SystemID
	To   starmap.SystemID
}

// Diameter is the result of Table.Diameter.
type Diameter struct {
	// Distance is the largest finite distance over ordered pairs i ≠ j.
	Distance int

	// Endpoints lists every pair at that distance, row-major.
	Endpoints []Pair
}

// Option configures Build.
type Option func(*options)

type options struct {
	workers  int
	logger   *slog.Logger
	progress func(done, total int)
	err      error
}

func defaultOptions() options {
	return options{
		workers: runtime.GOMAXPROCS(0),
		logger:  slog.New(slog.DiscardHandler),
	}
}

// WithWorkers sets the number of concurrent passes (n ≥ 1).
func WithWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: workers must be ≥ 1 (%d)", ErrOptionViolation, n)
			return
		}
		o.workers = n
	}
}

// WithLogger sets the build logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithProgress registers a callback invoked after each finished pass.
// It is called from worker goroutines and must be safe for concurrent use.
func WithProgress(fn func(done, total int)) Option {
	return func(o *options) { o.progress = fn }
}
