// SPDX-License-Identifier: MIT

package starmap

import (
	"errors"
	"fmt"
	"strconv"
)

// Sentinel errors for map construction and lookup.
var (
	// ErrDuplicateID is returned when two SystemSpec values share an ID.
	ErrDuplicateID = errors.New("starmap: duplicate system id")

	// ErrUnknownDestination is returned when a stargate leads to an ID that
	// is not part of the input.
	ErrUnknownDestination = errors.New("starmap: unknown stargate destination")

	// ErrEmptyName is returned when a system has no name.
	ErrEmptyName = errors.New("starmap: system name is empty")

	// ErrSystemNotFound is returned by lookups that miss.
	ErrSystemNotFound = errors.New("starmap: system not found")
)

// SystemID is the opaque identifier of a solar system.
type SystemID int64

// String implements fmt.Stringer.
func (id SystemID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// SystemSpec is one input record for New.
//
// Stargates lists destination IDs of the outgoing gates in their original
// order. A nil slice means "no gate data" (see package docs).
type SystemSpec struct {
	ID        SystemID
	Name      string
	Stargates []SystemID
}

// System is the read-only view of a stored system.
type System struct {
	// ID identifies the system.
	ID SystemID

	// Name is the human-readable system name.
	Name string

	// Stargates lists destination IDs of outgoing gates, in input order,
	// with gates into dropped systems removed.
	Stargates []SystemID

	// Index is the dense arena position (0..Len()-1). It addresses tables
	// and is not an identity.
	Index int
}

// Option configures New.
type Option func(*options)

type options struct {
	keepGateless bool
}

// WithGatelessSystems keeps systems that carry no gate data (nil Stargates)
// as isolated systems instead of dropping them.
func WithGatelessSystems() Option {
	return func(o *options) { o.keepGateless = true }
}

// notFound wraps ErrSystemNotFound with the missing id.
func notFound(id SystemID) error {
	return fmt.Errorf("%w: id %d", ErrSystemNotFound, id)
}
