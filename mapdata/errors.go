// SPDX-License-Identifier: MIT

package mapdata

import "errors"

var (
	// ErrNoSystems is returned when a dump has no "systems" object.
	ErrNoSystems = errors.New("mapdata: no systems")

	// ErrNoStargates is returned when a dump has no "stargates" object.
	ErrNoStargates = errors.New("mapdata: no stargates")

	// ErrBadStargate is returned when a system lists a stargate the dump
	// does not describe, or one without a destination system.
	ErrBadStargate = errors.New("mapdata: bad stargate")

	// ErrInvalidRecord is returned when a record fails validation.
	ErrInvalidRecord = errors.New("mapdata: invalid record")

	// ErrFetch is returned when the upstream API keeps failing.
	ErrFetch = errors.New("mapdata: fetch failed")
)
