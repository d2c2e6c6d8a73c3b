// SPDX-License-Identifier: MIT
// Package: planb/builder
//
// api.go — the accumulator and the public entry points.
//
// Design contract:
//   - One orchestrator: Build(bopts, cons...). Resolves cfg, runs cons in order.
//   - Constructors only touch the Universe they are handed (no global state).
//   - Determinism: same inputs/options/seed and constructor order ⇒ identical specs.

package builder

import (
	"fmt"

	"github.com/katalvlaran/planb/starmap"
)

// Constructor appends a topology to u using the resolved builderConfig.
// Constructors must validate parameters before touching u and return
// sentinel errors instead of panicking.
type Constructor func(u *Universe, cfg builderConfig) error

// Universe accumulates systems and gates keyed by system name.
type Universe struct {
	specs  []starmap.SystemSpec
	byName map[string]int
	gates  map[[2]int]bool
	nextID int64
}

func newUniverse(firstID int64) *Universe {
	return &Universe{
		byName: make(map[string]int),
		gates:  make(map[[2]int]bool),
		nextID: firstID,
	}
}

// System returns the position of name, adding it with an empty gate list
// when it is new. A previously Gateless system gains an empty gate list.
func (u *Universe) System(name string) int {
	i := u.add(name)
	if u.specs[i].Stargates == nil {
		u.specs[i].Stargates = []starmap.SystemID{}
	}

	return i
}

// Gateless adds name without gate data unless it already exists.
func (u *Universe) Gateless(name string) {
	u.add(name)
}

// Gate adds the gate from→to, plus to→from unless oneWay. Existing gates are
// not duplicated.
func (u *Universe) Gate(from, to string, oneWay bool) {
	a, b := u.System(from), u.System(to)
	u.link(a, b)
	if !oneWay {
		u.link(b, a)
	}
}

// Len reports the number of systems added so far.
func (u *Universe) Len() int { return len(u.specs) }

func (u *Universe) add(name string) int {
	if i, ok := u.byName[name]; ok {
		return i
	}
	u.specs = append(u.specs, starmap.SystemSpec{ID: starmap.SystemID(u.nextID), Name: name})
	u.nextID++
	u.byName[name] = len(u.specs) - 1

	return len(u.specs) - 1
}

func (u *Universe) link(a, b int) {
	key := [2]int{a, b}
	if u.gates[key] {
		return
	}
	u.gates[key] = true
	u.specs[a].Stargates = append(u.specs[a].Stargates, u.specs[b].ID)
}

// Build resolves bopts and applies every constructor in order, returning the
// accumulated specs. Constructor errors are wrapped with "Build: %w".
//
// Complexity: Σ cost of constructors; O(V + E) space.
func Build(bopts []BuilderOption, cons ...Constructor) ([]starmap.SystemSpec, error) {
	cfg := newBuilderConfig(bopts...)
	u := newUniverse(cfg.firstID)
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("Build: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(u, cfg); err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}
	}

	return u.specs, nil
}

// Map is Build followed by starmap.New with default policy.
func Map(bopts []BuilderOption, cons ...Constructor) (*starmap.Map, error) {
	specs, err := Build(bopts, cons...)
	if err != nil {
		return nil, err
	}
	m, err := starmap.New(specs)
	if err != nil {
		return nil, fmt.Errorf("Map: %w: %v", ErrConstructFailed, err)
	}

	return m, nil
}
