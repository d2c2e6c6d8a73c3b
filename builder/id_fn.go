// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"
	"strconv"
)

// IDFn maps a zero-based index to a system name.
type IDFn func(idx int) string

// DefaultIDFn returns decimal names ("0", "1", …).
func DefaultIDFn(idx int) string {
	return strconv.Itoa(idx)
}

// SymbolIDFn maps 0..25 to "A".."Z". It panics outside that range.
func SymbolIDFn(idx int) string {
	if idx < 0 || idx > 25 {
		panic(fmt.Sprintf("SymbolIDFn: idx must be in [0,25], got %d", idx))
	}
	return string(rune('A' + idx))
}

// SymbolNumberIDFn returns an IDFn producing prefix+idx.
func SymbolNumberIDFn(prefix string) IDFn {
	return func(idx int) string {
		if idx < 0 {
			panic(fmt.Sprintf("SymbolNumberIDFn: idx must be ≥ 0, got %d", idx))
		}
		return prefix + strconv.Itoa(idx)
	}
}
