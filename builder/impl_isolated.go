// SPDX-License-Identifier: MIT

package builder

// Isolated returns a Constructor adding systems with empty gate lists.
func Isolated(names ...string) Constructor {
	return func(u *Universe, _ builderConfig) error {
		for _, name := range names {
			u.System(name)
		}
		return nil
	}
}

// Gateless returns a Constructor adding systems that carry no gate data.
func Gateless(names ...string) Constructor {
	return func(u *Universe, _ builderConfig) error {
		for _, name := range names {
			u.Gateless(name)
		}
		return nil
	}
}
