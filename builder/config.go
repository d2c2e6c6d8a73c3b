// SPDX-License-Identifier: MIT

package builder

import "math/rand"

// builderConfig is the resolved, immutable view of BuilderOption values.
type builderConfig struct {
	idFn    func(int) string
	rng     *rand.Rand
	oneWay  bool
	firstID int64
}

const defaultFirstID = int64(1)

func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		idFn:    DefaultIDFn,
		firstID: defaultFirstID,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
