// SPDX-License-Identifier: MIT

package mapdata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/planb/starmap"
)

// DefaultPath is where the planner looks for a dump when none is configured.
const DefaultPath = "/usr/local/share/eve-map.json.gz"

// Load reads the dump at path.
func Load(path string) (*Dump, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mapdata: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// LoadMap reads the dump at path and builds its Map.
func LoadMap(path string, opts ...starmap.Option) (*starmap.Map, error) {
	d, err := Load(path)
	if err != nil {
		return nil, err
	}
	specs, err := d.Specs()
	if err != nil {
		return nil, err
	}

	return starmap.New(specs, opts...)
}

// Write stores d at path through a temporary file in the same directory,
// gzip-compressed when path ends in ".gz".
func (d *Dump) Write(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".planb-map-*")
	if err != nil {
		return fmt.Errorf("mapdata: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := d.Encode(tmp, strings.HasSuffix(path, ".gz")); err != nil {
		tmp.Close()
		return fmt.Errorf("mapdata: encode: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("mapdata: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("mapdata: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("mapdata: %w", err)
	}

	return nil
}
