// SPDX-License-Identifier: MIT

package mapdata

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/klauspost/compress/gzip"

	"github.com/katalvlaran/planb/starmap"
)

// Dump is the decoded universe document. Keys are decimal ids.
type Dump struct {
	Systems   map[string]System   `json:"systems"`
	Stargates map[string]Stargate `json:"stargates"`
}

// System is one ESI solar system record. Stargates is nil when the record
// has no gate data, and empty when it has an empty list.
type System struct {
	SystemID        int64   `json:"system_id,omitempty" validate:"gte=0"`
	Name            string  `json:"name" validate:"required"`
	ConstellationID int64   `json:"constellation_id,omitempty"`
	SecurityStatus  float64 `json:"security_status,omitempty"`
	Stargates       []int64 `json:"stargates"`
}

// Stargate is one ESI stargate record.
type Stargate struct {
	StargateID  int64       `json:"stargate_id,omitempty"`
	Name        string      `json:"name,omitempty"`
	SystemID    int64       `json:"system_id,omitempty"`
	Destination Destination `json:"destination"`
}

// Destination is where a stargate leads.
type Destination struct {
	StargateID int64 `json:"stargate_id,omitempty"`
	SystemID   int64 `json:"system_id" validate:"gt=0"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// gzip member header
var gzipMagic = []byte{0x1f, 0x8b}

// Decode reads a dump, gunzipping it when it starts with the gzip magic.
func Decode(r io.Reader) (*Dump, error) {
	br := bufio.NewReader(r)
	var src io.Reader = br
	if head, err := br.Peek(len(gzipMagic)); err == nil && head[0] == gzipMagic[0] && head[1] == gzipMagic[1] {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("mapdata: gzip: %w", err)
		}
		defer zr.Close()
		src = zr
	}

	var d Dump
	if err := json.NewDecoder(src).Decode(&d); err != nil {
		return nil, fmt.Errorf("mapdata: decode: %w", err)
	}
	if d.Systems == nil {
		return nil, ErrNoSystems
	}
	if d.Stargates == nil {
		return nil, ErrNoStargates
	}

	return &d, nil
}

// Encode writes d as JSON, gzip-compressed when compress is set.
func (d *Dump) Encode(w io.Writer, compress bool) error {
	if !compress {
		return json.NewEncoder(w).Encode(d)
	}
	zw := gzip.NewWriter(w)
	if err := json.NewEncoder(zw).Encode(d); err != nil {
		zw.Close()
		return err
	}

	return zw.Close()
}

// Specs resolves every system's stargates to destination system ids.
// The result is sorted by system id.
func (d *Dump) Specs() ([]starmap.SystemSpec, error) {
	specs := make([]starmap.SystemSpec, 0, len(d.Systems))
	for key, sys := range d.Systems {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: system key %q", ErrInvalidRecord, key)
		}
		if err := validate.Struct(sys); err != nil {
			return nil, fmt.Errorf("%w: system %d: %v", ErrInvalidRecord, id, err)
		}
		spec := starmap.SystemSpec{ID: starmap.SystemID(id), Name: sys.Name}
		if sys.Stargates != nil {
			spec.Stargates = make([]starmap.SystemID, 0, len(sys.Stargates))
			for _, gid := range sys.Stargates {
				gate, ok := d.Stargates[strconv.FormatInt(gid, 10)]
				if !ok {
					return nil, fmt.Errorf("%w: %d in system %d is not described", ErrBadStargate, gid, id)
				}
				if err := validate.Struct(gate.Destination); err != nil {
					return nil, fmt.Errorf("%w: %d in system %d: %v", ErrBadStargate, gid, id, err)
				}
				spec.Stargates = append(spec.Stargates, starmap.SystemID(gate.Destination.SystemID))
			}
		}
		specs = append(specs, spec)
	}
	slices.SortFunc(specs, func(a, b starmap.SystemSpec) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})

	return specs, nil
}
