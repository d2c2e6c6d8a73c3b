package mapdata_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/planb/mapdata"
	"github.com/katalvlaran/planb/starmap"
)

// Jita ⇄ Perimeter, Perimeter → Urlen, Thera has no gate data.
const sample = `{
  "systems": {
    "30000144": {"name": "Perimeter", "stargates": [50000002, 50000003]},
    "30000142": {"name": "Jita", "stargates": [50000001]},
    "30000145": {"name": "Urlen", "stargates": []},
    "31000005": {"name": "Thera"}
  },
  "stargates": {
    "50000001": {"destination": {"system_id": 30000144, "stargate_id": 50000002}},
    "50000002": {"destination": {"system_id": 30000142, "stargate_id": 50000001}},
    "50000003": {"destination": {"system_id": 30000145}}
  }
}`

func TestDecode_Sample(t *testing.T) {
	d, err := mapdata.Decode(strings.NewReader(sample))
	require.NoError(t, err)
	specs, err := d.Specs()
	require.NoError(t, err)

	require.Len(t, specs, 4)
	assert.Equal(t, []starmap.SystemSpec{
		{ID: 30000142, Name: "Jita", Stargates: []starmap.SystemID{30000144}},
		{ID: 30000144, Name: "Perimeter", Stargates: []starmap.SystemID{30000142, 30000145}},
		{ID: 30000145, Name: "Urlen", Stargates: []starmap.SystemID{}},
		{ID: 31000005, Name: "Thera"},
	}, specs)

	m, err := starmap.New(specs)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, []starmap.SystemID{31000005}, m.Excluded())
}

func TestDecode_Gzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	d, err := mapdata.Decode(&buf)
	require.NoError(t, err)
	assert.Len(t, d.Systems, 4)
	assert.Len(t, d.Stargates, 3)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"NoSystems", `{"stargates": {}}`, mapdata.ErrNoSystems},
		{"NoStargates", `{"systems": {}}`, mapdata.ErrNoStargates},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := mapdata.Decode(strings.NewReader(tc.doc))
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := mapdata.Decode(strings.NewReader(`{"systems": [`))
	assert.Error(t, err)
}

func TestSpecs_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"UndescribedGate", `{"systems": {"1": {"name": "A", "stargates": [9]}}, "stargates": {}}`, mapdata.ErrBadStargate},
		{"NoDestination", `{"systems": {"1": {"name": "A", "stargates": [9]}}, "stargates": {"9": {}}}`, mapdata.ErrBadStargate},
		{"EmptyName", `{"systems": {"1": {"name": "", "stargates": []}}, "stargates": {}}`, mapdata.ErrInvalidRecord},
		{"BadKey", `{"systems": {"one": {"name": "A", "stargates": []}}, "stargates": {}}`, mapdata.ErrInvalidRecord},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, err := mapdata.Decode(strings.NewReader(tc.doc))
			require.NoError(t, err)
			_, err = d.Specs()
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestWriteLoad(t *testing.T) {
	d, err := mapdata.Decode(strings.NewReader(sample))
	require.NoError(t, err)

	for _, name := range []string{"eve-map.json", "eve-map.json.gz"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, d.Write(path))

			back, err := mapdata.Load(path)
			require.NoError(t, err)
			assert.Equal(t, d, back)

			m, err := mapdata.LoadMap(path, starmap.WithGatelessSystems())
			require.NoError(t, err)
			assert.Equal(t, 4, m.Len())
		})
	}

	_, err = mapdata.Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
