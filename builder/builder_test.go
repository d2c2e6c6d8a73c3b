package builder_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/planb/builder"
	"github.com/katalvlaran/planb/starmap"
)

// gatesOf returns the destination names of every gate out of name.
func gatesOf(t *testing.T, specs []starmap.SystemSpec, name string) []string {
	t.Helper()
	byID := make(map[starmap.SystemID]string, len(specs))
	for _, s := range specs {
		byID[s.ID] = s.Name
	}
	for _, s := range specs {
		if s.Name == name {
			out := make([]string, 0, len(s.Stargates))
			for _, g := range s.Stargates {
				out = append(out, byID[g])
			}
			return out
		}
	}
	t.Fatalf("system %q not built", name)
	return nil
}

func TestBuild_ParameterErrors(t *testing.T) {
	tests := []struct {
		name string
		con  builder.Constructor
		want error
	}{
		{"Path", builder.Path(1), builder.ErrTooFewSystems},
		{"Chain", builder.Chain("A"), builder.ErrTooFewSystems},
		{"Cycle", builder.Cycle(2), builder.ErrTooFewSystems},
		{"Star", builder.Star(1), builder.ErrTooFewSystems},
		{"Wheel", builder.Wheel(3), builder.ErrTooFewSystems},
		{"Complete", builder.Complete(0), builder.ErrTooFewSystems},
		{"Grid", builder.Grid(0, 3), builder.ErrTooFewSystems},
		{"SparseP", builder.RandomSparse(3, 1.5), builder.ErrInvalidProbability},
		{"SparseRNG", builder.RandomSparse(3, 0.5), builder.ErrNeedRandSource},
		{"Nil", nil, builder.ErrConstructFailed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := builder.Build(nil, tc.con)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestBuild_ChainDirections(t *testing.T) {
	specs, err := builder.Build(nil, builder.Chain("A", "B", "C"))
	require.NoError(t, err)
	require.Len(t, specs, 3)
	assert.Equal(t, []string{"B"}, gatesOf(t, specs, "A"))
	assert.Equal(t, []string{"A", "C"}, gatesOf(t, specs, "B"))

	specs, err = builder.Build([]builder.BuilderOption{builder.WithOneWay()}, builder.Chain("A", "B", "C"))
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, gatesOf(t, specs, "B"))
	assert.Empty(t, gatesOf(t, specs, "C"))
	assert.NotNil(t, specs[2].Stargates, "sink keeps an empty gate list")
}

func TestBuild_ComposeByName(t *testing.T) {
	specs, err := builder.Build(nil,
		builder.Chain("A", "B", "D"),
		builder.Chain("A", "C", "D"),
		builder.Chain("A", "B"), // duplicate gate ignored
	)
	require.NoError(t, err)
	require.Len(t, specs, 4)
	assert.Equal(t, []string{"B", "C"}, gatesOf(t, specs, "A"))
	assert.Equal(t, []string{"B", "C"}, gatesOf(t, specs, "D"))
}

func TestBuild_IDs(t *testing.T) {
	specs, err := builder.Build([]builder.BuilderOption{builder.WithFirstID(30000001)}, builder.Path(3))
	require.NoError(t, err)
	for i, s := range specs {
		assert.Equal(t, starmap.SystemID(30000001+i), s.ID)
	}
}

func TestBuild_Star(t *testing.T) {
	specs, err := builder.Build([]builder.BuilderOption{builder.WithSymbNumb("L")}, builder.Star(4))
	require.NoError(t, err)
	assert.Equal(t, []string{"L1", "L2", "L3"}, gatesOf(t, specs, builder.CenterName))
	assert.Equal(t, []string{builder.CenterName}, gatesOf(t, specs, "L2"))
}

func TestBuild_WheelAndComplete(t *testing.T) {
	m, err := builder.Map(nil, builder.Wheel(5))
	require.NoError(t, err)
	assert.Equal(t, 5, m.Len())
	assert.Equal(t, 2*4+2*4, m.Gates())

	m, err = builder.Map(nil, builder.Complete(4))
	require.NoError(t, err)
	assert.Equal(t, 12, m.Gates())
}

func TestBuild_Grid(t *testing.T) {
	m, err := builder.Map(nil, builder.Grid(2, 3))
	require.NoError(t, err)
	assert.Equal(t, 6, m.Len())
	// 2 rows × 2 horizontal + 3 vertical, both directions
	assert.Equal(t, 2*(2*2+3), m.Gates())
	_, ok := m.ByName(builder.GridName(1, 2))
	assert.True(t, ok)
}

func TestBuild_RandomSparseDeterministic(t *testing.T) {
	opts := []builder.BuilderOption{builder.WithSeed(42), builder.WithOneWay()}
	a, err := builder.Build(opts, builder.RandomSparse(20, 0.2))
	require.NoError(t, err)
	opts = []builder.BuilderOption{builder.WithSeed(42), builder.WithOneWay()}
	b, err := builder.Build(opts, builder.RandomSparse(20, 0.2))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	full, err := builder.Map([]builder.BuilderOption{builder.WithOneWay()}, builder.RandomSparse(5, 1))
	require.NoError(t, err)
	assert.Equal(t, 20, full.Gates())
}

func TestBuild_Gateless(t *testing.T) {
	m, err := builder.Map(nil, builder.Chain("A", "B"), builder.Gateless("X"), builder.Isolated("Y"))
	require.NoError(t, err)
	assert.Equal(t, 3, m.Len())
	_, ok := m.ByName("X")
	assert.False(t, ok)
	assert.Len(t, m.Excluded(), 1)
}

func TestIDFns(t *testing.T) {
	assert.Equal(t, "7", builder.DefaultIDFn(7))
	assert.Equal(t, "A", builder.SymbolIDFn(0))
	assert.Equal(t, "Z", builder.SymbolIDFn(25))
	assert.Equal(t, "L12", builder.SymbolNumberIDFn("L")(12))
	assert.Panics(t, func() { builder.SymbolIDFn(26) })
	assert.Panics(t, func() { builder.SymbolNumberIDFn("L")(-1) })
	assert.Panics(t, func() { builder.WithIDScheme(nil) })
	assert.Panics(t, func() { builder.WithRand(nil) })
}
