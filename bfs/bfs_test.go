package bfs_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/planb/bfs"
	"github.com/katalvlaran/planb/builder"
	"github.com/katalvlaran/planb/starmap"
)

// mustMap builds a Map from constructors or fails the test.
func mustMap(t testing.TB, bopts []builder.BuilderOption, cons ...builder.Constructor) *starmap.Map {
	t.Helper()
	m, err := builder.Map(bopts, cons...)
	require.NoError(t, err)
	return m
}

// id resolves a system name.
func id(t testing.TB, m *starmap.Map, name string) starmap.SystemID {
	t.Helper()
	s, ok := m.ByName(name)
	require.True(t, ok, "system %q", name)
	return s.ID
}

// names maps a route to system names.
func names(m *starmap.Map, route []starmap.SystemID) []string {
	out := make([]string, len(route))
	for i, sid := range route {
		s, _ := m.ByID(sid)
		out[i] = s.Name
	}
	return out
}

// TestSearch_Errors verifies that invalid inputs and options are rejected.
func TestSearch_Errors(t *testing.T) {
	if _, err := bfs.Search(nil, 1); !errors.Is(err, bfs.ErrMapNil) {
		t.Errorf("nil map: want ErrMapNil, got %v", err)
	}
	m := mustMap(t, nil, builder.Chain("A", "B"))
	if _, err := bfs.Search(m, 999); !errors.Is(err, bfs.ErrStartNotFound) {
		t.Errorf("missing start: want ErrStartNotFound, got %v", err)
	}
	if _, err := bfs.Search(m, id(t, m, "A"), bfs.WithGoal(999)); !errors.Is(err, bfs.ErrGoalNotFound) {
		t.Errorf("missing goal: want ErrGoalNotFound, got %v", err)
	}
	if _, err := bfs.Search(m, id(t, m, "A"), bfs.WithMaxDepth(-1)); !errors.Is(err, bfs.ErrOptionViolation) {
		t.Errorf("negative depth: want ErrOptionViolation, got %v", err)
	}
}

// TestSearch_Chain covers a one-way chain A→B→C→D.
func TestSearch_Chain(t *testing.T) {
	m := mustMap(t, []builder.BuilderOption{builder.WithOneWay()}, builder.Chain("A", "B", "C", "D"))
	a, d := id(t, m, "A"), id(t, m, "D")

	res, err := bfs.Search(m, a, bfs.WithGoal(d))
	require.NoError(t, err)
	route, ok := res.PathTo(d)
	require.True(t, ok)
	assert.Equal(t, []string{"A", "B", "C", "D"}, names(m, route))

	// one-way: nothing leads back
	back, err := bfs.Search(m, d, bfs.WithGoal(a))
	require.NoError(t, err)
	_, ok = back.PathTo(a)
	assert.False(t, ok)
	assert.Equal(t, []starmap.SystemID{d}, back.Order())
}

// TestSearch_Waypoints checks distances and parents of finalized systems.
func TestSearch_Waypoints(t *testing.T) {
	m := mustMap(t, []builder.BuilderOption{builder.WithOneWay()},
		builder.Chain("A", "B", "D"), builder.Chain("A", "C", "D"))
	a, b, d := id(t, m, "A"), id(t, m, "B"), id(t, m, "D")

	res, err := bfs.Search(m, a)
	require.NoError(t, err)

	ws := res.Waypoints()
	require.Len(t, ws, 4)
	assert.Equal(t, bfs.Waypoint{Distance: 0, Current: a}, ws[a])
	assert.Equal(t, 2, ws[d].Distance)
	// B is scanned before C, so it claims D first
	assert.Equal(t, b, ws[d].Parent)
	assert.True(t, ws[d].HasParent)

	dist, ok := res.Distance(d)
	assert.True(t, ok)
	assert.Equal(t, 2, dist)
	assert.Equal(t, a, res.Start())
}

// TestSearch_GoalStopsEarly ensures nothing past the goal is finalized.
func TestSearch_GoalStopsEarly(t *testing.T) {
	m := mustMap(t, []builder.BuilderOption{builder.WithOneWay()}, builder.Chain("A", "B", "C", "D"))
	res, err := bfs.Search(m, id(t, m, "A"), bfs.WithGoal(id(t, m, "B")))
	require.NoError(t, err)
	if want := []string{"A", "B"}; !reflect.DeepEqual(names(m, res.Order()), want) {
		t.Errorf("Order = %v; want %v", names(m, res.Order()), want)
	}
	_, ok := res.Waypoint(id(t, m, "C"))
	assert.False(t, ok, "C must not be finalized")
}

// TestSearch_StartIsGoal returns the single-system route.
func TestSearch_StartIsGoal(t *testing.T) {
	m := mustMap(t, nil, builder.Chain("A", "B"))
	a := id(t, m, "A")
	res, err := bfs.Search(m, a, bfs.WithGoal(a))
	require.NoError(t, err)
	route, ok := res.PathTo(a)
	require.True(t, ok)
	assert.Equal(t, []starmap.SystemID{a}, route)
}

// TestSearch_Isolated covers a system without gates.
func TestSearch_Isolated(t *testing.T) {
	m := mustMap(t, nil, builder.Chain("A", "B"), builder.Isolated("E"))
	res, err := bfs.Search(m, id(t, m, "A"))
	require.NoError(t, err)
	_, ok := res.PathTo(id(t, m, "E"))
	assert.False(t, ok)
}

// TestSearch_Reverse measures distances to the start along reversed gates.
func TestSearch_Reverse(t *testing.T) {
	m := mustMap(t, []builder.BuilderOption{builder.WithOneWay()}, builder.Chain("A", "B", "C"))
	a, c := id(t, m, "A"), id(t, m, "C")

	res, err := bfs.Search(m, c, bfs.WithReverse())
	require.NoError(t, err)
	dist, ok := res.Distance(a)
	require.True(t, ok)
	assert.Equal(t, 2, dist)

	// reverse routes read forward from the reached system to the start
	route, ok := res.PathTo(a)
	require.True(t, ok)
	assert.Equal(t, []string{"A", "B", "C"}, names(m, route))
}

// TestSearch_MaxDepth verifies WithMaxDepth for positive and zero depths.
func TestSearch_MaxDepth(t *testing.T) {
	m := mustMap(t, []builder.BuilderOption{builder.WithOneWay()}, builder.Chain("A", "B", "C"))
	a := id(t, m, "A")
	res, _ := bfs.Search(m, a, bfs.WithMaxDepth(1))
	assert.Equal(t, []string{"A", "B"}, names(m, res.Order()))
	res, _ = bfs.Search(m, a, bfs.WithMaxDepth(0))
	assert.Equal(t, []string{"A", "B", "C"}, names(m, res.Order()))
}

// TestSearch_OnDiscoverReportsTies checks that both parents of D are reported.
func TestSearch_OnDiscoverReportsTies(t *testing.T) {
	m := mustMap(t, []builder.BuilderOption{builder.WithOneWay()},
		builder.Chain("A", "B", "D"), builder.Chain("A", "C", "D"))
	dIdx, _ := m.Index(id(t, m, "D"))

	var parents []string
	_, err := bfs.Search(m, id(t, m, "A"), bfs.WithOnDiscover(func(d bfs.Discovery) {
		if d.Current == dIdx {
			assert.Equal(t, 2, d.Distance)
			parents = append(parents, m.At(d.Parent).Name)
		}
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C"}, parents)
}

// TestSearch_OnVisitAbort propagates hook errors.
func TestSearch_OnVisitAbort(t *testing.T) {
	m := mustMap(t, nil, builder.Path(5))
	boom := errors.New("boom")
	_, err := bfs.Search(m, id(t, m, "0"), bfs.WithOnVisit(func(_ starmap.SystemID, depth int) error {
		if depth == 2 {
			return boom
		}
		return nil
	}))
	assert.ErrorIs(t, err, boom)
}

// TestSearch_Cancellation verifies that a cancelled context halts the search.
func TestSearch_Cancellation(t *testing.T) {
	m := mustMap(t, nil, builder.Path(100))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := bfs.Search(m, id(t, m, "0"), bfs.WithContext(ctx)); !errors.Is(err, context.Canceled) {
		t.Errorf("Cancellation: want context.Canceled, got %v", err)
	}
}

// TestSearch_Deterministic repeats a query on a grid and expects identical routes.
func TestSearch_Deterministic(t *testing.T) {
	m := mustMap(t, nil, builder.Grid(6, 6))
	start, goal := id(t, m, builder.GridName(0, 0)), id(t, m, builder.GridName(5, 5))

	first, err := bfs.Search(m, start, bfs.WithGoal(goal))
	require.NoError(t, err)
	want, _ := first.PathTo(goal)
	require.Len(t, want, 11)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := bfs.Search(m, start, bfs.WithGoal(goal))
			if err != nil {
				t.Error(err)
				return
			}
			got, _ := res.PathTo(goal)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("route %v; want %v", got, want)
			}
		}()
	}
	wg.Wait()
}

// TestSearch_RingDistances compares a ring against closed-form distances.
func TestSearch_RingDistances(t *testing.T) {
	const n = 9
	m := mustMap(t, []builder.BuilderOption{builder.WithOneWay()}, builder.Cycle(n))
	res, err := bfs.Search(m, id(t, m, "0"))
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		d, ok := res.Distance(id(t, m, fmt.Sprint(i)))
		require.True(t, ok)
		assert.Equal(t, i, d, "system %d", i)
	}
}
