// SPDX-License-Identifier: MIT

// Package planner is the query facade over one loaded universe: single
// shortest routes straight from breadth-first search, and everything that
// needs all pairs (tied routes, diameter, alternatives) from an apsp.Table
// built on first use.
//
// A Planner is safe for concurrent use. Concurrent callers that need the
// table share one build; a failed or cancelled build is retried by the next
// caller.
package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/katalvlaran/planb/altroute"
	"github.com/katalvlaran/planb/apsp"
	"github.com/katalvlaran/planb/bfs"
	"github.com/katalvlaran/planb/internal/metrics"
	"github.com/katalvlaran/planb/starmap"
)

var (
	// ErrNilMap is returned by New for a nil map.
	ErrNilMap = errors.New("planner: map is nil")

	// ErrTableMismatch is returned by New when WithTable gets a table of
	// another map.
	ErrTableMismatch = errors.New("planner: table was built for another map")

	// ErrOptionViolation is returned for invalid options.
	ErrOptionViolation = errors.New("planner: invalid option supplied")
)

var tracer = otel.Tracer("planb/planner")

// Planner answers route queries over one Map.
type Planner struct {
	m       *starmap.Map
	log     *slog.Logger
	workers int

	table atomic.Pointer[apsp.Table]
	group singleflight.Group
}

// Option configures New.
type Option func(*config)

type config struct {
	log     *slog.Logger
	workers int
	table   *apsp.Table
	err     error
}

// WithLogger sets the logger handed to table builds.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

// WithWorkers sets the table build parallelism (n ≥ 1).
func WithWorkers(n int) Option {
	return func(c *config) {
		if n < 1 {
			c.err = fmt.Errorf("%w: workers must be ≥ 1 (%d)", ErrOptionViolation, n)
			return
		}
		c.workers = n
	}
}

// WithTable installs a prebuilt table, skipping the lazy build.
func WithTable(t *apsp.Table) Option {
	return func(c *config) { c.table = t }
}

// New returns a Planner over m.
func New(m *starmap.Map, opts ...Option) (*Planner, error) {
	if m == nil {
		return nil, ErrNilMap
	}
	c := config{log: slog.New(slog.DiscardHandler), workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&c)
	}
	if c.err != nil {
		return nil, c.err
	}
	if c.table != nil && c.table.Map() != m {
		return nil, ErrTableMismatch
	}

	p := &Planner{m: m, log: c.log, workers: c.workers}
	if c.table != nil {
		p.table.Store(c.table)
	}
	metrics.SetMap(m.Len(), m.Gates())

	return p, nil
}

// Map returns the underlying map.
func (p *Planner) Map() *starmap.Map { return p.m }

// ByName looks a system up by name.
func (p *Planner) ByName(name string) (*starmap.System, bool) { return p.m.ByName(name) }

// ByID looks a system up by id.
func (p *Planner) ByID(id starmap.SystemID) (*starmap.System, error) { return p.m.ByID(id) }

// Resolve is ByName returning a wrapped starmap.ErrSystemNotFound on a miss.
func (p *Planner) Resolve(name string) (starmap.SystemID, error) {
	s, ok := p.m.ByName(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", starmap.ErrSystemNotFound, name)
	}

	return s.ID, nil
}

// Names maps a route to system names.
func (p *Planner) Names(route []starmap.SystemID) []string {
	out := make([]string, len(route))
	for i, id := range route {
		if s, err := p.m.ByID(id); err == nil {
			out[i] = s.Name
		}
	}

	return out
}

// Built reports whether the table is available without a build.
func (p *Planner) Built() bool { return p.table.Load() != nil }

// Table returns the all-pairs table, building it on first use.
func (p *Planner) Table(ctx context.Context) (*apsp.Table, error) {
	if t := p.table.Load(); t != nil {
		return t, nil
	}
	for {
		ch := p.group.DoChan("table", func() (any, error) {
			if t := p.table.Load(); t != nil {
				return t, nil
			}
			began := time.Now()
			t, err := apsp.Build(ctx, p.m, apsp.WithWorkers(p.workers), apsp.WithLogger(p.log))
			metrics.ObserveBuild(time.Since(began), err)
			if err != nil {
				return nil, err
			}
			p.table.Store(t)
			return t, nil
		})

		var r singleflight.Result
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case r = <-ch:
		}
		if r.Err == nil {
			return r.Val.(*apsp.Table), nil
		}
		// joined a build whose caller went away
		if ctx.Err() == nil && (errors.Is(r.Err, context.Canceled) || errors.Is(r.Err, context.DeadlineExceeded)) {
			continue
		}
		return nil, r.Err
	}
}

// ShortestRoute returns one shortest route by breadth-first search. ok is
// false when goal is unreachable.
func (p *Planner) ShortestRoute(start, goal starmap.SystemID) (route []starmap.SystemID, ok bool, err error) {
	defer func(began time.Time) { metrics.ObserveQuery("route", began, ok, err) }(time.Now())

	if err = p.known(start, goal); err != nil {
		return nil, false, err
	}
	res, err := bfs.Search(p.m, start, bfs.WithGoal(goal))
	if err != nil {
		return nil, false, fmt.Errorf("planner: %w", err)
	}
	route, ok = res.PathTo(goal)

	return route, ok, nil
}

// AllShortestRoutes returns every tied shortest route.
func (p *Planner) AllShortestRoutes(ctx context.Context, start, goal starmap.SystemID) (routes [][]starmap.SystemID, ok bool, err error) {
	ctx, span := p.span(ctx, "planner.AllShortestRoutes", start, goal)
	defer func(began time.Time) {
		metrics.ObserveQuery("routes", began, ok, err)
		endSpan(span, err)
	}(time.Now())

	if err = p.known(start, goal); err != nil {
		return nil, false, err
	}
	t, err := p.Table(ctx)
	if err != nil {
		return nil, false, err
	}
	routes, ok = t.Routes(start, goal)
	span.SetAttributes(attribute.Int("routes", len(routes)))

	return routes, ok, nil
}

// Diameter returns the directed diameter of the map.
func (p *Planner) Diameter(ctx context.Context) (d apsp.Diameter, err error) {
	ctx, span := tracer.Start(ctx, "planner.Diameter")
	defer func(began time.Time) {
		metrics.ObserveQuery("diameter", began, true, err)
		endSpan(span, err)
	}(time.Now())

	t, err := p.Table(ctx)
	if err != nil {
		return apsp.Diameter{}, err
	}

	return t.Diameter(), nil
}

// AlternativeRoutes ranks up to o.MaxRoutes routes, the shortest first.
// Options are validated before the table is built.
func (p *Planner) AlternativeRoutes(ctx context.Context, start, goal starmap.SystemID, o altroute.Options) (routes [][]starmap.SystemID, ok bool, err error) {
	ctx, span := p.span(ctx, "planner.AlternativeRoutes", start, goal)
	defer func(began time.Time) {
		metrics.ObserveQuery("alternatives", began, ok, err)
		endSpan(span, err)
	}(time.Now())

	if err = o.Validate(); err != nil {
		return nil, false, err
	}
	if err = p.known(start, goal); err != nil {
		return nil, false, err
	}
	t, err := p.Table(ctx)
	if err != nil {
		return nil, false, err
	}

	return altroute.Rank(p.m, t, start, goal, o)
}

func (p *Planner) known(ids ...starmap.SystemID) error {
	for _, id := range ids {
		if _, err := p.m.ByID(id); err != nil {
			return err
		}
	}

	return nil
}

func (p *Planner) span(ctx context.Context, name string, start, goal starmap.SystemID) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(
		attribute.Int64("start", int64(start)),
		attribute.Int64("goal", int64(goal)),
	))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
