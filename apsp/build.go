// SPDX-License-Identifier: MIT

package apsp

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/planb/bfs"
	"github.com/katalvlaran/planb/starmap"
)

var tracer = otel.Tracer("planb/apsp")

// Build computes the all-pairs table of m.
//
// Returns ErrMapNil, ErrOptionViolation, or the context error if ctx is
// cancelled before every pass has finished. A partial table is never
// returned.
func Build(ctx context.Context, m *starmap.Map, opts ...Option) (*Table, error) {
	if m == nil {
		return nil, ErrMapNil
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	n := m.Len()
	ctx, span := tracer.Start(ctx, "apsp.Build", trace.WithAttributes(
		attribute.Int("systems", n),
		attribute.Int("gates", m.Gates()),
		attribute.Int("workers", o.workers),
	))
	defer span.End()

	o.logger.DebugContext(ctx, "building route table", "systems", n, "workers", o.workers)
	began := time.Now()

	t := newTable(m)
	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for j := 0; j < n; j++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := t.fillColumn(gctx, j); err != nil {
				return err
			}
			if o.progress != nil {
				o.progress(int(done.Add(1)), n)
			}
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		o.logger.WarnContext(ctx, "route table build aborted", "error", err)
		return nil, fmt.Errorf("apsp: build: %w", err)
	}

	o.logger.InfoContext(ctx, "route table built",
		"systems", n, "took", time.Since(began).Round(time.Millisecond))

	return t, nil
}

// fillColumn runs the reverse search rooted at j and merges every
// relaxation into column j.
func (t *Table) fillColumn(ctx context.Context, j int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.dist[j*t.n+j] = 0
	_, err := bfs.Search(t.m, t.m.At(j).ID,
		bfs.WithContext(ctx),
		bfs.WithReverse(),
		bfs.WithOnDiscover(func(d bfs.Discovery) {
			t.merge(d.Current, j, d.Distance, d.Parent)
		}),
	)

	return err
}
