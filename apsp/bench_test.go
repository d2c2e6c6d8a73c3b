package apsp_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/planb/apsp"
	"github.com/katalvlaran/planb/builder"
)

func BenchmarkBuild_Grid(b *testing.B) {
	m := mustMap(b, nil, builder.Grid(30, 30))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := apsp.Build(context.Background(), m); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBuild_Sparse(b *testing.B) {
	m := mustMap(b, []builder.BuilderOption{builder.WithSeed(1), builder.WithOneWay()},
		builder.RandomSparse(500, 0.006))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := apsp.Build(context.Background(), m, apsp.WithWorkers(4)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRoutes_Grid(b *testing.B) {
	m := mustMap(b, nil, builder.Grid(8, 8))
	tb := mustTable(b, m)
	s, g := id(b, m, builder.GridName(0, 0)), id(b, m, builder.GridName(7, 7))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tb.Routes(s, g)
	}
}
