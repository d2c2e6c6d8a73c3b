package apsp_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/planb/apsp"
	"github.com/katalvlaran/planb/builder"
)

// ExampleTable_Routes lists both shortest routes across a fork.
func ExampleTable_Routes() {
	m, _ := builder.Map([]builder.BuilderOption{builder.WithOneWay()},
		builder.Chain("A", "B", "D"),
		builder.Chain("A", "C", "D"),
	)
	tb, _ := apsp.Build(context.Background(), m)

	a, _ := m.ByName("A")
	d, _ := m.ByName("D")
	routes, _ := tb.Routes(a.ID, d.ID)
	for _, r := range routes {
		for i, sid := range r {
			s, _ := m.ByID(sid)
			if i > 0 {
				fmt.Print(" ")
			}
			fmt.Print(s.Name)
		}
		fmt.Println()
	}
	// Output:
	// A B D
	// A C D
}

// ExampleTable_Diameter reports the longest shortest route on a ring.
func ExampleTable_Diameter() {
	m, _ := builder.Map([]builder.BuilderOption{builder.WithOneWay()}, builder.Cycle(4))
	tb, _ := apsp.Build(context.Background(), m)

	dia := tb.Diameter()
	fmt.Println("diameter", dia.Distance, "pairs", len(dia.Endpoints))
	// Output:
	// diameter 3 pairs 4
}
