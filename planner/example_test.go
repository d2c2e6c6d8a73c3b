package planner_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/katalvlaran/planb/builder"
	"github.com/katalvlaran/planb/planner"
)

func ExamplePlanner_AllShortestRoutes() {
	m, _ := builder.Map(nil,
		builder.Chain("Jita", "Perimeter", "Amarr"),
		builder.Chain("Jita", "Urlen", "Amarr"),
	)
	p, _ := planner.New(m)
	jita, _ := p.Resolve("Jita")
	amarr, _ := p.Resolve("Amarr")

	routes, _, _ := p.AllShortestRoutes(context.Background(), jita, amarr)
	for _, r := range routes {
		fmt.Println(strings.Join(p.Names(r), " → "))
	}
	// Output:
	// Jita → Perimeter → Amarr
	// Jita → Urlen → Amarr
}
