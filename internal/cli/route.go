// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/planb/altroute"
	"github.com/katalvlaran/planb/starmap"
)

func newRouteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "route START GOAL",
		Short: "Print one shortest route",
		Long: `Print a shortest route from START to GOAL, one system name per line.

The route is found by a single breadth-first search; the all-pairs table
is not built.`,
		Example: `  planb route Jita Amarr`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := newPlanner(cmd.Context())
			if err != nil {
				return err
			}
			start, goal, err := endpoints(p, args)
			if err != nil {
				return err
			}
			route, ok, err := p.ShortestRoute(start, goal)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w from %s to %s", ErrNoRoute, args[0], args[1])
			}
			writeLines(cmd.OutOrStdout(), p.Names(route))

			return nil
		},
	}
}

func newRoutesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "routes START GOAL",
		Short: "Print every shortest route",
		Long: `Print every shortest route from START to GOAL, one per line with
systems joined by arrows, in gate order.`,
		Example: `  planb routes Jita Amarr`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := newPlanner(cmd.Context())
			if err != nil {
				return err
			}
			start, goal, err := endpoints(p, args)
			if err != nil {
				return err
			}
			routes, ok, err := p.AllShortestRoutes(cmd.Context(), start, goal)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w from %s to %s", ErrNoRoute, args[0], args[1])
			}
			writeRoutes(cmd.OutOrStdout(), p.Names, routes)

			return nil
		},
	}
}

func newAltCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alt START GOAL",
		Short: "Print the shortest route and dissimilar alternatives",
		Long: `Print the shortest route from START to GOAL followed by up to --max - 1
alternatives that share little with it, are locally shortest and do not
stretch far beyond the shortest distance.`,
		Example: `  planb alt Jita Amarr
  planb alt Jita Amarr --max 5 --sharing 0.5`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, e, err := newPlanner(cmd.Context())
			if err != nil {
				return err
			}
			start, goal, err := endpoints(p, args)
			if err != nil {
				return err
			}
			routes, ok, err := p.AlternativeRoutes(cmd.Context(), start, goal, e.cfg.AltOptions())
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w from %s to %s", ErrNoRoute, args[0], args[1])
			}
			writeRoutes(cmd.OutOrStdout(), p.Names, routes)

			return nil
		},
	}

	def := altroute.DefaultOptions()
	cmd.Flags().Int("max", def.MaxRoutes, "maximum number of routes, baseline included")
	cmd.Flags().Float64("sharing", def.Sharing, "maximum fraction of shared gates")
	cmd.Flags().Float64("local-opt", def.LocalOpt, "locally-shortest window as a fraction of the distance")
	cmd.Flags().Float64("ub-stretch", def.UBStretch, "allowed stretch of detour subpaths")

	return cmd
}

func newDiameterCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "diameter",
		Short: "Print the network diameter and its endpoints",
		Long: `Print the longest finite shortest distance between any ordered pair of
systems, then every pair at that distance.`,
		Example: `  planb diameter --workers 8`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, _, err := newPlanner(cmd.Context())
			if err != nil {
				return err
			}
			d, err := p.Diameter(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "diameter %d\n", d.Distance)
			for _, pair := range d.Endpoints {
				names := p.Names([]starmap.SystemID{pair.From, pair.To})
				fmt.Fprintf(w, "%s → %s\n", names[0], names[1])
			}

			return nil
		},
	}
}

func writeLines(w io.Writer, lines []string) {
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}

func writeRoutes(w io.Writer, names func([]starmap.SystemID) []string, routes [][]starmap.SystemID) {
	for _, r := range routes {
		fmt.Fprintln(w, strings.Join(names(r), " → "))
	}
}
