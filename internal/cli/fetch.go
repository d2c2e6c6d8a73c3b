// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/planb/mapdata"
)

func newFetchCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the universe from ESI",
		Long: `Download every solar system and stargate from the ESI universe API and
write them as a dump the other commands can load. A path ending in .gz
is gzip-compressed.`,
		Example: `  planb fetch --out eve-map.json.gz
  planb fetch --out map.json --rate 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if out == "" {
				return errors.New("fetch: --out is required")
			}
			ctx := cmd.Context()
			e := envFrom(ctx)

			f := mapdata.NewFetcher(
				mapdata.WithEndpoint(e.cfg.Fetch.Endpoint),
				mapdata.WithRate(e.cfg.Fetch.Rate),
				mapdata.WithWorkers(e.cfg.Fetch.Workers),
				mapdata.WithRetries(e.cfg.Fetch.Retries),
				mapdata.WithFetchLogger(e.logger),
			)
			d, err := f.Fetch(ctx)
			if err != nil {
				return err
			}
			if err := d.Write(out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d systems and %d stargates to %s\n",
				len(d.Systems), len(d.Stargates), out)

			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output path")
	cmd.Flags().String("endpoint", "", "ESI base URL (default "+mapdata.DefaultEndpoint+")")
	cmd.Flags().Float64("rate", 0, "requests per second, 0 for no limit (default 20)")

	return cmd
}
