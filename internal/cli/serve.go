// SPDX-License-Identifier: MIT

package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/planb/internal/server"
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web form and JSON API",
		Long: `Serve route queries over HTTP until interrupted.

With --eager the all-pairs table is built before the listener opens;
otherwise the first query that needs it pays for the build.`,
		Example: `  planb serve --addr :8080 --eager`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			p, e, err := newPlanner(ctx)
			if err != nil {
				return err
			}
			if e.cfg.APSP.Eager {
				began := time.Now()
				if _, err := p.Table(ctx); err != nil {
					return err
				}
				e.logger.InfoContext(ctx, "table ready", "took", time.Since(began))
			}

			srv := server.New(server.Config{
				Planner:           p,
				Addr:              e.cfg.Server.Addr,
				ReadHeaderTimeout: e.cfg.Server.ReadHeaderTimeout,
				ShutdownTimeout:   e.cfg.Server.ShutdownTimeout,
				Alternatives:      e.cfg.AltOptions(),
				Logger:            e.logger,
			})

			return srv.Serve(ctx)
		},
	}

	cmd.Flags().String("addr", "", "listen address (default :8080)")
	cmd.Flags().Bool("eager", false, "build the all-pairs table at startup")

	return cmd
}
