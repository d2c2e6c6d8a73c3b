// SPDX-License-Identifier: MIT

// Package cli provides the planb command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/planb/internal/config"
	"github.com/katalvlaran/planb/mapdata"
	"github.com/katalvlaran/planb/planner"
	"github.com/katalvlaran/planb/starmap"
)

// Version information (set at build time).
var Version = "0.1.0"

// ErrNoRoute is returned by route commands when goal is unreachable.
var ErrNoRoute = errors.New("no route")

// envKey stores the loaded environment in the command context.
type envKey struct{}

// env is what every subcommand shares after PersistentPreRunE.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCmd creates the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "planb",
		Short: "Plan B - route planner for the EVE stargate network",
		Long: `planb answers shortest-route questions over a universe dump:
a single shortest route, every tied shortest route, a few dissimilar
alternatives, and the diameter of the network.

Settings come from defaults, planb.yaml, PLANB_* environment variables
and flags, in increasing order of precedence.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			e := &env{cfg: cfg, logger: cfg.Logger(cmd.ErrOrStderr())}
			cmd.SetContext(context.WithValue(cmd.Context(), envKey{}, e))

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./planb.yaml)")
	pf.String("map", "", "path to the universe dump (default: "+mapdata.DefaultPath+")")
	pf.Bool("keep-gateless", false, "keep systems without gate data")
	pf.Int("workers", 0, "table build parallelism (0: GOMAXPROCS)")
	pf.String("log-level", "", "log level (debug|info|warn|error)")
	pf.String("log-format", "", "log format (text|json)")

	_ = root.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = root.RegisterFlagCompletionFunc("log-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	root.AddCommand(
		newRouteCommand(),
		newRoutesCommand(),
		newAltCommand(),
		newDiameterCommand(),
		newServeCommand(),
		newFetchCommand(),
	)

	return root
}

// ExitCode maps a command error to a process exit status: 2 for an
// unreachable goal or unknown system, 1 for anything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrNoRoute), errors.Is(err, starmap.ErrSystemNotFound):
		return 2
	default:
		return 1
	}
}

func envFrom(ctx context.Context) *env {
	if e, ok := ctx.Value(envKey{}).(*env); ok {
		return e
	}
	cfg, _ := config.Load("", nil)

	return &env{cfg: cfg, logger: slog.New(slog.DiscardHandler)}
}

// newPlanner loads the configured map and wraps it in a Planner.
func newPlanner(ctx context.Context) (*planner.Planner, *env, error) {
	e := envFrom(ctx)

	var opts []starmap.Option
	if e.cfg.Map.KeepGateless {
		opts = append(opts, starmap.WithGatelessSystems())
	}
	m, err := mapdata.LoadMap(e.cfg.Map.Path, opts...)
	if err != nil {
		return nil, e, fmt.Errorf("loading map: %w", err)
	}
	e.logger.DebugContext(ctx, "map loaded",
		"path", e.cfg.Map.Path, "systems", m.Len(), "gates", m.Gates(), "excluded", len(m.Excluded()))

	p, err := planner.New(m, planner.WithLogger(e.logger), planner.WithWorkers(e.cfg.Workers()))
	if err != nil {
		return nil, e, err
	}

	return p, e, nil
}

// endpoints resolves START and GOAL names.
func endpoints(p *planner.Planner, args []string) (start, goal starmap.SystemID, err error) {
	if start, err = p.Resolve(args[0]); err != nil {
		return 0, 0, err
	}
	if goal, err = p.Resolve(args[1]); err != nil {
		return 0, 0, err
	}

	return start, goal, nil
}
