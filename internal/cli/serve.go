package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flightmesh/pkg/server"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		load    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the point-graph engine over HTTP",
		Long: `Serve the point-graph engine over HTTP.

The server holds one point set in memory. Clients add, move and remove points,
read the distance matrix, and download DOT, SVG or CSV renditions of the
current state. Use --load to start from a CSV export.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.cfg.Server.Addr
			}
			return c.runServe(cmd.Context(), addr, load, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&load, "load", "", "CSV export to load at startup")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable artifact caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, load string, noCache bool) error {
	engine := c.newEngine()
	if load != "" {
		data, err := readInput(load)
		if err != nil {
			return err
		}
		if err := engine.Import(ctx, data); err != nil {
			return fmt.Errorf("import %s: %w", load, err)
		}
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	printInfo("Serving the point-graph API")
	printKeyValue("Address", addr)
	printKeyValue("Max range", formatKm(c.cfg.MaxRangeKm))
	printKeyValue("Points", fmt.Sprintf("%d", len(engine.Points())))
	return server.New(engine, runner, c.Logger).ListenAndServe(ctx, addr)
}
