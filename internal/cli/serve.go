package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rohith0110/Wikipedia-Graph/internal/server"
	"github.com/rohith0110/Wikipedia-Graph/pkg/observability"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		origins   []string
		noMetrics bool
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout service",
		Long: `Run the HTTP layout service.

POST element arrays to /api/layout to get a layout back, or to /api/view to
make it the current view served at GET /api/view. Prometheus metrics are
exposed at /metrics unless disabled.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("cors-origin") {
				cfg.CORSOrigins = origins
			}
			if noMetrics {
				cfg.Metrics = false
			}
			return c.runServe(cmd.Context(), cfg.Addr, server.Options{
				CORSOrigins:  cfg.CORSOrigins,
				MaxBodyBytes: cfg.MaxBodyBytes,
				ReadTimeout:  cfg.ReadTimeout.Std(),
				WriteTimeout: cfg.WriteTimeout.Std(),
			}, cfg.Metrics, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringSliceVar(&origins, "cors-origin", nil, "allowed CORS origin (repeatable)")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "do not expose /metrics")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, opts server.Options, metrics, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	if metrics {
		prom := observability.NewPrometheus(nil)
		observability.SetLayoutHooks(prom)
		observability.SetCacheHooks(prom)
		observability.SetHTTPHooks(prom)
		defer observability.Reset()
		opts.Metrics = prom
	}

	opts.Defaults = c.Config.PipelineOptions()
	opts.Logger = c.Logger

	printInfo("Serving on %s", addr)
	return server.New(runner, opts).ListenAndServe(ctx, addr)
}
