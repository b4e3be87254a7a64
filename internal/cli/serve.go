package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/autolayout/internal/server"
	"github.com/matzehuels/autolayout/pkg/engine/dot"
	"github.com/matzehuels/autolayout/pkg/metrics"
)

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout API over HTTP.

Routes:
  POST /api/v1/layout   lay out a diagram
  GET  /healthz         liveness and build info
  GET  /metrics         Prometheus metrics

The server runs until interrupted and then drains in-flight requests.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if lvl, err := cfg.LogLevel(); err == nil && !cmd.Flags().Changed("verbose") {
				c.SetLogLevel(lvl)
			}

			eng, closeFn, err := c.newEngine(cmd.Context(), cfg, noCache)
			if err != nil {
				return err
			}
			defer closeFn()

			metrics.NewHooks(prometheus.DefaultRegisterer).Install()

			srv := server.New(server.Options{
				Addr:              cfg.Server.Addr,
				RequestTimeout:    cfg.Server.RequestTimeout,
				MaxBodyBytes:      cfg.Server.MaxBodyBytes,
				Engine:            eng,
				EngineName:        dot.Name,
				EngineOptions:     cfg.Engine,
				OptimizeOnFailure: cfg.Layout.OptimizeOnFailure,
				Logger:            c.Logger,
			})
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (overrides server.addr)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
