package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depth/internal/server"
)

const shutdownTimeout = 5 * time.Second

// serveCommand creates the "serve" command, which exposes trees over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		opts      registryOptions
		addr      string
		maxLevels int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve dependency trees over HTTP",
		Long: `Start an HTTP server with tree, DOT and JSON endpoints:

  GET /crates/{name}/tree?levels=1&optional=false
  GET /crates/{name}/graph.dot
  GET /crates/{name}/graph.json
  GET /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			registry, closeRegistry, err := c.openRegistry(ctx, opts)
			if err != nil {
				return err
			}
			defer closeRegistry()

			srv := &http.Server{
				Addr: addr,
				Handler: server.New(server.Config{
					Registry:  registry,
					Logger:    logger,
					MaxLevels: maxLevels,
				}).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
				BaseContext:       func(net.Listener) context.Context { return ctx },
			}
			return c.listenAndServe(ctx, srv)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().IntVar(&maxLevels, "max-levels", server.DefaultMaxLevels, "upper bound for the levels query parameter")
	opts.register(cmd)
	return cmd
}

// listenAndServe runs srv until it fails or ctx is cancelled, then shuts it
// down gracefully.
func (c *CLI) listenAndServe(ctx context.Context, srv *http.Server) error {
	logger := loggerFromContext(ctx)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
