package mcp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bull/apple-docs-mcp/internal/app"
	"github.com/bull/apple-docs-mcp/internal/config"
)

const shutdownTimeout = 5 * time.Second

// ServeOptions selects how Serve exposes the server.
type ServeOptions struct {
	// HealthInStdio also serves the HTTP routes while the stdio transport
	// runs, for local health checks.
	HealthInStdio bool
	Stateless     bool
}

// Serve runs the MCP server until ctx is cancelled or the client disconnects.
// In http mode the router owns the listener; in stdio mode the server reads
// stdin and writes stdout.
func Serve(ctx context.Context, a *app.App, opts ServeOptions) error {
	server := NewServer(a)
	router := NewRouter(server, a.Store, &HTTPHandlerOptions{Stateless: opts.Stateless})

	httpServer := &http.Server{
		Addr:              a.Config.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if a.Config.Transport == config.TransportHTTP {
		a.Logger.Info("Starting HTTP server", "addr", httpServer.Addr, "mcp", "/mcp", "health", "/health")
		return listenUntilDone(ctx, httpServer)
	}

	if opts.HealthInStdio {
		go func() {
			a.Logger.Info("Starting health server", "addr", httpServer.Addr)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.Logger.Warn("Health server error", "error", err)
			}
		}()
		defer shutdown(httpServer)
	}

	a.Logger.Info("Starting Apple Docs MCP Server (stdio mode)", "data_dir", a.Config.DataDir)
	return server.Run(ctx)
}

func listenUntilDone(ctx context.Context, srv *http.Server) error {
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return shutdown(srv)
	}
}

func shutdown(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
