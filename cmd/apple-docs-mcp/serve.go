package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bull/apple-docs-mcp/internal/config"
	mcpserver "github.com/bull/apple-docs-mcp/internal/mcp"
)

func newServeCmd(c *cli) *cobra.Command {
	var (
		useHTTP   bool
		port      int
		stateless bool
		health    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server",
		Long: `Runs the MCP server over stdio, or over streamable HTTP with --http.

In HTTP mode the server also answers / (landing page) and /health (corpus
availability, 503 while the corpus is missing).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.app.Config
			if useHTTP {
				cfg.Transport = config.TransportHTTP
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if !c.app.Store.IsDataAvailable() {
				c.app.Logger.Warn("WWDC data not found", "data_dir", cfg.DataDir)
			}

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer cancel()

			return mcpserver.Serve(ctx, c.app, mcpserver.ServeOptions{
				HealthInStdio: health,
				Stateless:     stateless,
			})
		},
	}

	cmd.Flags().BoolVar(&useHTTP, "http", false, "serve streamable HTTP instead of stdio")
	cmd.Flags().IntVar(&port, "port", 8080, "HTTP port")
	cmd.Flags().BoolVar(&stateless, "stateless", false, "disable MCP session tracking in HTTP mode")
	cmd.Flags().BoolVar(&health, "health", false, "also serve /health over HTTP in stdio mode")
	return cmd
}
