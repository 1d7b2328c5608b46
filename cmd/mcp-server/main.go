// Package main provides the MCP server entry point for WWDC and Apple documentation.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/bull/apple-docs-mcp/internal/app"
	"github.com/bull/apple-docs-mcp/internal/config"
	mcpserver "github.com/bull/apple-docs-mcp/internal/mcp"
)

func main() {
	// Load .env file if present (local development), ignore if missing (production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Create context that cancels on SIGTERM/SIGINT
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	cfg, err := config.Load(os.Getenv("APPLE_DOCS_CONFIG"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	a := app.New(cfg, app.NewLogger(os.Stderr, cfg))
	if !a.Store.IsDataAvailable() {
		// Tools still answer, each with a data-unavailable failure.
		a.Logger.Warn("WWDC data not found", "data_dir", cfg.DataDir)
	}

	// The stdio server also serves /health in the background for local testing.
	if err := mcpserver.Serve(ctx, a, mcpserver.ServeOptions{HealthInStdio: true}); err != nil {
		log.Printf("server error: %v", err)
		os.Exit(1)
	}
}
