// Package main provides the apple-docs-mcp CLI: the MCP server plus local
// tooling for inspecting and querying the bundled WWDC corpus.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bull/apple-docs-mcp/internal/app"
	"github.com/bull/apple-docs-mcp/internal/config"
)

// cli carries the state shared by every subcommand.
type cli struct {
	configPath string
	dataDir    string
	logLevel   string

	app *app.App
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "apple-docs-mcp",
		Short: "WWDC and Apple Developer Documentation MCP server",
		Long: `MCP server exposing the bundled WWDC session library and Apple Developer
Documentation pages, plus commands to inspect and query the corpus locally.

Environment variables:
  APPLE_DOCS_CONFIG   Path to a YAML config file (same as --config)
  WWDC_DATA_DIR       Directory of the bundled WWDC corpus (default: data)
  SERVER_MODE         "true" or "http" serves streamable HTTP instead of stdio
  PORT                HTTP port (default: 8080)
  LOG_LEVEL           debug, info, warn or error (default: info)`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", os.Getenv("APPLE_DOCS_CONFIG"), "path to a YAML config file")
	root.PersistentFlags().StringVar(&c.dataDir, "data-dir", "", "directory of the bundled WWDC corpus")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(
		newServeCmd(c),
		newCheckCmd(c),
		newVerifyCmd(c),
		newListCmd(c),
		newSearchCmd(c),
		newVideoCmd(c),
		newCodeCmd(c),
		newTopicsCmd(c),
	)
	return root
}

// setup loads the configuration, applies flags and builds the application.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.dataDir != "" {
		cfg.DataDir = c.dataDir
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	c.app = app.New(cfg, app.NewLogger(cmd.ErrOrStderr(), cfg))
	return nil
}

func main() {
	// Load .env file if present (local development), ignore if missing (production)
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
