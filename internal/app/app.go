// Package app wires the corpus store, index, search engine and Apple docs
// client into one process-wide service.
package app

import (
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/bull/apple-docs-mcp/internal/appledocs"
	"github.com/bull/apple-docs-mcp/internal/config"
	"github.com/bull/apple-docs-mcp/internal/corpus"
	"github.com/bull/apple-docs-mcp/internal/index"
	"github.com/bull/apple-docs-mcp/internal/render"
	"github.com/bull/apple-docs-mcp/internal/search"
)

// App owns every long-lived component. Production builds one per process;
// tests build a fresh one per case.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Store    *corpus.Store
	Index    *index.Index
	Engine   *search.Engine
	Docs     *appledocs.Client
	Renderer *render.Renderer
}

// New builds an App reading the corpus from cfg.DataDir.
func New(cfg *config.Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return build(cfg, corpus.NewDirStore(cfg.DataDir, logger), logger)
}

// NewFromFS builds an App over an arbitrary corpus file system.
func NewFromFS(cfg *config.Config, fsys fs.FS, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return build(cfg, corpus.NewStore(fsys, logger), logger)
}

func build(cfg *config.Config, store *corpus.Store, logger *slog.Logger) *App {
	idx := index.New(store,
		index.WithLogger(logger),
		index.WithDetailCacheSize(cfg.Search.DetailCacheSize),
	)
	engine := search.NewEngine(idx,
		search.WithLogger(logger),
		search.WithMaxCandidates(cfg.Search.MaxCandidates),
		search.WithLoadConcurrency(cfg.Search.LoadConcurrency),
	)
	docs := appledocs.NewClient(
		appledocs.WithBaseURL(cfg.AppleDocs.BaseURL),
		appledocs.WithTimeout(cfg.AppleDocs.Timeout),
		appledocs.WithRetries(cfg.AppleDocs.Retries),
		appledocs.WithCacheSize(cfg.AppleDocs.CacheSize),
		appledocs.WithLogger(logger),
	)

	return &App{
		Config:   cfg,
		Logger:   logger,
		Store:    store,
		Index:    idx,
		Engine:   engine,
		Docs:     docs,
		Renderer: render.New(logger),
	}
}

// Reset drops every cache. The next call reloads from the corpus.
func (a *App) Reset() {
	a.Index.Reset()
	a.Store.Reset()
	a.Docs.ClearCache()
}

// NewLogger returns a text logger writing to w at the configured level.
// Logs go to stderr in production so the stdio transport stays clean.
func NewLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.Level()}))
}
