package config

import (
	"github.com/bull/apple-docs-mcp/internal/appledocs"
	"github.com/bull/apple-docs-mcp/internal/index"
	"github.com/bull/apple-docs-mcp/internal/search"
)

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		DataDir:   "data",
		Transport: TransportStdio,
		Host:      "0.0.0.0",
		Port:      8080,
		LogLevel:  "info",
		Search: SearchConfig{
			DetailCacheSize: index.DefaultDetailCacheSize,
			MaxCandidates:   search.DefaultMaxCandidates,
			LoadConcurrency: search.DefaultLoadConcurrency,
		},
		AppleDocs: AppleDocsConfig{
			BaseURL:   appledocs.DefaultBaseURL,
			Timeout:   appledocs.DefaultTimeout,
			Retries:   appledocs.DefaultRetries,
			CacheSize: appledocs.DefaultCacheSize,
		},
	}
}
