// Package config provides configuration loading for the Apple docs MCP server.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Transports.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config holds all configuration for the server.
type Config struct {
	DataDir   string          `yaml:"data_dir" validate:"required"`
	Transport string          `yaml:"transport" validate:"oneof=stdio http"`
	Host      string          `yaml:"host"`
	Port      int             `yaml:"port" validate:"min=1,max=65535"`
	LogLevel  string          `yaml:"log_level" validate:"oneof=debug info warn error"`
	Search    SearchConfig    `yaml:"search"`
	AppleDocs AppleDocsConfig `yaml:"apple_docs"`
}

// SearchConfig bounds the work done by the WWDC search engine.
type SearchConfig struct {
	DetailCacheSize int `yaml:"detail_cache_size" validate:"min=1"`
	MaxCandidates   int `yaml:"max_candidates" validate:"min=1,max=50"`
	LoadConcurrency int `yaml:"load_concurrency" validate:"min=1,max=20"`
}

// AppleDocsConfig holds Apple Developer Documentation client settings.
type AppleDocsConfig struct {
	BaseURL   string        `yaml:"base_url" validate:"omitempty,url"`
	Timeout   time.Duration `yaml:"timeout" validate:"gt=0"`
	Retries   int           `yaml:"retries" validate:"min=0,max=10"`
	CacheSize int           `yaml:"cache_size" validate:"min=1"`
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Level returns the slog level of LogLevel.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Load builds the configuration from defaults, the optional YAML file at
// path and environment variables, in increasing order of precedence.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		cfg.DataDir = expandPath(cfg.DataDir, filepath.Dir(path))
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with the environment variables that are set.
func ApplyEnv(cfg *Config) error {
	cfg.DataDir = getEnv("WWDC_DATA_DIR", cfg.DataDir)
	if v := os.Getenv("SERVER_MODE"); v != "" {
		if v == "true" || v == TransportHTTP {
			cfg.Transport = TransportHTTP
		} else {
			cfg.Transport = TransportStdio
		}
	}
	cfg.Host = getEnv("HOST", cfg.Host)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.AppleDocs.BaseURL = getEnv("APPLE_DOCS_BASE_URL", cfg.AppleDocs.BaseURL)

	ints := []struct {
		key string
		dst *int
	}{
		{"PORT", &cfg.Port},
		{"WWDC_DETAIL_CACHE_SIZE", &cfg.Search.DetailCacheSize},
		{"WWDC_MAX_CANDIDATES", &cfg.Search.MaxCandidates},
		{"WWDC_LOAD_CONCURRENCY", &cfg.Search.LoadConcurrency},
		{"APPLE_DOCS_RETRIES", &cfg.AppleDocs.Retries},
		{"APPLE_DOCS_CACHE_SIZE", &cfg.AppleDocs.CacheSize},
	}
	for _, e := range ints {
		v, err := getEnvInt(e.key, *e.dst)
		if err != nil {
			return err
		}
		*e.dst = v
	}

	if v := os.Getenv("APPLE_DOCS_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("APPLE_DOCS_TIMEOUT: %w", err)
		}
		cfg.AppleDocs.Timeout = d
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return i, nil
}

// expandPath resolves a relative path against the config file directory.
func expandPath(path, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(configDir, path)
}
