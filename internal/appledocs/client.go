package appledocs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/bull/apple-docs-mcp/internal/cache"
)

const (
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second
	// DefaultRetries is the number of retries after the first attempt.
	DefaultRetries = 3
	// DefaultCacheSize bounds the number of cached responses.
	DefaultCacheSize = 100

	userAgent = "Mozilla/5.0 (Macintosh; arm64 Mac OS X 15_1) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/18.1 Safari/605.1.15"
)

// Client fetches documentation JSON from developer.apple.com.
// Responses are cached by URL; 429, 5xx and network failures are retried with
// exponential backoff.
type Client struct {
	http            *http.Client
	baseURL         string
	retries         uint64
	initialInterval time.Duration
	cache           *cache.LRU[string, []byte]
	logger          *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithBaseURL sends requests to another origin. The developer.apple.com
// origin of every request URL is replaced with baseURL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimSuffix(baseURL, "/")
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithRetries sets the number of retries after the first attempt.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retries = uint64(n)
		}
	}
}

// WithInitialInterval sets the first backoff interval.
func WithInitialInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.initialInterval = d
		}
	}
}

// WithCacheSize sets the response cache capacity.
func WithCacheSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.cache = cache.NewLRU[string, []byte](n)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client with the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:            &http.Client{Timeout: DefaultTimeout},
		baseURL:         DefaultBaseURL,
		retries:         DefaultRetries,
		initialInterval: time.Second,
		cache:           cache.NewLRU[string, []byte](DefaultCacheSize),
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetJSON fetches rawURL and decodes the JSON body into v.
func (c *Client) GetJSON(ctx context.Context, rawURL string, v any) error {
	body, err := c.get(ctx, rawURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", ErrParseFailed, err)
	}
	return nil
}

// ClearCache drops every cached response.
func (c *Client) ClearCache() {
	c.cache.Purge()
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	if body, ok := c.cache.Get(rawURL); ok {
		return body, nil
	}

	body, err := c.getWithRetry(ctx, c.endpoint(rawURL))
	if err != nil {
		return nil, err
	}
	c.cache.Add(rawURL, body)
	return body, nil
}

// endpoint rewrites the developer.apple.com origin to the configured base URL.
func (c *Client) endpoint(rawURL string) string {
	if c.baseURL == DefaultBaseURL {
		return rawURL
	}
	if rest, ok := strings.CutPrefix(rawURL, DefaultBaseURL); ok {
		return c.baseURL + rest
	}
	return rawURL
}

// statusError is a non-2xx response.
type statusError struct {
	code int
	url  string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("GET %s: %d %s", e.url, e.code, http.StatusText(e.code))
}

// getWithRetry performs the GET with exponential backoff.
// 404 and other 4xx responses except 429 fail immediately.
func (c *Client) getWithRetry(ctx context.Context, url string) ([]byte, error) {
	var body []byte

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err // Will retry with backoff
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			serr := &statusError{code: resp.StatusCode, url: url}
			switch {
			case resp.StatusCode == http.StatusNotFound:
				return backoff.Permanent(fmt.Errorf("%w: %s", ErrNotFound, url))
			case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode >= 500:
				return serr
			default:
				return backoff.Permanent(serr)
			}
		}

		body, err = io.ReadAll(resp.Body)
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialInterval
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 2 * time.Minute

	notify := func(err error, wait time.Duration) {
		c.logger.Warn("Retrying documentation request", "url", url, "error", err, "wait", wait)
	}

	err := backoff.RetryNotify(operation, backoff.WithContext(backoff.WithMaxRetries(b, c.retries), ctx), notify)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	return body, nil
}
