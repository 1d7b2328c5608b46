package mcp

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the landing page, the health check and the MCP endpoint.
func NewRouter(server *Server, health HealthChecker, opts *HTTPHandlerOptions) *chi.Mux {
	logger := server.app.Logger

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/", NewLandingHandler())
	r.Get("/health", NewHealthHandler(health))
	r.Handle("/mcp", NewHTTPHandler(server, opts))

	return r
}

// requestLogger logs one line per request. chi's middleware.Logger writes to
// stdout, which belongs to the stdio transport.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"request_id", middleware.GetReqID(r.Context()),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
