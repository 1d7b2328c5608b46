package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/bull/apple-docs-mcp/internal/corpus"
)

// HealthResponse represents the JSON response from the health check endpoint.
type HealthResponse struct {
	Status      string   `json:"status"`
	Corpus      string   `json:"corpus"`
	Version     string   `json:"version,omitempty"`
	LastUpdated string   `json:"last_updated,omitempty"`
	Years       []string `json:"years,omitempty"`
	Videos      int      `json:"videos,omitempty"`
	Error       string   `json:"error,omitempty"`
	Timestamp   string   `json:"timestamp"`
}

// HealthChecker is the corpus dependency of the health check.
// *corpus.Store implements it.
type HealthChecker interface {
	Health(ctx context.Context) error
	LoadGlobalMetadata(ctx context.Context) (*corpus.GlobalMetadata, error)
}

// NewHealthHandler creates an HTTP handler for the /health endpoint.
// It reports 503 while the bundled corpus cannot be read, and the corpus
// version and size otherwise.
func NewHealthHandler(store HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		response := HealthResponse{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}
		w.Header().Set("Content-Type", "application/json")

		meta, err := corpusMetadata(ctx, store)
		if err != nil {
			response.Status = "unhealthy"
			response.Corpus = "unavailable"
			response.Error = err.Error()
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(response)
			return
		}

		response.Status = "healthy"
		response.Corpus = "available"
		response.Version = meta.Version
		response.LastUpdated = meta.LastUpdated
		response.Years = meta.Years
		for _, n := range meta.Statistics.ByYear {
			response.Videos += n
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(response)
	}
}

// corpusMetadata fails when the corpus is missing or its root index does
// not decode.
func corpusMetadata(ctx context.Context, store HealthChecker) (*corpus.GlobalMetadata, error) {
	if err := store.Health(ctx); err != nil {
		return nil, err
	}
	return store.LoadGlobalMetadata(ctx)
}
