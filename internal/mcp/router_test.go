package mcp_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bull/apple-docs-mcp/internal/corpus"
	"github.com/bull/apple-docs-mcp/internal/corpus/corpustest"
	mcpserver "github.com/bull/apple-docs-mcp/internal/mcp"
)

type fakeChecker struct {
	err     error
	metaErr error
}

func (f fakeChecker) Health(context.Context) error { return f.err }

func (f fakeChecker) LoadGlobalMetadata(context.Context) (*corpus.GlobalMetadata, error) {
	if f.metaErr != nil {
		return nil, f.metaErr
	}
	meta := corpustest.Metadata()
	return &meta, nil
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		checker    fakeChecker
		wantCode   int
		wantStatus string
		wantCorpus string
		wantVideos int
	}{
		{"healthy", fakeChecker{}, http.StatusOK, "healthy", "available", 5},
		{"unavailable", fakeChecker{err: errors.New("index.json missing")}, http.StatusServiceUnavailable, "unhealthy", "unavailable", 0},
		{"corrupt index", fakeChecker{metaErr: errors.New("invalid index.json")}, http.StatusServiceUnavailable, "unhealthy", "unavailable", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mcpserver.NewHealthHandler(tt.checker)(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body mcpserver.HealthResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, tt.wantCorpus, body.Corpus)
			assert.Equal(t, tt.wantVideos, body.Videos)
			assert.NotEmpty(t, body.Timestamp)
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, "1.0.0", body.Version)
				assert.Equal(t, []string{"2024", "2023", "2022"}, body.Years)
				assert.Empty(t, body.Error)
			} else {
				assert.NotEmpty(t, body.Error)
			}
		})
	}
}

func TestRouter(t *testing.T) {
	a := newApp(t, corpustest.FS(), "")
	router := mcpserver.NewRouter(mcpserver.NewServer(a), a.Store, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Apple Docs MCP Server")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"videos":5`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_HealthWithoutCorpus(t *testing.T) {
	a := newApp(t, fstest.MapFS{}, "")
	router := mcpserver.NewRouter(mcpserver.NewServer(a), a.Store, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_StreamableHTTP(t *testing.T) {
	a := newApp(t, corpustest.FS(), "")
	ts := httptest.NewServer(mcpserver.NewRouter(mcpserver.NewServer(a), a.Store, nil))
	t.Cleanup(ts.Close)

	ctx := context.Background()
	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: ts.URL + "/mcp"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cs.Close() })

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "list_wwdc_videos",
		Arguments: map[string]any{"year": "2022"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, res.Content[0].(*mcp.TextContent).Text, "Xcode tips")
}
