package mcp

import (
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// HTTPHandlerOptions configures the streamable HTTP endpoint.
type HTTPHandlerOptions struct {
	// Stateless skips session tracking; every tool here is a pure read, so
	// no server-to-client request ever needs a session. Default: stateful.
	Stateless bool

	// JSONResponse answers with application/json instead of an SSE stream.
	JSONResponse bool
}

// NewHTTPHandler serves the MCP server over streamable HTTP.
// Every request is served by the same *mcp.Server, so sessions share the
// process-wide index and caches.
func NewHTTPHandler(server *Server, opts *HTTPHandlerOptions) http.Handler {
	if opts == nil {
		opts = &HTTPHandlerOptions{}
	}

	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server.MCPServer()
	}, &mcp.StreamableHTTPOptions{
		Stateless:    opts.Stateless,
		JSONResponse: opts.JSONResponse,
	})
}
