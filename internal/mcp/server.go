package mcp

import (
	"context"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bull/apple-docs-mcp/internal/app"
)

const (
	serverName    = "apple-docs"
	serverVersion = "v0.1.0"
)

const instructions = `Tools for Apple developer content.
Use list_wwdc_videos, browse_wwdc_topics and search_wwdc_content to find WWDC sessions,
then get_wwdc_video for the full transcript and code of one session.
get_wwdc_code_examples collects code across sessions.
get_apple_doc_content renders a page of the Apple Developer Documentation.`

// Server wraps the MCP server with dependencies.
type Server struct {
	server *mcp.Server
	app    *app.App
}

// NewServer creates a configured MCP server with tools registered.
func NewServer(a *app.App) *Server {
	impl := &mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}

	server := mcp.NewServer(impl, &mcp.ServerOptions{
		Instructions: instructions,
		Logger:       a.Logger,
		HasTools:     true,
		GetSessionID: uuid.NewString,
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_wwdc_videos",
		Description: "List WWDC videos with filtering options. Results are grouped by year, most recent first.",
	}, makeListVideosHandler(a))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_wwdc_content",
		Description: "Search within WWDC video transcripts and code examples. Videos with more matches are listed first.",
	}, makeSearchContentHandler(a))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_wwdc_video",
		Description: "Get detailed information for a specific WWDC video, including transcript and code examples.",
	}, makeGetVideoHandler(a))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_wwdc_code_examples",
		Description: "Extract code examples from WWDC videos, filtered by framework, topic, year or language.",
	}, makeCodeExamplesHandler(a))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "browse_wwdc_topics",
		Description: "Browse WWDC topics and their associated videos. Leave topic_id empty to list all topics.",
	}, makeBrowseTopicsHandler(a))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_apple_doc_content",
		Description: "Get detailed content from a specific Apple Developer Documentation page.",
	}, makeAppleDocHandler(a))

	return &Server{
		server: server,
		app:    a,
	}
}

// Run starts the server with stdio transport (blocks until client disconnects).
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// MCPServer returns the underlying MCP server instance.
// Used by transport handlers that need to wrap the server.
func (s *Server) MCPServer() *mcp.Server {
	return s.server
}
