package mcp_test

import (
	"context"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bull/apple-docs-mcp/internal/app"
	"github.com/bull/apple-docs-mcp/internal/config"
	"github.com/bull/apple-docs-mcp/internal/corpus/corpustest"
	mcpserver "github.com/bull/apple-docs-mcp/internal/mcp"
)

func newApp(t *testing.T, fsys fs.FS, docsURL string) *app.App {
	t.Helper()
	cfg := config.Default()
	cfg.AppleDocs.Retries = 0
	if docsURL != "" {
		cfg.AppleDocs.BaseURL = docsURL
	}
	return app.NewFromFS(cfg, fsys, nil)
}

// connect starts the server on in-memory transports and returns a client session.
func connect(t *testing.T, a *app.App) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	server := mcpserver.NewServer(a)
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	ss, err := server.MCPServer().Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cs.Close() })
	return cs
}

// call invokes a tool and returns its text and error flag.
func call(t *testing.T, cs *mcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return text.Text, res.IsError
}

func TestListTools(t *testing.T) {
	cs := connect(t, newApp(t, corpustest.FS(), ""))

	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"list_wwdc_videos",
		"search_wwdc_content",
		"get_wwdc_video",
		"get_wwdc_code_examples",
		"browse_wwdc_topics",
		"get_apple_doc_content",
	}, names)
}

func TestListVideosTool(t *testing.T) {
	cs := connect(t, newApp(t, corpustest.FS(), ""))

	text, isErr := call(t, cs, "list_wwdc_videos", map[string]any{"year": "2024", "topic": "swift"})
	assert.False(t, isErr)
	assert.Contains(t, text, "**Filter Conditions:** Year: 2024, Topic: swift")
	assert.Contains(t, text, "**Found 1 videos**")
	assert.Contains(t, text, "### [What's new in Swift]")

	text, isErr = call(t, cs, "list_wwdc_videos", map[string]any{"year": "1999"})
	assert.False(t, isErr, "an empty listing is not an error")
	assert.Equal(t, "No WWDC videos found matching the criteria.", text)

	text, isErr = call(t, cs, "list_wwdc_videos", map[string]any{"year": "24"})
	assert.True(t, isErr)
	assert.Equal(t, "Error: Failed to list WWDC videos: invalid arguments: field 'year' failed on the 'year' tag", text)
}

func TestSearchContentTool(t *testing.T) {
	cs := connect(t, newApp(t, corpustest.FS(), ""))

	text, isErr := call(t, cs, "search_wwdc_content", map[string]any{"query": "@Observable", "search_in": "code"})
	assert.False(t, isErr)
	assert.Contains(t, text, "**Search Scope:** Code")
	assert.Contains(t, text, "> [swift] Model: @Observable class Library {")

	text, isErr = call(t, cs, "search_wwdc_content", map[string]any{"query": "Swift", "search_in": "slides"})
	assert.True(t, isErr)
	assert.True(t, strings.HasPrefix(text, "Error: Failed to search WWDC content: "), text)

	text, isErr = call(t, cs, "search_wwdc_content", map[string]any{"query": "   "})
	assert.True(t, isErr)
	assert.True(t, strings.HasPrefix(text, "Error: Failed to search WWDC content: "), text)

	text, isErr = call(t, cs, "search_wwdc_content", map[string]any{"query": "zebra", "search_in": "transcript"})
	assert.False(t, isErr)
	assert.Equal(t, `No transcript found containing "zebra".`, text)
}

func TestGetVideoTool(t *testing.T) {
	cs := connect(t, newApp(t, corpustest.FS(), ""))

	text, isErr := call(t, cs, "get_wwdc_video", map[string]any{"year": "2024", "video_id": "10123"})
	assert.False(t, isErr)
	assert.True(t, strings.HasPrefix(text, "# What's new in Swift\n"), text)
	assert.Contains(t, text, "## Transcript")
	assert.Contains(t, text, "## Code Examples")

	text, isErr = call(t, cs, "get_wwdc_video", map[string]any{
		"year": "2024", "video_id": "10123", "include_transcript": false, "include_code": false,
	})
	assert.False(t, isErr)
	assert.NotContains(t, text, "## Transcript")
	assert.NotContains(t, text, "## Code Examples")

	text, isErr = call(t, cs, "get_wwdc_video", map[string]any{"year": "2024", "video_id": "99999"})
	assert.True(t, isErr)
	assert.Equal(t, "Video not found: 2024-99999 (WWDC2024 session 99999).", text)
}

func TestCodeExamplesTool(t *testing.T) {
	cs := connect(t, newApp(t, corpustest.FS(), ""))

	text, isErr := call(t, cs, "get_wwdc_code_examples", map[string]any{"framework": "SwiftUI"})
	assert.False(t, isErr)
	assert.Contains(t, text, "Framework: SwiftUI")
	assert.Contains(t, text, "@Observable class Library")
	assert.NotContains(t, text, "Typed throws")
}

func TestBrowseTopicsTool(t *testing.T) {
	cs := connect(t, newApp(t, corpustest.FS(), ""))

	text, isErr := call(t, cs, "browse_wwdc_topics", map[string]any{})
	assert.False(t, isErr)
	assert.Contains(t, text, "Found 4 topics:")
	assert.Contains(t, text, "**Topic ID:** machine-learning-ai")

	text, isErr = call(t, cs, "browse_wwdc_topics", map[string]any{"topic_id": "swift"})
	assert.False(t, isErr)
	assert.Contains(t, text, "# Swift\n")
	assert.Contains(t, text, "## Videos (2)")

	text, isErr = call(t, cs, "browse_wwdc_topics", map[string]any{"topic_id": "swift", "include_videos": false})
	assert.False(t, isErr)
	assert.NotContains(t, text, "## Videos")

	text, isErr = call(t, cs, "browse_wwdc_topics", map[string]any{"topic_id": "cooking"})
	assert.True(t, isErr)
	assert.Equal(t, `Topic "cooking" not found. Available topics: swift, app-architecture, developer-tools, machine-learning-ai`, text)
}

func TestTools_DataUnavailable(t *testing.T) {
	cs := connect(t, newApp(t, fstest.MapFS{}, ""))

	tests := []struct {
		tool string
		args map[string]any
		want string
	}{
		{"list_wwdc_videos", map[string]any{}, "Error: Failed to list WWDC videos: "},
		{"search_wwdc_content", map[string]any{"query": "swift"}, "Error: Failed to search WWDC content: "},
		{"get_wwdc_code_examples", map[string]any{}, "Error: Failed to get WWDC code examples: "},
		{"browse_wwdc_topics", map[string]any{}, "Error: Failed to browse WWDC topics: "},
	}
	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			text, isErr := call(t, cs, tt.tool, tt.args)
			assert.True(t, isErr)
			assert.True(t, strings.HasPrefix(text, tt.want), text)
		})
	}
}

func TestAppleDocTool(t *testing.T) {
	docs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tutorials/data/documentation/swiftui/view.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{
		  "metadata": {"title": "View", "role": "symbol", "roleHeading": "Protocol"},
		  "abstract": [{"type": "text", "text": "A type that represents part of your app's user interface."}],
		  "primaryContentSections": [{"kind": "declarations", "declarations": [{"tokens": [{"text": "protocol View"}]}]}]
		}`))
	}))
	t.Cleanup(docs.Close)

	cs := connect(t, newApp(t, corpustest.FS(), docs.URL))

	text, isErr := call(t, cs, "get_apple_doc_content", map[string]any{"url": "https://developer.apple.com/documentation/swiftui/view"})
	assert.False(t, isErr)
	assert.True(t, strings.HasPrefix(text, "# View\n**Protocol** (symbol)\n\n"), text)
	assert.Contains(t, text, "A type that represents part of your app's user interface.")

	text, isErr = call(t, cs, "get_apple_doc_content", map[string]any{"url": "https://developer.apple.com/documentation/swiftui/missing"})
	assert.True(t, isErr)
	assert.True(t, strings.HasPrefix(text, "Error: Failed to get Apple documentation content: "), text)

	text, isErr = call(t, cs, "get_apple_doc_content", map[string]any{"url": "https://example.com/documentation/swiftui"})
	assert.True(t, isErr)
	assert.Contains(t, text, "Error: Failed to get Apple documentation content: ")
}
