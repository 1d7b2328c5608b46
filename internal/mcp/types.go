// Package mcp exposes the WWDC library and Apple documentation fetch as MCP tools.
package mcp

import "github.com/modelcontextprotocol/go-sdk/mcp"

// ListVideosInput defines the input parameters for the list_wwdc_videos tool.
type ListVideosInput struct {
	Year    string `json:"year,omitempty" jsonschema:"Filter by year (e.g. 2024). Use all for all years" validate:"omitempty,year"`
	Topic   string `json:"topic,omitempty" jsonschema:"Filter by topic name or ID"`
	HasCode *bool  `json:"has_code,omitempty" jsonschema:"Filter videos that have code examples"`
	Limit   int    `json:"limit,omitempty" jsonschema:"Max results. Default: 50" validate:"gte=0"`
}

// SearchContentInput defines the input parameters for the search_wwdc_content tool.
type SearchContentInput struct {
	Query string `json:"query" jsonschema:"Search query" validate:"required"`
	// SearchIn is checked by the engine so that case does not matter.
	SearchIn string `json:"search_in,omitempty" jsonschema:"Scope of search: transcript, code or both. Default: both"`
	Year     string `json:"year,omitempty" jsonschema:"Filter by year" validate:"omitempty,year"`
	Language string `json:"language,omitempty" jsonschema:"Filter code examples by language (e.g. swift, objc)"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Max results. Default: 20" validate:"gte=0"`
}

// GetVideoInput defines the input parameters for the get_wwdc_video tool.
type GetVideoInput struct {
	Year              string `json:"year" jsonschema:"The year of the video (e.g. 2024)" validate:"required,len=4,numeric"`
	VideoID           string `json:"video_id" jsonschema:"The ID of the video (e.g. 10123)" validate:"required"`
	IncludeTranscript *bool  `json:"include_transcript,omitempty" jsonschema:"Include full transcript. Default: true"`
	IncludeCode       *bool  `json:"include_code,omitempty" jsonschema:"Include code examples. Default: true"`
}

// CodeExamplesInput defines the input parameters for the get_wwdc_code_examples tool.
type CodeExamplesInput struct {
	Framework string `json:"framework,omitempty" jsonschema:"Filter by framework usage in code"`
	Topic     string `json:"topic,omitempty" jsonschema:"Filter by video topic"`
	Year      string `json:"year,omitempty" jsonschema:"Filter by year" validate:"omitempty,year"`
	Language  string `json:"language,omitempty" jsonschema:"Filter by programming language"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Max results. Default: 30" validate:"gte=0"`
}

// BrowseTopicsInput defines the input parameters for the browse_wwdc_topics tool.
type BrowseTopicsInput struct {
	TopicID       string `json:"topic_id,omitempty" jsonschema:"Specific topic ID to view. Leave empty to list all topics"`
	IncludeVideos *bool  `json:"include_videos,omitempty" jsonschema:"Include videos in the topic details. Default: true"`
	Year          string `json:"year,omitempty" jsonschema:"Filter videos by year" validate:"omitempty,year"`
	Limit         int    `json:"limit,omitempty" jsonschema:"Max videos to show per topic. Default: 20" validate:"gte=0"`
}

// AppleDocInput defines the input parameters for the get_apple_doc_content tool.
type AppleDocInput struct {
	URL                     string `json:"url" jsonschema:"Full URL of the Apple Developer Documentation page. Must start with https://developer.apple.com/documentation/" validate:"required,url"`
	IncludeRelatedAPIs      bool   `json:"include_related_apis,omitempty" jsonschema:"Include inheritance hierarchy and protocol conformances. Default: false"`
	IncludeReferences       bool   `json:"include_references,omitempty" jsonschema:"Resolve and include all referenced types and APIs. Default: false"`
	IncludeSimilarAPIs      bool   `json:"include_similar_apis,omitempty" jsonschema:"Discover APIs with similar functionality. Default: false"`
	IncludePlatformAnalysis bool   `json:"include_platform_analysis,omitempty" jsonschema:"Analyze platform availability and version requirements. Default: false"`
}

// TextResult creates a successful tool result with markdown text.
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// ErrorResult creates a tool result flagged as an error.
func ErrorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
		IsError: true,
	}
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
