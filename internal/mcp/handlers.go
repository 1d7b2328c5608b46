package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bull/apple-docs-mcp/internal/app"
	"github.com/bull/apple-docs-mcp/internal/appledocs"
	"github.com/bull/apple-docs-mcp/internal/corpus"
	"github.com/bull/apple-docs-mcp/internal/render"
	"github.com/bull/apple-docs-mcp/internal/search"
)

// Operation names used in failure messages.
const (
	opListVideos   = "list WWDC videos"
	opSearch       = "search WWDC content"
	opGetVideo     = "get WWDC video"
	opCodeExamples = "get WWDC code examples"
	opBrowseTopics = "browse WWDC topics"
	opAppleDoc     = "get Apple documentation content"
)

// fail logs err and converts it into the single error payload of a call.
func fail(logger *slog.Logger, op string, err error) *mcp.CallToolResult {
	logger.Warn("Tool call failed", "op", op, "error", err)
	return ErrorResult(render.Failure(op, err))
}

// recoverTool turns a panic inside a handler into an error result.
func recoverTool(logger *slog.Logger, op string, result **mcp.CallToolResult) {
	if r := recover(); r != nil {
		logger.Error("Tool handler panicked", "op", op, "panic", r)
		*result = ErrorResult(render.Failure(op, fmt.Errorf("internal error: %v", r)))
	}
}

// makeListVideosHandler creates the list_wwdc_videos tool handler.
func makeListVideosHandler(a *app.App) func(
	context.Context, *mcp.CallToolRequest, ListVideosInput,
) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListVideosInput) (
		result *mcp.CallToolResult, _ any, _ error,
	) {
		defer recoverTool(a.Logger, opListVideos, &result)

		if err := validateInput(input); err != nil {
			return fail(a.Logger, opListVideos, err), nil, nil
		}

		videos, err := a.Engine.ListVideos(ctx, search.ListOptions{
			Year:    input.Year,
			Topic:   input.Topic,
			HasCode: input.HasCode,
			Limit:   input.Limit,
		})
		if err != nil {
			return fail(a.Logger, opListVideos, err), nil, nil
		}

		return TextResult(render.VideoList(videos, render.Filters{
			Year:    input.Year,
			Topic:   input.Topic,
			HasCode: input.HasCode,
		})), nil, nil
	}
}

// makeSearchContentHandler creates the search_wwdc_content tool handler.
func makeSearchContentHandler(a *app.App) func(
	context.Context, *mcp.CallToolRequest, SearchContentInput,
) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchContentInput) (
		result *mcp.CallToolResult, _ any, _ error,
	) {
		defer recoverTool(a.Logger, opSearch, &result)

		if err := validateInput(input); err != nil {
			return fail(a.Logger, opSearch, err), nil, nil
		}
		scope, err := search.ParseScope(input.SearchIn)
		if err != nil {
			return fail(a.Logger, opSearch, err), nil, nil
		}

		results, err := a.Engine.SearchContent(ctx, search.SearchOptions{
			Query:    input.Query,
			Scope:    scope,
			Year:     input.Year,
			Language: input.Language,
			Limit:    input.Limit,
		})
		if err != nil {
			return fail(a.Logger, opSearch, err), nil, nil
		}

		return TextResult(render.SearchResults(results, input.Query, scope)), nil, nil
	}
}

// makeGetVideoHandler creates the get_wwdc_video tool handler.
// An unknown video is reported with its key rather than as a generic failure.
func makeGetVideoHandler(a *app.App) func(
	context.Context, *mcp.CallToolRequest, GetVideoInput,
) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetVideoInput) (
		result *mcp.CallToolResult, _ any, _ error,
	) {
		defer recoverTool(a.Logger, opGetVideo, &result)

		if err := validateInput(input); err != nil {
			return fail(a.Logger, opGetVideo, err), nil, nil
		}

		video, err := a.Engine.GetVideo(ctx, input.Year, input.VideoID)
		if errors.Is(err, corpus.ErrVideoNotFound) {
			return ErrorResult(render.VideoNotFound(input.Year, input.VideoID)), nil, nil
		}
		if err != nil {
			return fail(a.Logger, opGetVideo, err), nil, nil
		}

		return TextResult(a.Renderer.VideoDetail(video, render.DetailOptions{
			IncludeTranscript: boolOr(input.IncludeTranscript, true),
			IncludeCode:       boolOr(input.IncludeCode, true),
		})), nil, nil
	}
}

// makeCodeExamplesHandler creates the get_wwdc_code_examples tool handler.
func makeCodeExamplesHandler(a *app.App) func(
	context.Context, *mcp.CallToolRequest, CodeExamplesInput,
) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CodeExamplesInput) (
		result *mcp.CallToolResult, _ any, _ error,
	) {
		defer recoverTool(a.Logger, opCodeExamples, &result)

		if err := validateInput(input); err != nil {
			return fail(a.Logger, opCodeExamples, err), nil, nil
		}

		examples, err := a.Engine.GetCodeExamples(ctx, search.CodeOptions{
			Framework: input.Framework,
			Topic:     input.Topic,
			Year:      input.Year,
			Language:  input.Language,
			Limit:     input.Limit,
		})
		if err != nil {
			return fail(a.Logger, opCodeExamples, err), nil, nil
		}

		return TextResult(render.CodeExamples(examples, render.Filters{
			Framework: input.Framework,
			Topic:     input.Topic,
			Language:  input.Language,
		})), nil, nil
	}
}

// makeBrowseTopicsHandler creates the browse_wwdc_topics tool handler.
// Without a topic id it lists the catalog.
func makeBrowseTopicsHandler(a *app.App) func(
	context.Context, *mcp.CallToolRequest, BrowseTopicsInput,
) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input BrowseTopicsInput) (
		result *mcp.CallToolResult, _ any, _ error,
	) {
		defer recoverTool(a.Logger, opBrowseTopics, &result)

		if err := validateInput(input); err != nil {
			return fail(a.Logger, opBrowseTopics, err), nil, nil
		}

		browse, err := a.Engine.BrowseTopics(ctx, search.BrowseOptions{
			TopicID:       input.TopicID,
			IncludeVideos: boolOr(input.IncludeVideos, true),
			Year:          input.Year,
			Limit:         input.Limit,
		})
		var notFound *search.TopicNotFoundError
		if errors.As(err, &notFound) {
			return ErrorResult(render.TopicNotFound(notFound)), nil, nil
		}
		if err != nil {
			return fail(a.Logger, opBrowseTopics, err), nil, nil
		}

		if browse.Detail != nil {
			return TextResult(render.TopicDetail(browse.Detail)), nil, nil
		}
		return TextResult(render.TopicCatalog(browse.Catalog)), nil, nil
	}
}

// makeAppleDocHandler creates the get_apple_doc_content tool handler.
func makeAppleDocHandler(a *app.App) func(
	context.Context, *mcp.CallToolRequest, AppleDocInput,
) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AppleDocInput) (
		result *mcp.CallToolResult, _ any, _ error,
	) {
		defer recoverTool(a.Logger, opAppleDoc, &result)

		if err := validateInput(input); err != nil {
			return fail(a.Logger, opAppleDoc, err), nil, nil
		}

		content, err := a.Docs.Fetch(ctx, input.URL, appledocs.FetchOptions{
			IncludeRelatedAPIs:      input.IncludeRelatedAPIs,
			IncludeReferences:       input.IncludeReferences,
			IncludeSimilarAPIs:      input.IncludeSimilarAPIs,
			IncludePlatformAnalysis: input.IncludePlatformAnalysis,
		})
		if err != nil {
			return fail(a.Logger, opAppleDoc, err), nil, nil
		}
		return TextResult(content), nil, nil
	}
}
