package search

import (
	"context"
	"sort"
	"strings"

	"github.com/bull/apple-docs-mcp/internal/corpus"
)

// SearchContent searches transcripts and code examples for a case-insensitive
// substring.
//
// Candidates are chosen from summaries alone: videos whose title or topics
// mention the query come first, followed by videos whose flags make them
// eligible for the scope. At most e.maxCandidates candidates are loaded; the
// rest are dropped. Each result keeps its first MaxMatchesPerVideo matches,
// and results are ordered by match count, ties in candidate order.
func (e *Engine) SearchContent(ctx context.Context, opts SearchOptions) ([]Result, error) {
	query := strings.TrimSpace(opts.Query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	scope, err := ParseScope(string(opts.Scope))
	if err != nil {
		return nil, err
	}

	base, err := e.baseSet(ctx, opts.Year)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	candidates := e.candidates(base, needle, scope)

	details, err := e.loadDetails(ctx, candidates)
	if err != nil {
		return nil, err
	}

	var results []Result
	for _, v := range details {
		var matches []Match
		if scope.Transcript() {
			matches = append(matches, matchTranscript(v.Transcript, needle, MaxExtractedMatches)...)
		}
		if scope.Code() {
			matches = append(matches, matchCode(v.CodeExamples, needle, opts.Language, MaxExtractedMatches)...)
		}
		if len(matches) == 0 {
			continue
		}
		if len(matches) > MaxMatchesPerVideo {
			matches = matches[:MaxMatchesPerVideo]
		}
		results = append(results, Result{Video: v, Matches: matches})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return len(results[i].Matches) > len(results[j].Matches)
	})

	if limit := limitOr(opts.Limit, DefaultSearchLimit); len(results) > limit {
		results = results[:limit]
	}

	e.logger.Debug("Content search finished",
		"query", query,
		"scope", string(scope),
		"candidates", len(candidates),
		"loaded", len(details),
		"results", len(results),
	)
	return results, nil
}

// candidates runs the metadata phase: metadata matches first, then content
// candidates, capped at e.maxCandidates.
func (e *Engine) candidates(base []*corpus.Video, needle string, scope Scope) []*corpus.Video {
	var byMeta, byContent []*corpus.Video
	for _, v := range base {
		switch {
		case matchesTopicOrTitle(v, needle):
			byMeta = append(byMeta, v)
		case scope.Transcript() && v.HasTranscript, scope.Code() && v.HasCode:
			byContent = append(byContent, v)
		}
	}

	out := append(byMeta, byContent...)
	if len(out) > e.maxCandidates {
		out = out[:e.maxCandidates]
	}
	return out
}
