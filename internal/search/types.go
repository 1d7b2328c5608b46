// Package search answers listing and content queries over the WWDC corpus.
package search

import (
	"fmt"
	"strings"

	"github.com/bull/apple-docs-mcp/internal/corpus"
)

// Default limits and bounds.
const (
	DefaultListLimit   = 50
	DefaultSearchLimit = 20
	DefaultCodeLimit   = 30
	DefaultBrowseLimit = 20

	// DefaultMaxCandidates caps detail loads per content search.
	DefaultMaxCandidates = 50
	// DefaultLoadConcurrency caps simultaneous detail loads.
	DefaultLoadConcurrency = 20
	// MaxExtractedMatches caps matches extracted per video and field kind.
	MaxExtractedMatches = 10
	// MaxMatchesPerVideo caps matches kept per video for display and ranking.
	MaxMatchesPerVideo = 3
)

// AllYears selects every year.
const AllYears = "all"

// Scope restricts which content fields a search matches.
type Scope string

const (
	ScopeTranscript Scope = "transcript"
	ScopeCode       Scope = "code"
	ScopeBoth       Scope = "both"
)

// ParseScope parses a scope; empty input means ScopeBoth.
func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case "", ScopeBoth:
		return ScopeBoth, nil
	case ScopeTranscript:
		return ScopeTranscript, nil
	case ScopeCode:
		return ScopeCode, nil
	}
	return "", fmt.Errorf("%w: %q (want transcript, code or both)", ErrInvalidScope, s)
}

// Transcript reports whether transcripts are searched.
func (s Scope) Transcript() bool {
	return s == ScopeTranscript || s == ScopeBoth
}

// Code reports whether code examples are searched.
func (s Scope) Code() bool {
	return s == ScopeCode || s == ScopeBoth
}

// ListOptions filters ListVideos.
type ListOptions struct {
	Year    string // exact year, or "" / "all"
	Topic   string // case-insensitive substring of a topic name or the title
	HasCode *bool
	Limit   int
}

// SearchOptions configures SearchContent.
type SearchOptions struct {
	Query    string
	Scope    Scope
	Year     string
	Language string // code examples only, case-insensitive equality
	Limit    int
}

// MatchKind tells where a match was found.
type MatchKind string

const (
	MatchTranscript MatchKind = "transcript"
	MatchCode       MatchKind = "code"
)

// Match is one occurrence of the query with its surrounding context.
type Match struct {
	Kind      MatchKind `json:"type"`
	Context   string    `json:"context"`
	Timestamp string    `json:"timestamp,omitempty"`
}

// Result is a video with the matches kept for it.
type Result struct {
	Video   *corpus.Video
	Matches []Match
}

// CodeOptions filters GetCodeExamples.
type CodeOptions struct {
	Framework string // case-insensitive substring of the code
	Topic     string
	Year      string
	Language  string
	Limit     int
}

// CodeResult is a code example together with the video it comes from.
type CodeResult struct {
	Example corpus.CodeExample
	Video   *corpus.Video
}

// BrowseOptions configures BrowseTopics.
type BrowseOptions struct {
	TopicID       string
	IncludeVideos bool
	Year          string
	Limit         int
}

// TopicCount is a catalog topic with its precomputed video count.
type TopicCount struct {
	Topic  corpus.TopicInfo
	Videos int
}

// TopicDetail is a resolved topic and, optionally, its videos.
type TopicDetail struct {
	Topic         corpus.TopicInfo
	IncludeVideos bool
	Year          string
	Videos        []*corpus.Video
}

// Browse is the result of BrowseTopics: the catalog when no topic id was
// given, otherwise the detail of one topic.
type Browse struct {
	Catalog []TopicCount
	Detail  *TopicDetail
}

func limitOr(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return limit
}

func allYears(year string) bool {
	return year == "" || strings.EqualFold(year, AllYears)
}
