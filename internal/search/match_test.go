package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bull/apple-docs-mcp/internal/corpus"
)

func TestMatchTranscript_ExtractionCap(t *testing.T) {
	tr := &corpus.Transcript{FullText: strings.Repeat("a needle\n", 25)}
	assert.Len(t, matchTranscript(tr, "needle", MaxExtractedMatches), MaxExtractedMatches)
}

func TestMatchTranscript_Edges(t *testing.T) {
	tr := &corpus.Transcript{FullText: "needle first\n\n  middle  \nlast needle"}
	matches := matchTranscript(tr, "needle", MaxExtractedMatches)
	require.Len(t, matches, 2)
	assert.Equal(t, "needle first", matches[0].Context)
	assert.Equal(t, "middle ... last needle", matches[1].Context)

	assert.Empty(t, matchTranscript(nil, "needle", 10))
	assert.Empty(t, matchTranscript(&corpus.Transcript{}, "needle", 10))
}

func TestMatchCode_CapAcrossExamples(t *testing.T) {
	examples := []corpus.CodeExample{
		{Language: "swift", Title: "A", Code: strings.Repeat("needle()\n", 6)},
		{Language: "swift", Title: "B", Code: strings.Repeat("  needle()  \n", 6)},
	}
	matches := matchCode(examples, "needle", "", MaxExtractedMatches)
	require.Len(t, matches, MaxExtractedMatches)
	assert.Equal(t, "[swift] A: needle()", matches[0].Context)
	assert.Equal(t, "[swift] B: needle()", matches[9].Context)
}

func TestMatchCode_UntitledExample(t *testing.T) {
	examples := []corpus.CodeExample{{Language: "swift", Timestamp: "3:10", Code: "let needle = 1"}}
	matches := matchCode(examples, "needle", "", MaxExtractedMatches)
	require.Len(t, matches, 1)
	assert.Equal(t, Match{Kind: MatchCode, Context: "[swift] Code: let needle = 1", Timestamp: "3:10"}, matches[0])
}

func TestSegmentTimestamp(t *testing.T) {
	segs := []corpus.TranscriptSegment{
		{Timestamp: "0:01", Text: "hello there"},
		{Timestamp: "0:02", Text: "hello there again"},
	}
	assert.Equal(t, "0:01", segmentTimestamp(segs, "hello there"))
	assert.Equal(t, "0:02", segmentTimestamp(segs, "again"))
	assert.Empty(t, segmentTimestamp(segs, "missing"))
	assert.Empty(t, segmentTimestamp(segs, ""))
}

func TestParseScope(t *testing.T) {
	for in, want := range map[string]Scope{"": ScopeBoth, "both": ScopeBoth, "Transcript": ScopeTranscript, " code ": ScopeCode} {
		got, err := ParseScope(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseScope("video")
	assert.ErrorIs(t, err, ErrInvalidScope)
}
