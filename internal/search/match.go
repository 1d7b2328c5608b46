package search

import (
	"fmt"
	"strings"

	"github.com/bull/apple-docs-mcp/internal/corpus"
)

// contextSeparator joins the lines of a transcript context window.
const contextSeparator = " ... "

// containsFold reports whether s contains the lowercased needle, ignoring case.
func containsFold(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}

// matchTranscript returns one match per transcript line containing the
// lowercased needle,
// with the line before and after as context. Blank lines are left out of
// the window. Scanning stops after limit matches.
func matchTranscript(t *corpus.Transcript, needle string, limit int) []Match {
	if t == nil || t.FullText == "" {
		return nil
	}

	var matches []Match
	lines := strings.Split(t.FullText, "\n")
	for i, line := range lines {
		if !containsFold(line, needle) {
			continue
		}

		window := make([]string, 0, 3)
		if i > 0 {
			window = appendTrimmed(window, lines[i-1])
		}
		window = appendTrimmed(window, line)
		if i < len(lines)-1 {
			window = appendTrimmed(window, lines[i+1])
		}

		matches = append(matches, Match{
			Kind:      MatchTranscript,
			Context:   strings.Join(window, contextSeparator),
			Timestamp: segmentTimestamp(t.Segments, strings.TrimSpace(line)),
		})
		if len(matches) >= limit {
			break
		}
	}
	return matches
}

func appendTrimmed(lines []string, line string) []string {
	if s := strings.TrimSpace(line); s != "" {
		return append(lines, s)
	}
	return lines
}

// segmentTimestamp returns the timestamp of the first segment containing line.
func segmentTimestamp(segments []corpus.TranscriptSegment, line string) string {
	if line == "" {
		return ""
	}
	for _, seg := range segments {
		if strings.Contains(seg.Text, line) {
			return seg.Timestamp
		}
	}
	return ""
}

// matchCode returns one match per code line containing needle, across every
// example whose language matches (any language when language is empty).
// Scanning stops after limit matches.
func matchCode(examples []corpus.CodeExample, needle, language string, limit int) []Match {
	var matches []Match
	for _, ex := range examples {
		if language != "" && !strings.EqualFold(ex.Language, language) {
			continue
		}
		if !containsFold(ex.Code, needle) {
			continue
		}

		title := ex.Title
		if title == "" {
			title = "Code"
		}
		for _, line := range strings.Split(ex.Code, "\n") {
			if !containsFold(line, needle) {
				continue
			}
			matches = append(matches, Match{
				Kind:      MatchCode,
				Context:   fmt.Sprintf("[%s] %s: %s", ex.Language, title, strings.TrimSpace(line)),
				Timestamp: ex.Timestamp,
			})
			if len(matches) >= limit {
				return matches
			}
		}
	}
	return matches
}

// matchesTopicOrTitle reports whether any topic name or the title contains
// the lowercased needle.
func matchesTopicOrTitle(v *corpus.Video, lowerNeedle string) bool {
	if containsFold(v.Title, lowerNeedle) {
		return true
	}
	for _, t := range v.Topics {
		if containsFold(t, lowerNeedle) {
			return true
		}
	}
	return false
}
