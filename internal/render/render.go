// Package render formats WWDC query results as markdown for tool responses.
package render

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bull/apple-docs-mcp/internal/corpus"
	"github.com/bull/apple-docs-mcp/internal/search"
)

// Filters echoes the filter conditions of a listing.
type Filters struct {
	Year      string
	Topic     string
	Framework string
	Language  string
	HasCode   *bool
}

func (f Filters) conditions() []string {
	var out []string
	if f.Year != "" && !strings.EqualFold(f.Year, search.AllYears) {
		out = append(out, "Year: "+f.Year)
	}
	if f.Framework != "" {
		out = append(out, "Framework: "+f.Framework)
	}
	if f.Topic != "" {
		out = append(out, "Topic: "+f.Topic)
	}
	if f.Language != "" {
		out = append(out, "Language: "+f.Language)
	}
	if f.HasCode != nil {
		if *f.HasCode {
			out = append(out, "Has Code: Yes")
		} else {
			out = append(out, "Has Code: No")
		}
	}
	return out
}

func writeFilters(b *strings.Builder, f Filters) {
	if c := f.conditions(); len(c) > 0 {
		fmt.Fprintf(b, "**Filter Conditions:** %s\n\n", strings.Join(c, ", "))
	}
}

// groupByYear groups videos by year, most recent year first, keeping the
// input order inside each group.
func groupByYear(videos []*corpus.Video) ([]string, map[string][]*corpus.Video) {
	groups := make(map[string][]*corpus.Video)
	var years []string
	for _, v := range videos {
		if _, ok := groups[v.Year]; !ok {
			years = append(years, v.Year)
		}
		groups[v.Year] = append(groups[v.Year], v)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))
	return years, groups
}

// VideoList renders a listing grouped by year.
func VideoList(videos []*corpus.Video, f Filters) string {
	if len(videos) == 0 {
		return "No WWDC videos found matching the criteria."
	}

	var b strings.Builder
	b.WriteString("# WWDC Video List\n\n")
	writeFilters(&b, f)
	fmt.Fprintf(&b, "**Found %d videos**\n\n", len(videos))

	years, groups := groupByYear(videos)
	for _, y := range years {
		fmt.Fprintf(&b, "## WWDC%s\n\n", y)
		for _, v := range groups[y] {
			fmt.Fprintf(&b, "### [%s](%s)\n", v.Title, v.URL)

			var meta []string
			if v.Duration != "" {
				meta = append(meta, "Duration: "+v.Duration)
			}
			if len(v.Speakers) > 0 {
				meta = append(meta, "Speakers: "+strings.Join(v.Speakers, ", "))
			}
			if v.HasTranscript {
				meta = append(meta, "Transcript")
			}
			if v.HasCode {
				meta = append(meta, "Code Examples")
			}
			if len(meta) > 0 {
				fmt.Fprintf(&b, "*%s*\n", strings.Join(meta, " | "))
			}
			if len(v.Topics) > 0 {
				fmt.Fprintf(&b, "**Topics:** %s\n", strings.Join(v.Topics, ", "))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// SearchResults renders content search results.
func SearchResults(results []search.Result, query string, scope search.Scope) string {
	if len(results) == 0 {
		noun := "content"
		switch scope {
		case search.ScopeCode:
			noun = "code"
		case search.ScopeTranscript:
			noun = "transcript"
		}
		return fmt.Sprintf("No %s found containing %q.", noun, query)
	}

	label := "All Content"
	switch scope {
	case search.ScopeCode:
		label = "Code"
	case search.ScopeTranscript:
		label = "Transcript"
	}

	var b strings.Builder
	b.WriteString("# WWDC Content Search Results\n\n")
	fmt.Fprintf(&b, "**Search Query:** %q\n", query)
	fmt.Fprintf(&b, "**Search Scope:** %s\n", label)
	fmt.Fprintf(&b, "**Found %d related videos**\n\n", len(results))

	for _, r := range results {
		fmt.Fprintf(&b, "## [%s](%s)\n", r.Video.Title, r.Video.URL)
		fmt.Fprintf(&b, "*WWDC%s | %d matches*\n\n", r.Video.Year, len(r.Matches))
		for _, m := range r.Matches {
			if m.Kind == search.MatchCode {
				b.WriteString("**Code**")
			} else {
				b.WriteString("**Transcript**")
			}
			if m.Timestamp != "" {
				fmt.Fprintf(&b, " (%s)", m.Timestamp)
			}
			fmt.Fprintf(&b, "\n> %s\n\n", m.Context)
		}
	}
	return b.String()
}

// DetailOptions selects the optional parts of a video detail.
type DetailOptions struct {
	IncludeTranscript bool
	IncludeCode       bool
}

// VideoDetail renders a single video. When the body has more than one
// section, a "Contents" outline linking to them follows the header.
func (r *Renderer) VideoDetail(v *corpus.Video, opts DetailOptions) string {
	var head strings.Builder
	fmt.Fprintf(&head, "# %s\n\n", v.Title)
	fmt.Fprintf(&head, "**WWDC%s** | [Watch Video](%s)\n\n", v.Year, v.URL)
	if v.Duration != "" {
		fmt.Fprintf(&head, "**Duration:** %s\n", v.Duration)
	}
	if len(v.Speakers) > 0 {
		fmt.Fprintf(&head, "**Speakers:** %s\n", strings.Join(v.Speakers, ", "))
	}
	if len(v.Topics) > 0 {
		fmt.Fprintf(&head, "**Topics:** %s\n", strings.Join(v.Topics, ", "))
	}
	if res := v.Resources; res != nil && (res.HDVideo != "" || res.SDVideo != "" || len(res.Links) > 0) {
		head.WriteString("\n**Resources:**\n")
		if res.HDVideo != "" {
			fmt.Fprintf(&head, "- [HD Video](%s)\n", res.HDVideo)
		}
		if res.SDVideo != "" {
			fmt.Fprintf(&head, "- [SD Video](%s)\n", res.SDVideo)
		}
		for _, l := range res.Links {
			fmt.Fprintf(&head, "- [%s](%s)\n", l.Title, l.URL)
		}
	}

	var body strings.Builder
	if len(v.Chapters) > 0 {
		body.WriteString("\n## Chapters\n\n")
		for _, c := range v.Chapters {
			fmt.Fprintf(&body, "- **%s** %s\n", c.Timestamp, c.Title)
		}
	}

	if opts.IncludeTranscript && v.Transcript != nil {
		body.WriteString("\n## Transcript\n\n")
		if len(v.Transcript.Segments) > 0 {
			for _, s := range v.Transcript.Segments {
				fmt.Fprintf(&body, "**%s**\n%s\n\n", s.Timestamp, s.Text)
			}
		} else {
			body.WriteString(v.Transcript.FullText)
			body.WriteString("\n")
		}
	}

	if opts.IncludeCode && len(v.CodeExamples) > 0 {
		body.WriteString("\n## Code Examples\n\n")
		for i, ex := range v.CodeExamples {
			title := ex.Title
			if title == "" {
				title = fmt.Sprintf("Code Example %d", i+1)
			}
			fmt.Fprintf(&body, "### %s", title)
			if ex.Timestamp != "" {
				fmt.Fprintf(&body, " (%s)", ex.Timestamp)
			}
			body.WriteString("\n\n")
			writeFence(&body, ex)
			if ex.Context != "" {
				fmt.Fprintf(&body, "*%s*\n\n", ex.Context)
			}
		}
	}

	if len(v.RelatedVideos) > 0 {
		body.WriteString("\n## Related Videos\n\n")
		for _, rv := range v.RelatedVideos {
			fmt.Fprintf(&body, "- [%s](%s) (WWDC%s)\n", rv.Title, rv.URL, rv.Year)
		}
	}

	outline, err := r.outliner.Outline([]byte(body.String()))
	if err != nil {
		r.logger.Warn("Failed to build video outline", "video", v.Key(), "error", err)
	}
	if outline != "" {
		head.WriteString("\n## Contents\n\n")
		head.WriteString(outline)
	}

	head.WriteString(body.String())
	return head.String()
}

func writeFence(b *strings.Builder, ex corpus.CodeExample) {
	fmt.Fprintf(b, "```%s\n%s\n```\n\n", ex.Language, ex.Code)
}

// CodeExamples renders extracted code examples grouped by language in order
// of first appearance.
func CodeExamples(results []search.CodeResult, f Filters) string {
	if len(results) == 0 {
		return "No code examples found matching the criteria."
	}

	var b strings.Builder
	b.WriteString("# WWDC Code Examples\n\n")
	f.Year, f.HasCode = "", nil
	writeFilters(&b, f)
	fmt.Fprintf(&b, "**Found %d code examples**\n\n", len(results))

	var langs []string
	groups := make(map[string][]search.CodeResult)
	for _, r := range results {
		if _, ok := groups[r.Example.Language]; !ok {
			langs = append(langs, r.Example.Language)
		}
		groups[r.Example.Language] = append(groups[r.Example.Language], r)
	}

	for _, lang := range langs {
		fmt.Fprintf(&b, "## %s\n\n", capitalize(lang))
		for _, r := range groups[lang] {
			title := r.Example.Title
			if title == "" {
				title = "Code Example"
			}
			fmt.Fprintf(&b, "### %s\n", title)
			fmt.Fprintf(&b, "*From: [%s](%s) (WWDC%s)*", r.Video.Title, r.Video.URL, r.Video.Year)
			if r.Example.Timestamp != "" {
				fmt.Fprintf(&b, " *@ %s*", r.Example.Timestamp)
			}
			b.WriteString("\n\n")
			writeFence(&b, r.Example)
		}
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	r, size := utf8.DecodeRuneInString(lower)
	return string(unicode.ToUpper(r)) + lower[size:]
}

// TopicCatalog renders the topic catalog with precomputed counts.
func TopicCatalog(catalog []search.TopicCount) string {
	var b strings.Builder
	b.WriteString("# WWDC Topics\n\n")
	fmt.Fprintf(&b, "Found %d topics:\n\n", len(catalog))
	for _, tc := range catalog {
		fmt.Fprintf(&b, "## [%s](%s)\n", tc.Topic.Name, tc.Topic.URL)
		fmt.Fprintf(&b, "**Topic ID:** %s\n", tc.Topic.ID)
		if tc.Videos > 0 {
			fmt.Fprintf(&b, "**Videos:** %d\n", tc.Videos)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// TopicDetail renders one topic and, when requested, its videos by year.
func TopicDetail(d *search.TopicDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", d.Topic.Name)
	fmt.Fprintf(&b, "**Topic ID:** %s\n", d.Topic.ID)
	fmt.Fprintf(&b, "**URL:** [%s](%s)\n\n", d.Topic.URL, d.Topic.URL)

	if !d.IncludeVideos {
		return b.String()
	}

	fmt.Fprintf(&b, "## Videos (%d)\n\n", len(d.Videos))
	if len(d.Videos) == 0 {
		b.WriteString("No videos found for this topic.\n")
		return b.String()
	}

	years, groups := groupByYear(d.Videos)
	for _, y := range years {
		fmt.Fprintf(&b, "### WWDC%s\n\n", y)
		for _, v := range groups[y] {
			fmt.Fprintf(&b, "- [%s](%s)", v.Title, v.URL)
			var features []string
			if v.HasTranscript {
				features = append(features, "Transcript")
			}
			if v.HasCode {
				features = append(features, "Code")
			}
			if len(features) > 0 {
				fmt.Fprintf(&b, " | %s", strings.Join(features, " | "))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
