package appledocs

import (
	"fmt"
	"strings"
)

// Limits on the optional sections.
const (
	maxRelatedPerSection = 3
	maxRelatedAPIs       = 10
	maxReferences        = 15
	maxSimilarAPIs       = 8
)

// Format renders a document as markdown. sourceURL is linked at the end.
func Format(doc *Document, sourceURL string, opts FetchOptions) string {
	var b strings.Builder

	writeHeader(&b, doc)
	if abs := abstractText(doc.Abstract); abs != "" {
		b.WriteString(abs + "\n\n")
	}

	switch doc.Metadata.Role {
	case "symbol", "collectionGroup":
		writeSymbolContent(&b, doc)
	default:
		writeCollectionContent(&b, doc)
	}

	writeAvailability(&b, doc)
	writeSeeAlso(&b, doc)

	if opts.IncludeRelatedAPIs {
		if apis := relatedAPIs(doc); len(apis) > 0 {
			b.WriteString("## Related APIs\n\n")
			for _, a := range apis {
				fmt.Fprintf(&b, "- [%s](%s) (%s)\n", a.title, a.url, a.label)
			}
			b.WriteString("\n")
		}
	}
	if opts.IncludeReferences && doc.References.Len() > 0 {
		b.WriteString("## References\n\n")
		for i, id := range doc.References.Keys {
			if i == maxReferences {
				break
			}
			ref, _ := doc.References.Get(id)
			kind := ref.Role
			if kind == "" {
				kind = ref.Kind
			}
			if kind == "" {
				kind = "unknown"
			}
			fmt.Fprintf(&b, "- [%s](%s) (%s)\n", titleOr(ref.Title), absoluteURL(ref.URL), kind)
			if abs := abstractText(ref.Abstract); abs != "" {
				fmt.Fprintf(&b, "  %s\n", abs)
			}
		}
		b.WriteString("\n")
	}
	if opts.IncludeSimilarAPIs {
		if apis := similarAPIs(doc); len(apis) > 0 {
			b.WriteString("## Similar APIs\n\n")
			for _, a := range apis {
				fmt.Fprintf(&b, "- [%s](%s) (%s)\n", a.title, a.url, a.label)
			}
			b.WriteString("\n")
		}
	}
	if opts.IncludePlatformAnalysis {
		writePlatformAnalysis(&b, doc.Metadata.Platforms)
	}

	fmt.Fprintf(&b, "---\n\n[View full documentation on Apple Developer](%s)", sourceURL)
	return b.String()
}

func titleOr(title string) string {
	if title == "" {
		return "Unknown"
	}
	return title
}

func writeHeader(b *strings.Builder, doc *Document) {
	title := doc.Metadata.Title
	if title == "" {
		title = "Untitled"
	}
	role := doc.Metadata.Role
	if role == "" {
		role = "article"
	}
	fmt.Fprintf(b, "# %s\n", title)
	if doc.Metadata.RoleHeading != "" {
		fmt.Fprintf(b, "**%s** ", doc.Metadata.RoleHeading)
	}
	fmt.Fprintf(b, "(%s)\n\n", role)
}

func writeSymbolContent(b *strings.Builder, doc *Document) {
	for _, sec := range doc.PrimaryContentSections {
		switch sec.Kind {
		case "declarations":
			b.WriteString("## Declaration\n\n")
			for _, d := range sec.Declarations {
				code := inlineText(d.Tokens)
				langs := d.Languages
				if len(langs) == 0 {
					langs = []string{"swift"}
				}
				for _, lang := range langs {
					fmt.Fprintf(b, "```%s\n%s\n```\n\n", lang, code)
				}
			}
		case "parameters":
			b.WriteString("## Parameters\n\n")
			for _, p := range sec.Parameters {
				fmt.Fprintf(b, "- `%s`: %s\n", p.Name, blockText(p.Content))
			}
			b.WriteString("\n")
		case "content":
			writeContentBlocks(b, sec.Content)
		}
	}
}

func writeContentBlocks(b *strings.Builder, blocks []ContentBlock) {
	for _, bl := range blocks {
		switch bl.Type {
		case "paragraph":
			fmt.Fprintf(b, "%s\n\n", inlineText(bl.InlineContent))
		case "heading":
			level := bl.Level
			if level <= 0 {
				level = 2
			}
			fmt.Fprintf(b, "%s %s\n\n", strings.Repeat("#", level), bl.Text)
		case "unorderedList":
			for _, item := range bl.Items {
				fmt.Fprintf(b, "- %s\n", blockText(item.Content))
			}
			b.WriteString("\n")
		}
	}
}

func writeCollectionContent(b *strings.Builder, doc *Document) {
	for _, sec := range doc.TopicSections {
		if sec.Title != "" {
			fmt.Fprintf(b, "## %s\n\n", sec.Title)
		}
		for _, id := range sec.Identifiers {
			ref, ok := doc.References.Get(id)
			if !ok {
				continue
			}
			fmt.Fprintf(b, "- [%s](%s)", titleOr(ref.Title), absoluteURL(ref.URL))
			if abs := abstractText(ref.Abstract); abs != "" {
				fmt.Fprintf(b, ": %s", abs)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
}

func writeAvailability(b *strings.Builder, doc *Document) {
	if len(doc.Metadata.Platforms) == 0 {
		return
	}
	b.WriteString("## Availability\n\n")
	for _, p := range doc.Metadata.Platforms {
		fmt.Fprintf(b, "- **%s**: ", p.Name)
		if p.IntroducedAt != "" {
			fmt.Fprintf(b, "Introduced in %s", p.IntroducedAt)
		}
		if p.DeprecatedAt != "" {
			fmt.Fprintf(b, ", Deprecated in %s", p.DeprecatedAt)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func writeSeeAlso(b *strings.Builder, doc *Document) {
	if len(doc.SeeAlsoSections) == 0 {
		return
	}
	b.WriteString("## See Also\n\n")
	for _, sec := range doc.SeeAlsoSections {
		if sec.Title != "" {
			fmt.Fprintf(b, "### %s\n\n", sec.Title)
		}
		for _, id := range sec.Identifiers {
			if ref, ok := doc.References.Get(id); ok {
				fmt.Fprintf(b, "- [%s](%s)\n", titleOr(ref.Title), absoluteURL(ref.URL))
			}
		}
		b.WriteString("\n")
	}
}

type linkedAPI struct {
	title string
	url   string
	label string
}

// sectionAPIs collects up to maxRelatedPerSection references of each section.
func sectionAPIs(doc *Document, sections []TopicSection, label func(title string) string) []linkedAPI {
	var out []linkedAPI
	for _, sec := range sections {
		ids := sec.Identifiers
		if len(ids) > maxRelatedPerSection {
			ids = ids[:maxRelatedPerSection]
		}
		title := sec.Title
		if title == "" {
			title = "Related"
		}
		for _, id := range ids {
			if ref, ok := doc.References.Get(id); ok {
				out = append(out, linkedAPI{title: titleOr(ref.Title), url: absoluteURL(ref.URL), label: label(title)})
			}
		}
	}
	return out
}

func relatedAPIs(doc *Document) []linkedAPI {
	apis := sectionAPIs(doc, doc.RelationshipsSections, func(t string) string { return t })
	apis = append(apis, sectionAPIs(doc, doc.SeeAlsoSections, func(t string) string { return "See Also: " + t })...)
	if len(apis) > maxRelatedAPIs {
		apis = apis[:maxRelatedAPIs]
	}
	return apis
}

func similarAPIs(doc *Document) []linkedAPI {
	apis := sectionAPIs(doc, doc.TopicSections, func(t string) string { return t })
	if len(apis) > maxSimilarAPIs {
		apis = apis[:maxSimilarAPIs]
	}
	return apis
}

func writePlatformAnalysis(b *strings.Builder, platforms []Platform) {
	if len(platforms) == 0 {
		return
	}
	var names, beta, deprecated []string
	for _, p := range platforms {
		names = append(names, p.Name)
		if p.Beta && p.Name != "" {
			beta = append(beta, p.Name)
		}
		if p.Deprecated && p.Name != "" {
			deprecated = append(deprecated, p.Name)
		}
	}

	b.WriteString("## Platform Analysis\n\n")
	fmt.Fprintf(b, "**Supported Platforms:** %s\n\n", strings.Join(names, ", "))
	if len(beta) > 0 {
		fmt.Fprintf(b, "**Beta Platforms:** %s\n\n", strings.Join(beta, ", "))
	}
	if len(deprecated) > 0 {
		fmt.Fprintf(b, "**Deprecated Platforms:** %s\n\n", strings.Join(deprecated, ", "))
	}
	cross := "No"
	if len(platforms) > 1 {
		cross = "Yes"
	}
	fmt.Fprintf(b, "**Cross-Platform:** %s\n\n", cross)
}
