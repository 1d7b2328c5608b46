package render

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/toc"
)

// Outliner builds a table of contents for rendered markdown.
type Outliner struct {
	parser goldmark.Markdown
}

// NewOutliner creates an outliner configured with a goldmark parser that
// assigns heading ids the way markdown viewers generate anchors.
func NewOutliner() *Outliner {
	md := goldmark.New(
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
	return &Outliner{parser: md}
}

// Outline returns a markdown bullet list linking to every H2 section of
// source, or "" when source has fewer than two sections.
func (o *Outliner) Outline(source []byte) (string, error) {
	doc := o.parser.Parser().Parse(text.NewReader(source))

	tree, err := toc.Inspect(doc, source,
		toc.MinDepth(2),
		toc.MaxDepth(2),
		toc.Compact(true),
	)
	if err != nil {
		return "", fmt.Errorf("inspect TOC: %w", err)
	}
	if len(tree.Items) < 2 {
		return "", nil
	}

	var b strings.Builder
	writeItems(&b, tree.Items, 0)
	return b.String(), nil
}

func writeItems(b *strings.Builder, items toc.Items, depth int) {
	for _, item := range items {
		if len(item.Title) > 0 {
			fmt.Fprintf(b, "%s- [%s](#%s)\n", strings.Repeat("  ", depth), item.Title, item.ID)
		}
		writeItems(b, item.Items, depth+1)
	}
}
