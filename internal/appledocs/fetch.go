package appledocs

import "context"

// DefaultMaxDepth bounds how many references Fetch follows for documents
// without primary content.
const DefaultMaxDepth = 2

// FetchOptions selects the optional sections of a rendered page.
type FetchOptions struct {
	IncludeRelatedAPIs      bool
	IncludeReferences       bool
	IncludeSimilarAPIs      bool
	IncludePlatformAnalysis bool
	MaxDepth                int
}

// Fetch downloads the documentation page at pageURL and renders it as
// markdown. A document with no primary content but with references is
// replaced by its first reference, at most opts.MaxDepth times.
func (c *Client) Fetch(ctx context.Context, pageURL string, opts FetchOptions) (string, error) {
	jsonURL, err := ToJSONAPIURL(pageURL)
	if err != nil {
		return "", err
	}

	depth := opts.MaxDepth
	if depth <= 0 {
		depth = DefaultMaxDepth
	}

	var doc Document
	for {
		doc = Document{}
		if err := c.GetJSON(ctx, jsonURL, &doc); err != nil {
			return "", err
		}
		next, ok := firstReferenceURL(&doc)
		if !ok || depth == 0 {
			break
		}
		c.logger.Debug("Following first reference", "from", jsonURL, "to", next)
		jsonURL = next
		depth--
	}

	return Format(&doc, pageURL, opts), nil
}

// firstReferenceURL returns the JSON URL of the first reference of a document
// that has no primary content.
func firstReferenceURL(doc *Document) (string, bool) {
	if len(doc.PrimaryContentSections) > 0 || doc.References.Len() == 0 {
		return "", false
	}
	ref, _ := doc.References.Get(doc.References.Keys[0])
	if ref.URL == "" {
		return "", false
	}
	return referenceJSONURL(ref.URL), true
}
