package search

import (
	"context"
	"strings"

	"github.com/bull/apple-docs-mcp/internal/corpus"
)

// GetCodeExamples flattens the code examples of every video with code that
// matches the year and topic filters. Examples are kept when their language
// equals opts.Language and their code contains opts.Framework, both ignoring
// case and both skipped when empty. Identical snippets are not collapsed.
func (e *Engine) GetCodeExamples(ctx context.Context, opts CodeOptions) ([]CodeResult, error) {
	base, err := e.baseSet(ctx, opts.Year)
	if err != nil {
		return nil, err
	}

	var withCode []*corpus.Video
	for _, v := range base {
		if v.HasCode && matchesTopic(v, opts.Topic) {
			withCode = append(withCode, v)
		}
	}

	details, err := e.loadDetails(ctx, withCode)
	if err != nil {
		return nil, err
	}

	limit := limitOr(opts.Limit, DefaultCodeLimit)
	framework := strings.ToLower(opts.Framework)

	var out []CodeResult
	for _, v := range details {
		for _, ex := range v.CodeExamples {
			if opts.Language != "" && !strings.EqualFold(ex.Language, opts.Language) {
				continue
			}
			if framework != "" && !containsFold(ex.Code, framework) {
				continue
			}
			out = append(out, CodeResult{Example: ex, Video: v})
			if len(out) == limit {
				return out, nil
			}
		}
	}
	return out, nil
}
