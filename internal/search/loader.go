package search

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/bull/apple-docs-mcp/internal/corpus"
)

// loadDetails loads the detail record of every candidate with at most
// e.loadConcurrency loads in flight. A failed load is logged and the
// candidate dropped; the others are unaffected. The result keeps candidate
// order.
func (e *Engine) loadDetails(ctx context.Context, candidates []*corpus.Video) ([]*corpus.Video, error) {
	loaded := make([]*corpus.Video, len(candidates))

	var g errgroup.Group
	g.SetLimit(e.loadConcurrency)
	for i, c := range candidates {
		g.Go(func() error {
			v, err := e.index.Detail(ctx, c)
			if err != nil {
				e.logger.Warn("Failed to load video detail",
					"year", c.Year,
					"id", c.ID,
					"error", err,
				)
				return nil
			}
			loaded[i] = v
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := loaded[:0]
	for _, v := range loaded {
		if v != nil {
			out = append(out, v)
		}
	}
	return out, nil
}
