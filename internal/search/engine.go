package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bull/apple-docs-mcp/internal/corpus"
	"github.com/bull/apple-docs-mcp/internal/index"
)

// Engine runs the WWDC listing and search operations on top of an Index.
// It is safe for concurrent use.
type Engine struct {
	index           *index.Index
	logger          *slog.Logger
	maxCandidates   int
	loadConcurrency int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMaxCandidates lowers the candidate ceiling. Values above
// DefaultMaxCandidates are clamped to it.
func WithMaxCandidates(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxCandidates = min(n, DefaultMaxCandidates)
		}
	}
}

// WithLoadConcurrency lowers the number of detail loads in flight. Values
// above DefaultLoadConcurrency are clamped to it.
func WithLoadConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.loadConcurrency = min(n, DefaultLoadConcurrency)
		}
	}
}

// NewEngine creates an engine over idx.
func NewEngine(idx *index.Index, opts ...Option) *Engine {
	e := &Engine{
		index:           idx,
		logger:          slog.Default(),
		maxCandidates:   DefaultMaxCandidates,
		loadConcurrency: DefaultLoadConcurrency,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Index returns the underlying index.
func (e *Engine) Index() *index.Index {
	return e.index
}

// baseSet returns the year bucket, or every video most recent first.
func (e *Engine) baseSet(ctx context.Context, year string) ([]*corpus.Video, error) {
	if allYears(year) {
		return e.index.All(ctx)
	}
	return e.index.ByYear(ctx, year)
}

// matchesTopic is the listing topic filter: a case-insensitive substring of
// any topic name or of the title. An empty filter matches everything.
func matchesTopic(v *corpus.Video, topic string) bool {
	if topic == "" {
		return true
	}
	return matchesTopicOrTitle(v, strings.ToLower(topic))
}

// ListVideos filters summaries by year, topic and code availability.
// Filtering keeps the base order and never loads detail records.
func (e *Engine) ListVideos(ctx context.Context, opts ListOptions) ([]*corpus.Video, error) {
	base, err := e.baseSet(ctx, opts.Year)
	if err != nil {
		return nil, err
	}

	limit := limitOr(opts.Limit, DefaultListLimit)
	out := make([]*corpus.Video, 0, min(limit, len(base)))
	for _, v := range base {
		if !matchesTopic(v, opts.Topic) {
			continue
		}
		if opts.HasCode != nil && v.HasCode != *opts.HasCode {
			continue
		}
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// GetVideo returns the detail record of (year, id).
func (e *Engine) GetVideo(ctx context.Context, year, id string) (*corpus.Video, error) {
	if year == "" || id == "" {
		return nil, fmt.Errorf("%w: year and id are required", corpus.ErrVideoNotFound)
	}
	return e.index.Video(ctx, year, id)
}

// BrowseTopics returns the topic catalog with precomputed counts, or the
// videos of one topic when opts.TopicID is set.
func (e *Engine) BrowseTopics(ctx context.Context, opts BrowseOptions) (*Browse, error) {
	meta, err := e.index.Store().LoadGlobalMetadata(ctx)
	if err != nil {
		return nil, err
	}

	if opts.TopicID == "" {
		catalog := make([]TopicCount, 0, len(meta.Topics))
		for _, t := range meta.Topics {
			catalog = append(catalog, TopicCount{Topic: t, Videos: meta.Statistics.ByTopic[t.ID]})
		}
		return &Browse{Catalog: catalog}, nil
	}

	topic, ok, err := e.index.Store().TopicByID(ctx, opts.TopicID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &TopicNotFoundError{ID: opts.TopicID, Available: meta.TopicIDs()}
	}

	detail := &TopicDetail{Topic: topic, IncludeVideos: opts.IncludeVideos, Year: opts.Year}
	if !opts.IncludeVideos {
		return &Browse{Detail: detail}, nil
	}

	videos, err := e.index.ByTopic(ctx, topic.Name)
	if err != nil {
		return nil, err
	}
	limit := limitOr(opts.Limit, DefaultBrowseLimit)
	for _, v := range videos {
		if !allYears(opts.Year) && v.Year != opts.Year {
			continue
		}
		detail.Videos = append(detail.Videos, v)
		if len(detail.Videos) == limit {
			break
		}
	}
	return &Browse{Detail: detail}, nil
}
