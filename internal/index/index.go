// Package index builds lookup views over the WWDC summary corpus and caches
// detail records.
package index

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/bull/apple-docs-mcp/internal/cache"
	"github.com/bull/apple-docs-mcp/internal/corpus"
)

// DefaultDetailCacheSize bounds the number of detail records kept in memory.
const DefaultDetailCacheSize = 200

// Index serves recency-sorted, by-year and by-topic views of the corpus.
//
// The views are built lazily on first use from the summary list and are
// immutable afterwards. Slices returned by the lookup methods are shared
// and must not be modified.
type Index struct {
	store   *corpus.Store
	logger  *slog.Logger
	details *cache.LRU[string, *corpus.Video]

	mu    sync.Mutex
	views *views
}

// views is one immutable build of the lookup tables.
type views struct {
	all     []*corpus.Video
	byYear  map[string][]*corpus.Video
	byTopic map[string][]*corpus.Video
}

// Option configures an Index.
type Option func(*Index)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(x *Index) {
		if l != nil {
			x.logger = l
		}
	}
}

// WithDetailCacheSize overrides DefaultDetailCacheSize.
func WithDetailCacheSize(n int) Option {
	return func(x *Index) {
		if n > 0 {
			x.details = cache.NewLRU[string, *corpus.Video](n)
		}
	}
}

// New creates an index backed by store.
func New(store *corpus.Store, opts ...Option) *Index {
	x := &Index{
		store:   store,
		logger:  slog.Default(),
		details: cache.NewLRU[string, *corpus.Video](DefaultDetailCacheSize),
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Store returns the underlying corpus store.
func (x *Index) Store() *corpus.Store {
	return x.store
}

// Reset discards the views and the detail cache. The next lookup rebuilds them.
func (x *Index) Reset() {
	x.mu.Lock()
	x.views = nil
	x.mu.Unlock()
	x.details.Purge()
}

// ensure builds the views once and returns them. Callers arriving during the
// build wait for it; a failed build leaves the index empty so the next call
// retries. The returned views stay valid after a concurrent Reset.
func (x *Index) ensure(ctx context.Context) (*views, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.views != nil {
		return x.views, nil
	}

	summaries, err := x.store.LoadAllVideoSummaries(ctx)
	if err != nil {
		return nil, err
	}

	all := make([]*corpus.Video, len(summaries))
	for i := range summaries {
		all[i] = &summaries[i]
	}
	// Most recent first; corpus order is kept within a year.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Year > all[j].Year
	})

	byYear := make(map[string][]*corpus.Video)
	byTopic := make(map[string][]*corpus.Video)
	for _, v := range all {
		byYear[v.Year] = append(byYear[v.Year], v)
		for _, topic := range v.Topics {
			byTopic[topic] = append(byTopic[topic], v)
		}
	}

	x.views = &views{all: all, byYear: byYear, byTopic: byTopic}

	x.logger.Info("Built video index",
		"videos", len(all),
		"years", len(byYear),
		"topics", len(byTopic),
	)
	return x.views, nil
}

// All returns every summary, most recent year first.
func (x *Index) All(ctx context.Context) ([]*corpus.Video, error) {
	v, err := x.ensure(ctx)
	if err != nil {
		return nil, err
	}
	return v.all, nil
}

// ByYear returns the summaries of a year in corpus order.
// Unknown years yield an empty result.
func (x *Index) ByYear(ctx context.Context, year string) ([]*corpus.Video, error) {
	v, err := x.ensure(ctx)
	if err != nil {
		return nil, err
	}
	return v.byYear[year], nil
}

// ByTopic returns the summaries tagged with the exact, case-sensitive topic name.
// Unknown topics yield an empty result.
func (x *Index) ByTopic(ctx context.Context, topic string) ([]*corpus.Video, error) {
	v, err := x.ensure(ctx)
	if err != nil {
		return nil, err
	}
	return v.byTopic[topic], nil
}

// Years returns every year present in the corpus, most recent first.
func (x *Index) Years(ctx context.Context) ([]string, error) {
	v, err := x.ensure(ctx)
	if err != nil {
		return nil, err
	}
	years := make([]string, 0, len(v.byYear))
	for y := range v.byYear {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))
	return years, nil
}

// Video returns the detail record of (year, id), loading it on a cache miss.
func (x *Index) Video(ctx context.Context, year, id string) (*corpus.Video, error) {
	return x.detail(ctx, year, id, corpus.VideoFile(year, id))
}

// Detail returns the detail record for a summary, honoring its dataFile.
func (x *Index) Detail(ctx context.Context, summary *corpus.Video) (*corpus.Video, error) {
	return x.detail(ctx, summary.Year, summary.ID, summary.DetailFile())
}

func (x *Index) detail(ctx context.Context, year, id, file string) (*corpus.Video, error) {
	key := corpus.VideoKey(year, id)
	if v, ok := x.details.Get(key); ok {
		return v, nil
	}

	v, err := x.store.LoadVideoDetailFile(ctx, year, id, file)
	if err != nil {
		return nil, err
	}
	// Concurrent misses may both insert; the values are identical.
	x.details.Add(key, v)
	return v, nil
}

// CachedDetails returns the number of detail records currently cached.
func (x *Index) CachedDetails() int {
	return x.details.Len()
}
