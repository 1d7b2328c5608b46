package search_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bull/apple-docs-mcp/internal/corpus"
	"github.com/bull/apple-docs-mcp/internal/corpus/corpustest"
	"github.com/bull/apple-docs-mcp/internal/index"
	"github.com/bull/apple-docs-mcp/internal/search"
)

func newEngine(t *testing.T, fsys fstest.MapFS, opts ...search.Option) (*search.Engine, *corpustest.CountingFS) {
	t.Helper()
	if fsys == nil {
		fsys = corpustest.FS()
	}
	counting := corpustest.NewCountingFS(fsys)
	idx := index.New(corpus.NewStore(counting, nil))
	return search.NewEngine(idx, opts...), counting
}

func keys(videos []*corpus.Video) []string {
	out := make([]string, 0, len(videos))
	for _, v := range videos {
		out = append(out, v.Key())
	}
	return out
}

func resultKeys(results []search.Result) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Video.Key())
	}
	return out
}

func boolPtr(b bool) *bool { return &b }

func TestListVideos_YearAndTopic(t *testing.T) {
	e, _ := newEngine(t, nil)

	videos, err := e.ListVideos(context.Background(), search.ListOptions{Year: "2024", Topic: "swift"})
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "10123", videos[0].ID)
	assert.Equal(t, "What's new in Swift", videos[0].Title)
}

func TestListVideos_AllIsRecencyFirst(t *testing.T) {
	e, _ := newEngine(t, nil)

	for _, year := range []string{"", "all", "ALL"} {
		videos, err := e.ListVideos(context.Background(), search.ListOptions{Year: year})
		require.NoError(t, err)
		assert.Equal(t, []string{"2024-10123", "2024-10150", "2023-10001", "2023-10050", "2022-110"}, keys(videos))
	}
}

func TestListVideos_Filters(t *testing.T) {
	e, fsys := newEngine(t, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		opts search.ListOptions
		want []string
	}{
		{"has code", search.ListOptions{HasCode: boolPtr(true)}, []string{"2024-10123", "2024-10150", "2023-10001"}},
		{"no code", search.ListOptions{HasCode: boolPtr(false)}, []string{"2023-10050", "2022-110"}},
		{"topic substring", search.ListOptions{Topic: "TOOLS"}, []string{"2023-10001", "2022-110"}},
		{"title substring", search.ListOptions{Topic: "observation"}, []string{"2024-10150"}},
		{"limit applied last", search.ListOptions{Topic: "swift", Limit: 1}, []string{"2024-10123"}},
		{"unknown year", search.ListOptions{Year: "1999"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			videos, err := e.ListVideos(ctx, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, keys(videos))
		})
	}

	assert.Zero(t, fsys.DetailLoads(), "listing must not load detail records")
}

func TestGetVideo(t *testing.T) {
	e, fsys := newEngine(t, nil)
	ctx := context.Background()

	first, err := e.GetVideo(ctx, "2024", "10123")
	require.NoError(t, err)
	require.NotNil(t, first.Transcript)
	assert.Len(t, first.CodeExamples, 1)

	second, err := e.GetVideo(ctx, "2024", "10123")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, fsys.DetailLoads())
}

func TestGetVideo_NotFound(t *testing.T) {
	e, _ := newEngine(t, nil)

	_, err := e.GetVideo(context.Background(), "2024", "99999")
	assert.ErrorIs(t, err, corpus.ErrVideoNotFound)

	_, err = e.GetVideo(context.Background(), "", "10123")
	assert.ErrorIs(t, err, corpus.ErrVideoNotFound)
}

func TestGetVideo_ConcurrentCallsAgree(t *testing.T) {
	gate := corpustest.NewGateFS(corpustest.FS(), "videos/2024-10123.json")
	e := search.NewEngine(index.New(corpus.NewStore(gate, nil)))

	var wg sync.WaitGroup
	results := make([]*corpus.Video, 2)
	errs := make([]error, 2)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = e.GetVideo(context.Background(), "2024", "10123")
		}()
	}

	<-gate.Entered
	gate.Release()
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, results[0], results[1])
	assert.Equal(t, "What's new in Swift", results[1].Title)
}

func TestBrowseTopics_Catalog(t *testing.T) {
	e, fsys := newEngine(t, nil)

	browse, err := e.BrowseTopics(context.Background(), search.BrowseOptions{})
	require.NoError(t, err)
	require.Nil(t, browse.Detail)
	require.Len(t, browse.Catalog, 4)

	counts := map[string]int{}
	for _, tc := range browse.Catalog {
		counts[tc.Topic.ID] = tc.Videos
	}
	assert.Equal(t, map[string]int{"swift": 2, "app-architecture": 1, "developer-tools": 2, "machine-learning-ai": 1}, counts)
	assert.Zero(t, fsys.DetailLoads())
}

func TestBrowseTopics_Detail(t *testing.T) {
	e, _ := newEngine(t, nil)
	ctx := context.Background()

	browse, err := e.BrowseTopics(ctx, search.BrowseOptions{TopicID: "swift", IncludeVideos: true})
	require.NoError(t, err)
	require.NotNil(t, browse.Detail)
	assert.Equal(t, "Swift", browse.Detail.Topic.Name)
	assert.Equal(t, []string{"2024-10123", "2023-10001"}, keys(browse.Detail.Videos))

	browse, err = e.BrowseTopics(ctx, search.BrowseOptions{TopicID: "swift", IncludeVideos: true, Year: "2023"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-10001"}, keys(browse.Detail.Videos))

	browse, err = e.BrowseTopics(ctx, search.BrowseOptions{TopicID: "developer-tools", IncludeVideos: true, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-10001"}, keys(browse.Detail.Videos))

	browse, err = e.BrowseTopics(ctx, search.BrowseOptions{TopicID: "swift"})
	require.NoError(t, err)
	assert.Empty(t, browse.Detail.Videos)
}

func TestBrowseTopics_NotFound(t *testing.T) {
	e, _ := newEngine(t, nil)

	_, err := e.BrowseTopics(context.Background(), search.BrowseOptions{TopicID: "missing-id", IncludeVideos: true})
	require.ErrorIs(t, err, search.ErrTopicNotFound)

	var nf *search.TopicNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "missing-id", nf.ID)
	assert.Equal(t, []string{"swift", "app-architecture", "developer-tools", "machine-learning-ai"}, nf.Available)
	for _, id := range nf.Available {
		assert.Contains(t, err.Error(), id)
	}
}

func TestOperations_DataUnavailable(t *testing.T) {
	e, _ := newEngine(t, fstest.MapFS{})
	ctx := context.Background()

	_, err := e.ListVideos(ctx, search.ListOptions{})
	assert.ErrorIs(t, err, corpus.ErrDataUnavailable)
	_, err = e.SearchContent(ctx, search.SearchOptions{Query: "swift"})
	assert.ErrorIs(t, err, corpus.ErrDataUnavailable)
	_, err = e.GetCodeExamples(ctx, search.CodeOptions{})
	assert.ErrorIs(t, err, corpus.ErrDataUnavailable)
	_, err = e.BrowseTopics(ctx, search.BrowseOptions{})
	assert.ErrorIs(t, err, corpus.ErrDataUnavailable)
}
