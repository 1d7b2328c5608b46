package index_test

import (
	"context"
	"fmt"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/bull/apple-docs-mcp/internal/corpus"
	"github.com/bull/apple-docs-mcp/internal/corpus/corpustest"
	"github.com/bull/apple-docs-mcp/internal/index"
)

func newIndex(t *testing.T, opts ...index.Option) (*index.Index, *corpustest.CountingFS) {
	t.Helper()
	fsys := corpustest.NewCountingFS(corpustest.FS())
	return index.New(corpus.NewStore(fsys, nil), opts...), fsys
}

func ids(videos []*corpus.Video) []string {
	out := make([]string, 0, len(videos))
	for _, v := range videos {
		out = append(out, v.Year+"-"+v.ID)
	}
	return out
}

func TestAll_RecencyFirstStable(t *testing.T) {
	x, _ := newIndex(t)

	all, err := x.All(context.Background())
	require.NoError(t, err)

	// Year descending, corpus order within a year.
	assert.Equal(t, []string{
		"2024-10123", "2024-10150",
		"2023-10001", "2023-10050",
		"2022-110",
	}, ids(all))
}

func TestByYear(t *testing.T) {
	x, _ := newIndex(t)
	ctx := context.Background()
	meta := corpustest.Metadata()

	for _, year := range []string{"2024", "2023", "2022"} {
		videos, err := x.ByYear(ctx, year)
		require.NoError(t, err)
		for _, v := range videos {
			assert.Equal(t, year, v.Year)
		}
		assert.Len(t, videos, meta.Statistics.ByYear[year])
	}

	videos, err := x.ByYear(ctx, "1999")
	require.NoError(t, err)
	assert.Empty(t, videos)
}

func TestByTopic(t *testing.T) {
	x, _ := newIndex(t)
	ctx := context.Background()

	all, err := x.All(ctx)
	require.NoError(t, err)

	for _, topic := range []string{"Swift", "Developer Tools", "App Architecture", "Legacy Topic"} {
		videos, err := x.ByTopic(ctx, topic)
		require.NoError(t, err)

		for _, v := range videos {
			assert.True(t, v.HasTopic(topic), "%s listed under %q", v.Key(), topic)
		}
		for _, v := range all {
			if v.HasTopic(topic) {
				assert.Contains(t, videos, v, "%s missing from %q", v.Key(), topic)
			}
		}
	}

	assert.Equal(t, []string{"2024-10123", "2023-10001"}, ids(mustTopic(t, x, "Swift")))
	assert.Empty(t, mustTopic(t, x, "swift"), "topic lookup is case-sensitive")
	assert.Empty(t, mustTopic(t, x, "Nope"))
}

func mustTopic(t *testing.T, x *index.Index, topic string) []*corpus.Video {
	t.Helper()
	videos, err := x.ByTopic(context.Background(), topic)
	require.NoError(t, err)
	return videos
}

func TestYears(t *testing.T) {
	x, _ := newIndex(t)
	years, err := x.Years(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2024", "2023", "2022"}, years)
}

func TestLookupsDoNotLoadDetails(t *testing.T) {
	x, fsys := newIndex(t)
	ctx := context.Background()

	_, err := x.All(ctx)
	require.NoError(t, err)
	_, err = x.ByYear(ctx, "2024")
	require.NoError(t, err)
	_, err = x.ByTopic(ctx, "Swift")
	require.NoError(t, err)

	assert.Zero(t, fsys.DetailLoads())
}

func TestVideo_CachesDetail(t *testing.T) {
	x, fsys := newIndex(t)
	ctx := context.Background()

	first, err := x.Video(ctx, "2024", "10123")
	require.NoError(t, err)
	second, err := x.Video(ctx, "2024", "10123")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, fsys.DetailLoads())
	assert.Equal(t, 1, x.CachedDetails())
}

func TestDetail_UsesDataFile(t *testing.T) {
	x, fsys := newIndex(t)
	ctx := context.Background()

	videos, err := x.ByYear(ctx, "2023")
	require.NoError(t, err)
	require.Equal(t, "10050", videos[1].ID)

	detail, err := x.Detail(ctx, videos[1])
	require.NoError(t, err)
	assert.Equal(t, "Explore machine learning", detail.Title)
	assert.Equal(t, 1, fsys.Opens("videos/2023-10050.json"))
}

func TestVideo_NotFound(t *testing.T) {
	x, _ := newIndex(t)
	_, err := x.Video(context.Background(), "2024", "404")
	assert.ErrorIs(t, err, corpus.ErrVideoNotFound)
	assert.Zero(t, x.CachedDetails())
}

func TestDetailCacheIsBounded(t *testing.T) {
	fsys := corpustest.Bulk(30, "2021", "needle")
	x := index.New(corpus.NewStore(fsys, nil), index.WithDetailCacheSize(10))
	ctx := context.Background()

	all, err := x.All(ctx)
	require.NoError(t, err)
	for _, v := range all {
		detail, err := x.Detail(ctx, v)
		require.NoError(t, err)
		assert.Equal(t, v.ID, detail.ID)
	}
	assert.Equal(t, 10, x.CachedDetails())

	// Evicted entries are reloaded with identical content.
	again, err := x.Detail(ctx, all[0])
	require.NoError(t, err)
	assert.Equal(t, all[0].Title, again.Title)
}

func TestIndex_DataUnavailable(t *testing.T) {
	x := index.New(corpus.NewStore(fstest.MapFS{}, nil))
	_, err := x.All(context.Background())
	assert.ErrorIs(t, err, corpus.ErrDataUnavailable)

	_, err = x.ByYear(context.Background(), "2024")
	assert.ErrorIs(t, err, corpus.ErrDataUnavailable)
}

func TestReset(t *testing.T) {
	x, fsys := newIndex(t)
	ctx := context.Background()

	_, err := x.Video(ctx, "2024", "10123")
	require.NoError(t, err)
	x.Reset()
	assert.Zero(t, x.CachedDetails())

	_, err = x.Video(ctx, "2024", "10123")
	require.NoError(t, err)
	assert.Equal(t, 2, fsys.DetailLoads())

	all, err := x.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestReset_ConcurrentLookups(t *testing.T) {
	x, _ := newIndex(t)
	ctx := context.Background()

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			for j := 0; j < 50; j++ {
				all, err := x.All(ctx)
				if err != nil {
					return err
				}
				if len(all) != 5 {
					return fmt.Errorf("all: got %d videos", len(all))
				}
				year, err := x.ByYear(ctx, "2024")
				if err != nil {
					return err
				}
				if len(year) != 2 {
					return fmt.Errorf("2024: got %d videos", len(year))
				}
				if _, err := x.ByTopic(ctx, "Swift"); err != nil {
					return err
				}
				if _, err := x.Years(ctx); err != nil {
					return err
				}
			}
			return nil
		})
		g.Go(func() error {
			for j := 0; j < 50; j++ {
				x.Reset()
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestVerify(t *testing.T) {
	x, _ := newIndex(t)

	report, err := x.Verify(context.Background())
	require.NoError(t, err)

	assert.True(t, report.OK(), "unexpected issues: %v", report.Issues)
	assert.Equal(t, 5, report.Videos)
	assert.Equal(t, map[string]int{"2024": 2, "2023": 2, "2022": 1}, report.Years)
	assert.Equal(t, 2, report.Topics["swift"])
	assert.Equal(t, []string{"Legacy Topic"}, report.UnknownTopics)
	assert.Equal(t, []string{"2024"}, report.PrecomputedYears)
	assert.Equal(t, 3, report.VideosWithCode)
	assert.Equal(t, 4, report.VideosWithTranscript)
}

func TestVerify_ReportsMismatches(t *testing.T) {
	meta := corpustest.Metadata()
	meta.Statistics.ByYear["2024"] = 7
	meta.Statistics.ByTopic["swift"] = 1
	x := index.New(corpus.NewStore(corpustest.Build(meta, corpustest.Videos()), nil))

	report, err := x.Verify(context.Background())
	require.NoError(t, err)

	assert.False(t, report.OK())
	assert.Contains(t, report.Issues, "year 2024: statistics report 7 videos, index has 2")
	assert.Contains(t, report.Issues, "topic swift: statistics report 1 videos, index has 2")
}

func TestVerify_PrecomputedTopicIndex(t *testing.T) {
	fsys := corpustest.FS()
	fsys[corpus.TopicIndexFile("app-architecture")] = &fstest.MapFile{
		Data: []byte(`{"id":"app-architecture","name":"App Architecture","videos":[]}`),
	}
	x := index.New(corpus.NewStore(fsys, nil))

	report, err := x.Verify(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"app-architecture"}, report.PrecomputedTopics)
	assert.Equal(t, []string{"topic app-architecture: precomputed index lists 0 videos, index has 1"}, report.Issues)
}
