package search_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bull/apple-docs-mcp/internal/search"
)

func codeTitles(results []search.CodeResult) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Video.Key()+"/"+r.Example.Title)
	}
	return out
}

func TestGetCodeExamples(t *testing.T) {
	e, _ := newEngine(t, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		opts search.CodeOptions
		want []string
	}{
		{"all", search.CodeOptions{}, []string{
			"2024-10123/Typed throws", "2024-10150/Model", "2023-10001/Model", "2023-10001/Legacy observer",
		}},
		{"language", search.CodeOptions{Language: "SWIFT"}, []string{
			"2024-10123/Typed throws", "2024-10150/Model", "2023-10001/Model",
		}},
		{"framework", search.CodeOptions{Framework: "swiftui"}, []string{"2024-10150/Model"}},
		{"topic", search.CodeOptions{Topic: "developer tools"}, []string{"2023-10001/Model", "2023-10001/Legacy observer"}},
		{"year", search.CodeOptions{Year: "2024"}, []string{"2024-10123/Typed throws", "2024-10150/Model"}},
		{"limit", search.CodeOptions{Limit: 2}, []string{"2024-10123/Typed throws", "2024-10150/Model"}},
		{"nothing", search.CodeOptions{Language: "rust"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := e.GetCodeExamples(ctx, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, codeTitles(results))
		})
	}
}

func TestGetCodeExamples_LoadsOnlyVideosWithCode(t *testing.T) {
	e, fsys := newEngine(t, nil)

	_, err := e.GetCodeExamples(context.Background(), search.CodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, fsys.DetailLoads())
	assert.Zero(t, fsys.Opens("videos/2022-110.json"))
}
