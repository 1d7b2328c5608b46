package index

import (
	"context"
	"fmt"
	"sort"
)

// Report summarizes data-quality checks of the corpus.
type Report struct {
	Videos               int
	Years                map[string]int
	Topics               map[string]int
	VideosWithCode       int
	VideosWithTranscript int
	UnknownTopics        []string
	PrecomputedYears     []string
	PrecomputedTopics    []string
	Issues               []string
}

// OK reports whether no issue was found.
func (r *Report) OK() bool {
	return len(r.Issues) == 0
}

// Verify cross-checks the in-memory views against the global statistics and
// any precomputed year or topic indices. Unknown topic names are reported but are not
// issues; the corpus tolerates them.
func (x *Index) Verify(ctx context.Context) (*Report, error) {
	meta, err := x.store.LoadGlobalMetadata(ctx)
	if err != nil {
		return nil, err
	}
	all, err := x.All(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Videos: len(all),
		Years:  make(map[string]int),
		Topics: make(map[string]int),
	}

	known := make(map[string]string, len(meta.Topics))
	for _, t := range meta.Topics {
		known[t.Name] = t.ID
	}
	unknown := make(map[string]bool)

	for _, v := range all {
		if v.HasCode {
			report.VideosWithCode++
		}
		if v.HasTranscript {
			report.VideosWithTranscript++
		}
		for _, topic := range v.Topics {
			if _, ok := known[topic]; !ok {
				unknown[topic] = true
			}
		}
	}
	for topic := range unknown {
		report.UnknownTopics = append(report.UnknownTopics, topic)
	}
	sort.Strings(report.UnknownTopics)

	years, err := x.Years(ctx)
	if err != nil {
		return nil, err
	}
	for _, year := range years {
		videos, _ := x.ByYear(ctx, year)
		report.Years[year] = len(videos)
		if want, ok := meta.Statistics.ByYear[year]; ok && want != len(videos) {
			report.Issues = append(report.Issues,
				fmt.Sprintf("year %s: statistics report %d videos, index has %d", year, want, len(videos)))
		}

		// Precomputed indices are optional.
		yearIndex, err := x.store.LoadYearIndex(ctx, year)
		if err != nil {
			continue
		}
		report.PrecomputedYears = append(report.PrecomputedYears, year)
		if len(yearIndex.Videos) != len(videos) {
			report.Issues = append(report.Issues,
				fmt.Sprintf("year %s: precomputed index lists %d videos, index has %d", year, len(yearIndex.Videos), len(videos)))
		}
	}

	for _, t := range meta.Topics {
		videos, _ := x.ByTopic(ctx, t.Name)
		report.Topics[t.ID] = len(videos)
		if want, ok := meta.Statistics.ByTopic[t.ID]; ok && want != len(videos) {
			report.Issues = append(report.Issues,
				fmt.Sprintf("topic %s: statistics report %d videos, index has %d", t.ID, want, len(videos)))
		}

		topicIndex, err := x.store.LoadTopicIndex(ctx, t.ID)
		if err != nil {
			continue
		}
		report.PrecomputedTopics = append(report.PrecomputedTopics, t.ID)
		if len(topicIndex.Videos) != len(videos) {
			report.Issues = append(report.Issues,
				fmt.Sprintf("topic %s: precomputed index lists %d videos, index has %d", t.ID, len(topicIndex.Videos), len(videos)))
		}
	}

	if s := meta.Statistics.VideosWithCode; s != 0 && s != report.VideosWithCode {
		report.Issues = append(report.Issues,
			fmt.Sprintf("statistics report %d videos with code, summaries flag %d", s, report.VideosWithCode))
	}
	if s := meta.Statistics.VideosWithTranscript; s != 0 && s != report.VideosWithTranscript {
		report.Issues = append(report.Issues,
			fmt.Sprintf("statistics report %d videos with transcript, summaries flag %d", s, report.VideosWithTranscript))
	}

	return report, nil
}
