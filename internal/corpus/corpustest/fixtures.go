// Package corpustest builds in-memory WWDC datasets for tests.
package corpustest

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"sync/atomic"
	"testing/fstest"
	"time"

	"github.com/bull/apple-docs-mcp/internal/corpus"
)

// Topics is the catalog of the sample corpus.
var Topics = []corpus.TopicInfo{
	{ID: "swift", Name: "Swift", URL: "https://developer.apple.com/videos/swift"},
	{ID: "app-architecture", Name: "App Architecture", URL: "https://developer.apple.com/videos/app-architecture"},
	{ID: "developer-tools", Name: "Developer Tools", URL: "https://developer.apple.com/videos/developer-tools"},
	{ID: "machine-learning-ai", Name: "Machine Learning & AI", URL: "https://developer.apple.com/videos/machine-learning-and-ai"},
}

// SwiftTranscript is the transcript of the 2024 "What's new in Swift" session.
const SwiftTranscript = "Welcome to WWDC.\n" +
	"Today we talk about Swift concurrency.\n" +
	"\n" +
	"Actors keep your data safe.\n" +
	"Swift 6 brings data-race safety.\n" +
	"Thanks for watching."

// Videos returns the detail records of the sample corpus in corpus order.
// The order is intentionally not sorted by year.
func Videos() []corpus.Video {
	return []corpus.Video{
		{
			ID:            "10001",
			Year:          "2023",
			URL:           "https://developer.apple.com/videos/play/wwdc2023/10001/",
			Title:         "Meet SwiftData",
			Speakers:      []string{"Ben Trumbull"},
			Duration:      "17:02",
			Topics:        []string{"Swift", "Developer Tools"},
			HasTranscript: true,
			HasCode:       true,
			Transcript: &corpus.Transcript{
				FullText: "SwiftData makes persistence easy.\nUse the model macro.",
				Segments: []corpus.TranscriptSegment{
					{Timestamp: "0:00", Text: "SwiftData makes persistence easy."},
					{Timestamp: "0:09", Text: "Use the model macro."},
				},
			},
			CodeExamples: []corpus.CodeExample{
				{Language: "swift", Title: "Model", Timestamp: "3:10", Code: "@Model\nclass Trip {\n    var name: String\n}"},
				{Language: "objc", Title: "Legacy observer", Code: "[center addObserver:self];\nid<NSObservable> thing;"},
			},
			Chapters: []corpus.Chapter{
				{Title: "Introduction", Timestamp: "0:00"},
				{Title: "Model macro", Timestamp: "3:00"},
			},
		},
		{
			ID:            "10123",
			Year:          "2024",
			URL:           "https://developer.apple.com/videos/play/wwdc2024/10123/",
			Title:         "What's new in Swift",
			Speakers:      []string{"Mishal Shah", "Meghana Gupta"},
			Duration:      "25:31",
			Topics:        []string{"Swift"},
			HasTranscript: true,
			HasCode:       true,
			Transcript: &corpus.Transcript{
				FullText: SwiftTranscript,
				Segments: []corpus.TranscriptSegment{
					{Timestamp: "0:00", Text: "Welcome to WWDC."},
					{Timestamp: "0:05", Text: "Today we talk about Swift concurrency."},
					{Timestamp: "0:12", Text: "Actors keep your data safe."},
					{Timestamp: "0:20", Text: "Swift 6 brings data-race safety."},
					{Timestamp: "0:31", Text: "Thanks for watching."},
				},
			},
			CodeExamples: []corpus.CodeExample{
				{Language: "swift", Title: "Typed throws", Timestamp: "8:15", Code: "func parse() throws(ParseError) {\n    // parse input\n}"},
			},
			Resources: &corpus.Resources{
				HDVideo: "https://devstreaming.apple.com/10123_hd.mp4",
				Links:   []corpus.ResourceLink{{Title: "The Swift Programming Language", URL: "https://docs.swift.org/"}},
			},
			RelatedVideos: []corpus.RelatedVideo{
				{ID: "10001", Year: "2023", Title: "Meet SwiftData", URL: "https://developer.apple.com/videos/play/wwdc2023/10001/"},
			},
		},
		{
			ID:       "110",
			Year:     "2022",
			URL:      "https://developer.apple.com/videos/play/wwdc2022/110/",
			Title:    "Xcode tips",
			Duration: "9:40",
			Topics:   []string{"Developer Tools"},
		},
		{
			ID:            "10150",
			Year:          "2024",
			URL:           "https://developer.apple.com/videos/play/wwdc2024/10150/",
			Title:         "Discover Observation",
			Duration:      "14:12",
			Topics:        []string{"App Architecture"},
			HasTranscript: true,
			HasCode:       true,
			Transcript: &corpus.Transcript{
				FullText: "Observation tracks property access.\nViews update automatically.",
				Segments: []corpus.TranscriptSegment{
					{Timestamp: "0:00", Text: "Observation tracks property access."},
					{Timestamp: "0:07", Text: "Views update automatically."},
				},
			},
			CodeExamples: []corpus.CodeExample{
				{Language: "swift", Title: "Model", Timestamp: "2:40", Code: "import SwiftUI\n\n@Observable class Library {\n    var books: [Book] = []\n}"},
			},
		},
		{
			ID:            "10050",
			Year:          "2023",
			URL:           "https://developer.apple.com/videos/play/wwdc2023/10050/",
			Title:         "Explore machine learning",
			Duration:      "21:00",
			Topics:        []string{"Machine Learning & AI", "Legacy Topic"},
			HasTranscript: true,
			Transcript: &corpus.Transcript{
				FullText: "Core ML runs models on device.\nCreate ML trains them.",
			},
			DataFile: "videos/2023-10050.json",
		},
	}
}

// Metadata returns global metadata consistent with Videos.
func Metadata() corpus.GlobalMetadata {
	return corpus.GlobalMetadata{
		Version:     "1.0.0",
		LastUpdated: "2025-06-20T00:00:00Z",
		Topics:      Topics,
		Years:       []string{"2024", "2023", "2022"},
		Statistics: corpus.Statistics{
			ByTopic:              map[string]int{"swift": 2, "app-architecture": 1, "developer-tools": 2, "machine-learning-ai": 1},
			ByYear:               map[string]int{"2024": 2, "2023": 2, "2022": 1},
			VideosWithCode:       3,
			VideosWithTranscript: 4,
		},
	}
}

// Summary strips a detail record down to its summary form.
func Summary(v corpus.Video) corpus.Video {
	return corpus.Video{
		ID:            v.ID,
		Year:          v.Year,
		URL:           v.URL,
		Title:         v.Title,
		Speakers:      v.Speakers,
		Duration:      v.Duration,
		Topics:        v.Topics,
		HasTranscript: v.HasTranscript,
		HasCode:       v.HasCode,
		DataFile:      v.DataFile,
	}
}

// Build serializes a dataset into a MapFS using the bundled layout.
func Build(meta corpus.GlobalMetadata, videos []corpus.Video) fstest.MapFS {
	fsys := fstest.MapFS{}
	put(fsys, corpus.GlobalMetadataFile, meta)

	summaries := make([]corpus.Video, 0, len(videos))
	for _, v := range videos {
		summaries = append(summaries, Summary(v))
		put(fsys, v.DetailFile(), v)
	}
	put(fsys, corpus.AllVideosFile, map[string]any{"videos": summaries})
	return fsys
}

// FS returns the sample corpus, including a precomputed 2024 year index.
func FS() fstest.MapFS {
	videos := Videos()
	fsys := Build(Metadata(), videos)

	var items []corpus.IndexVideoItem
	for _, v := range videos {
		if v.Year != "2024" {
			continue
		}
		items = append(items, corpus.IndexVideoItem{
			ID: v.ID, Year: v.Year, Title: v.Title, Topics: v.Topics,
			HasCode: v.HasCode, HasTranscript: v.HasTranscript, DataFile: v.DetailFile(),
		})
	}
	put(fsys, corpus.YearIndexFile("2024"), corpus.YearIndex{Year: "2024", Topics: []string{"Swift", "App Architecture"}, Videos: items})
	return fsys
}

// Bulk returns a corpus of n transcript-only videos from a single year whose
// transcripts all contain needle.
func Bulk(n int, year, needle string) fstest.MapFS {
	videos := make([]corpus.Video, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("%d", 20000+i)
		videos = append(videos, corpus.Video{
			ID:            id,
			Year:          year,
			URL:           "https://developer.apple.com/videos/play/wwdc" + year + "/" + id + "/",
			Title:         "Session " + id,
			Topics:        []string{"Swift"},
			HasTranscript: true,
			Transcript:    &corpus.Transcript{FullText: "Intro line\nThis mentions " + needle + " once.\nOutro line"},
		})
	}
	meta := corpus.GlobalMetadata{
		Version: "test",
		Topics:  Topics,
		Years:   []string{year},
		Statistics: corpus.Statistics{
			ByYear: map[string]int{year: n},
		},
	}
	return Build(meta, videos)
}

func put(fsys fstest.MapFS, name string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("corpustest: marshal %s: %v", name, err))
	}
	fsys[name] = &fstest.MapFile{Data: data}
}

// CountingFS counts Open calls for detail resources under videos/ and
// tracks how many of them were in flight at once. Delay holds every such
// Open for that long.
type CountingFS struct {
	FS    fs.FS
	Delay time.Duration

	mu       sync.Mutex
	opens    map[string]int
	total    atomic.Int64
	inFlight int
	peak     int
}

// NewCountingFS wraps fsys.
func NewCountingFS(fsys fs.FS) *CountingFS {
	return &CountingFS{FS: fsys, opens: make(map[string]int)}
}

// Open implements fs.FS.
func (c *CountingFS) Open(name string) (fs.File, error) {
	if !strings.HasPrefix(name, "videos/") {
		return c.FS.Open(name)
	}

	c.total.Add(1)
	c.mu.Lock()
	c.opens[name]++
	c.inFlight++
	c.peak = max(c.peak, c.inFlight)
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inFlight--
		c.mu.Unlock()
	}()
	if c.Delay > 0 {
		time.Sleep(c.Delay)
	}
	return c.FS.Open(name)
}

// PeakInFlight returns the highest number of concurrent detail opens seen.
func (c *CountingFS) PeakInFlight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.peak
}

// DetailLoads returns the number of detail resources opened so far.
func (c *CountingFS) DetailLoads() int {
	return int(c.total.Load())
}

// Opens returns how often a single resource was opened.
func (c *CountingFS) Opens(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opens[name]
}

// GateFS blocks Open of one resource until Release is called.
type GateFS struct {
	*CountingFS
	Name    string
	Entered chan struct{}
	release chan struct{}
	once    sync.Once
}

// NewGateFS wraps fsys and gates the resource name.
func NewGateFS(fsys fs.FS, name string) *GateFS {
	return &GateFS{
		CountingFS: NewCountingFS(fsys),
		Name:       name,
		Entered:    make(chan struct{}, 16),
		release:    make(chan struct{}),
	}
}

// Open implements fs.FS.
func (g *GateFS) Open(name string) (fs.File, error) {
	if name == g.Name {
		g.Entered <- struct{}{}
		<-g.release
	}
	return g.CountingFS.Open(name)
}

// Release unblocks every pending and future Open of the gated resource.
func (g *GateFS) Release() {
	g.once.Do(func() { close(g.release) })
}
