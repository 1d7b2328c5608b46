package corpus

// TranscriptSegment is one timestamped line of a transcript.
// Timestamps are display strings ("12:04"), not seconds.
type TranscriptSegment struct {
	Timestamp string `json:"timestamp"`
	Text      string `json:"text"`
}

// Transcript holds the complete transcript of a video.
type Transcript struct {
	FullText string              `json:"fullText"`
	Segments []TranscriptSegment `json:"segments"`
}

// CodeExample is a code snippet shown in a video, in presentation order.
type CodeExample struct {
	Timestamp string `json:"timestamp,omitempty"`
	Title     string `json:"title,omitempty"`
	Language  string `json:"language"`
	Code      string `json:"code"`
	Context   string `json:"context,omitempty"`
}

// ResourceLink is an external link attached to a video.
type ResourceLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Resources lists downloads and links associated with a video.
type Resources struct {
	HDVideo       string         `json:"hdVideo,omitempty"`
	SDVideo       string         `json:"sdVideo,omitempty"`
	SampleProject string         `json:"sampleProject,omitempty"`
	Slides        string         `json:"slides,omitempty"`
	Links         []ResourceLink `json:"resourceLinks,omitempty"`
}

// RelatedVideo references another session.
type RelatedVideo struct {
	ID    string `json:"id"`
	Year  string `json:"year"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Chapter is a named section of a video.
type Chapter struct {
	Title     string `json:"title"`
	Timestamp string `json:"timestamp"`
	Duration  string `json:"duration,omitempty"`
}

// Video is one WWDC session.
//
// The same type carries both shapes found in the corpus: the summary form from
// all-videos.json (no transcript, code, chapters or resources) and the detail
// form loaded from videos/{year}-{id}.json. Values handed out by the store and
// the index are shared and must be treated as read-only.
type Video struct {
	ID            string         `json:"id" validate:"required"`
	Year          string         `json:"year" validate:"required,len=4,numeric"`
	URL           string         `json:"url"`
	Title         string         `json:"title" validate:"required"`
	Speakers      []string       `json:"speakers,omitempty"`
	Duration      string         `json:"duration,omitempty"`
	Topics        []string       `json:"topics"`
	HasTranscript bool           `json:"hasTranscript"`
	HasCode       bool           `json:"hasCode"`
	Transcript    *Transcript    `json:"transcript,omitempty"`
	CodeExamples  []CodeExample  `json:"codeExamples,omitempty"`
	Chapters      []Chapter      `json:"chapters,omitempty"`
	Resources     *Resources     `json:"resources,omitempty"`
	RelatedVideos []RelatedVideo `json:"relatedVideos,omitempty"`
	ExtractedAt   string         `json:"extractedAt,omitempty"`

	// DataFile optionally points at the detail resource of a summary record.
	DataFile string `json:"dataFile,omitempty"`
}

// Key returns the composite "{year}-{id}" identity of the video.
func (v *Video) Key() string {
	return VideoKey(v.Year, v.ID)
}

// DetailFile returns the resource holding the video's detail record.
func (v *Video) DetailFile() string {
	if v.DataFile != "" {
		return v.DataFile
	}
	return VideoFile(v.Year, v.ID)
}

// HasTopic reports whether name is one of the video's topics (exact match).
func (v *Video) HasTopic(name string) bool {
	for _, t := range v.Topics {
		if t == name {
			return true
		}
	}
	return false
}

// TopicInfo is an entry of the closed topic catalog.
type TopicInfo struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
	URL  string `json:"url"`
}

// Statistics are precomputed corpus counts.
type Statistics struct {
	ByTopic              map[string]int `json:"byTopic"`
	ByYear               map[string]int `json:"byYear"`
	VideosWithCode       int            `json:"videosWithCode"`
	VideosWithTranscript int            `json:"videosWithTranscript"`
	VideosWithResources  int            `json:"videosWithResources"`
}

// GlobalMetadata is the root index of the corpus.
type GlobalMetadata struct {
	Version     string      `json:"version"`
	LastUpdated string      `json:"lastUpdated"`
	Topics      []TopicInfo `json:"topics" validate:"dive"`
	Years       []string    `json:"years"`
	Statistics  Statistics  `json:"statistics"`
}

// TopicIDs returns the ids of every catalog topic in catalog order.
func (m *GlobalMetadata) TopicIDs() []string {
	ids := make([]string, 0, len(m.Topics))
	for _, t := range m.Topics {
		ids = append(ids, t.ID)
	}
	return ids
}

// IndexVideoItem is a video entry of a precomputed year or topic index.
type IndexVideoItem struct {
	ID            string   `json:"id"`
	Year          string   `json:"year"`
	Title         string   `json:"title"`
	Topics        []string `json:"topics"`
	Duration      string   `json:"duration"`
	HasCode       bool     `json:"hasCode"`
	HasTranscript bool     `json:"hasTranscript"`
	DataFile      string   `json:"dataFile"`
}

// YearIndex is the optional precomputed index of a single year.
type YearIndex struct {
	Year   string           `json:"year"`
	Topics []string         `json:"topics"`
	Videos []IndexVideoItem `json:"videos"`
}

// TopicIndex is the optional precomputed index of a single topic.
type TopicIndex struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Years  []string         `json:"years"`
	Videos []IndexVideoItem `json:"videos"`
}
