package corpus

import "fmt"

// Resource keys of the bundled dataset, relative to the data root.
const (
	GlobalMetadataFile = "index.json"
	AllVideosFile      = "all-videos.json"
)

// VideoKey builds the composite identity of a video.
func VideoKey(year, id string) string {
	return year + "-" + id
}

// VideoFile returns the detail resource of a video.
func VideoFile(year, id string) string {
	return fmt.Sprintf("videos/%s.json", VideoKey(year, id))
}

// YearIndexFile returns the precomputed index resource of a year.
func YearIndexFile(year string) string {
	return fmt.Sprintf("by-year/%s/index.json", year)
}

// TopicIndexFile returns the precomputed index resource of a topic.
func TopicIndexFile(topicID string) string {
	return fmt.Sprintf("by-topic/%s/index.json", topicID)
}
