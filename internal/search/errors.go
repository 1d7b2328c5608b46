package search

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyQuery    = errors.New("search query is empty")
	ErrInvalidScope  = errors.New("invalid search scope")
	ErrTopicNotFound = errors.New("topic not found")
)

// TopicNotFoundError is returned when a topic id is not in the catalog.
type TopicNotFoundError struct {
	ID        string
	Available []string
}

func (e *TopicNotFoundError) Error() string {
	return fmt.Sprintf("topic %q not found; available topics: %s", e.ID, strings.Join(e.Available, ", "))
}

// Is matches ErrTopicNotFound.
func (e *TopicNotFoundError) Is(target error) bool {
	return target == ErrTopicNotFound
}
