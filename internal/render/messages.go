package render

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bull/apple-docs-mcp/internal/corpus"
	"github.com/bull/apple-docs-mcp/internal/search"
)

// Renderer renders the results that need more than string formatting.
type Renderer struct {
	outliner *Outliner
	logger   *slog.Logger
}

// New creates a renderer. A nil logger uses slog.Default().
func New(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{outliner: NewOutliner(), logger: logger}
}

// Failure is the message returned when an operation fails.
func Failure(op string, err error) string {
	return fmt.Sprintf("Error: Failed to %s: %v", op, err)
}

// VideoNotFound names the requested video key.
func VideoNotFound(year, id string) string {
	return fmt.Sprintf("Video not found: %s (WWDC%s session %s).", corpus.VideoKey(year, id), year, id)
}

// TopicNotFound lists every valid topic id.
func TopicNotFound(e *search.TopicNotFoundError) string {
	return fmt.Sprintf("Topic %q not found. Available topics: %s", e.ID, strings.Join(e.Available, ", "))
}
