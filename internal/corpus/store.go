// Package corpus provides read-only access to the bundled WWDC dataset.
package corpus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"
)

// Store reads corpus resources by key and deserializes them.
//
// Global metadata and the summary list are loaded once and kept until Reset.
// Concurrent first loads of the same resource are coalesced into one read.
// Detail records are not cached here; see the index package.
type Store struct {
	fsys     fs.FS
	logger   *slog.Logger
	validate *validator.Validate
	group    singleflight.Group

	mu        sync.RWMutex
	metadata  *GlobalMetadata
	topics    map[string]TopicInfo
	summaries []Video
}

// NewStore creates a store over the given dataset root.
func NewStore(fsys fs.FS, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		fsys:     fsys,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// NewDirStore creates a store reading from a directory on disk.
func NewDirStore(dir string, logger *slog.Logger) *Store {
	return NewStore(os.DirFS(dir), logger)
}

// IsDataAvailable reports whether the root metadata resource exists.
// It never fails; any stat error counts as unavailable.
func (s *Store) IsDataAvailable() bool {
	if s.fsys == nil {
		return false
	}
	info, err := fs.Stat(s.fsys, GlobalMetadataFile)
	return err == nil && !info.IsDir()
}

// Health implements the HTTP health check dependency.
func (s *Store) Health(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.IsDataAvailable() {
		return fmt.Errorf("%w: %s missing", ErrDataUnavailable, GlobalMetadataFile)
	}
	return nil
}

// Reset drops every cached resource.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metadata = nil
	s.topics = nil
	s.summaries = nil
}

// LoadGlobalMetadata loads index.json once and caches it.
func (s *Store) LoadGlobalMetadata(ctx context.Context) (*GlobalMetadata, error) {
	s.mu.RLock()
	cached := s.metadata
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	v, err, _ := s.group.Do(GlobalMetadataFile, func() (any, error) {
		var meta GlobalMetadata
		if err := s.readJSON(ctx, GlobalMetadataFile, &meta); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
		}
		if err := s.validate.Struct(&meta); err != nil {
			return nil, fmt.Errorf("%w: invalid %s: %v", ErrDataUnavailable, GlobalMetadataFile, err)
		}

		topics := make(map[string]TopicInfo, len(meta.Topics))
		for _, t := range meta.Topics {
			topics[t.ID] = t
		}

		s.mu.Lock()
		s.metadata = &meta
		s.topics = topics
		s.mu.Unlock()

		s.logger.Debug("Loaded global metadata",
			"version", meta.Version,
			"topics", len(meta.Topics),
			"years", len(meta.Years),
		)
		return &meta, nil
	})
	if err != nil {
		s.logger.Error("Failed to load global metadata", "error", err)
		return nil, err
	}
	return v.(*GlobalMetadata), nil
}

// TopicByID resolves a topic from the catalog.
func (s *Store) TopicByID(ctx context.Context, id string) (TopicInfo, bool, error) {
	if _, err := s.LoadGlobalMetadata(ctx); err != nil {
		return TopicInfo{}, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.topics[id]
	return t, ok, nil
}

// LoadAllVideoSummaries loads all-videos.json once and caches it.
// The returned slice is shared and in corpus order.
func (s *Store) LoadAllVideoSummaries(ctx context.Context) ([]Video, error) {
	s.mu.RLock()
	cached := s.summaries
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	v, err, _ := s.group.Do(AllVideosFile, func() (any, error) {
		var doc struct {
			Videos []Video `json:"videos"`
		}
		if err := s.readJSON(ctx, AllVideosFile, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
		}
		for i := range doc.Videos {
			if err := s.validate.Struct(&doc.Videos[i]); err != nil {
				return nil, fmt.Errorf("%w: invalid summary #%d in %s: %v",
					ErrDataUnavailable, i, AllVideosFile, err)
			}
		}
		videos := doc.Videos
		if videos == nil {
			videos = []Video{}
		}

		s.mu.Lock()
		s.summaries = videos
		s.mu.Unlock()

		s.logger.Debug("Loaded video summaries", "count", len(videos))
		return videos, nil
	})
	if err != nil {
		s.logger.Error("Failed to load video summaries", "error", err)
		return nil, err
	}
	return v.([]Video), nil
}

// LoadVideoDetail loads the detail record of (year, id).
func (s *Store) LoadVideoDetail(ctx context.Context, year, id string) (*Video, error) {
	return s.LoadVideoDetailFile(ctx, year, id, VideoFile(year, id))
}

// LoadVideoDetailFile loads the detail record of (year, id) from an explicit
// resource, as referenced by a summary's dataFile.
func (s *Store) LoadVideoDetailFile(ctx context.Context, year, id, file string) (*Video, error) {
	key := VideoKey(year, id)
	if year == "" || id == "" {
		return nil, fmt.Errorf("%w: %s", ErrVideoNotFound, key)
	}

	v, err, _ := s.group.Do("video:"+key, func() (any, error) {
		var video Video
		if err := s.readJSON(ctx, file, &video); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrVideoNotFound, key, err)
		}
		if err := s.validate.Struct(&video); err != nil {
			return nil, fmt.Errorf("%w: %s: invalid record: %v", ErrVideoNotFound, key, err)
		}
		return &video, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Video), nil
}

// LoadYearIndex loads the optional precomputed index of a year.
func (s *Store) LoadYearIndex(ctx context.Context, year string) (*YearIndex, error) {
	var idx YearIndex
	if err := s.readJSON(ctx, YearIndexFile(year), &idx); err != nil {
		return nil, fmt.Errorf("%w: year %s: %v", ErrIndexNotFound, year, err)
	}
	return &idx, nil
}

// LoadTopicIndex loads the optional precomputed index of a topic.
func (s *Store) LoadTopicIndex(ctx context.Context, topicID string) (*TopicIndex, error) {
	var idx TopicIndex
	if err := s.readJSON(ctx, TopicIndexFile(topicID), &idx); err != nil {
		return nil, fmt.Errorf("%w: topic %s: %v", ErrIndexNotFound, topicID, err)
	}
	return &idx, nil
}

// readJSON reads a resource and decodes it into v.
func (s *Store) readJSON(ctx context.Context, name string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.fsys == nil {
		return fmt.Errorf("no data directory configured")
	}
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s does not exist", name)
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}
