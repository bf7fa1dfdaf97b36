package memory

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/erico-tech-world/personal-portfolio/internal/storage"
)

// assetEntry stores metadata about an uploaded asset in memory.
type assetEntry struct {
	MediaID     string
	ContentType string
	Size        int64
	URL         string
}

// Storage implements storage.Storage using an in-memory map.
// It stores metadata only (no actual asset bytes) for local
// development and testing.
type Storage struct {
	mu      sync.RWMutex
	assets  map[string]*assetEntry
	baseURL string
}

// New creates a new in-memory storage instance.
func New(baseURL string) *Storage {
	return &Storage{
		assets:  make(map[string]*assetEntry),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Upload stores asset metadata in memory and returns the generated media ID and URL.
func (s *Storage) Upload(_ context.Context, input *storage.UploadInput) (*storage.UploadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mediaID := path.Join(input.Folder, uuid.NewString())
	url := fmt.Sprintf("%s/media/%s", s.baseURL, mediaID)

	s.assets[mediaID] = &assetEntry{
		MediaID:     mediaID,
		ContentType: input.ContentType,
		Size:        input.Size,
		URL:         url,
	}

	return &storage.UploadResult{
		MediaID: mediaID,
		URL:     url,
	}, nil
}

// Destroy removes asset metadata from memory. Unknown media IDs are a no-op
// so that retried compensations stay safe.
func (s *Storage) Destroy(_ context.Context, mediaID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.assets, mediaID)
	return nil
}

// GetURL returns the URL for the given media ID.
func (s *Storage) GetURL(_ context.Context, mediaID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.assets[mediaID]
	if !exists {
		return "", fmt.Errorf("asset not found: %s", mediaID)
	}

	return entry.URL, nil
}

// Len returns the number of stored assets. Used in tests.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.assets)
}
