package storage

import (
	"context"
	"io"
)

// Storage defines the interface for hosted media operations.
type Storage interface {
	// Upload stores an asset and returns its media ID and public URL.
	Upload(ctx context.Context, input *UploadInput) (*UploadResult, error)

	// Destroy removes an asset by its media ID. Destroying an asset that
	// does not exist is not an error.
	Destroy(ctx context.Context, mediaID string) error

	// GetURL returns the public URL for the given media ID.
	GetURL(ctx context.Context, mediaID string) (string, error)
}

// UploadInput holds the parameters for uploading an asset.
type UploadInput struct {
	Folder      string
	Filename    string
	ContentType string
	Size        int64
	Data        io.Reader
}

// UploadResult holds the result of a successful upload.
type UploadResult struct {
	MediaID string
	URL     string
}
