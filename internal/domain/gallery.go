package domain

import (
	"time"
)

// Allowed content types for gallery image uploads.
var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// MaxUploadSize is the maximum allowed upload size in bytes (10 MB).
const MaxUploadSize int64 = 10 * 1024 * 1024

// GalleryItem represents a single piece of portfolio work. ImageURL and
// MediaID both point at the hosted media store: the URL is what visitors see,
// the media ID is what admin operations use to destroy the asset.
type GalleryItem struct {
	ID          int64     `json:"id"`
	ImageURL    string    `json:"image_url"`
	MediaID     string    `json:"media_id"`
	Category    string    `json:"category"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	ProjectURL  string    `json:"project_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsAllowedImageType checks whether the given content type is allowed for
// gallery uploads.
func IsAllowedImageType(contentType string) bool {
	return AllowedImageTypes[contentType]
}
