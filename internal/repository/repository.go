package repository

import (
	"context"

	"github.com/erico-tech-world/personal-portfolio/internal/domain"
)

// GalleryRepository defines the interface for gallery item persistence.
type GalleryRepository interface {
	// Create inserts a new gallery item and populates its generated ID.
	Create(ctx context.Context, item *domain.GalleryItem) error

	// GetByID retrieves a gallery item by its identifier.
	GetByID(ctx context.Context, id int64) (*domain.GalleryItem, error)

	// List returns all gallery items ordered by id.
	List(ctx context.Context) ([]domain.GalleryItem, error)

	// Update modifies the metadata of an existing gallery item.
	Update(ctx context.Context, item *domain.GalleryItem) error

	// Delete removes a gallery item row by its identifier.
	Delete(ctx context.Context, id int64) error
}

// OfferingRepository defines the interface for service offering persistence.
type OfferingRepository interface {
	Create(ctx context.Context, o *domain.ServiceOffering) error
	GetByID(ctx context.Context, id int64) (*domain.ServiceOffering, error)

	// List returns all offerings ordered by id.
	List(ctx context.Context) ([]domain.ServiceOffering, error)

	Update(ctx context.Context, o *domain.ServiceOffering) error
	Delete(ctx context.Context, id int64) error
}

// SocialRepository defines the interface for social link persistence.
type SocialRepository interface {
	Create(ctx context.Context, link *domain.SocialLink) error

	// List returns all social links ordered by platform.
	List(ctx context.Context) ([]domain.SocialLink, error)

	Update(ctx context.Context, link *domain.SocialLink) error
	Delete(ctx context.Context, id int64) error
}

// ContentRepository defines the interface for site content persistence.
type ContentRepository interface {
	// Upsert creates the row for the given key or replaces its value.
	Upsert(ctx context.Context, key, value string) error

	// Get retrieves a single content entry by key.
	Get(ctx context.Context, key string) (*domain.SiteContent, error)

	// List returns all content entries ordered by key.
	List(ctx context.Context) ([]domain.SiteContent, error)
}

// ContactRepository defines the interface for contact message persistence.
type ContactRepository interface {
	// Create inserts a new contact message and populates its generated ID.
	Create(ctx context.Context, msg *domain.ContactMessage) error

	// List returns contact messages newest first with pagination.
	// Returns the messages and the total count.
	List(ctx context.Context, offset, limit int) ([]domain.ContactMessage, int, error)

	// Delete removes a contact message by its identifier.
	Delete(ctx context.Context, id int64) error
}
