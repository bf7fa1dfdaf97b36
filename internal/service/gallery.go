package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/erico-tech-world/personal-portfolio/internal/cache"
	"github.com/erico-tech-world/personal-portfolio/internal/domain"
	"github.com/erico-tech-world/personal-portfolio/internal/event"
	"github.com/erico-tech-world/personal-portfolio/internal/repository"
	"github.com/erico-tech-world/personal-portfolio/internal/storage"
	apperrors "github.com/erico-tech-world/personal-portfolio/pkg/errors"
)

// GalleryService orchestrates gallery item mutations across the hosted media
// store and the data store. Writes are sequenced upload-first so that a row
// never references an asset that was not durably stored; a failed row write
// triggers a best-effort destroy of the asset just uploaded.
type GalleryService struct {
	repo     repository.GalleryRepository
	storage  storage.Storage
	cache    *cache.Cache
	producer *event.Producer
	logger   *slog.Logger
	folder   string
}

// NewGalleryService creates a new gallery service. folder is the media store
// folder that gallery uploads land in.
func NewGalleryService(
	repo repository.GalleryRepository,
	store storage.Storage,
	c *cache.Cache,
	producer *event.Producer,
	logger *slog.Logger,
	folder string,
) *GalleryService {
	return &GalleryService{
		repo:     repo,
		storage:  store,
		cache:    c,
		producer: producer,
		logger:   logger,
		folder:   folder,
	}
}

// CreateGalleryItemInput holds the parameters for adding a gallery item.
type CreateGalleryItemInput struct {
	Category    string
	Title       string
	Description string
	ProjectURL  string
	Filename    string
	ContentType string
	Size        int64
	Image       io.Reader
}

// UpdateGalleryItemInput holds the metadata patch for an existing item.
// The image is never re-uploaded on edit.
type UpdateGalleryItemInput struct {
	Category    string
	Title       string
	Description string
	ProjectURL  string
}

// DeleteGalleryItemResult reports the outcome of a delete. Warning is set
// when the row was removed but the media asset could not be destroyed.
type DeleteGalleryItemResult struct {
	Warning string `json:"warning,omitempty"`
}

// CreateGalleryItem uploads the image and inserts the metadata row. If the
// insert fails after a successful upload, the uploaded asset is destroyed
// best-effort and the insert error is surfaced; a compensation failure is
// logged but never masks the original error.
func (s *GalleryService) CreateGalleryItem(ctx context.Context, input *CreateGalleryItemInput) (*domain.GalleryItem, error) {
	if input.Category == "" {
		return nil, apperrors.InvalidInput("category is required")
	}
	if input.Image == nil || input.Size <= 0 {
		return nil, apperrors.InvalidInput("image file is required")
	}
	if input.Size > domain.MaxUploadSize {
		return nil, apperrors.InvalidInput(fmt.Sprintf("image size %d exceeds maximum allowed size of %d bytes", input.Size, domain.MaxUploadSize))
	}
	if !domain.IsAllowedImageType(input.ContentType) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("content type %q is not allowed", input.ContentType))
	}

	uploaded, err := s.storage.Upload(ctx, &storage.UploadInput{
		Folder:      s.folder,
		Filename:    input.Filename,
		ContentType: input.ContentType,
		Size:        input.Size,
		Data:        input.Image,
	})
	if err != nil {
		return nil, uploadError("Failed to add item", err)
	}

	now := time.Now().UTC()
	item := &domain.GalleryItem{
		ImageURL:    uploaded.URL,
		MediaID:     uploaded.MediaID,
		Category:    input.Category,
		Title:       input.Title,
		Description: input.Description,
		ProjectURL:  input.ProjectURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		if destroyErr := s.storage.Destroy(ctx, uploaded.MediaID); destroyErr != nil {
			s.logger.ErrorContext(ctx, "failed to destroy asset after insert failure",
				slog.String("media_id", uploaded.MediaID),
				slog.String("error", destroyErr.Error()),
			)
		}
		return nil, opError("Failed to add item", err)
	}

	s.invalidate(ctx, cache.KeyGallery)

	if err := s.producer.PublishGalleryItemCreated(ctx, item); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish gallery.item.created event",
			slog.Int64("item_id", item.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "gallery item created",
		slog.Int64("item_id", item.ID),
		slog.String("media_id", item.MediaID),
		slog.String("category", item.Category),
	)

	return item, nil
}

// GetGalleryItem retrieves a single item by id.
func (s *GalleryService) GetGalleryItem(ctx context.Context, id int64) (*domain.GalleryItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get gallery item: %w", err)
	}
	return item, nil
}

// ListGalleryItems returns all items, serving from the read cache when warm.
func (s *GalleryService) ListGalleryItems(ctx context.Context) ([]domain.GalleryItem, error) {
	var items []domain.GalleryItem

	found, err := s.cache.Get(ctx, cache.KeyGallery, &items)
	if err != nil {
		s.logger.WarnContext(ctx, "gallery cache read failed",
			slog.String("error", err.Error()),
		)
	}
	if found {
		return items, nil
	}

	items, err = s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list gallery items: %w", err)
	}

	if err := s.cache.Set(ctx, cache.KeyGallery, items); err != nil {
		s.logger.WarnContext(ctx, "gallery cache write failed",
			slog.String("error", err.Error()),
		)
	}

	return items, nil
}

// UpdateGalleryItem patches an item's metadata. No media is re-uploaded.
func (s *GalleryService) UpdateGalleryItem(ctx context.Context, id int64, input *UpdateGalleryItemInput) (*domain.GalleryItem, error) {
	if input.Category == "" {
		return nil, apperrors.InvalidInput("category is required")
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, opError("Failed to update item", err)
	}

	item.Category = input.Category
	item.Title = input.Title
	item.Description = input.Description
	item.ProjectURL = input.ProjectURL

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, opError("Failed to update item", err)
	}

	s.invalidate(ctx, cache.KeyGallery)

	s.logger.InfoContext(ctx, "gallery item updated",
		slog.Int64("item_id", item.ID),
	)

	return item, nil
}

// DeleteGalleryItem removes the media asset first, then the row. A failed
// media destroy does not abort the row delete; it is reported back as a
// warning on an otherwise successful result. Row-first would risk an
// orphaned asset nothing references; media-first at worst leaves a visible
// broken image the admin can still delete.
func (s *GalleryService) DeleteGalleryItem(ctx context.Context, id int64, mediaID string) (*DeleteGalleryItemResult, error) {
	if id <= 0 {
		return nil, apperrors.InvalidInput("item id is required")
	}
	if mediaID == "" {
		return nil, apperrors.InvalidInput("media id is required")
	}

	result := &DeleteGalleryItemResult{}

	if err := s.storage.Destroy(ctx, mediaID); err != nil {
		s.logger.WarnContext(ctx, "failed to destroy asset, continuing with row delete",
			slog.Int64("item_id", id),
			slog.String("media_id", mediaID),
			slog.String("error", err.Error()),
		)
		result.Warning = fmt.Sprintf("media asset %s could not be deleted: %s", mediaID, err.Error())
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, opError("Failed to delete item", err)
	}

	s.invalidate(ctx, cache.KeyGallery)

	if err := s.producer.PublishGalleryItemDeleted(ctx, id, mediaID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish gallery.item.deleted event",
			slog.Int64("item_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "gallery item deleted",
		slog.Int64("item_id", id),
		slog.String("media_id", mediaID),
		slog.Bool("media_destroyed", result.Warning == ""),
	)

	return result, nil
}

func (s *GalleryService) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.logger.WarnContext(ctx, "cache invalidation failed",
			slog.String("error", err.Error()),
		)
	}
}
