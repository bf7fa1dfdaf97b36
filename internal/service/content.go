package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/erico-tech-world/personal-portfolio/internal/cache"
	"github.com/erico-tech-world/personal-portfolio/internal/domain"
	"github.com/erico-tech-world/personal-portfolio/internal/event"
	"github.com/erico-tech-world/personal-portfolio/internal/repository"
	"github.com/erico-tech-world/personal-portfolio/internal/storage"
	apperrors "github.com/erico-tech-world/personal-portfolio/pkg/errors"
)

// MaxCvSize is the maximum allowed CV upload size in bytes (20 MB).
const MaxCvSize int64 = 20 * 1024 * 1024

// ContentService manages free-form site copy and the CV asset pair.
type ContentService struct {
	repo     repository.ContentRepository
	storage  storage.Storage
	cache    *cache.Cache
	producer *event.Producer
	logger   *slog.Logger
	folder   string
}

// NewContentService creates a new site content service.
func NewContentService(
	repo repository.ContentRepository,
	store storage.Storage,
	c *cache.Cache,
	producer *event.Producer,
	logger *slog.Logger,
	folder string,
) *ContentService {
	return &ContentService{
		repo:     repo,
		storage:  store,
		cache:    c,
		producer: producer,
		logger:   logger,
		folder:   folder,
	}
}

// CvFileInput describes one of the two CV uploads.
type CvFileInput struct {
	Filename    string
	ContentType string
	Size        int64
	Data        io.Reader
}

// UpdateCvInput holds the CV document and its preview image.
type UpdateCvInput struct {
	CvFile      *CvFileInput
	PreviewFile *CvFileInput
}

// UpsertSiteText stores the value under the given key, creating the row if
// absent. Values are stored verbatim, blank-line paragraph breaks included.
func (s *ContentService) UpsertSiteText(ctx context.Context, key, value string) error {
	if key == "" {
		return apperrors.InvalidInput("content key is required")
	}

	if err := s.repo.Upsert(ctx, key, value); err != nil {
		return opError("Failed to update site content", err)
	}

	s.invalidate(ctx, cache.KeyContent)

	if err := s.producer.PublishContentUpdated(ctx, key); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish content.updated event",
			slog.String("content_key", key),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "site content updated",
		slog.String("content_key", key),
	)

	return nil
}

// GetContent retrieves a single content entry by key.
func (s *ContentService) GetContent(ctx context.Context, key string) (*domain.SiteContent, error) {
	entry, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get site content: %w", err)
	}
	return entry, nil
}

// ListContent returns all content entries, serving from the read cache when warm.
func (s *ContentService) ListContent(ctx context.Context) ([]domain.SiteContent, error) {
	var entries []domain.SiteContent

	found, err := s.cache.Get(ctx, cache.KeyContent, &entries)
	if err != nil {
		s.logger.WarnContext(ctx, "content cache read failed",
			slog.String("error", err.Error()),
		)
	}
	if found {
		return entries, nil
	}

	entries, err = s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list site content: %w", err)
	}

	if err := s.cache.Set(ctx, cache.KeyContent, entries); err != nil {
		s.logger.WarnContext(ctx, "content cache write failed",
			slog.String("error", err.Error()),
		)
	}

	return entries, nil
}

// UpdateCv uploads the CV document and its preview image, then writes the
// cv_url and cv_preview_url rows. Both uploads must succeed before either
// row is written. If the second upload fails, the first asset is destroyed.
// If either row write fails, BOTH uploaded assets are destroyed and the row
// error is surfaced; a row already written stays committed since a retry
// overwrites it.
func (s *ContentService) UpdateCv(ctx context.Context, input *UpdateCvInput) error {
	if err := validateCvFile(input.CvFile, "cv file"); err != nil {
		return err
	}
	if err := validateCvFile(input.PreviewFile, "preview file"); err != nil {
		return err
	}

	cvUploaded, err := s.storage.Upload(ctx, &storage.UploadInput{
		Folder:      s.folder,
		Filename:    input.CvFile.Filename,
		ContentType: input.CvFile.ContentType,
		Size:        input.CvFile.Size,
		Data:        input.CvFile.Data,
	})
	if err != nil {
		return uploadError("Failed to update CV", err)
	}

	previewUploaded, err := s.storage.Upload(ctx, &storage.UploadInput{
		Folder:      s.folder,
		Filename:    input.PreviewFile.Filename,
		ContentType: input.PreviewFile.ContentType,
		Size:        input.PreviewFile.Size,
		Data:        input.PreviewFile.Data,
	})
	if err != nil {
		s.destroyAssets(ctx, cvUploaded.MediaID)
		return uploadError("Failed to update CV", err)
	}

	if err := s.repo.Upsert(ctx, domain.ContentKeyCvURL, cvUploaded.URL); err != nil {
		s.destroyAssets(ctx, cvUploaded.MediaID, previewUploaded.MediaID)
		return opError("Failed to update CV", err)
	}

	if err := s.repo.Upsert(ctx, domain.ContentKeyCvPreviewURL, previewUploaded.URL); err != nil {
		s.destroyAssets(ctx, cvUploaded.MediaID, previewUploaded.MediaID)
		return opError("Failed to update CV", err)
	}

	s.invalidate(ctx, cache.KeyContent)

	if err := s.producer.PublishContentUpdated(ctx, domain.ContentKeyCvURL); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish content.updated event",
			slog.String("content_key", domain.ContentKeyCvURL),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cv updated",
		slog.String("cv_media_id", cvUploaded.MediaID),
		slog.String("preview_media_id", previewUploaded.MediaID),
	)

	return nil
}

// destroyAssets issues best-effort destroys. Failures are logged and never
// mask the error that triggered the compensation.
func (s *ContentService) destroyAssets(ctx context.Context, mediaIDs ...string) {
	for _, mediaID := range mediaIDs {
		if err := s.storage.Destroy(ctx, mediaID); err != nil {
			s.logger.ErrorContext(ctx, "failed to destroy asset during compensation",
				slog.String("media_id", mediaID),
				slog.String("error", err.Error()),
			)
		}
	}
}

func validateCvFile(f *CvFileInput, name string) error {
	if f == nil || f.Data == nil || f.Size <= 0 {
		return apperrors.InvalidInput(name + " is required")
	}
	if f.Size > MaxCvSize {
		return apperrors.InvalidInput(fmt.Sprintf("%s size %d exceeds maximum allowed size of %d bytes", name, f.Size, MaxCvSize))
	}
	return nil
}

func (s *ContentService) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.logger.WarnContext(ctx, "cache invalidation failed",
			slog.String("error", err.Error()),
		)
	}
}
