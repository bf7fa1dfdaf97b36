package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/erico-tech-world/personal-portfolio/internal/cache"
	"github.com/erico-tech-world/personal-portfolio/internal/domain"
	"github.com/erico-tech-world/personal-portfolio/internal/repository"
	apperrors "github.com/erico-tech-world/personal-portfolio/pkg/errors"
)

// SocialService manages social profile links.
type SocialService struct {
	repo   repository.SocialRepository
	cache  *cache.Cache
	logger *slog.Logger
}

// NewSocialService creates a new social link service.
func NewSocialService(repo repository.SocialRepository, c *cache.Cache, logger *slog.Logger) *SocialService {
	return &SocialService{
		repo:   repo,
		cache:  c,
		logger: logger,
	}
}

// SocialLinkInput holds the fields for creating or updating a social link.
type SocialLinkInput struct {
	Platform string
	URL      string
}

func (in *SocialLinkInput) validate() error {
	if in.Platform == "" {
		return apperrors.InvalidInput("platform is required")
	}
	if in.URL == "" {
		return apperrors.InvalidInput("url is required")
	}
	return nil
}

// CreateSocialLink inserts a new social link. Each platform may appear once.
func (s *SocialService) CreateSocialLink(ctx context.Context, input *SocialLinkInput) (*domain.SocialLink, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	link := &domain.SocialLink{
		Platform:  input.Platform,
		URL:       input.URL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, link); err != nil {
		return nil, opError("Failed to add social link", err)
	}

	s.invalidate(ctx, cache.KeySocials)

	s.logger.InfoContext(ctx, "social link created",
		slog.Int64("link_id", link.ID),
		slog.String("platform", link.Platform),
	)

	return link, nil
}

// ListSocialLinks returns all links, serving from the read cache when warm.
func (s *SocialService) ListSocialLinks(ctx context.Context) ([]domain.SocialLink, error) {
	var links []domain.SocialLink

	found, err := s.cache.Get(ctx, cache.KeySocials, &links)
	if err != nil {
		s.logger.WarnContext(ctx, "socials cache read failed",
			slog.String("error", err.Error()),
		)
	}
	if found {
		return links, nil
	}

	links, err = s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list social links: %w", err)
	}

	if err := s.cache.Set(ctx, cache.KeySocials, links); err != nil {
		s.logger.WarnContext(ctx, "socials cache write failed",
			slog.String("error", err.Error()),
		)
	}

	return links, nil
}

// UpdateSocialLink replaces a link's platform and url.
func (s *SocialService) UpdateSocialLink(ctx context.Context, id int64, input *SocialLinkInput) (*domain.SocialLink, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	link := &domain.SocialLink{
		ID:       id,
		Platform: input.Platform,
		URL:      input.URL,
	}

	if err := s.repo.Update(ctx, link); err != nil {
		return nil, opError("Failed to update social link", err)
	}

	s.invalidate(ctx, cache.KeySocials)

	s.logger.InfoContext(ctx, "social link updated",
		slog.Int64("link_id", id),
	)

	return link, nil
}

// DeleteSocialLink removes a link by id.
func (s *SocialService) DeleteSocialLink(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.InvalidInput("link id is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return opError("Failed to delete social link", err)
	}

	s.invalidate(ctx, cache.KeySocials)

	s.logger.InfoContext(ctx, "social link deleted",
		slog.Int64("link_id", id),
	)

	return nil
}

func (s *SocialService) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.logger.WarnContext(ctx, "cache invalidation failed",
			slog.String("error", err.Error()),
		)
	}
}
