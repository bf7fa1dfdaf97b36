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

// OfferingService manages service offerings. Offerings carry no media, so
// every mutation is a single data store write with no compensation.
type OfferingService struct {
	repo   repository.OfferingRepository
	cache  *cache.Cache
	logger *slog.Logger
}

// NewOfferingService creates a new offering service.
func NewOfferingService(repo repository.OfferingRepository, c *cache.Cache, logger *slog.Logger) *OfferingService {
	return &OfferingService{
		repo:   repo,
		cache:  c,
		logger: logger,
	}
}

// OfferingInput holds the fields for creating or updating an offering.
type OfferingInput struct {
	Title         string
	Description   string
	IncludedItems []string
	PriceMin      int64
	PriceMax      int64
	Currency      string
}

func (in *OfferingInput) validate() error {
	if in.Title == "" {
		return apperrors.InvalidInput("title is required")
	}
	if in.PriceMin < 0 || in.PriceMax < 0 {
		return apperrors.InvalidInput("prices must not be negative")
	}
	if in.PriceMax > 0 && in.PriceMin > in.PriceMax {
		return apperrors.InvalidInput("price_min must not exceed price_max")
	}
	if in.Currency != "" && !domain.IsValidCurrency(in.Currency) {
		return apperrors.InvalidInput(fmt.Sprintf("currency %q is not supported", in.Currency))
	}
	return nil
}

// CreateOffering inserts a new service offering.
func (s *OfferingService) CreateOffering(ctx context.Context, input *OfferingInput) (*domain.ServiceOffering, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	offering := &domain.ServiceOffering{
		Title:         input.Title,
		Description:   input.Description,
		IncludedItems: input.IncludedItems,
		PriceMin:      input.PriceMin,
		PriceMax:      input.PriceMax,
		Currency:      input.Currency,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, offering); err != nil {
		return nil, opError("Failed to add service", err)
	}

	s.invalidate(ctx, cache.KeyServices)

	s.logger.InfoContext(ctx, "service offering created",
		slog.Int64("offering_id", offering.ID),
		slog.String("title", offering.Title),
	)

	return offering, nil
}

// GetOffering retrieves a single offering by id.
func (s *OfferingService) GetOffering(ctx context.Context, id int64) (*domain.ServiceOffering, error) {
	offering, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get service offering: %w", err)
	}
	return offering, nil
}

// ListOfferings returns all offerings, serving from the read cache when warm.
func (s *OfferingService) ListOfferings(ctx context.Context) ([]domain.ServiceOffering, error) {
	var offerings []domain.ServiceOffering

	found, err := s.cache.Get(ctx, cache.KeyServices, &offerings)
	if err != nil {
		s.logger.WarnContext(ctx, "services cache read failed",
			slog.String("error", err.Error()),
		)
	}
	if found {
		return offerings, nil
	}

	offerings, err = s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list service offerings: %w", err)
	}

	if err := s.cache.Set(ctx, cache.KeyServices, offerings); err != nil {
		s.logger.WarnContext(ctx, "services cache write failed",
			slog.String("error", err.Error()),
		)
	}

	return offerings, nil
}

// UpdateOffering replaces an offering's fields.
func (s *OfferingService) UpdateOffering(ctx context.Context, id int64, input *OfferingInput) (*domain.ServiceOffering, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	offering, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, opError("Failed to update service", err)
	}

	offering.Title = input.Title
	offering.Description = input.Description
	offering.IncludedItems = input.IncludedItems
	offering.PriceMin = input.PriceMin
	offering.PriceMax = input.PriceMax
	offering.Currency = input.Currency

	if err := s.repo.Update(ctx, offering); err != nil {
		return nil, opError("Failed to update service", err)
	}

	s.invalidate(ctx, cache.KeyServices)

	s.logger.InfoContext(ctx, "service offering updated",
		slog.Int64("offering_id", offering.ID),
	)

	return offering, nil
}

// DeleteOffering removes an offering by id.
func (s *OfferingService) DeleteOffering(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.InvalidInput("offering id is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return opError("Failed to delete service", err)
	}

	s.invalidate(ctx, cache.KeyServices)

	s.logger.InfoContext(ctx, "service offering deleted",
		slog.Int64("offering_id", id),
	)

	return nil
}

func (s *OfferingService) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.logger.WarnContext(ctx, "cache invalidation failed",
			slog.String("error", err.Error()),
		)
	}
}
