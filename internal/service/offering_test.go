package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/erico-tech-world/personal-portfolio/internal/domain"
	apperrors "github.com/erico-tech-world/personal-portfolio/pkg/errors"
)

func newOfferingService(t *testing.T, repo *mockOfferingRepository) *OfferingService {
	t.Helper()
	return NewOfferingService(repo, newTestCache(t), newTestLogger())
}

func validOfferingInput() *OfferingInput {
	return &OfferingInput{
		Title:         "Brand Identity Package",
		Description:   "Logo, colors and typography",
		IncludedItems: []string{"Logo design", "Brand guide"},
		PriceMin:      150000,
		PriceMax:      400000,
		Currency:      domain.CurrencyNGN,
	}
}

func TestCreateOffering_Success(t *testing.T) {
	repo := new(mockOfferingRepository)
	svc := newOfferingService(t, repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(o *domain.ServiceOffering) bool {
		return o.Title == "Brand Identity Package" && o.PriceMin == 150000
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.ServiceOffering).ID = 3
	}).Return(nil)

	offering, err := svc.CreateOffering(ctx, validOfferingInput())

	require.NoError(t, err)
	assert.Equal(t, int64(3), offering.ID)
	repo.AssertExpectations(t)
}

func TestCreateOffering_Validation(t *testing.T) {
	repo := new(mockOfferingRepository)
	svc := newOfferingService(t, repo)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*OfferingInput)
	}{
		{"missing title", func(in *OfferingInput) { in.Title = "" }},
		{"negative price", func(in *OfferingInput) { in.PriceMin = -1 }},
		{"min above max", func(in *OfferingInput) { in.PriceMin = 500000 }},
		{"unknown currency", func(in *OfferingInput) { in.Currency = "XYZ" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validOfferingInput()
			tt.mutate(input)

			offering, err := svc.CreateOffering(ctx, input)

			assert.Nil(t, offering)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
		})
	}

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateOffering_Success(t *testing.T) {
	repo := new(mockOfferingRepository)
	svc := newOfferingService(t, repo)
	ctx := context.Background()

	existing := &domain.ServiceOffering{ID: 3, Title: "Old", Currency: domain.CurrencyNGN}
	repo.On("GetByID", ctx, int64(3)).Return(existing, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(o *domain.ServiceOffering) bool {
		return o.ID == 3 && o.Title == "Brand Identity Package"
	})).Return(nil)

	offering, err := svc.UpdateOffering(ctx, 3, validOfferingInput())

	require.NoError(t, err)
	assert.Equal(t, "Brand Identity Package", offering.Title)
}

func TestUpdateOffering_NotFound(t *testing.T) {
	repo := new(mockOfferingRepository)
	svc := newOfferingService(t, repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(999)).Return(nil, apperrors.NotFound("service", "999"))

	offering, err := svc.UpdateOffering(ctx, 999, validOfferingInput())

	assert.Nil(t, offering)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Contains(t, err.Error(), "Failed to update service")
}

func TestDeleteOffering(t *testing.T) {
	repo := new(mockOfferingRepository)
	svc := newOfferingService(t, repo)
	ctx := context.Background()

	repo.On("Delete", ctx, int64(3)).Return(nil)

	assert.NoError(t, svc.DeleteOffering(ctx, 3))

	err := svc.DeleteOffering(ctx, 0)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestListOfferings_CachesRepoResult(t *testing.T) {
	repo := new(mockOfferingRepository)
	svc := newOfferingService(t, repo)
	ctx := context.Background()

	offerings := []domain.ServiceOffering{{ID: 3, Title: "Brand Identity Package", IncludedItems: []string{"Logo design"}}}
	repo.On("List", ctx).Return(offerings, nil).Once()

	first, err := svc.ListOfferings(ctx)
	require.NoError(t, err)
	assert.Equal(t, offerings, first)

	second, err := svc.ListOfferings(ctx)
	require.NoError(t, err)
	assert.Equal(t, offerings, second)

	repo.AssertNumberOfCalls(t, "List", 1)
}
