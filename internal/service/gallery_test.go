package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/erico-tech-world/personal-portfolio/internal/domain"
	"github.com/erico-tech-world/personal-portfolio/internal/storage"
	apperrors "github.com/erico-tech-world/personal-portfolio/pkg/errors"
)

func newGalleryService(t *testing.T, repo *mockGalleryRepository, store *mockStorage) *GalleryService {
	t.Helper()
	return NewGalleryService(repo, store, newTestCache(t), newTestProducer(), newTestLogger(), "portfolio-gallery")
}

func validCreateInput() *CreateGalleryItemInput {
	return &CreateGalleryItemInput{
		Category:    "Branding",
		Title:       "T1",
		Filename:    "work.jpg",
		ContentType: "image/jpeg",
		Size:        2048,
		Image:       strings.NewReader("fake image bytes"),
	}
}

// ---------------------------------------------------------------------------
// CreateGalleryItem
// ---------------------------------------------------------------------------

func TestCreateGalleryItem_Success(t *testing.T) {
	repo := new(mockGalleryRepository)
	store := new(mockStorage)
	svc := newGalleryService(t, repo, store)
	ctx := context.Background()

	store.On("Upload", ctx, mock.AnythingOfType("*storage.UploadInput")).
		Return(&storage.UploadResult{
			MediaID: "portfolio-gallery/abc123",
			URL:     "https://res.cloudinary.com/demo/image/upload/v1/portfolio-gallery/abc123.jpg",
		}, nil)

	repo.On("Create", ctx, mock.AnythingOfType("*domain.GalleryItem")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.GalleryItem).ID = 42
		}).
		Return(nil)

	item, err := svc.CreateGalleryItem(ctx, validCreateInput())

	require.NoError(t, err)
	assert.Equal(t, int64(42), item.ID)
	assert.Equal(t, "Branding", item.Category)
	assert.Equal(t, "T1", item.Title)
	assert.NotEmpty(t, item.ImageURL)
	assert.NotEmpty(t, item.MediaID)
	assert.Equal(t, "portfolio-gallery/abc123", item.MediaID)
	store.AssertNotCalled(t, "Destroy", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestCreateGalleryItem_UploadsIntoConfiguredFolder(t *testing.T) {
	repo := new(mockGalleryRepository)
	store := new(mockStorage)
	svc := newGalleryService(t, repo, store)
	ctx := context.Background()

	store.On("Upload", ctx, mock.MatchedBy(func(in *storage.UploadInput) bool {
		return in.Folder == "portfolio-gallery" && in.ContentType == "image/jpeg"
	})).Return(&storage.UploadResult{MediaID: "portfolio-gallery/x", URL: "https://cdn.example.com/x"}, nil)

	repo.On("Create", ctx, mock.Anything).Return(nil)

	_, err := svc.CreateGalleryItem(ctx, validCreateInput())

	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestCreateGalleryItem_MissingCategory(t *testing.T) {
	repo := new(mockGalleryRepository)
	store := new(mockStorage)
	svc := newGalleryService(t, repo, store)

	input := validCreateInput()
	input.Category = ""

	item, err := svc.CreateGalleryItem(context.Background(), input)

	assert.Nil(t, item)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestCreateGalleryItem_MissingImage(t *testing.T) {
	repo := new(mockGalleryRepository)
	store := new(mockStorage)
	svc := newGalleryService(t, repo, store)

	input := validCreateInput()
	input.Image = nil
	input.Size = 0

	_, err := svc.CreateGalleryItem(context.Background(), input)

	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestCreateGalleryItem_DisallowedContentType(t *testing.T) {
	repo := new(mockGalleryRepository)
	store := new(mockStorage)
	svc := newGalleryService(t, repo, store)

	input := validCreateInput()
	input.ContentType = "application/pdf"

	_, err := svc.CreateGalleryItem(context.Background(), input)

	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestCreateGalleryItem_OversizedImage(t *testing.T) {
	repo := new(mockGalleryRepository)
	store := new(mockStorage)
	svc := newGalleryService(t, repo, store)

	input := validCreateInput()
	input.Size = domain.MaxUploadSize + 1

	_, err := svc.CreateGalleryItem(context.Background(), input)

	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestCreateGalleryItem_UploadFails_NoCompensation(t *testing.T) {
	repo := new(mockGalleryRepository)
	store := new(mockStorage)
	svc := newGalleryService(t, repo, store)
	ctx := context.Background()

	store.On("Upload", ctx, mock.Anything).
		Return(nil, errors.New("media store unavailable"))

	item, err := svc.CreateGalleryItem(ctx, validCreateInput())

	assert.Nil(t, item)
	assert.True(t, errors.Is(err, apperrors.ErrUploadFailed))
	assert.Contains(t, err.Error(), "Failed to add item")
	store.AssertNotCalled(t, "Destroy", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateGalleryItem_InsertFails_CompensatesUpload(t *testing.T) {
	repo := new(mockGalleryRepository)
	store := new(mockStorage)
	svc := newGalleryService(t, repo, store)
	ctx := context.Background()

	store.On("Upload", ctx, mock.Anything).
		Return(&storage.UploadResult{MediaID: "portfolio-gallery/doomed", URL: "https://cdn.example.com/doomed"}, nil)
	repo.On("Create", ctx, mock.Anything).Return(errors.New("duplicate key"))
	store.On("Destroy", ctx, "portfolio-gallery/doomed").Return(nil)

	item, err := svc.CreateGalleryItem(ctx, validCreateInput())

	assert.Nil(t, item)
	assert.True(t, errors.Is(err, apperrors.ErrWriteFailed))
	assert.Contains(t, err.Error(), "Failed to add item")
	assert.Contains(t, err.Error(), "duplicate key")
	store.AssertNumberOfCalls(t, "Destroy", 1)
	store.AssertExpectations(t)
}

func TestCreateGalleryItem_CompensationFailure_DoesNotMaskInsertError(t *testing.T) {
	repo := new(mockGalleryRepository)
	store := new(mockStorage)
	svc := newGalleryService(t, repo, store)
	ctx := context.Background()

	store.On("Upload", ctx, mock.Anything).
		Return(&storage.UploadResult{MediaID: "portfolio-gallery/doomed", URL: "https://cdn.example.com/doomed"}, nil)
	repo.On("Create", ctx, mock.Anything).Return(errors.New("duplicate key"))
	store.On("Destroy", ctx, "portfolio-gallery/doomed").Return(errors.New("destroy timed out"))

	_, err := svc.CreateGalleryItem(ctx, validCreateInput())

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrWriteFailed))
	assert.Contains(t, err.Error(), "duplicate key")
	assert.NotContains(t, err.Error(), "destroy timed out")
}

// ---------------------------------------------------------------------------
// UpdateGalleryItem
// ---------------------------------------------------------------------------

func TestUpdateGalleryItem_Success(t *testing.T) {
	repo := new(mockGalleryRepository)
	store := new(mockStorage)
	svc := newGalleryService(t, repo, store)
	ctx := context.Background()

	existing := &domain.GalleryItem{
		ID:       5,
		ImageURL: "https://cdn.example.com/a.jpg",
		MediaID:  "portfolio-gallery/a",
		Category: "Branding",
		Title:    "Old",
	}

	repo.On("GetByID", ctx, int64(5)).Return(existing, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(item *domain.GalleryItem) bool {
		return item.ID == 5 && item.Category == "Web" && item.Title == "New" &&
			item.MediaID == "portfolio-gallery/a"
	})).Return(nil)

	item, err := svc.UpdateGalleryItem(ctx, 5, &UpdateGalleryItemInput{Category: "Web", Title: "New"})

	require.NoError(t, err)
	assert.Equal(t, "Web", item.Category)
	store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestUpdateGalleryItem_NotFound(t *testing.T) {
	repo := new(mockGalleryRepository)
	store := new(mockStorage)
	svc := newGalleryService(t, repo, store)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(999)).
		Return(nil, apperrors.NotFound("gallery_item", "999"))

	item, err := svc.UpdateGalleryItem(ctx, 999, &UpdateGalleryItemInput{Category: "X"})

	assert.Nil(t, item)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Contains(t, err.Error(), "Failed to update item")
}

func TestUpdateGalleryItem_EmptyCategory(t *testing.T) {
	repo := new(mockGalleryRepository)
	store := new(mockStorage)
	svc := newGalleryService(t, repo, store)

	_, err := svc.UpdateGalleryItem(context.Background(), 5, &UpdateGalleryItemInput{})

	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

// ---------------------------------------------------------------------------
// DeleteGalleryItem
// ---------------------------------------------------------------------------

func TestDeleteGalleryItem_MediaDestroyedBeforeRowDelete(t *testing.T) {
	var calls []string
	repo := &mockGalleryRepository{calls: &calls}
	store := &mockStorage{calls: &calls}
	svc := newGalleryService(t, repo, store)
	ctx := context.Background()

	store.On("Destroy", ctx, "med_5").Return(nil)
	repo.On("Delete", ctx, int64(5)).Return(nil)

	result, err := svc.DeleteGalleryItem(ctx, 5, "med_5")

	require.NoError(t, err)
	assert.Empty(t, result.Warning)
	require.Equal(t, []string{"storage.Destroy", "repo.Delete"}, calls)
}

func TestDeleteGalleryItem_MediaDestroyFails_RowStillDeleted(t *testing.T) {
	repo := new(mockGalleryRepository)
	store := new(mockStorage)
	svc := newGalleryService(t, repo, store)
	ctx := context.Background()

	store.On("Destroy", ctx, "med_5").Return(errors.New("asset locked"))
	repo.On("Delete", ctx, int64(5)).Return(nil)

	result, err := svc.DeleteGalleryItem(ctx, 5, "med_5")

	require.NoError(t, err)
	assert.Contains(t, result.Warning, "med_5")
	assert.Contains(t, result.Warning, "asset locked")
	repo.AssertExpectations(t)
}

func TestDeleteGalleryItem_RowDeleteFails(t *testing.T) {
	repo := new(mockGalleryRepository)
	store := new(mockStorage)
	svc := newGalleryService(t, repo, store)
	ctx := context.Background()

	store.On("Destroy", ctx, "med_5").Return(nil)
	repo.On("Delete", ctx, int64(5)).Return(apperrors.NotFound("gallery_item", "5"))

	result, err := svc.DeleteGalleryItem(ctx, 5, "med_5")

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestDeleteGalleryItem_MissingIDOrMediaID(t *testing.T) {
	repo := new(mockGalleryRepository)
	store := new(mockStorage)
	svc := newGalleryService(t, repo, store)
	ctx := context.Background()

	_, err := svc.DeleteGalleryItem(ctx, 0, "med_5")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	_, err = svc.DeleteGalleryItem(ctx, 5, "")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	store.AssertNotCalled(t, "Destroy", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// ---------------------------------------------------------------------------
// ListGalleryItems
// ---------------------------------------------------------------------------

func TestListGalleryItems_CachesRepoResult(t *testing.T) {
	repo := new(mockGalleryRepository)
	store := new(mockStorage)
	svc := newGalleryService(t, repo, store)
	ctx := context.Background()

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	items := []domain.GalleryItem{
		{ID: 1, ImageURL: "https://cdn.example.com/a.jpg", MediaID: "portfolio-gallery/a", Category: "branding", CreatedAt: now, UpdatedAt: now},
	}

	repo.On("List", ctx).Return(items, nil).Once()

	first, err := svc.ListGalleryItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, items, first)

	// Second call is served from the cache, so List is not hit again.
	second, err := svc.ListGalleryItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, items, second)

	repo.AssertNumberOfCalls(t, "List", 1)
}

func TestCreateGalleryItem_InvalidatesListCache(t *testing.T) {
	repo := new(mockGalleryRepository)
	store := new(mockStorage)
	svc := newGalleryService(t, repo, store)
	ctx := context.Background()

	repo.On("List", ctx).Return([]domain.GalleryItem{}, nil).Twice()
	store.On("Upload", ctx, mock.Anything).
		Return(&storage.UploadResult{MediaID: "portfolio-gallery/n", URL: "https://cdn.example.com/n"}, nil)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	_, err := svc.ListGalleryItems(ctx)
	require.NoError(t, err)

	_, err = svc.CreateGalleryItem(ctx, validCreateInput())
	require.NoError(t, err)

	// The mutation invalidated the cache, so this list hits the repo again.
	_, err = svc.ListGalleryItems(ctx)
	require.NoError(t, err)

	repo.AssertNumberOfCalls(t, "List", 2)
}
