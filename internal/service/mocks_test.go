package service

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"

	"github.com/erico-tech-world/personal-portfolio/internal/cache"
	"github.com/erico-tech-world/personal-portfolio/internal/domain"
	"github.com/erico-tech-world/personal-portfolio/internal/event"
	"github.com/erico-tech-world/personal-portfolio/internal/storage"
	pkgkafka "github.com/erico-tech-world/personal-portfolio/pkg/kafka"
)

// --- Mock Gallery Repository ---

type mockGalleryRepository struct {
	mock.Mock
	calls *[]string
}

func (m *mockGalleryRepository) record(name string) {
	if m.calls != nil {
		*m.calls = append(*m.calls, name)
	}
}

func (m *mockGalleryRepository) Create(ctx context.Context, item *domain.GalleryItem) error {
	m.record("repo.Create")
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockGalleryRepository) GetByID(ctx context.Context, id int64) (*domain.GalleryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GalleryItem), args.Error(1)
}

func (m *mockGalleryRepository) List(ctx context.Context) ([]domain.GalleryItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GalleryItem), args.Error(1)
}

func (m *mockGalleryRepository) Update(ctx context.Context, item *domain.GalleryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockGalleryRepository) Delete(ctx context.Context, id int64) error {
	m.record("repo.Delete")
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Mock Content Repository ---

type mockContentRepository struct {
	mock.Mock
}

func (m *mockContentRepository) Upsert(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *mockContentRepository) Get(ctx context.Context, key string) (*domain.SiteContent, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SiteContent), args.Error(1)
}

func (m *mockContentRepository) List(ctx context.Context) ([]domain.SiteContent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SiteContent), args.Error(1)
}

// --- Mock Offering Repository ---

type mockOfferingRepository struct {
	mock.Mock
}

func (m *mockOfferingRepository) Create(ctx context.Context, o *domain.ServiceOffering) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *mockOfferingRepository) GetByID(ctx context.Context, id int64) (*domain.ServiceOffering, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceOffering), args.Error(1)
}

func (m *mockOfferingRepository) List(ctx context.Context) ([]domain.ServiceOffering, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ServiceOffering), args.Error(1)
}

func (m *mockOfferingRepository) Update(ctx context.Context, o *domain.ServiceOffering) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *mockOfferingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Mock Social Repository ---

type mockSocialRepository struct {
	mock.Mock
}

func (m *mockSocialRepository) Create(ctx context.Context, link *domain.SocialLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *mockSocialRepository) List(ctx context.Context) ([]domain.SocialLink, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SocialLink), args.Error(1)
}

func (m *mockSocialRepository) Update(ctx context.Context, link *domain.SocialLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *mockSocialRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Mock Contact Repository ---

type mockContactRepository struct {
	mock.Mock
}

func (m *mockContactRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *mockContactRepository) List(ctx context.Context, offset, limit int) ([]domain.ContactMessage, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ContactMessage), args.Int(1), args.Error(2)
}

func (m *mockContactRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Mock Storage ---

type mockStorage struct {
	mock.Mock
	calls *[]string
}

func (m *mockStorage) record(name string) {
	if m.calls != nil {
		*m.calls = append(*m.calls, name)
	}
}

func (m *mockStorage) Upload(ctx context.Context, input *storage.UploadInput) (*storage.UploadResult, error) {
	m.record("storage.Upload")
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.UploadResult), args.Error(1)
}

func (m *mockStorage) Destroy(ctx context.Context, mediaID string) error {
	m.record("storage.Destroy")
	args := m.Called(ctx, mediaID)
	return args.Error(0)
}

func (m *mockStorage) GetURL(ctx context.Context, mediaID string) (string, error) {
	args := m.Called(ctx, mediaID)
	return args.String(0), args.Error(1)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestCache(t *testing.T) *cache.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return cache.New(client, time.Minute)
}

func newTestProducer() *event.Producer {
	logger := newTestLogger()
	// A producer pointed at an unreachable broker: publish errors are
	// logged by the services and must not fail the operation under test.
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	return event.NewProducer(pkgkafka.NewProducer(kafkaCfg, logger), logger)
}
