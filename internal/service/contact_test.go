package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/erico-tech-world/personal-portfolio/internal/domain"
	apperrors "github.com/erico-tech-world/personal-portfolio/pkg/errors"
)

func newContactService(repo *mockContactRepository) *ContactService {
	return NewContactService(repo, newTestProducer(), newTestLogger())
}

func TestSubmitContactMessage_Success(t *testing.T) {
	repo := new(mockContactRepository)
	svc := newContactService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(msg *domain.ContactMessage) bool {
		return msg.Name == "Ada Obi" && msg.Email == "ada@example.com" && !msg.CreatedAt.IsZero()
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.ContactMessage).ID = 17
	}).Return(nil)

	msg, err := svc.SubmitContactMessage(ctx, &SubmitContactInput{
		Name:    "Ada Obi",
		Email:   "ada@example.com",
		Message: "I would like a quote.",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(17), msg.ID)
	repo.AssertExpectations(t)
}

func TestSubmitContactMessage_MissingFields(t *testing.T) {
	repo := new(mockContactRepository)
	svc := newContactService(repo)
	ctx := context.Background()

	cases := []SubmitContactInput{
		{Email: "a@b.c", Message: "hi"},
		{Name: "Ada", Message: "hi"},
		{Name: "Ada", Email: "a@b.c"},
	}

	for _, input := range cases {
		msg, err := svc.SubmitContactMessage(ctx, &input)
		assert.Nil(t, msg)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
		assert.Contains(t, err.Error(), "Missing required fields")
	}

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitContactMessage_StoreError(t *testing.T) {
	repo := new(mockContactRepository)
	svc := newContactService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.Anything).Return(errors.New("connection refused"))

	msg, err := svc.SubmitContactMessage(ctx, &SubmitContactInput{
		Name:    "Ada",
		Email:   "a@b.c",
		Message: "hi",
	})

	assert.Nil(t, msg)
	assert.True(t, errors.Is(err, apperrors.ErrWriteFailed))
	assert.Contains(t, err.Error(), "Failed to save message")
}

func TestListContactMessages(t *testing.T) {
	repo := new(mockContactRepository)
	svc := newContactService(repo)
	ctx := context.Background()

	messages := []domain.ContactMessage{
		{ID: 2, Name: "Ada", CreatedAt: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)},
		{ID: 1, Name: "Chidi", CreatedAt: time.Date(2025, 3, 9, 9, 0, 0, 0, time.UTC)},
	}

	repo.On("List", ctx, 0, 20).Return(messages, 2, nil)

	got, total, err := svc.ListContactMessages(ctx, 0, 20)

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, messages, got)
}

func TestDeleteContactMessage_Success(t *testing.T) {
	repo := new(mockContactRepository)
	svc := newContactService(repo)
	ctx := context.Background()

	repo.On("Delete", ctx, int64(9)).Return(nil)

	assert.NoError(t, svc.DeleteContactMessage(ctx, 9))
	repo.AssertExpectations(t)
}

func TestDeleteContactMessage_InvalidID(t *testing.T) {
	repo := new(mockContactRepository)
	svc := newContactService(repo)

	err := svc.DeleteContactMessage(context.Background(), 0)

	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteContactMessage_NotFound(t *testing.T) {
	repo := new(mockContactRepository)
	svc := newContactService(repo)
	ctx := context.Background()

	repo.On("Delete", ctx, int64(999)).Return(apperrors.NotFound("contact_message", "999"))

	err := svc.DeleteContactMessage(ctx, 999)

	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Contains(t, err.Error(), "Failed to delete contact message")
}
