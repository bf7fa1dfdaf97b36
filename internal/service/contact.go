package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/erico-tech-world/personal-portfolio/internal/domain"
	"github.com/erico-tech-world/personal-portfolio/internal/event"
	"github.com/erico-tech-world/personal-portfolio/internal/repository"
	apperrors "github.com/erico-tech-world/personal-portfolio/pkg/errors"
)

// ContactService handles public contact submissions and the admin inbox.
type ContactService struct {
	repo     repository.ContactRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewContactService creates a new contact message service.
func NewContactService(repo repository.ContactRepository, producer *event.Producer, logger *slog.Logger) *ContactService {
	return &ContactService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// SubmitContactInput holds a public contact form submission.
type SubmitContactInput struct {
	Name    string
	Email   string
	Message string
}

// SubmitContactMessage validates and stores a contact form submission.
func (s *ContactService) SubmitContactMessage(ctx context.Context, input *SubmitContactInput) (*domain.ContactMessage, error) {
	if input.Name == "" || input.Email == "" || input.Message == "" {
		return nil, apperrors.InvalidInput("Missing required fields")
	}

	msg := &domain.ContactMessage{
		Name:      input.Name,
		Email:     input.Email,
		Message:   input.Message,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, opError("Failed to save message", err)
	}

	if err := s.producer.PublishContactMessageReceived(ctx, msg); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish contact.message.received event",
			slog.Int64("message_id", msg.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "contact message received",
		slog.Int64("message_id", msg.ID),
	)

	return msg, nil
}

// ListContactMessages returns messages newest first with pagination.
func (s *ContactService) ListContactMessages(ctx context.Context, offset, limit int) ([]domain.ContactMessage, int, error) {
	messages, total, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list contact messages: %w", err)
	}
	return messages, total, nil
}

// DeleteContactMessage removes a message by id.
func (s *ContactService) DeleteContactMessage(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.InvalidInput("message id is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return opError("Failed to delete contact message", err)
	}

	s.logger.InfoContext(ctx, "contact message deleted",
		slog.Int64("message_id", id),
	)

	return nil
}
