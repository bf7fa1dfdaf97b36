package event

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/erico-tech-world/personal-portfolio/internal/domain"
	pkgkafka "github.com/erico-tech-world/personal-portfolio/pkg/kafka"
)

// Kafka topic constants for portfolio domain events.
const (
	TopicGalleryItemCreated    = "portfolio.gallery.item.created"
	TopicGalleryItemDeleted    = "portfolio.gallery.item.deleted"
	TopicContentUpdated        = "portfolio.content.updated"
	TopicContactMessageCreated = "portfolio.contact.message.received"
)

// Aggregate type constants.
const (
	AggregateTypeGalleryItem = "gallery_item"
	AggregateTypeSiteContent = "site_content"
	AggregateTypeContact     = "contact_message"
)

// Source identifier for events originating from this service.
const SourcePortfolio = "portfolio-backend"

// GalleryItemCreatedData is the payload for a gallery.item.created event.
type GalleryItemCreatedData struct {
	ID       int64  `json:"id"`
	Category string `json:"category"`
	Title    string `json:"title,omitempty"`
	ImageURL string `json:"image_url"`
	MediaID  string `json:"media_id"`
}

// GalleryItemDeletedData is the payload for a gallery.item.deleted event.
type GalleryItemDeletedData struct {
	ID      int64  `json:"id"`
	MediaID string `json:"media_id"`
}

// ContentUpdatedData is the payload for a content.updated event.
type ContentUpdatedData struct {
	Key string `json:"content_key"`
}

// ContactMessageReceivedData is the payload for a contact.message.received event.
type ContactMessageReceivedData struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Producer publishes portfolio domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishGalleryItemCreated publishes a gallery.item.created event.
func (p *Producer) PublishGalleryItemCreated(ctx context.Context, item *domain.GalleryItem) error {
	data := GalleryItemCreatedData{
		ID:       item.ID,
		Category: item.Category,
		Title:    item.Title,
		ImageURL: item.ImageURL,
		MediaID:  item.MediaID,
	}

	return p.publish(ctx, TopicGalleryItemCreated, strconv.FormatInt(item.ID, 10), AggregateTypeGalleryItem, data)
}

// PublishGalleryItemDeleted publishes a gallery.item.deleted event.
func (p *Producer) PublishGalleryItemDeleted(ctx context.Context, id int64, mediaID string) error {
	data := GalleryItemDeletedData{
		ID:      id,
		MediaID: mediaID,
	}

	return p.publish(ctx, TopicGalleryItemDeleted, strconv.FormatInt(id, 10), AggregateTypeGalleryItem, data)
}

// PublishContentUpdated publishes a content.updated event.
func (p *Producer) PublishContentUpdated(ctx context.Context, key string) error {
	data := ContentUpdatedData{Key: key}

	return p.publish(ctx, TopicContentUpdated, key, AggregateTypeSiteContent, data)
}

// PublishContactMessageReceived publishes a contact.message.received event.
func (p *Producer) PublishContactMessageReceived(ctx context.Context, msg *domain.ContactMessage) error {
	data := ContactMessageReceivedData{
		ID:    msg.ID,
		Name:  msg.Name,
		Email: msg.Email,
	}

	return p.publish(ctx, TopicContactMessageCreated, strconv.FormatInt(msg.ID, 10), AggregateTypeContact, data)
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	event, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, SourcePortfolio, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("topic", topic),
		slog.String("aggregate_id", aggregateID),
	)

	return nil
}
