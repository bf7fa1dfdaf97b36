package s3

import (
	"context"
	"fmt"
	"log/slog"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/erico-tech-world/personal-portfolio/internal/storage"
)

// Config holds the bucket settings for the S3 backend.
type Config struct {
	Bucket string
	Region string
}

// Storage implements storage.Storage against an S3 bucket.
type Storage struct {
	cfg    Config
	client *awss3.Client
	logger *slog.Logger
}

// New creates an S3-backed storage instance using the default AWS
// credential chain.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &Storage{
		cfg:    cfg,
		client: awss3.NewFromConfig(awsCfg),
		logger: logger,
	}, nil
}

// Upload puts the asset into the bucket under a generated key and returns
// its public URL.
func (s *Storage) Upload(ctx context.Context, input *storage.UploadInput) (*storage.UploadResult, error) {
	key := path.Join(input.Folder, uuid.NewString()+path.Ext(input.Filename))

	_, err := s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          input.Data,
		ContentType:   aws.String(input.ContentType),
		ContentLength: aws.Int64(input.Size),
	})
	if err != nil {
		return nil, fmt.Errorf("put object %s: %w", key, err)
	}

	url := s.objectURL(key)

	s.logger.DebugContext(ctx, "asset uploaded",
		slog.String("media_id", key),
	)

	return &storage.UploadResult{
		MediaID: key,
		URL:     url,
	}, nil
}

// Destroy deletes the object for the given key. S3 DeleteObject succeeds
// for keys that do not exist, so retried compensations stay safe.
func (s *Storage) Destroy(ctx context.Context, mediaID string) error {
	_, err := s.client.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(mediaID),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", mediaID, err)
	}

	return nil
}

// GetURL returns the public URL for the given key.
func (s *Storage) GetURL(_ context.Context, mediaID string) (string, error) {
	return s.objectURL(mediaID), nil
}

func (s *Storage) objectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}
