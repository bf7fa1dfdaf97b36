package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/erico-tech-world/personal-portfolio/internal/domain"
	"github.com/erico-tech-world/personal-portfolio/pkg/database"
	apperrors "github.com/erico-tech-world/personal-portfolio/pkg/errors"
)

// ContentRepository implements repository.ContentRepository using PostgreSQL.
type ContentRepository struct {
	db database.DBTX
}

// NewContentRepository creates a new PostgreSQL-backed site content repository.
func NewContentRepository(db database.DBTX) *ContentRepository {
	return &ContentRepository{db: db}
}

// Upsert creates the row for the given key or replaces its value.
func (r *ContentRepository) Upsert(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO site_content (content_key, content_value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (content_key) DO UPDATE
		SET content_value = EXCLUDED.content_value, updated_at = EXCLUDED.updated_at`

	ctx, end := database.TraceQuery(ctx, "UpsertContent", query)
	_, err := r.db.Exec(ctx, query, key, value, time.Now().UTC())
	end(err)
	if err != nil {
		return fmt.Errorf("upsert site content %q: %w", key, err)
	}

	return nil
}

// Get retrieves a single content entry by key.
func (r *ContentRepository) Get(ctx context.Context, key string) (*domain.SiteContent, error) {
	query := `
		SELECT content_key, content_value, updated_at
		FROM site_content
		WHERE content_key = $1`

	ctx, end := database.TraceQuery(ctx, "GetContent", query)
	var c domain.SiteContent
	err := r.db.QueryRow(ctx, query, key).Scan(&c.Key, &c.Value, &c.UpdatedAt)
	end(err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("site_content", key)
		}
		return nil, fmt.Errorf("scan site content: %w", err)
	}

	return &c, nil
}

// List returns all content entries ordered by key.
func (r *ContentRepository) List(ctx context.Context) ([]domain.SiteContent, error) {
	query := `
		SELECT content_key, content_value, updated_at
		FROM site_content
		ORDER BY content_key ASC`

	ctx, end := database.TraceQuery(ctx, "ListContent", query)
	rows, err := r.db.Query(ctx, query)
	end(err)
	if err != nil {
		return nil, fmt.Errorf("list site content: %w", err)
	}
	defer rows.Close()

	var entries []domain.SiteContent
	for rows.Next() {
		var c domain.SiteContent
		if err := rows.Scan(&c.Key, &c.Value, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan site content row: %w", err)
		}
		entries = append(entries, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate site content rows: %w", err)
	}

	if entries == nil {
		entries = []domain.SiteContent{}
	}

	return entries, nil
}

// isUniqueViolation reports whether the error is a PostgreSQL unique
// constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
