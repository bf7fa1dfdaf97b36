package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/erico-tech-world/personal-portfolio/internal/domain"
	"github.com/erico-tech-world/personal-portfolio/pkg/database"
	apperrors "github.com/erico-tech-world/personal-portfolio/pkg/errors"
)

// SocialRepository implements repository.SocialRepository using PostgreSQL.
type SocialRepository struct {
	db database.DBTX
}

// NewSocialRepository creates a new PostgreSQL-backed social link repository.
func NewSocialRepository(db database.DBTX) *SocialRepository {
	return &SocialRepository{db: db}
}

// Create inserts a new social link and populates its generated ID.
func (r *SocialRepository) Create(ctx context.Context, link *domain.SocialLink) error {
	query := `
		INSERT INTO social_links (platform, url, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	ctx, end := database.TraceQuery(ctx, "CreateSocialLink", query)
	err := r.db.QueryRow(ctx, query,
		link.Platform,
		link.URL,
		link.CreatedAt,
		link.UpdatedAt,
	).Scan(&link.ID)
	end(err)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("social_link", "platform", link.Platform)
		}
		return fmt.Errorf("insert social link: %w", err)
	}

	return nil
}

// List returns all social links ordered by platform.
func (r *SocialRepository) List(ctx context.Context) ([]domain.SocialLink, error) {
	query := `
		SELECT id, platform, url, created_at, updated_at
		FROM social_links
		ORDER BY platform ASC`

	ctx, end := database.TraceQuery(ctx, "ListSocialLinks", query)
	rows, err := r.db.Query(ctx, query)
	end(err)
	if err != nil {
		return nil, fmt.Errorf("list social links: %w", err)
	}
	defer rows.Close()

	var links []domain.SocialLink
	for rows.Next() {
		var link domain.SocialLink
		if err := rows.Scan(
			&link.ID,
			&link.Platform,
			&link.URL,
			&link.CreatedAt,
			&link.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan social link row: %w", err)
		}
		links = append(links, link)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate social link rows: %w", err)
	}

	if links == nil {
		links = []domain.SocialLink{}
	}

	return links, nil
}

// Update modifies an existing social link.
func (r *SocialRepository) Update(ctx context.Context, link *domain.SocialLink) error {
	link.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE social_links
		SET platform = $1, url = $2, updated_at = $3
		WHERE id = $4`

	ctx, end := database.TraceQuery(ctx, "UpdateSocialLink", query)
	ct, err := r.db.Exec(ctx, query,
		link.Platform,
		link.URL,
		link.UpdatedAt,
		link.ID,
	)
	end(err)
	if err != nil {
		return fmt.Errorf("update social link: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("social_link", strconv.FormatInt(link.ID, 10))
	}

	return nil
}

// Delete removes a social link by its ID.
func (r *SocialRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM social_links WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "DeleteSocialLink", query)
	ct, err := r.db.Exec(ctx, query, id)
	end(err)
	if err != nil {
		return fmt.Errorf("delete social link: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("social_link", strconv.FormatInt(id, 10))
	}

	return nil
}
