package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/erico-tech-world/personal-portfolio/internal/domain"
	"github.com/erico-tech-world/personal-portfolio/pkg/database"
	apperrors "github.com/erico-tech-world/personal-portfolio/pkg/errors"
)

// GalleryRepository implements repository.GalleryRepository using PostgreSQL.
type GalleryRepository struct {
	db database.DBTX
}

// NewGalleryRepository creates a new PostgreSQL-backed gallery repository.
func NewGalleryRepository(db database.DBTX) *GalleryRepository {
	return &GalleryRepository{db: db}
}

// Create inserts a new gallery item and populates its generated ID.
func (r *GalleryRepository) Create(ctx context.Context, item *domain.GalleryItem) error {
	query := `
		INSERT INTO gallery_items (image_url, media_id, category, title, description, project_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	ctx, end := database.TraceQuery(ctx, "CreateGalleryItem", query)
	err := r.db.QueryRow(ctx, query,
		item.ImageURL,
		item.MediaID,
		item.Category,
		item.Title,
		item.Description,
		item.ProjectURL,
		item.CreatedAt,
		item.UpdatedAt,
	).Scan(&item.ID)
	end(err)
	if err != nil {
		return fmt.Errorf("insert gallery item: %w", err)
	}

	return nil
}

// GetByID retrieves a gallery item by its ID.
func (r *GalleryRepository) GetByID(ctx context.Context, id int64) (*domain.GalleryItem, error) {
	query := `
		SELECT id, image_url, media_id, category, title, description, project_url, created_at, updated_at
		FROM gallery_items
		WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "GetGalleryItem", query)
	var item domain.GalleryItem
	err := r.db.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.ImageURL,
		&item.MediaID,
		&item.Category,
		&item.Title,
		&item.Description,
		&item.ProjectURL,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	end(err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("gallery_item", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("scan gallery item: %w", err)
	}

	return &item, nil
}

// List returns all gallery items ordered by id.
func (r *GalleryRepository) List(ctx context.Context) ([]domain.GalleryItem, error) {
	query := `
		SELECT id, image_url, media_id, category, title, description, project_url, created_at, updated_at
		FROM gallery_items
		ORDER BY id ASC`

	ctx, end := database.TraceQuery(ctx, "ListGalleryItems", query)
	rows, err := r.db.Query(ctx, query)
	end(err)
	if err != nil {
		return nil, fmt.Errorf("list gallery items: %w", err)
	}
	defer rows.Close()

	var items []domain.GalleryItem
	for rows.Next() {
		var item domain.GalleryItem
		if err := rows.Scan(
			&item.ID,
			&item.ImageURL,
			&item.MediaID,
			&item.Category,
			&item.Title,
			&item.Description,
			&item.ProjectURL,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan gallery item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate gallery item rows: %w", err)
	}

	if items == nil {
		items = []domain.GalleryItem{}
	}

	return items, nil
}

// Update modifies the metadata of an existing gallery item. The image itself
// is immutable; replacing it means deleting and re-creating the item.
func (r *GalleryRepository) Update(ctx context.Context, item *domain.GalleryItem) error {
	item.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE gallery_items
		SET category = $1, title = $2, description = $3, project_url = $4, updated_at = $5
		WHERE id = $6`

	ctx, end := database.TraceQuery(ctx, "UpdateGalleryItem", query)
	ct, err := r.db.Exec(ctx, query,
		item.Category,
		item.Title,
		item.Description,
		item.ProjectURL,
		item.UpdatedAt,
		item.ID,
	)
	end(err)
	if err != nil {
		return fmt.Errorf("update gallery item: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("gallery_item", strconv.FormatInt(item.ID, 10))
	}

	return nil
}

// Delete removes a gallery item row by its ID.
func (r *GalleryRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM gallery_items WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "DeleteGalleryItem", query)
	ct, err := r.db.Exec(ctx, query, id)
	end(err)
	if err != nil {
		return fmt.Errorf("delete gallery item: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("gallery_item", strconv.FormatInt(id, 10))
	}

	return nil
}
