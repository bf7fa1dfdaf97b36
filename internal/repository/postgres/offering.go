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

// OfferingRepository implements repository.OfferingRepository using PostgreSQL.
type OfferingRepository struct {
	db database.DBTX
}

// NewOfferingRepository creates a new PostgreSQL-backed offering repository.
func NewOfferingRepository(db database.DBTX) *OfferingRepository {
	return &OfferingRepository{db: db}
}

// Create inserts a new service offering and populates its generated ID.
func (r *OfferingRepository) Create(ctx context.Context, o *domain.ServiceOffering) error {
	query := `
		INSERT INTO services (title, description, included_items, price_min, price_max, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	ctx, end := database.TraceQuery(ctx, "CreateOffering", query)
	err := r.db.QueryRow(ctx, query,
		o.Title,
		o.Description,
		o.IncludedItems,
		o.PriceMin,
		o.PriceMax,
		o.Currency,
		o.CreatedAt,
		o.UpdatedAt,
	).Scan(&o.ID)
	end(err)
	if err != nil {
		return fmt.Errorf("insert service offering: %w", err)
	}

	return nil
}

// GetByID retrieves a service offering by its ID.
func (r *OfferingRepository) GetByID(ctx context.Context, id int64) (*domain.ServiceOffering, error) {
	query := `
		SELECT id, title, description, included_items, price_min, price_max, currency, created_at, updated_at
		FROM services
		WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "GetOffering", query)
	var o domain.ServiceOffering
	err := r.db.QueryRow(ctx, query, id).Scan(
		&o.ID,
		&o.Title,
		&o.Description,
		&o.IncludedItems,
		&o.PriceMin,
		&o.PriceMax,
		&o.Currency,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	end(err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("service", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("scan service offering: %w", err)
	}

	return &o, nil
}

// List returns all service offerings ordered by id.
func (r *OfferingRepository) List(ctx context.Context) ([]domain.ServiceOffering, error) {
	query := `
		SELECT id, title, description, included_items, price_min, price_max, currency, created_at, updated_at
		FROM services
		ORDER BY id ASC`

	ctx, end := database.TraceQuery(ctx, "ListOfferings", query)
	rows, err := r.db.Query(ctx, query)
	end(err)
	if err != nil {
		return nil, fmt.Errorf("list service offerings: %w", err)
	}
	defer rows.Close()

	var offerings []domain.ServiceOffering
	for rows.Next() {
		var o domain.ServiceOffering
		if err := rows.Scan(
			&o.ID,
			&o.Title,
			&o.Description,
			&o.IncludedItems,
			&o.PriceMin,
			&o.PriceMax,
			&o.Currency,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan service offering row: %w", err)
		}
		offerings = append(offerings, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate service offering rows: %w", err)
	}

	if offerings == nil {
		offerings = []domain.ServiceOffering{}
	}

	return offerings, nil
}

// Update modifies an existing service offering.
func (r *OfferingRepository) Update(ctx context.Context, o *domain.ServiceOffering) error {
	o.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE services
		SET title = $1, description = $2, included_items = $3, price_min = $4, price_max = $5, currency = $6, updated_at = $7
		WHERE id = $8`

	ctx, end := database.TraceQuery(ctx, "UpdateOffering", query)
	ct, err := r.db.Exec(ctx, query,
		o.Title,
		o.Description,
		o.IncludedItems,
		o.PriceMin,
		o.PriceMax,
		o.Currency,
		o.UpdatedAt,
		o.ID,
	)
	end(err)
	if err != nil {
		return fmt.Errorf("update service offering: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("service", strconv.FormatInt(o.ID, 10))
	}

	return nil
}

// Delete removes a service offering by its ID.
func (r *OfferingRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM services WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "DeleteOffering", query)
	ct, err := r.db.Exec(ctx, query, id)
	end(err)
	if err != nil {
		return fmt.Errorf("delete service offering: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("service", strconv.FormatInt(id, 10))
	}

	return nil
}
