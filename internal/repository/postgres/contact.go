package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/erico-tech-world/personal-portfolio/internal/domain"
	"github.com/erico-tech-world/personal-portfolio/pkg/database"
	apperrors "github.com/erico-tech-world/personal-portfolio/pkg/errors"
)

// ContactRepository implements repository.ContactRepository using PostgreSQL.
type ContactRepository struct {
	db database.DBTX
}

// NewContactRepository creates a new PostgreSQL-backed contact message repository.
func NewContactRepository(db database.DBTX) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create inserts a new contact message and populates its generated ID.
func (r *ContactRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	query := `
		INSERT INTO contacts (name, email, message, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	ctx, end := database.TraceQuery(ctx, "CreateContactMessage", query)
	err := r.db.QueryRow(ctx, query,
		msg.Name,
		msg.Email,
		msg.Message,
		msg.CreatedAt,
	).Scan(&msg.ID)
	end(err)
	if err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}

	return nil
}

// List returns contact messages newest first with pagination.
func (r *ContactRepository) List(ctx context.Context, offset, limit int) ([]domain.ContactMessage, int, error) {
	query := `
		SELECT id, name, email, message, created_at,
			   count(*) OVER() AS total_count
		FROM contacts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	ctx, end := database.TraceQuery(ctx, "ListContactMessages", query)
	rows, err := r.db.Query(ctx, query, limit, offset)
	end(err)
	if err != nil {
		return nil, 0, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	var (
		messages   []domain.ContactMessage
		totalCount int
	)

	for rows.Next() {
		var m domain.ContactMessage
		if err := rows.Scan(
			&m.ID,
			&m.Name,
			&m.Email,
			&m.Message,
			&m.CreatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan contact message row: %w", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate contact message rows: %w", err)
	}

	if messages == nil {
		messages = []domain.ContactMessage{}
	}

	return messages, totalCount, nil
}

// Delete removes a contact message by its ID.
func (r *ContactRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM contacts WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "DeleteContactMessage", query)
	ct, err := r.db.Exec(ctx, query, id)
	end(err)
	if err != nil {
		return fmt.Errorf("delete contact message: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("contact_message", strconv.FormatInt(id, 10))
	}

	return nil
}
