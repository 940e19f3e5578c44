package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"clubhub/internal/domain"
)

type ContactRepository interface {
	Create(ctx context.Context, msg *domain.ContactMessage) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ContactMessage, error)
	List(ctx context.Context, status *domain.ContactStatus, params domain.PaginationParams) ([]domain.ContactMessage, int64, error)
	Respond(ctx context.Context, id uuid.UUID, response string, responderID uuid.UUID) error
	Close(ctx context.Context, id uuid.UUID) error
}

type contactRepository struct {
	db *sqlx.DB
}

func NewContactRepository(db *sqlx.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (message_id, name, email, subject, message, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		msg.ID, msg.Name, msg.Email, msg.Subject, msg.Message, msg.Status,
	).Scan(&msg.CreatedAt)
}

func (r *contactRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ContactMessage, error) {
	var msg domain.ContactMessage
	query := `SELECT * FROM contact_messages WHERE message_id = $1`
	err := r.db.GetContext(ctx, &msg, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrMessageNotFound
	}
	return &msg, err
}

func (r *contactRepository) List(ctx context.Context, status *domain.ContactStatus, params domain.PaginationParams) ([]domain.ContactMessage, int64, error) {
	params.Validate()

	var total int64
	var messages []domain.ContactMessage

	if status != nil {
		countQuery := `SELECT COUNT(*) FROM contact_messages WHERE status = $1`
		if err := r.db.GetContext(ctx, &total, countQuery, *status); err != nil {
			return nil, 0, err
		}

		query := `
			SELECT * FROM contact_messages
			WHERE status = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3`
		err := r.db.SelectContext(ctx, &messages, query, *status, params.PageSize, params.Offset())
		return messages, total, err
	}

	countQuery := `SELECT COUNT(*) FROM contact_messages`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM contact_messages
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &messages, query, params.PageSize, params.Offset())
	return messages, total, err
}

func (r *contactRepository) Respond(ctx context.Context, id uuid.UUID, response string, responderID uuid.UUID) error {
	query := `
		UPDATE contact_messages
		SET status = 'responded', response = $2, responded_by = $3, responded_at = NOW()
		WHERE message_id = $1`
	res, err := r.db.ExecContext(ctx, query, id, response, responderID)
	if err != nil {
		return err
	}
	return requireAffected(res, domain.ErrMessageNotFound)
}

func (r *contactRepository) Close(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE contact_messages SET status = 'closed' WHERE message_id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return requireAffected(res, domain.ErrMessageNotFound)
}
