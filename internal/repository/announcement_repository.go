package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"clubhub/internal/domain"
)

type AnnouncementRepository interface {
	Create(ctx context.Context, a *domain.Announcement) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Announcement, error)
	Update(ctx context.Context, a *domain.Announcement) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EntityStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter domain.ListFilter) ([]domain.Announcement, int64, error)
	CountPublished(ctx context.Context) (int64, error)
}

type announcementRepository struct {
	db *sqlx.DB
}

func NewAnnouncementRepository(db *sqlx.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

var announcementFilterColumns = filterColumns{
	DateColumn:    "publish_at",
	SearchColumns: []string{"title", "content"},
}

func (r *announcementRepository) Create(ctx context.Context, a *domain.Announcement) error {
	query := `
		INSERT INTO announcements (announcement_id, title, content, type, priority, visibility, status, tags, publish_at, expire_at, author_id, branch_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		a.ID, a.Title, a.Content, a.Type, a.Priority, a.Visibility, a.Status,
		a.Tags, a.PublishAt, a.ExpireAt, a.AuthorID, a.BranchID,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
}

func (r *announcementRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Announcement, error) {
	var a domain.Announcement
	query := `SELECT * FROM announcements WHERE announcement_id = $1`
	err := r.db.GetContext(ctx, &a, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAnnouncementNotFound
	}
	return &a, err
}

func (r *announcementRepository) Update(ctx context.Context, a *domain.Announcement) error {
	query := `
		UPDATE announcements
		SET title = $2, content = $3, type = $4, priority = $5, visibility = $6, tags = $7, expire_at = $8, updated_at = NOW()
		WHERE announcement_id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		a.ID, a.Title, a.Content, a.Type, a.Priority, a.Visibility, a.Tags, a.ExpireAt,
	).Scan(&a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrAnnouncementNotFound
	}
	return err
}

func (r *announcementRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EntityStatus) error {
	query := `UPDATE announcements SET status = $2, updated_at = NOW() WHERE announcement_id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}
	return requireAffected(res, domain.ErrAnnouncementNotFound)
}

func (r *announcementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM announcements WHERE announcement_id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return requireAffected(res, domain.ErrAnnouncementNotFound)
}

func (r *announcementRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Announcement, int64, error) {
	filter.Pagination.Validate()

	where, args := buildFilterWhere(filter, announcementFilterColumns)

	var total int64
	countQuery := `SELECT COUNT(*) FROM announcements WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Pagination.PageSize, filter.Pagination.Offset())
	query := fmt.Sprintf(`
		SELECT * FROM announcements
		WHERE %s
		ORDER BY publish_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	var announcements []domain.Announcement
	err := r.db.SelectContext(ctx, &announcements, query, args...)
	return announcements, total, err
}

func (r *announcementRepository) CountPublished(ctx context.Context) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM announcements WHERE status = 'published'`
	err := r.db.GetContext(ctx, &count, query)
	return count, err
}
