package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"clubhub/internal/domain"
)

type GalleryRepository interface {
	Create(ctx context.Context, item *domain.GalleryItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.GalleryItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, album string, params domain.PaginationParams) ([]domain.GalleryItem, int64, error)
	ListAlbums(ctx context.Context) ([]string, error)
}

type galleryRepository struct {
	db *sqlx.DB
}

func NewGalleryRepository(db *sqlx.DB) GalleryRepository {
	return &galleryRepository{db: db}
}

func (r *galleryRepository) Create(ctx context.Context, item *domain.GalleryItem) error {
	query := `
		INSERT INTO gallery_items (gallery_item_id, album, title, image_url, thumbnail_url, content_type, size_bytes, uploader_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		item.ID, item.Album, item.Title, item.ImageURL, item.ThumbnailURL,
		item.ContentType, item.SizeBytes, item.UploaderID,
	).Scan(&item.CreatedAt)
}

func (r *galleryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.GalleryItem, error) {
	var item domain.GalleryItem
	query := `SELECT * FROM gallery_items WHERE gallery_item_id = $1`
	err := r.db.GetContext(ctx, &item, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrGalleryItemNotFound
	}
	return &item, err
}

func (r *galleryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM gallery_items WHERE gallery_item_id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return requireAffected(res, domain.ErrGalleryItemNotFound)
}

func (r *galleryRepository) List(ctx context.Context, album string, params domain.PaginationParams) ([]domain.GalleryItem, int64, error) {
	params.Validate()

	var total int64
	var items []domain.GalleryItem

	if album != "" {
		countQuery := `SELECT COUNT(*) FROM gallery_items WHERE album = $1`
		if err := r.db.GetContext(ctx, &total, countQuery, album); err != nil {
			return nil, 0, err
		}

		query := `
			SELECT * FROM gallery_items
			WHERE album = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3`
		err := r.db.SelectContext(ctx, &items, query, album, params.PageSize, params.Offset())
		return items, total, err
	}

	countQuery := `SELECT COUNT(*) FROM gallery_items`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM gallery_items
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &items, query, params.PageSize, params.Offset())
	return items, total, err
}

func (r *galleryRepository) ListAlbums(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT album FROM gallery_items ORDER BY album`

	var albums []string
	err := r.db.SelectContext(ctx, &albums, query)
	return albums, err
}
