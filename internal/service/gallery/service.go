package gallery

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"clubhub/internal/config"
	"clubhub/internal/domain"
	"clubhub/internal/repository"
)

type UploadInput struct {
	Album       string
	Title       string
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type Service interface {
	Upload(ctx context.Context, actor *domain.Member, input UploadInput) (*domain.GalleryItem, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.GalleryItem, error)
	Delete(ctx context.Context, id uuid.UUID, actor *domain.Member) error
	List(ctx context.Context, album string, params domain.PaginationParams) (domain.PaginatedResponse[domain.GalleryItem], error)
	ListAlbums(ctx context.Context) ([]string, error)
}

type service struct {
	galleryRepo repository.GalleryRepository
	minioClient *minio.Client
	cfg         *config.Config
}

func NewService(galleryRepo repository.GalleryRepository, minioClient *minio.Client, cfg *config.Config) Service {
	return &service{
		galleryRepo: galleryRepo,
		minioClient: minioClient,
		cfg:         cfg,
	}
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func (s *service) Upload(ctx context.Context, actor *domain.Member, input UploadInput) (*domain.GalleryItem, error) {
	if !actor.HasRole(domain.RoleOfficer) {
		return nil, domain.ErrForbidden
	}
	if s.minioClient == nil {
		return nil, fmt.Errorf("media storage is not configured")
	}
	if !allowedImageTypes[input.ContentType] {
		return nil, domain.ErrInvalidInput
	}

	album := strings.TrimSpace(input.Album)
	if album == "" {
		album = "general"
	}

	itemID := uuid.New()
	objectName := fmt.Sprintf("gallery/%s/%s%s", album, itemID, filepath.Ext(input.Filename))

	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, objectName, input.Reader, input.Size, minio.PutObjectOptions{
		ContentType: input.ContentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	imageURL := fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, objectName)

	item := &domain.GalleryItem{
		ID:          itemID,
		Album:       album,
		Title:       input.Title,
		ImageURL:    imageURL,
		ContentType: input.ContentType,
		SizeBytes:   input.Size,
		UploaderID:  actor.ID,
	}

	if err := s.galleryRepo.Create(ctx, item); err != nil {
		// Best effort cleanup of the orphaned object.
		_ = s.minioClient.RemoveObject(context.Background(), s.cfg.MinIOBucket, objectName, minio.RemoveObjectOptions{})
		return nil, err
	}

	return item, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*domain.GalleryItem, error) {
	return s.galleryRepo.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID, actor *domain.Member) error {
	item, err := s.galleryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if actor.EffectiveRole() != domain.RoleAdmin && (actor == nil || item.UploaderID != actor.ID) {
		return domain.ErrForbidden
	}

	if err := s.galleryRepo.Delete(ctx, id); err != nil {
		return err
	}

	if s.minioClient != nil {
		objectName := strings.TrimPrefix(item.ImageURL, fmt.Sprintf("https://%s/%s/", s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket))
		objectName = strings.TrimPrefix(objectName, fmt.Sprintf("http://%s/%s/", s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket))
		_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, objectName, minio.RemoveObjectOptions{})
	}

	return nil
}

func (s *service) List(ctx context.Context, album string, params domain.PaginationParams) (domain.PaginatedResponse[domain.GalleryItem], error) {
	items, total, err := s.galleryRepo.List(ctx, album, params)
	if err != nil {
		return domain.PaginatedResponse[domain.GalleryItem]{}, err
	}

	return domain.NewPaginatedResponse(items, params.Page, params.PageSize, total), nil
}

func (s *service) ListAlbums(ctx context.Context) ([]string, error) {
	return s.galleryRepo.ListAlbums(ctx)
}
