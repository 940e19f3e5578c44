package domain

import (
	"time"

	"github.com/google/uuid"
)

type GalleryItem struct {
	ID           uuid.UUID `json:"id" db:"gallery_item_id"`
	Album        string    `json:"album" db:"album"`
	Title        string    `json:"title" db:"title"`
	ImageURL     string    `json:"image_url" db:"image_url"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty" db:"thumbnail_url"`
	ContentType  string    `json:"content_type" db:"content_type"`
	SizeBytes    int64     `json:"size_bytes" db:"size_bytes"`
	UploaderID   uuid.UUID `json:"uploader_id" db:"uploader_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	Uploader *MemberRef `json:"uploader,omitempty"`
}
