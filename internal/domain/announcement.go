package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type AnnouncementType string

const (
	AnnouncementGeneral AnnouncementType = "general"
	AnnouncementUrgent  AnnouncementType = "urgent"
	AnnouncementEvent   AnnouncementType = "event"
	AnnouncementNotice  AnnouncementType = "notice"
)

func (t AnnouncementType) IsValid() bool {
	switch t {
	case AnnouncementGeneral, AnnouncementUrgent, AnnouncementEvent, AnnouncementNotice:
		return true
	}
	return false
}

type Announcement struct {
	ID         uuid.UUID        `json:"id" db:"announcement_id"`
	Title      string           `json:"title" db:"title"`
	Content    string           `json:"content" db:"content"`
	Type       AnnouncementType `json:"type" db:"type"`
	Priority   string           `json:"priority" db:"priority"`
	Visibility Visibility       `json:"visibility" db:"visibility"`
	Status     EntityStatus     `json:"status" db:"status"`
	Tags       pq.StringArray   `json:"tags" db:"tags"`
	PublishAt  time.Time        `json:"publish_at" db:"publish_at"`
	ExpireAt   *time.Time       `json:"expire_at,omitempty" db:"expire_at"`
	AuthorID   uuid.UUID        `json:"author_id" db:"author_id"`
	BranchID   *uuid.UUID       `json:"branch_id,omitempty" db:"branch_id"`
	CreatedAt  time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at" db:"updated_at"`

	Engagement *EngagementSummary `json:"engagement,omitempty" db:"-"`
}

func (a *Announcement) Engageable() Engageable {
	return Engageable{
		ID:         a.ID,
		Visibility: a.Visibility,
		Status:     a.Status,
		AuthorID:   a.AuthorID,
		BranchID:   a.BranchID,
		ExpireAt:   a.ExpireAt,
	}
}

type CreateAnnouncementInput struct {
	Title      string           `json:"title" validate:"required,max=200"`
	Content    string           `json:"content" validate:"required"`
	Type       AnnouncementType `json:"type" validate:"required"`
	Priority   string           `json:"priority" validate:"omitempty,oneof=low normal high"`
	Visibility Visibility       `json:"visibility" validate:"required"`
	Tags       []string         `json:"tags"`
	PublishAt  *time.Time       `json:"publish_at"`
	ExpireAt   *time.Time       `json:"expire_at"`
	BranchID   *uuid.UUID       `json:"branch_id"`
}

type UpdateAnnouncementInput struct {
	Title      *string           `json:"title" validate:"omitempty,max=200"`
	Content    *string           `json:"content"`
	Type       *AnnouncementType `json:"type"`
	Priority   *string           `json:"priority" validate:"omitempty,oneof=low normal high"`
	Visibility *Visibility       `json:"visibility"`
	Tags       []string          `json:"tags"`
	ExpireAt   **time.Time       `json:"expire_at"`
}
