package domain

import (
	"time"

	"github.com/google/uuid"
)

// EntityKind selects which aggregate an engagement record belongs to.
type EntityKind string

const (
	KindAnnouncement EntityKind = "announcement"
	KindEvent        EntityKind = "event"
)

// MaxCommentLength bounds comment content.
const MaxCommentLength = 500

type EngagementSummary struct {
	Views    int64 `json:"views"`
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
	Liked    bool  `json:"liked"`
}

type View struct {
	EntityID  uuid.UUID `json:"-" db:"entity_id"`
	MemberID  uuid.UUID `json:"member_id" db:"member_id"`
	IPAddress *string   `json:"-" db:"ip_address"`
	ViewedAt  time.Time `json:"viewed_at" db:"viewed_at"`
}

type Like struct {
	EntityID uuid.UUID `json:"-" db:"entity_id"`
	MemberID uuid.UUID `json:"member_id" db:"member_id"`
	LikedAt  time.Time `json:"liked_at" db:"liked_at"`

	Member *MemberRef `json:"member,omitempty"`
}

type Comment struct {
	ID        uuid.UUID `json:"id" db:"comment_id"`
	EntityID  uuid.UUID `json:"-" db:"entity_id"`
	MemberID  uuid.UUID `json:"member_id" db:"member_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Author MemberRef `json:"author"`
}

type CreateCommentInput struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
