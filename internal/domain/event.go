package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Event struct {
	ID                   uuid.UUID      `json:"id" db:"event_id"`
	Title                string         `json:"title" db:"title"`
	Description          string         `json:"description" db:"description"`
	Location             string         `json:"location" db:"location"`
	StartDate            time.Time      `json:"start_date" db:"start_date"`
	EndDate              *time.Time     `json:"end_date,omitempty" db:"end_date"`
	RegistrationDeadline time.Time      `json:"registration_deadline" db:"registration_deadline"`
	MaxParticipants      int            `json:"max_participants" db:"max_participants"`
	Visibility           Visibility     `json:"visibility" db:"visibility"`
	Status               EntityStatus   `json:"status" db:"status"`
	Tags                 pq.StringArray `json:"tags" db:"tags"`
	ExpireAt             *time.Time     `json:"expire_at,omitempty" db:"expire_at"`
	OrganizerID          uuid.UUID      `json:"organizer_id" db:"organizer_id"`
	BranchID             *uuid.UUID     `json:"branch_id,omitempty" db:"branch_id"`
	CreatedAt            time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at" db:"updated_at"`

	ParticipantCount int64              `json:"participant_count" db:"-"`
	AvailableSpots   int64              `json:"available_spots" db:"-"`
	AverageRating    float64            `json:"average_rating" db:"-"`
	Engagement       *EngagementSummary `json:"engagement,omitempty" db:"-"`
}

func (e *Event) Engageable() Engageable {
	return Engageable{
		ID:         e.ID,
		Visibility: e.Visibility,
		Status:     e.Status,
		AuthorID:   e.OrganizerID,
		BranchID:   e.BranchID,
		ExpireAt:   e.ExpireAt,
	}
}

type ParticipationStatus string

const (
	ParticipationRegistered ParticipationStatus = "registered"
	ParticipationConfirmed  ParticipationStatus = "confirmed"
	ParticipationAttended   ParticipationStatus = "attended"
	ParticipationAbsent     ParticipationStatus = "absent"
)

func (s ParticipationStatus) IsValid() bool {
	switch s {
	case ParticipationRegistered, ParticipationConfirmed, ParticipationAttended, ParticipationAbsent:
		return true
	}
	return false
}

// Withdrawable reports whether a participation may still be withdrawn.
// Attendance outcomes are final.
func (s ParticipationStatus) Withdrawable() bool {
	return s == ParticipationRegistered || s == ParticipationConfirmed
}

type Participation struct {
	EventID      uuid.UUID           `json:"event_id" db:"event_id"`
	MemberID     uuid.UUID           `json:"member_id" db:"member_id"`
	Status       ParticipationStatus `json:"status" db:"status"`
	Notes        *string             `json:"notes,omitempty" db:"notes"`
	RegisteredAt time.Time           `json:"registered_at" db:"registered_at"`

	Member *MemberRef `json:"member,omitempty"`
}

type EventFeedback struct {
	EventID   uuid.UUID `json:"event_id" db:"event_id"`
	MemberID  uuid.UUID `json:"member_id" db:"member_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   *string   `json:"comment,omitempty" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Member *MemberRef `json:"member,omitempty"`
}

type CreateEventInput struct {
	Title                string     `json:"title" validate:"required,max=200"`
	Description          string     `json:"description" validate:"required"`
	Location             string     `json:"location" validate:"required,max=300"`
	StartDate            time.Time  `json:"start_date" validate:"required"`
	EndDate              *time.Time `json:"end_date"`
	RegistrationDeadline time.Time  `json:"registration_deadline" validate:"required"`
	MaxParticipants      int        `json:"max_participants" validate:"required,min=1"`
	Visibility           Visibility `json:"visibility" validate:"required"`
	Tags                 []string   `json:"tags"`
	BranchID             *uuid.UUID `json:"branch_id"`
}

type UpdateEventInput struct {
	Title                *string     `json:"title" validate:"omitempty,max=200"`
	Description          *string     `json:"description"`
	Location             *string     `json:"location" validate:"omitempty,max=300"`
	StartDate            *time.Time  `json:"start_date"`
	EndDate              **time.Time `json:"end_date"`
	RegistrationDeadline *time.Time  `json:"registration_deadline"`
	MaxParticipants      *int        `json:"max_participants" validate:"omitempty,min=1"`
	Visibility           *Visibility `json:"visibility"`
	Tags                 []string    `json:"tags"`
}

type RegisterEventInput struct {
	Notes *string `json:"notes,omitempty"`
}

type EventFeedbackInput struct {
	Rating  int     `json:"rating" validate:"required,min=1,max=5"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}

type UpdateParticipationInput struct {
	Status ParticipationStatus `json:"status" validate:"required,oneof=registered confirmed attended absent"`
	Notes  *string             `json:"notes,omitempty"`
}
