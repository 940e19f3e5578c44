package domain

import (
	"time"

	"github.com/google/uuid"
)

type DonationStatus string

const (
	DonationPending  DonationStatus = "pending"
	DonationVerified DonationStatus = "verified"
	DonationRejected DonationStatus = "rejected"
)

func (s DonationStatus) IsValid() bool {
	switch s {
	case DonationPending, DonationVerified, DonationRejected:
		return true
	}
	return false
}

type Donation struct {
	ID        uuid.UUID      `json:"id" db:"donation_id"`
	MemberID  uuid.UUID      `json:"member_id" db:"member_id"`
	Amount    float64        `json:"amount" db:"amount"`
	Method    string         `json:"method" db:"method"`
	Reference *string        `json:"reference,omitempty" db:"reference"`
	Notes     *string        `json:"notes,omitempty" db:"notes"`
	Status    DonationStatus `json:"status" db:"status"`
	DonatedAt time.Time      `json:"donated_at" db:"donated_at"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`

	Member *MemberRef `json:"member,omitempty"`
}

type CreateDonationInput struct {
	Amount    float64    `json:"amount" validate:"required,gt=0"`
	Method    string     `json:"method" validate:"required,oneof=transfer cash other"`
	Reference *string    `json:"reference,omitempty" validate:"omitempty,max=100"`
	Notes     *string    `json:"notes,omitempty" validate:"omitempty,max=500"`
	DonatedAt *time.Time `json:"donated_at,omitempty"`
}

type ReviewDonationInput struct {
	Status DonationStatus `json:"status" validate:"required,oneof=verified rejected"`
	Notes  *string        `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// MonthlyDonationTotal is one row of the verified-donation aggregation.
type MonthlyDonationTotal struct {
	Month time.Time `json:"month" db:"month"`
	Total float64   `json:"total" db:"total"`
	Count int64     `json:"count" db:"count"`
}
