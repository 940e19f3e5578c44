package domain

import (
	"time"

	"github.com/google/uuid"
)

type ContactStatus string

const (
	ContactNew       ContactStatus = "new"
	ContactResponded ContactStatus = "responded"
	ContactClosed    ContactStatus = "closed"
)

type ContactMessage struct {
	ID          uuid.UUID     `json:"id" db:"message_id"`
	Name        string        `json:"name" db:"name"`
	Email       string        `json:"email" db:"email"`
	Subject     string        `json:"subject" db:"subject"`
	Message     string        `json:"message" db:"message"`
	Status      ContactStatus `json:"status" db:"status"`
	Response    *string       `json:"response,omitempty" db:"response"`
	RespondedBy *uuid.UUID    `json:"responded_by,omitempty" db:"responded_by"`
	RespondedAt *time.Time    `json:"responded_at,omitempty" db:"responded_at"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}

type CreateContactInput struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=2000"`
}

type RespondContactInput struct {
	Response string `json:"response" validate:"required,max=2000"`
}
