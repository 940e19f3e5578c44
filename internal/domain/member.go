package domain

import (
	"time"

	"github.com/google/uuid"
)

type Member struct {
	ID           uuid.UUID  `json:"id" db:"member_id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	FirstName    string     `json:"first_name" db:"first_name"`
	LastName     string     `json:"last_name" db:"last_name"`
	Phone        *string    `json:"phone,omitempty" db:"phone"`
	AvatarURL    *string    `json:"avatar_url,omitempty" db:"avatar_url"`
	Role         Role       `json:"role" db:"role"`
	BranchID     *uuid.UUID `json:"branch_id,omitempty" db:"branch_id"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	IsApproved   bool       `json:"is_approved" db:"is_approved"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time `json:"-" db:"deleted_at"`
}

// EffectiveRole is the role used for visibility decisions. A nil member
// is anonymous; a deactivated or not-yet-approved member is demoted to
// visitor until an admin approves the account.
func (m *Member) EffectiveRole() Role {
	if m == nil {
		return RoleAnonymous
	}
	if !m.IsActive || !m.IsApproved {
		return RoleVisitor
	}
	return m.Role
}

func (m *Member) HasRole(required Role) bool {
	return m.EffectiveRole().HasAtLeast(required)
}

type RegisterMemberInput struct {
	Email     string     `json:"email" validate:"required,email"`
	Password  string     `json:"password" validate:"required,min=8"`
	FirstName string     `json:"first_name" validate:"required,min=2"`
	LastName  string     `json:"last_name" validate:"required,min=2"`
	Phone     *string    `json:"phone,omitempty"`
	BranchID  *uuid.UUID `json:"branch_id,omitempty"`
}

type UpdateMemberInput struct {
	FirstName *string     `json:"first_name,omitempty" validate:"omitempty,min=2"`
	LastName  *string     `json:"last_name,omitempty" validate:"omitempty,min=2"`
	Phone     **string    `json:"phone,omitempty"`
	AvatarURL **string    `json:"avatar_url,omitempty"`
	BranchID  **uuid.UUID `json:"branch_id,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AssignRoleInput struct {
	MemberID uuid.UUID `json:"member_id" validate:"required"`
	Role     Role      `json:"role" validate:"required,oneof=admin officer member volunteer visitor"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// MemberRef is the slim author/actor shape embedded in rendered
// comments, likes and participant lists.
type MemberRef struct {
	ID        uuid.UUID `json:"id" db:"member_id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	AvatarURL *string   `json:"avatar_url" db:"avatar_url"`
}

// UnknownAuthor substitutes for a comment author whose account has been
// deleted, so the read path never surfaces a dangling reference.
func UnknownAuthor() MemberRef {
	return MemberRef{FirstName: "Unknown", LastName: "Author"}
}

func UnknownUser() MemberRef {
	return MemberRef{FirstName: "Unknown", LastName: "User"}
}
