package domain

import (
	"time"

	"github.com/google/uuid"
)

type Visibility string

const (
	VisibilityPublic       Visibility = "public"
	VisibilityMembersOnly  Visibility = "members_only"
	VisibilityOfficersOnly Visibility = "officers_only"
	VisibilityAdminOnly    Visibility = "admin_only"
)

func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityPublic, VisibilityMembersOnly, VisibilityOfficersOnly, VisibilityAdminOnly:
		return true
	default:
		return false
	}
}

type EntityStatus string

const (
	StatusDraft     EntityStatus = "draft"
	StatusPublished EntityStatus = "published"
	StatusArchived  EntityStatus = "archived"
	StatusCancelled EntityStatus = "cancelled"
	StatusCompleted EntityStatus = "completed"
)

// Engageable is the snapshot of an announcement or event that the
// visibility and engagement rules operate on.
type Engageable struct {
	ID         uuid.UUID
	Visibility Visibility
	Status     EntityStatus
	AuthorID   uuid.UUID
	BranchID   *uuid.UUID
	ExpireAt   *time.Time
}

// CanView decides whether actor may read the entity. Unpublished
// entities are visible only to admins, officers and the author.
// Expiry never gates a direct read; only list queries filter on it.
func CanView(e Engageable, actor *Member) bool {
	role := actor.EffectiveRole()

	if e.Status != StatusPublished {
		if role == RoleAdmin || role == RoleOfficer {
			return true
		}
		return actor != nil && actor.ID == e.AuthorID
	}

	switch e.Visibility {
	case VisibilityPublic:
		return true
	case VisibilityMembersOnly:
		return role.HasAtLeast(RoleMember)
	case VisibilityOfficersOnly:
		return role.HasAtLeast(RoleOfficer)
	case VisibilityAdminOnly:
		return role == RoleAdmin
	default:
		return false
	}
}

// VisibleTiers is the default list-query visibility set for an actor.
// It composes conjunctively with any caller-supplied filters.
func VisibleTiers(actor *Member) []Visibility {
	switch actor.EffectiveRole() {
	case RoleAdmin:
		return []Visibility{VisibilityPublic, VisibilityMembersOnly, VisibilityOfficersOnly, VisibilityAdminOnly}
	case RoleOfficer:
		return []Visibility{VisibilityPublic, VisibilityMembersOnly, VisibilityOfficersOnly}
	case RoleMember, RoleVolunteer:
		return []Visibility{VisibilityPublic, VisibilityMembersOnly}
	default:
		return []Visibility{VisibilityPublic}
	}
}
