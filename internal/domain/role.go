package domain

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleOfficer   Role = "officer"
	RoleMember    Role = "member"
	RoleVolunteer Role = "volunteer"
	RoleVisitor   Role = "visitor"
)

// RoleAnonymous is the effective role of an absent actor. It is never
// stored on a member record.
const RoleAnonymous Role = ""

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleOfficer, RoleMember, RoleVolunteer, RoleVisitor:
		return true
	default:
		return false
	}
}

// Rank orders roles for visibility checks. Member and volunteer share a
// tier: both satisfy members_only, neither satisfies officers_only.
func (r Role) Rank() int {
	switch r {
	case RoleAdmin:
		return 4
	case RoleOfficer:
		return 3
	case RoleMember, RoleVolunteer:
		return 2
	case RoleVisitor:
		return 1
	default:
		return 0
	}
}

func (r Role) HasAtLeast(threshold Role) bool {
	return r.Rank() >= threshold.Rank()
}
