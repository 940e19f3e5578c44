package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clubhub/internal/domain"
)

func TestRole_Rank(t *testing.T) {
	assert.Greater(t, domain.RoleAdmin.Rank(), domain.RoleOfficer.Rank())
	assert.Greater(t, domain.RoleOfficer.Rank(), domain.RoleMember.Rank())
	assert.Greater(t, domain.RoleMember.Rank(), domain.RoleVisitor.Rank())
	assert.Greater(t, domain.RoleVisitor.Rank(), domain.RoleAnonymous.Rank())

	// Member and volunteer share a tier.
	assert.Equal(t, domain.RoleMember.Rank(), domain.RoleVolunteer.Rank())
}

func TestRole_HasAtLeast(t *testing.T) {
	assert.True(t, domain.RoleAdmin.HasAtLeast(domain.RoleOfficer))
	assert.True(t, domain.RoleOfficer.HasAtLeast(domain.RoleOfficer))
	assert.True(t, domain.RoleVolunteer.HasAtLeast(domain.RoleMember))
	assert.False(t, domain.RoleVolunteer.HasAtLeast(domain.RoleOfficer))
	assert.False(t, domain.RoleVisitor.HasAtLeast(domain.RoleMember))
	assert.False(t, domain.RoleAnonymous.HasAtLeast(domain.RoleVisitor))
}

func TestRole_IsValid(t *testing.T) {
	for _, r := range []domain.Role{domain.RoleAdmin, domain.RoleOfficer, domain.RoleMember, domain.RoleVolunteer, domain.RoleVisitor} {
		assert.True(t, r.IsValid(), string(r))
	}
	assert.False(t, domain.RoleAnonymous.IsValid())
	assert.False(t, domain.Role("superuser").IsValid())
}

func TestMember_EffectiveRole(t *testing.T) {
	var nobody *domain.Member
	assert.Equal(t, domain.RoleAnonymous, nobody.EffectiveRole())

	m := &domain.Member{Role: domain.RoleMember, IsActive: true, IsApproved: true}
	assert.Equal(t, domain.RoleMember, m.EffectiveRole())

	t.Run("Pending approval is demoted to visitor", func(t *testing.T) {
		pending := &domain.Member{Role: domain.RoleMember, IsActive: true, IsApproved: false}
		assert.Equal(t, domain.RoleVisitor, pending.EffectiveRole())
	})

	t.Run("Deactivated is demoted to visitor", func(t *testing.T) {
		inactive := &domain.Member{Role: domain.RoleAdmin, IsActive: false, IsApproved: true}
		assert.Equal(t, domain.RoleVisitor, inactive.EffectiveRole())
	})
}
