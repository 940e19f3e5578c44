package announcement

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"clubhub/internal/domain"
)

func TestListCacheKey(t *testing.T) {
	svc := &service{}
	actor := &domain.Member{ID: uuid.New(), Role: domain.RoleMember, IsActive: true, IsApproved: true}

	t.Run("Unfiltered page is cacheable", func(t *testing.T) {
		filter := domain.NewListFilter(actor)
		key := svc.listCacheKey(actor, filter)
		assert.Equal(t, "announcements:member:page:1:size:10", key)
	})

	t.Run("Status filter skips cache", func(t *testing.T) {
		filter := domain.NewListFilter(actor)
		status := domain.StatusDraft
		filter.Status = &status
		assert.Empty(t, svc.listCacheKey(actor, filter))

		published := domain.StatusPublished
		filter.Status = &published
		assert.Empty(t, svc.listCacheKey(actor, filter))
	})

	t.Run("Branch filter skips cache", func(t *testing.T) {
		filter := domain.NewListFilter(actor)
		branchID := uuid.New()
		filter.BranchID = &branchID
		assert.Empty(t, svc.listCacheKey(actor, filter))
	})

	t.Run("Narrowed visibility skips cache", func(t *testing.T) {
		filter := domain.NewListFilter(actor)
		filter.NarrowVisibility(domain.VisibilityMembersOnly)
		assert.Empty(t, svc.listCacheKey(actor, filter))
	})

	t.Run("Search skips cache", func(t *testing.T) {
		filter := domain.NewListFilter(actor)
		filter.Search = "picnic"
		assert.Empty(t, svc.listCacheKey(actor, filter))
	})
}
