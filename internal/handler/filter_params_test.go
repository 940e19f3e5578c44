package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubhub/internal/domain"
)

func parseFilter(t *testing.T, target string, parse func(*fiber.Ctx, *domain.Member) domain.ListFilter) domain.ListFilter {
	t.Helper()

	actor := &domain.Member{ID: uuid.New(), Role: domain.RoleMember, IsActive: true, IsApproved: true}

	var filter domain.ListFilter
	app := fiber.New()
	app.Get("/list", func(c *fiber.Ctx) error {
		filter = parse(c, actor)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return filter
}

func TestGetListFilter(t *testing.T) {
	t.Run("Parses shared parameters", func(t *testing.T) {
		branchID := uuid.New()
		filter := parseFilter(t, "/list?page=2&limit=5&search=picnic&status=published&branch_id="+branchID.String(), getListFilter)

		assert.Equal(t, 2, filter.Pagination.Page)
		assert.Equal(t, 5, filter.Pagination.PageSize)
		assert.Equal(t, "picnic", filter.Search)
		require.NotNil(t, filter.Status)
		assert.Equal(t, domain.StatusPublished, *filter.Status)
		require.NotNil(t, filter.BranchID)
		assert.Equal(t, branchID, *filter.BranchID)
	})

	t.Run("Ignores announcement-only parameters", func(t *testing.T) {
		filter := parseFilter(t, "/list?type=general&priority=high", getListFilter)

		assert.Nil(t, filter.Type)
		assert.Nil(t, filter.Priority)
	})
}

func TestGetAnnouncementFilter(t *testing.T) {
	filter := parseFilter(t, "/list?type=general&priority=high", getAnnouncementFilter)

	require.NotNil(t, filter.Type)
	assert.Equal(t, "general", *filter.Type)
	require.NotNil(t, filter.Priority)
	assert.Equal(t, "high", *filter.Priority)
}
