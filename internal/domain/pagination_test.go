package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clubhub/internal/domain"
)

func TestNewPaginatedResponse(t *testing.T) {
	items := make([]int, 10)

	t.Run("Middle page", func(t *testing.T) {
		resp := domain.NewPaginatedResponse(items, 2, 10, 25)

		assert.Equal(t, 3, resp.TotalPages)
		assert.True(t, resp.HasNext)
		assert.True(t, resp.HasPrev)
	})

	t.Run("Last page", func(t *testing.T) {
		resp := domain.NewPaginatedResponse(items[:5], 3, 10, 25)

		assert.False(t, resp.HasNext)
		assert.True(t, resp.HasPrev)
	})

	t.Run("Single page", func(t *testing.T) {
		resp := domain.NewPaginatedResponse(items[:3], 1, 10, 3)

		assert.Equal(t, 1, resp.TotalPages)
		assert.False(t, resp.HasNext)
		assert.False(t, resp.HasPrev)
	})
}

func TestPaginationParams_Validate(t *testing.T) {
	p := domain.PaginationParams{Page: 0, PageSize: -5}
	p.Validate()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.PageSize)

	p = domain.PaginationParams{Page: 2, PageSize: 500}
	p.Validate()
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 100, p.PageSize)
}

func TestPaginationParams_Offset(t *testing.T) {
	p := domain.PaginationParams{Page: 3, PageSize: 20}
	assert.Equal(t, 40, p.Offset())
}
