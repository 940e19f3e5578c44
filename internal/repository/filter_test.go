package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"clubhub/internal/domain"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

var testColumns = filterColumns{
	DateColumn:    "publish_at",
	SearchColumns: []string{"title", "content"},
}

func TestBuildFilterWhere_Empty(t *testing.T) {
	where, args := buildFilterWhere(domain.ListFilter{IncludeExpired: true}, testColumns)

	assert.Equal(t, "TRUE", where)
	assert.Empty(t, args)
}

func TestBuildFilterWhere_ExpiryDefault(t *testing.T) {
	where, args := buildFilterWhere(domain.ListFilter{}, testColumns)

	assert.Equal(t, "(expire_at IS NULL OR expire_at > NOW())", where)
	assert.Empty(t, args)
}

func TestBuildFilterWhere_Conjunction(t *testing.T) {
	status := domain.StatusPublished
	f := domain.ListFilter{
		Status:         &status,
		Visibilities:   []domain.Visibility{domain.VisibilityPublic, domain.VisibilityMembersOnly},
		IncludeExpired: true,
	}

	where, args := buildFilterWhere(f, testColumns)

	assert.Contains(t, where, "visibility = ANY($1)")
	assert.Contains(t, where, "status = $2")
	assert.Contains(t, where, " AND ")
	assert.Len(t, args, 2)
}

func TestBuildFilterWhere_Search(t *testing.T) {
	f := domain.ListFilter{
		Search:         "  picnic  ",
		IncludeExpired: true,
	}

	where, args := buildFilterWhere(f, testColumns)

	assert.Contains(t, where, "title ILIKE")
	assert.Contains(t, where, "content ILIKE")
	assert.Contains(t, where, "unnest(tags)")
	// All search branches share one trimmed argument.
	assert.Equal(t, []interface{}{"picnic"}, args)
	assert.Equal(t, 3, strings.Count(where, "$1"))
}

func TestBuildFilterWhere_DateRange(t *testing.T) {
	f := domain.ListFilter{IncludeExpired: true}
	from := mustTime(t, "2026-01-01T00:00:00Z")
	to := mustTime(t, "2026-02-01T00:00:00Z")
	f.DateFrom = &from
	f.DateTo = &to

	where, args := buildFilterWhere(f, testColumns)

	assert.Contains(t, where, "publish_at >= $1")
	assert.Contains(t, where, "publish_at <= $2")
	assert.Len(t, args, 2)
}
