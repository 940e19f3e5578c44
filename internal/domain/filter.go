package domain

import (
	"time"

	"github.com/google/uuid"
)

// ListFilter is the conjunctive predicate list queries are built from:
// optional exact-match fields, an optional date range, a free-text
// search and the actor's visibility tiers. Repositories render it into
// SQL; the filter itself stays storage-agnostic.
type ListFilter struct {
	Type     *string
	Status   *EntityStatus
	BranchID *uuid.UUID
	Priority *string

	DateFrom *time.Time
	DateTo   *time.Time

	Search string

	Visibilities []Visibility

	// IncludeExpired keeps entities past their expire_at in list
	// results. Off for browse queries; direct reads are never
	// time-gated.
	IncludeExpired bool

	Pagination PaginationParams
}

func NewListFilter(actor *Member) ListFilter {
	return ListFilter{
		Visibilities: VisibleTiers(actor),
		Pagination:   DefaultPagination(),
	}
}

// NarrowVisibility restricts the filter to a single tier when the actor
// is already allowed to see it; out-of-reach tiers are ignored rather
// than rejected.
func (f *ListFilter) NarrowVisibility(v Visibility) {
	for _, allowed := range f.Visibilities {
		if allowed == v {
			f.Visibilities = []Visibility{v}
			return
		}
	}
}
