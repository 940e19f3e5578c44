package repository

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	"clubhub/internal/domain"
)

// filterColumns tells the shared filter renderer which columns the
// entity's date range and free-text search apply to.
type filterColumns struct {
	DateColumn    string
	SearchColumns []string
}

// buildFilterWhere renders a domain.ListFilter into SQL conditions and
// positional args, starting at $1. All conditions are conjunctive.
func buildFilterWhere(f domain.ListFilter, cols filterColumns) (string, []interface{}) {
	var conds []string
	var args []interface{}

	add := func(cond string, vals ...interface{}) {
		placeholders := make([]interface{}, len(vals))
		for i := range vals {
			args = append(args, vals[i])
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		conds = append(conds, fmt.Sprintf(cond, placeholders...))
	}

	if len(f.Visibilities) > 0 {
		vis := make([]string, len(f.Visibilities))
		for i, v := range f.Visibilities {
			vis[i] = string(v)
		}
		add("visibility = ANY(%s)", pq.Array(vis))
	}

	if f.Type != nil {
		add("type = %s", *f.Type)
	}
	if f.Status != nil {
		add("status = %s", string(*f.Status))
	}
	if f.BranchID != nil {
		add("branch_id = %s", *f.BranchID)
	}
	if f.Priority != nil {
		add("priority = %s", *f.Priority)
	}

	if f.DateFrom != nil {
		add(cols.DateColumn+" >= %s", *f.DateFrom)
	}
	if f.DateTo != nil {
		add(cols.DateColumn+" <= %s", *f.DateTo)
	}

	if !f.IncludeExpired {
		conds = append(conds, "(expire_at IS NULL OR expire_at > NOW())")
	}

	if search := strings.TrimSpace(f.Search); search != "" {
		args = append(args, search)
		n := len(args)
		var parts []string
		for _, col := range cols.SearchColumns {
			parts = append(parts, fmt.Sprintf("%s ILIKE '%%' || $%d || '%%'", col, n))
		}
		parts = append(parts, fmt.Sprintf("EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE '%%' || $%d || '%%')", n))
		conds = append(conds, "("+strings.Join(parts, " OR ")+")")
	}

	if len(conds) == 0 {
		return "TRUE", args
	}
	return strings.Join(conds, " AND "), args
}
