package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"clubhub/internal/domain"
)

type MemberFilter struct {
	Role       *domain.Role
	BranchID   *uuid.UUID
	IsApproved *bool
	Search     string
	Pagination domain.PaginationParams
}

type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error)
	GetByEmail(ctx context.Context, email string) (*domain.Member, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, member *domain.Member) error
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error
	SetApproval(ctx context.Context, id uuid.UUID, approved bool) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter MemberFilter) ([]domain.Member, int64, error)
	CountByRole(ctx context.Context) (map[string]int64, error)
	CountPendingApproval(ctx context.Context) (int64, error)
}

type memberRepository struct {
	db *sqlx.DB
}

func NewMemberRepository(db *sqlx.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, member *domain.Member) error {
	query := `
		INSERT INTO members (member_id, email, password_hash, first_name, last_name, phone, role, branch_id, is_active, is_approved)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		member.ID, member.Email, member.PasswordHash, member.FirstName, member.LastName,
		member.Phone, member.Role, member.BranchID, member.IsActive, member.IsApproved,
	).Scan(&member.CreatedAt, &member.UpdatedAt)
}

func (r *memberRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error) {
	var member domain.Member
	query := `SELECT * FROM members WHERE member_id = $1 AND deleted_at IS NULL`
	err := r.db.GetContext(ctx, &member, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrMemberNotFound
	}
	return &member, err
}

func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	var member domain.Member
	query := `SELECT * FROM members WHERE LOWER(email) = LOWER($1) AND deleted_at IS NULL`
	err := r.db.GetContext(ctx, &member, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrMemberNotFound
	}
	return &member, err
}

func (r *memberRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM members WHERE LOWER(email) = LOWER($1) AND deleted_at IS NULL)`
	err := r.db.GetContext(ctx, &exists, query, email)
	return exists, err
}

func (r *memberRepository) Update(ctx context.Context, member *domain.Member) error {
	query := `
		UPDATE members
		SET first_name = $2, last_name = $3, phone = $4, avatar_url = $5, branch_id = $6, updated_at = NOW()
		WHERE member_id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		member.ID, member.FirstName, member.LastName, member.Phone, member.AvatarURL, member.BranchID,
	).Scan(&member.UpdatedAt)
}

func (r *memberRepository) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error {
	query := `UPDATE members SET role = $2, updated_at = NOW() WHERE member_id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, role)
	if err != nil {
		return err
	}
	return requireAffected(res, domain.ErrMemberNotFound)
}

func (r *memberRepository) SetApproval(ctx context.Context, id uuid.UUID, approved bool) error {
	query := `UPDATE members SET is_approved = $2, updated_at = NOW() WHERE member_id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, approved)
	if err != nil {
		return err
	}
	return requireAffected(res, domain.ErrMemberNotFound)
}

func (r *memberRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE members SET is_active = $2, updated_at = NOW() WHERE member_id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, active)
	if err != nil {
		return err
	}
	return requireAffected(res, domain.ErrMemberNotFound)
}

func (r *memberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE members SET deleted_at = NOW() WHERE member_id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return requireAffected(res, domain.ErrMemberNotFound)
}

func (r *memberRepository) List(ctx context.Context, filter MemberFilter) ([]domain.Member, int64, error) {
	filter.Pagination.Validate()

	conds := []string{"deleted_at IS NULL"}
	var args []interface{}

	if filter.Role != nil {
		args = append(args, *filter.Role)
		conds = append(conds, fmt.Sprintf("role = $%d", len(args)))
	}
	if filter.BranchID != nil {
		args = append(args, *filter.BranchID)
		conds = append(conds, fmt.Sprintf("branch_id = $%d", len(args)))
	}
	if filter.IsApproved != nil {
		args = append(args, *filter.IsApproved)
		conds = append(conds, fmt.Sprintf("is_approved = $%d", len(args)))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, search)
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"((first_name || ' ' || last_name) ILIKE '%%' || $%d || '%%' OR email ILIKE '%%' || $%d || '%%')", n, n))
	}

	where := strings.Join(conds, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM members WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Pagination.PageSize, filter.Pagination.Offset())
	query := fmt.Sprintf(`
		SELECT * FROM members
		WHERE %s
		ORDER BY first_name, last_name
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	var members []domain.Member
	err := r.db.SelectContext(ctx, &members, query, args...)
	return members, total, err
}

func (r *memberRepository) CountByRole(ctx context.Context) (map[string]int64, error) {
	query := `SELECT role, COUNT(*) AS count FROM members WHERE deleted_at IS NULL GROUP BY role`

	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var role string
		var count int64
		if err := rows.Scan(&role, &count); err != nil {
			return nil, err
		}
		counts[role] = count
	}
	return counts, rows.Err()
}

func (r *memberRepository) CountPendingApproval(ctx context.Context) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM members WHERE is_approved = FALSE AND deleted_at IS NULL`
	err := r.db.GetContext(ctx, &count, query)
	return count, err
}

func requireAffected(res sql.Result, notFound error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
