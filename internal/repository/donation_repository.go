package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"clubhub/internal/domain"
)

type DonationFilter struct {
	MemberID   *uuid.UUID
	Status     *domain.DonationStatus
	DateFrom   *time.Time
	DateTo     *time.Time
	Pagination domain.PaginationParams
}

type DonationRepository interface {
	Create(ctx context.Context, d *domain.Donation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Donation, error)
	List(ctx context.Context, filter DonationFilter) ([]domain.Donation, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DonationStatus, notes *string) error
	MonthlyTotals(ctx context.Context, months int) ([]domain.MonthlyDonationTotal, error)
	SumVerified(ctx context.Context) (float64, error)
	CountPending(ctx context.Context) (int64, error)
}

type donationRepository struct {
	db *sqlx.DB
}

func NewDonationRepository(db *sqlx.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) Create(ctx context.Context, d *domain.Donation) error {
	query := `
		INSERT INTO donations (donation_id, member_id, amount, method, reference, notes, status, donated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		d.ID, d.MemberID, d.Amount, d.Method, d.Reference, d.Notes, d.Status, d.DonatedAt,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
}

func (r *donationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Donation, error) {
	var d domain.Donation
	query := `SELECT * FROM donations WHERE donation_id = $1`
	err := r.db.GetContext(ctx, &d, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrDonationNotFound
	}
	return &d, err
}

func (r *donationRepository) List(ctx context.Context, filter DonationFilter) ([]domain.Donation, int64, error) {
	filter.Pagination.Validate()

	conds := []string{"TRUE"}
	var args []interface{}

	if filter.MemberID != nil {
		args = append(args, *filter.MemberID)
		conds = append(conds, fmt.Sprintf("member_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		conds = append(conds, fmt.Sprintf("donated_at >= $%d", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		conds = append(conds, fmt.Sprintf("donated_at <= $%d", len(args)))
	}

	where := strings.Join(conds, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM donations WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Pagination.PageSize, filter.Pagination.Offset())
	query := fmt.Sprintf(`
		SELECT * FROM donations
		WHERE %s
		ORDER BY donated_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	var donations []domain.Donation
	err := r.db.SelectContext(ctx, &donations, query, args...)
	return donations, total, err
}

func (r *donationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DonationStatus, notes *string) error {
	query := `
		UPDATE donations
		SET status = $2, notes = COALESCE($3, notes), updated_at = NOW()
		WHERE donation_id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status, notes)
	if err != nil {
		return err
	}
	return requireAffected(res, domain.ErrDonationNotFound)
}

func (r *donationRepository) MonthlyTotals(ctx context.Context, months int) ([]domain.MonthlyDonationTotal, error) {
	if months <= 0 {
		months = 12
	}

	query := `
		SELECT date_trunc('month', donated_at) AS month, SUM(amount) AS total, COUNT(*) AS count
		FROM donations
		WHERE status = 'verified' AND donated_at >= date_trunc('month', NOW()) - ($1 || ' months')::interval
		GROUP BY 1
		ORDER BY 1 DESC`

	var totals []domain.MonthlyDonationTotal
	err := r.db.SelectContext(ctx, &totals, query, months)
	return totals, err
}

func (r *donationRepository) SumVerified(ctx context.Context) (float64, error) {
	var total float64
	query := `SELECT COALESCE(SUM(amount), 0) FROM donations WHERE status = 'verified'`
	err := r.db.GetContext(ctx, &total, query)
	return total, err
}

func (r *donationRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM donations WHERE status = 'pending'`
	err := r.db.GetContext(ctx, &count, query)
	return count, err
}
