package donation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"clubhub/internal/domain"
	"clubhub/internal/repository"
)

type Service interface {
	Create(ctx context.Context, actor *domain.Member, input domain.CreateDonationInput) (*domain.Donation, error)
	Get(ctx context.Context, id uuid.UUID, actor *domain.Member) (*domain.Donation, error)
	List(ctx context.Context, actor *domain.Member, filter repository.DonationFilter) (domain.PaginatedResponse[domain.Donation], error)
	Review(ctx context.Context, id uuid.UUID, actor *domain.Member, input domain.ReviewDonationInput) error
	MonthlyTotals(ctx context.Context, actor *domain.Member, months int) ([]domain.MonthlyDonationTotal, error)
}

type service struct {
	donationRepo repository.DonationRepository
}

func NewService(donationRepo repository.DonationRepository) Service {
	return &service{donationRepo: donationRepo}
}

func (s *service) Create(ctx context.Context, actor *domain.Member, input domain.CreateDonationInput) (*domain.Donation, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidInput
	}

	donatedAt := time.Now()
	if input.DonatedAt != nil {
		donatedAt = *input.DonatedAt
	}

	d := &domain.Donation{
		ID:        uuid.New(),
		MemberID:  actor.ID,
		Amount:    input.Amount,
		Method:    input.Method,
		Reference: input.Reference,
		Notes:     input.Notes,
		Status:    domain.DonationPending,
		DonatedAt: donatedAt,
	}

	if err := s.donationRepo.Create(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

// Get lets members see their own donations; admins see all.
func (s *service) Get(ctx context.Context, id uuid.UUID, actor *domain.Member) (*domain.Donation, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}

	d, err := s.donationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if d.MemberID != actor.ID && actor.EffectiveRole() != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	return d, nil
}

func (s *service) List(ctx context.Context, actor *domain.Member, filter repository.DonationFilter) (domain.PaginatedResponse[domain.Donation], error) {
	if actor == nil {
		return domain.PaginatedResponse[domain.Donation]{}, domain.ErrUnauthenticated
	}

	// Non-admins are restricted to their own donations.
	if actor.EffectiveRole() != domain.RoleAdmin {
		id := actor.ID
		filter.MemberID = &id
	}

	donations, total, err := s.donationRepo.List(ctx, filter)
	if err != nil {
		return domain.PaginatedResponse[domain.Donation]{}, err
	}

	return domain.NewPaginatedResponse(donations, filter.Pagination.Page, filter.Pagination.PageSize, total), nil
}

func (s *service) Review(ctx context.Context, id uuid.UUID, actor *domain.Member, input domain.ReviewDonationInput) error {
	if actor.EffectiveRole() != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if !input.Status.IsValid() || input.Status == domain.DonationPending {
		return domain.ErrInvalidInput
	}

	d, err := s.donationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if d.Status != domain.DonationPending {
		return domain.ErrInvalidTransition
	}

	return s.donationRepo.UpdateStatus(ctx, id, input.Status, input.Notes)
}

func (s *service) MonthlyTotals(ctx context.Context, actor *domain.Member, months int) ([]domain.MonthlyDonationTotal, error) {
	if !actor.HasRole(domain.RoleOfficer) {
		return nil, domain.ErrForbidden
	}
	return s.donationRepo.MonthlyTotals(ctx, months)
}
