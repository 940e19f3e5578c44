package member

import (
	"context"
	"log"

	"github.com/google/uuid"

	"clubhub/internal/domain"
	"clubhub/internal/repository"
	"clubhub/internal/service/email"
)

type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input domain.UpdateMemberInput) (*domain.Member, error)
	List(ctx context.Context, filter repository.MemberFilter) (domain.PaginatedResponse[domain.Member], error)
	AssignRole(ctx context.Context, input domain.AssignRoleInput) error
	Approve(ctx context.Context, id uuid.UUID) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	memberRepo repository.MemberRepository
	emailSvc   email.Service
}

func NewService(memberRepo repository.MemberRepository, emailSvc email.Service) Service {
	return &service{
		memberRepo: memberRepo,
		emailSvc:   emailSvc,
	}
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error) {
	return s.memberRepo.GetByID(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, id uuid.UUID, input domain.UpdateMemberInput) (*domain.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		member.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		member.LastName = *input.LastName
	}
	if input.Phone != nil {
		member.Phone = *input.Phone
	}
	if input.AvatarURL != nil {
		member.AvatarURL = *input.AvatarURL
	}
	if input.BranchID != nil {
		member.BranchID = *input.BranchID
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}

	return member, nil
}

func (s *service) List(ctx context.Context, filter repository.MemberFilter) (domain.PaginatedResponse[domain.Member], error) {
	members, total, err := s.memberRepo.List(ctx, filter)
	if err != nil {
		return domain.PaginatedResponse[domain.Member]{}, err
	}

	return domain.NewPaginatedResponse(members, filter.Pagination.Page, filter.Pagination.PageSize, total), nil
}

func (s *service) AssignRole(ctx context.Context, input domain.AssignRoleInput) error {
	if !input.Role.IsValid() {
		return domain.ErrInvalidInput
	}
	return s.memberRepo.UpdateRole(ctx, input.MemberID, input.Role)
}

func (s *service) Approve(ctx context.Context, id uuid.UUID) error {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.memberRepo.SetApproval(ctx, id, true); err != nil {
		return err
	}

	if s.emailSvc != nil {
		go func(toEmail, firstName string) {
			ctx := context.Background()
			if err := s.emailSvc.SendApprovalEmail(ctx, toEmail, firstName); err != nil {
				log.Printf("Failed to send approval email to %s: %v", toEmail, err)
			}
		}(member.Email, member.FirstName)
	}

	return nil
}

func (s *service) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.memberRepo.SetActive(ctx, id, false)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.memberRepo.Delete(ctx, id)
}
