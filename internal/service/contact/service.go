package contact

import (
	"context"
	"log"

	"github.com/google/uuid"

	"clubhub/internal/domain"
	"clubhub/internal/repository"
	"clubhub/internal/service/email"
)

type Service interface {
	Submit(ctx context.Context, input domain.CreateContactInput) (*domain.ContactMessage, error)
	Get(ctx context.Context, id uuid.UUID, actor *domain.Member) (*domain.ContactMessage, error)
	List(ctx context.Context, actor *domain.Member, status *domain.ContactStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.ContactMessage], error)
	Respond(ctx context.Context, id uuid.UUID, actor *domain.Member, input domain.RespondContactInput) (*domain.ContactMessage, error)
	Close(ctx context.Context, id uuid.UUID, actor *domain.Member) error
}

type service struct {
	contactRepo repository.ContactRepository
	emailSvc    email.Service
}

func NewService(contactRepo repository.ContactRepository, emailSvc email.Service) Service {
	return &service{
		contactRepo: contactRepo,
		emailSvc:    emailSvc,
	}
}

// Submit is the one public write in the API; no actor required.
func (s *service) Submit(ctx context.Context, input domain.CreateContactInput) (*domain.ContactMessage, error) {
	msg := &domain.ContactMessage{
		ID:      uuid.New(),
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
		Status:  domain.ContactNew,
	}

	if err := s.contactRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	return msg, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID, actor *domain.Member) (*domain.ContactMessage, error) {
	if !actor.HasRole(domain.RoleOfficer) {
		return nil, domain.ErrForbidden
	}
	return s.contactRepo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, actor *domain.Member, status *domain.ContactStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.ContactMessage], error) {
	if !actor.HasRole(domain.RoleOfficer) {
		return domain.PaginatedResponse[domain.ContactMessage]{}, domain.ErrForbidden
	}

	messages, total, err := s.contactRepo.List(ctx, status, params)
	if err != nil {
		return domain.PaginatedResponse[domain.ContactMessage]{}, err
	}

	return domain.NewPaginatedResponse(messages, params.Page, params.PageSize, total), nil
}

// Respond stores the reply and sends it to the submitter. The email is
// fire-and-forget: a delivery failure is logged, never returned.
func (s *service) Respond(ctx context.Context, id uuid.UUID, actor *domain.Member, input domain.RespondContactInput) (*domain.ContactMessage, error) {
	if !actor.HasRole(domain.RoleOfficer) {
		return nil, domain.ErrForbidden
	}

	msg, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.contactRepo.Respond(ctx, id, input.Response, actor.ID); err != nil {
		return nil, err
	}

	if s.emailSvc != nil {
		go func(toEmail, name, subject, response string) {
			ctx := context.Background()
			if err := s.emailSvc.SendContactResponseEmail(ctx, toEmail, name, subject, response); err != nil {
				log.Printf("Failed to send contact response to %s: %v", toEmail, err)
			}
		}(msg.Email, msg.Name, msg.Subject, input.Response)
	}

	return s.contactRepo.GetByID(ctx, id)
}

func (s *service) Close(ctx context.Context, id uuid.UUID, actor *domain.Member) error {
	if !actor.HasRole(domain.RoleOfficer) {
		return domain.ErrForbidden
	}
	return s.contactRepo.Close(ctx, id)
}
