package engagement

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"clubhub/internal/domain"
	"clubhub/internal/repository"
)

// Service records views, likes and comments against announcements and
// events. Views and likes are sets keyed by member id; comments are an
// ordered list. Anonymous actors are never recorded.
type Service interface {
	RecordView(ctx context.Context, kind domain.EntityKind, entityID uuid.UUID, actor *domain.Member, ip string) error
	ToggleLike(ctx context.Context, kind domain.EntityKind, ent domain.Engageable, actor *domain.Member) (bool, error)
	AddComment(ctx context.Context, kind domain.EntityKind, ent domain.Engageable, actor *domain.Member, content string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, commentID uuid.UUID, actor *domain.Member) error
	ListComments(ctx context.Context, kind domain.EntityKind, ent domain.Engageable, actor *domain.Member, params domain.PaginationParams) (domain.PaginatedResponse[domain.Comment], error)
	ListLikes(ctx context.Context, kind domain.EntityKind, ent domain.Engageable, actor *domain.Member, params domain.PaginationParams) (domain.PaginatedResponse[domain.Like], error)
	Summary(ctx context.Context, kind domain.EntityKind, entityID uuid.UUID, actor *domain.Member) (domain.EngagementSummary, error)
}

type service struct {
	engagementRepo repository.EngagementRepository
}

func NewService(engagementRepo repository.EngagementRepository) Service {
	return &service{engagementRepo: engagementRepo}
}

// RecordView is idempotent per actor: the repository insert is
// conditional on the (entity, member) key, so calling it on every
// request never inflates the count.
func (s *service) RecordView(ctx context.Context, kind domain.EntityKind, entityID uuid.UUID, actor *domain.Member, ip string) error {
	if actor == nil {
		return nil
	}

	var ipAddr *string
	if ip != "" {
		ipAddr = &ip
	}

	return s.engagementRepo.AddView(ctx, kind, entityID, actor.ID, ipAddr)
}

func (s *service) ToggleLike(ctx context.Context, kind domain.EntityKind, ent domain.Engageable, actor *domain.Member) (bool, error) {
	if actor == nil {
		return false, domain.ErrUnauthenticated
	}
	if !domain.CanView(ent, actor) {
		return false, domain.ErrForbidden
	}

	return s.engagementRepo.ToggleLike(ctx, kind, ent.ID, actor.ID)
}

func (s *service) AddComment(ctx context.Context, kind domain.EntityKind, ent domain.Engageable, actor *domain.Member, content string) (*domain.Comment, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !domain.CanView(ent, actor) {
		return nil, domain.ErrForbidden
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrInvalidInput
	}
	// The limit counts characters, not bytes.
	if utf8.RuneCountInString(content) > domain.MaxCommentLength {
		return nil, domain.ErrCommentTooLong
	}

	comment := &domain.Comment{
		ID:       uuid.New(),
		EntityID: ent.ID,
		MemberID: actor.ID,
		Content:  content,
		Author: domain.MemberRef{
			ID:        actor.ID,
			FirstName: actor.FirstName,
			LastName:  actor.LastName,
			AvatarURL: actor.AvatarURL,
		},
	}

	if err := s.engagementRepo.AddComment(ctx, kind, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *service) DeleteComment(ctx context.Context, commentID uuid.UUID, actor *domain.Member) error {
	if actor == nil {
		return domain.ErrUnauthenticated
	}

	comment, err := s.engagementRepo.GetComment(ctx, commentID)
	if err != nil {
		return domain.ErrCommentNotFound
	}

	if comment.MemberID != actor.ID && !actor.HasRole(domain.RoleOfficer) {
		return domain.ErrForbidden
	}

	return s.engagementRepo.DeleteComment(ctx, commentID)
}

func (s *service) ListComments(ctx context.Context, kind domain.EntityKind, ent domain.Engageable, actor *domain.Member, params domain.PaginationParams) (domain.PaginatedResponse[domain.Comment], error) {
	if !domain.CanView(ent, actor) {
		return domain.PaginatedResponse[domain.Comment]{}, domain.ErrForbidden
	}

	comments, total, err := s.engagementRepo.ListComments(ctx, kind, ent.ID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Comment]{}, err
	}

	return domain.NewPaginatedResponse(comments, params.Page, params.PageSize, total), nil
}

func (s *service) ListLikes(ctx context.Context, kind domain.EntityKind, ent domain.Engageable, actor *domain.Member, params domain.PaginationParams) (domain.PaginatedResponse[domain.Like], error) {
	if !domain.CanView(ent, actor) {
		return domain.PaginatedResponse[domain.Like]{}, domain.ErrForbidden
	}

	likes, total, err := s.engagementRepo.ListLikes(ctx, kind, ent.ID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Like]{}, err
	}

	return domain.NewPaginatedResponse(likes, params.Page, params.PageSize, total), nil
}

func (s *service) Summary(ctx context.Context, kind domain.EntityKind, entityID uuid.UUID, actor *domain.Member) (domain.EngagementSummary, error) {
	viewerID := uuid.Nil
	if actor != nil {
		viewerID = actor.ID
	}
	return s.engagementRepo.Summary(ctx, kind, entityID, viewerID)
}
