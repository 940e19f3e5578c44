package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"clubhub/internal/domain"
)

type EngagementService struct {
	mock.Mock
}

func (m *EngagementService) RecordView(ctx context.Context, kind domain.EntityKind, entityID uuid.UUID, actor *domain.Member, ip string) error {
	args := m.Called(ctx, kind, entityID, actor, ip)
	return args.Error(0)
}

func (m *EngagementService) ToggleLike(ctx context.Context, kind domain.EntityKind, ent domain.Engageable, actor *domain.Member) (bool, error) {
	args := m.Called(ctx, kind, ent, actor)
	return args.Bool(0), args.Error(1)
}

func (m *EngagementService) AddComment(ctx context.Context, kind domain.EntityKind, ent domain.Engageable, actor *domain.Member, content string) (*domain.Comment, error) {
	args := m.Called(ctx, kind, ent, actor, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *EngagementService) DeleteComment(ctx context.Context, commentID uuid.UUID, actor *domain.Member) error {
	args := m.Called(ctx, commentID, actor)
	return args.Error(0)
}

func (m *EngagementService) ListComments(ctx context.Context, kind domain.EntityKind, ent domain.Engageable, actor *domain.Member, params domain.PaginationParams) (domain.PaginatedResponse[domain.Comment], error) {
	args := m.Called(ctx, kind, ent, actor, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Comment]), args.Error(1)
}

func (m *EngagementService) ListLikes(ctx context.Context, kind domain.EntityKind, ent domain.Engageable, actor *domain.Member, params domain.PaginationParams) (domain.PaginatedResponse[domain.Like], error) {
	args := m.Called(ctx, kind, ent, actor, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Like]), args.Error(1)
}

func (m *EngagementService) Summary(ctx context.Context, kind domain.EntityKind, entityID uuid.UUID, actor *domain.Member) (domain.EngagementSummary, error) {
	args := m.Called(ctx, kind, entityID, actor)
	return args.Get(0).(domain.EngagementSummary), args.Error(1)
}
