package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"clubhub/internal/domain"
)

type EngagementRepository struct {
	mock.Mock
}

func (m *EngagementRepository) AddView(ctx context.Context, kind domain.EntityKind, entityID, memberID uuid.UUID, ip *string) error {
	args := m.Called(ctx, kind, entityID, memberID, ip)
	return args.Error(0)
}

func (m *EngagementRepository) ToggleLike(ctx context.Context, kind domain.EntityKind, entityID, memberID uuid.UUID) (bool, error) {
	args := m.Called(ctx, kind, entityID, memberID)
	return args.Bool(0), args.Error(1)
}

func (m *EngagementRepository) AddComment(ctx context.Context, kind domain.EntityKind, comment *domain.Comment) error {
	args := m.Called(ctx, kind, comment)
	return args.Error(0)
}

func (m *EngagementRepository) GetComment(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *EngagementRepository) DeleteComment(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *EngagementRepository) ListComments(ctx context.Context, kind domain.EntityKind, entityID uuid.UUID, params domain.PaginationParams) ([]domain.Comment, int64, error) {
	args := m.Called(ctx, kind, entityID, params)
	return args.Get(0).([]domain.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *EngagementRepository) ListLikes(ctx context.Context, kind domain.EntityKind, entityID uuid.UUID, params domain.PaginationParams) ([]domain.Like, int64, error) {
	args := m.Called(ctx, kind, entityID, params)
	return args.Get(0).([]domain.Like), args.Get(1).(int64), args.Error(2)
}

func (m *EngagementRepository) Summary(ctx context.Context, kind domain.EntityKind, entityID, viewerID uuid.UUID) (domain.EngagementSummary, error) {
	args := m.Called(ctx, kind, entityID, viewerID)
	return args.Get(0).(domain.EngagementSummary), args.Error(1)
}
