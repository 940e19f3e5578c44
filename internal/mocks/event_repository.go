package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"clubhub/internal/domain"
)

type EventRepository struct {
	mock.Mock
}

func (m *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *EventRepository) Update(ctx context.Context, e *domain.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *EventRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EntityStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *EventRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Event, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Event), args.Get(1).(int64), args.Error(2)
}

func (m *EventRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *EventRepository) Register(ctx context.Context, p *domain.Participation) (bool, error) {
	args := m.Called(ctx, p)
	return args.Bool(0), args.Error(1)
}

func (m *EventRepository) GetParticipation(ctx context.Context, eventID, memberID uuid.UUID) (*domain.Participation, error) {
	args := m.Called(ctx, eventID, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Participation), args.Error(1)
}

func (m *EventRepository) DeleteParticipation(ctx context.Context, eventID, memberID uuid.UUID) error {
	args := m.Called(ctx, eventID, memberID)
	return args.Error(0)
}

func (m *EventRepository) UpdateParticipation(ctx context.Context, eventID, memberID uuid.UUID, status domain.ParticipationStatus, notes *string) error {
	args := m.Called(ctx, eventID, memberID, status, notes)
	return args.Error(0)
}

func (m *EventRepository) ListParticipants(ctx context.Context, eventID uuid.UUID, params domain.PaginationParams) ([]domain.Participation, int64, error) {
	args := m.Called(ctx, eventID, params)
	return args.Get(0).([]domain.Participation), args.Get(1).(int64), args.Error(2)
}

func (m *EventRepository) CountParticipants(ctx context.Context, eventID uuid.UUID) (int64, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *EventRepository) AddFeedback(ctx context.Context, f *domain.EventFeedback) (bool, error) {
	args := m.Called(ctx, f)
	return args.Bool(0), args.Error(1)
}

func (m *EventRepository) ListFeedback(ctx context.Context, eventID uuid.UUID, params domain.PaginationParams) ([]domain.EventFeedback, int64, error) {
	args := m.Called(ctx, eventID, params)
	return args.Get(0).([]domain.EventFeedback), args.Get(1).(int64), args.Error(2)
}

func (m *EventRepository) AverageRating(ctx context.Context, eventID uuid.UUID) (float64, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(float64), args.Error(1)
}
