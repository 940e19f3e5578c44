package event_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"clubhub/internal/domain"
	"clubhub/internal/mocks"
	"clubhub/internal/service/event"
)

func activeMember(role domain.Role) *domain.Member {
	return &domain.Member{
		ID:         uuid.New(),
		Email:      "member@example.com",
		FirstName:  "Grace",
		LastName:   "Hopper",
		Role:       role,
		IsActive:   true,
		IsApproved: true,
	}
}

func openEvent() *domain.Event {
	return &domain.Event{
		ID:                   uuid.New(),
		Title:                "Spring Cleanup",
		Status:               domain.StatusPublished,
		Visibility:           domain.VisibilityPublic,
		StartDate:            time.Now().Add(48 * time.Hour),
		RegistrationDeadline: time.Now().Add(24 * time.Hour),
		MaxParticipants:      50,
		OrganizerID:          uuid.New(),
	}
}

func newService(repo *mocks.EventRepository, engagementSvc *mocks.EngagementService) event.Service {
	if engagementSvc == nil {
		engagementSvc = new(mocks.EngagementService)
	}
	return event.NewService(repo, engagementSvc, nil, nil) // no email, no Redis
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Non-officers only see published events regardless of the status filter", func(t *testing.T) {
		mockRepo := new(mocks.EventRepository)
		svc := newService(mockRepo, nil)
		actor := activeMember(domain.RoleMember)

		filter := domain.NewListFilter(actor)
		draft := domain.StatusDraft
		filter.Status = &draft

		mockRepo.On("List", ctx, mock.MatchedBy(func(f domain.ListFilter) bool {
			return f.Status != nil && *f.Status == domain.StatusPublished
		})).Return([]domain.Event{}, int64(0), nil).Once()

		_, err := svc.List(ctx, actor, filter)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Officers keep their status filter", func(t *testing.T) {
		mockRepo := new(mocks.EventRepository)
		svc := newService(mockRepo, nil)
		actor := activeMember(domain.RoleOfficer)

		filter := domain.NewListFilter(actor)
		draft := domain.StatusDraft
		filter.Status = &draft

		mockRepo.On("List", ctx, mock.MatchedBy(func(f domain.ListFilter) bool {
			return f.Status != nil && *f.Status == domain.StatusDraft
		})).Return([]domain.Event{}, int64(0), nil).Once()

		_, err := svc.List(ctx, actor, filter)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	actor := activeMember(domain.RoleMember)

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.EventRepository)
		svc := newService(mockRepo, nil)
		e := openEvent()

		mockRepo.On("GetByID", ctx, e.ID).Return(e, nil).Once()
		mockRepo.On("GetParticipation", ctx, e.ID, actor.ID).Return(nil, domain.ErrNotRegistered).Once()
		mockRepo.On("Register", ctx, mock.MatchedBy(func(p *domain.Participation) bool {
			return p.EventID == e.ID && p.MemberID == actor.ID && p.Status == domain.ParticipationRegistered
		})).Return(true, nil).Once()

		p, err := svc.Register(ctx, e.ID, actor, domain.RegisterEventInput{})

		assert.NoError(t, err)
		assert.Equal(t, domain.ParticipationRegistered, p.Status)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Anonymous", func(t *testing.T) {
		svc := newService(new(mocks.EventRepository), nil)

		_, err := svc.Register(ctx, uuid.New(), nil, domain.RegisterEventInput{})

		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("Not published", func(t *testing.T) {
		mockRepo := new(mocks.EventRepository)
		svc := newService(mockRepo, nil)
		e := openEvent()
		e.Status = domain.StatusDraft
		e.OrganizerID = actor.ID // draft visible to the organizer

		mockRepo.On("GetByID", ctx, e.ID).Return(e, nil).Once()

		_, err := svc.Register(ctx, e.ID, actor, domain.RegisterEventInput{})

		assert.ErrorIs(t, err, domain.ErrEventNotOpen)
	})

	t.Run("Deadline passed", func(t *testing.T) {
		mockRepo := new(mocks.EventRepository)
		svc := newService(mockRepo, nil)
		e := openEvent()
		e.RegistrationDeadline = time.Now().Add(-time.Hour)

		mockRepo.On("GetByID", ctx, e.ID).Return(e, nil).Once()

		_, err := svc.Register(ctx, e.ID, actor, domain.RegisterEventInput{})

		assert.ErrorIs(t, err, domain.ErrDeadlinePassed)
		mockRepo.AssertNotCalled(t, "Register")
	})

	t.Run("Already registered", func(t *testing.T) {
		mockRepo := new(mocks.EventRepository)
		svc := newService(mockRepo, nil)
		e := openEvent()

		mockRepo.On("GetByID", ctx, e.ID).Return(e, nil).Once()
		mockRepo.On("GetParticipation", ctx, e.ID, actor.ID).
			Return(&domain.Participation{EventID: e.ID, MemberID: actor.ID}, nil).Once()

		_, err := svc.Register(ctx, e.ID, actor, domain.RegisterEventInput{})

		assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)
	})

	t.Run("Event full", func(t *testing.T) {
		mockRepo := new(mocks.EventRepository)
		svc := newService(mockRepo, nil)
		e := openEvent()
		e.MaxParticipants = 1

		// The conditional insert loses and no participation exists,
		// so the failure is capacity, not a duplicate.
		mockRepo.On("GetByID", ctx, e.ID).Return(e, nil).Once()
		mockRepo.On("GetParticipation", ctx, e.ID, actor.ID).Return(nil, domain.ErrNotRegistered).Twice()
		mockRepo.On("Register", ctx, mock.AnythingOfType("*domain.Participation")).Return(false, nil).Once()

		_, err := svc.Register(ctx, e.ID, actor, domain.RegisterEventInput{})

		assert.ErrorIs(t, err, domain.ErrEventFull)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Hidden event", func(t *testing.T) {
		mockRepo := new(mocks.EventRepository)
		svc := newService(mockRepo, nil)
		e := openEvent()
		e.Visibility = domain.VisibilityOfficersOnly

		mockRepo.On("GetByID", ctx, e.ID).Return(e, nil).Once()

		_, err := svc.Register(ctx, e.ID, actor, domain.RegisterEventInput{})

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestService_Unregister(t *testing.T) {
	ctx := context.Background()
	actor := activeMember(domain.RoleMember)
	eventID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.EventRepository)
		svc := newService(mockRepo, nil)

		mockRepo.On("GetParticipation", ctx, eventID, actor.ID).
			Return(&domain.Participation{Status: domain.ParticipationRegistered}, nil).Once()
		mockRepo.On("DeleteParticipation", ctx, eventID, actor.ID).Return(nil).Once()

		assert.NoError(t, svc.Unregister(ctx, eventID, actor))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Attendance already recorded", func(t *testing.T) {
		mockRepo := new(mocks.EventRepository)
		svc := newService(mockRepo, nil)

		mockRepo.On("GetParticipation", ctx, eventID, actor.ID).
			Return(&domain.Participation{Status: domain.ParticipationAttended}, nil).Once()

		err := svc.Unregister(ctx, eventID, actor)

		assert.ErrorIs(t, err, domain.ErrParticipationLocked)
		mockRepo.AssertNotCalled(t, "DeleteParticipation")
	})

	t.Run("Not registered", func(t *testing.T) {
		mockRepo := new(mocks.EventRepository)
		svc := newService(mockRepo, nil)

		mockRepo.On("GetParticipation", ctx, eventID, actor.ID).Return(nil, domain.ErrNotRegistered).Once()

		err := svc.Unregister(ctx, eventID, actor)

		assert.ErrorIs(t, err, domain.ErrNotRegistered)
	})
}

func TestService_AddFeedback(t *testing.T) {
	ctx := context.Background()
	actor := activeMember(domain.RoleMember)

	completedEvent := func() *domain.Event {
		e := openEvent()
		e.Status = domain.StatusCompleted
		return e
	}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.EventRepository)
		svc := newService(mockRepo, nil)
		e := completedEvent()

		mockRepo.On("GetByID", ctx, e.ID).Return(e, nil).Once()
		mockRepo.On("GetParticipation", ctx, e.ID, actor.ID).
			Return(&domain.Participation{Status: domain.ParticipationAttended}, nil).Once()
		mockRepo.On("AddFeedback", ctx, mock.MatchedBy(func(f *domain.EventFeedback) bool {
			return f.EventID == e.ID && f.MemberID == actor.ID && f.Rating == 5
		})).Return(true, nil).Once()

		fb, err := svc.AddFeedback(ctx, e.ID, actor, domain.EventFeedbackInput{Rating: 5})

		assert.NoError(t, err)
		assert.Equal(t, 5, fb.Rating)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Rating out of range", func(t *testing.T) {
		svc := newService(new(mocks.EventRepository), nil)

		_, err := svc.AddFeedback(ctx, uuid.New(), actor, domain.EventFeedbackInput{Rating: 6})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("Event not completed", func(t *testing.T) {
		mockRepo := new(mocks.EventRepository)
		svc := newService(mockRepo, nil)
		e := openEvent()

		mockRepo.On("GetByID", ctx, e.ID).Return(e, nil).Once()

		_, err := svc.AddFeedback(ctx, e.ID, actor, domain.EventFeedbackInput{Rating: 4})

		assert.ErrorIs(t, err, domain.ErrEventNotCompleted)
	})

	t.Run("Did not attend", func(t *testing.T) {
		mockRepo := new(mocks.EventRepository)
		svc := newService(mockRepo, nil)
		e := completedEvent()

		mockRepo.On("GetByID", ctx, e.ID).Return(e, nil).Once()
		mockRepo.On("GetParticipation", ctx, e.ID, actor.ID).
			Return(&domain.Participation{Status: domain.ParticipationAbsent}, nil).Once()

		_, err := svc.AddFeedback(ctx, e.ID, actor, domain.EventFeedbackInput{Rating: 4})

		assert.ErrorIs(t, err, domain.ErrFeedbackNotAllowed)
	})

	t.Run("Duplicate feedback", func(t *testing.T) {
		mockRepo := new(mocks.EventRepository)
		svc := newService(mockRepo, nil)
		e := completedEvent()

		mockRepo.On("GetByID", ctx, e.ID).Return(e, nil).Once()
		mockRepo.On("GetParticipation", ctx, e.ID, actor.ID).
			Return(&domain.Participation{Status: domain.ParticipationAttended}, nil).Once()
		mockRepo.On("AddFeedback", ctx, mock.AnythingOfType("*domain.EventFeedback")).Return(false, nil).Once()

		_, err := svc.AddFeedback(ctx, e.ID, actor, domain.EventFeedbackInput{Rating: 4})

		assert.ErrorIs(t, err, domain.ErrFeedbackExists)
	})
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()
	actor := activeMember(domain.RoleMember)

	t.Run("Attaches derived fields", func(t *testing.T) {
		mockRepo := new(mocks.EventRepository)
		mockEngagement := new(mocks.EngagementService)
		svc := newService(mockRepo, mockEngagement)
		e := openEvent()
		e.MaxParticipants = 30

		mockRepo.On("GetByID", ctx, e.ID).Return(e, nil).Once()
		mockRepo.On("CountParticipants", ctx, e.ID).Return(int64(12), nil).Once()
		mockRepo.On("AverageRating", ctx, e.ID).Return(4.5, nil).Once()
		mockEngagement.On("RecordView", ctx, domain.KindEvent, e.ID, actor, "198.51.100.4").Return(nil).Once()
		mockEngagement.On("Summary", ctx, domain.KindEvent, e.ID, actor).
			Return(domain.EngagementSummary{Views: 40, Likes: 7}, nil).Once()

		got, err := svc.Get(ctx, e.ID, actor, "198.51.100.4")

		assert.NoError(t, err)
		assert.Equal(t, int64(12), got.ParticipantCount)
		assert.Equal(t, int64(18), got.AvailableSpots)
		assert.Equal(t, 4.5, got.AverageRating)
		assert.Equal(t, int64(7), got.Engagement.Likes)
		mockRepo.AssertExpectations(t)
		mockEngagement.AssertExpectations(t)
	})

	t.Run("Anonymous blocked from members only", func(t *testing.T) {
		mockRepo := new(mocks.EventRepository)
		svc := newService(mockRepo, nil)
		e := openEvent()
		e.Visibility = domain.VisibilityMembersOnly

		mockRepo.On("GetByID", ctx, e.ID).Return(e, nil).Once()

		_, err := svc.Get(ctx, e.ID, nil, "")

		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("Overbooked spots clamp to zero", func(t *testing.T) {
		mockRepo := new(mocks.EventRepository)
		mockEngagement := new(mocks.EngagementService)
		svc := newService(mockRepo, mockEngagement)
		e := openEvent()
		e.MaxParticipants = 10

		mockRepo.On("GetByID", ctx, e.ID).Return(e, nil).Once()
		mockRepo.On("CountParticipants", ctx, e.ID).Return(int64(11), nil).Once()
		mockRepo.On("AverageRating", ctx, e.ID).Return(0.0, nil).Once()
		mockEngagement.On("RecordView", ctx, domain.KindEvent, e.ID, actor, "").Return(nil).Once()
		mockEngagement.On("Summary", ctx, domain.KindEvent, e.ID, actor).
			Return(domain.EngagementSummary{}, nil).Once()

		got, err := svc.Get(ctx, e.ID, actor, "")

		assert.NoError(t, err)
		assert.Equal(t, int64(0), got.AvailableSpots)
	})
}

func TestService_Transitions(t *testing.T) {
	ctx := context.Background()
	officer := activeMember(domain.RoleOfficer)

	t.Run("Publish draft", func(t *testing.T) {
		mockRepo := new(mocks.EventRepository)
		svc := newService(mockRepo, nil)
		e := openEvent()
		e.Status = domain.StatusDraft

		mockRepo.On("GetByID", ctx, e.ID).Return(e, nil).Once()
		mockRepo.On("UpdateStatus", ctx, e.ID, domain.StatusPublished).Return(nil).Once()

		assert.NoError(t, svc.Publish(ctx, e.ID, officer))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Complete requires published", func(t *testing.T) {
		mockRepo := new(mocks.EventRepository)
		svc := newService(mockRepo, nil)
		e := openEvent()
		e.Status = domain.StatusDraft

		mockRepo.On("GetByID", ctx, e.ID).Return(e, nil).Once()

		err := svc.Complete(ctx, e.ID, officer)

		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		mockRepo.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("Members cannot manage", func(t *testing.T) {
		mockRepo := new(mocks.EventRepository)
		svc := newService(mockRepo, nil)
		e := openEvent()
		e.Status = domain.StatusDraft

		mockRepo.On("GetByID", ctx, e.ID).Return(e, nil).Once()

		err := svc.Publish(ctx, e.ID, activeMember(domain.RoleMember))

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	officer := activeMember(domain.RoleOfficer)

	t.Run("Deadline must precede start", func(t *testing.T) {
		svc := newService(new(mocks.EventRepository), nil)

		_, err := svc.Create(ctx, officer, domain.CreateEventInput{
			Title:                "Backwards",
			StartDate:            time.Now().Add(time.Hour),
			RegistrationDeadline: time.Now().Add(2 * time.Hour),
			MaxParticipants:      10,
			Visibility:           domain.VisibilityPublic,
		})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("Members cannot create", func(t *testing.T) {
		svc := newService(new(mocks.EventRepository), nil)

		_, err := svc.Create(ctx, activeMember(domain.RoleMember), domain.CreateEventInput{})

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("Created as draft", func(t *testing.T) {
		mockRepo := new(mocks.EventRepository)
		svc := newService(mockRepo, nil)

		mockRepo.On("Create", ctx, mock.MatchedBy(func(e *domain.Event) bool {
			return e.Status == domain.StatusDraft && e.OrganizerID == officer.ID
		})).Return(nil).Once()

		e, err := svc.Create(ctx, officer, domain.CreateEventInput{
			Title:                "Annual Meeting",
			StartDate:            time.Now().Add(48 * time.Hour),
			RegistrationDeadline: time.Now().Add(24 * time.Hour),
			MaxParticipants:      100,
			Visibility:           domain.VisibilityMembersOnly,
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusDraft, e.Status)
		assert.Equal(t, int64(100), e.AvailableSpots)
		mockRepo.AssertExpectations(t)
	})
}
