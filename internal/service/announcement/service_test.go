package announcement_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"clubhub/internal/domain"
	"clubhub/internal/mocks"
	"clubhub/internal/service/announcement"
)

func activeMember(role domain.Role) *domain.Member {
	return &domain.Member{
		ID:         uuid.New(),
		Role:       role,
		IsActive:   true,
		IsApproved: true,
	}
}

func published(vis domain.Visibility) *domain.Announcement {
	return &domain.Announcement{
		ID:         uuid.New(),
		Title:      "Clubhouse Reopening",
		Content:    "We reopen on Saturday.",
		Type:       domain.AnnouncementGeneral,
		Priority:   "normal",
		Visibility: vis,
		Status:     domain.StatusPublished,
		PublishAt:  time.Now().Add(-time.Hour),
		AuthorID:   uuid.New(),
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Officer creates a draft", func(t *testing.T) {
		mockRepo := new(mocks.AnnouncementRepository)
		svc := announcement.NewService(mockRepo, new(mocks.EngagementService), nil)
		officer := activeMember(domain.RoleOfficer)

		mockRepo.On("Create", ctx, mock.MatchedBy(func(a *domain.Announcement) bool {
			return a.Status == domain.StatusDraft && a.AuthorID == officer.ID && a.Priority == "normal"
		})).Return(nil).Once()

		a, err := svc.Create(ctx, officer, domain.CreateAnnouncementInput{
			Title:      "Clubhouse Reopening",
			Content:    "We reopen on Saturday.",
			Type:       domain.AnnouncementGeneral,
			Visibility: domain.VisibilityPublic,
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusDraft, a.Status)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Members cannot create", func(t *testing.T) {
		svc := announcement.NewService(new(mocks.AnnouncementRepository), new(mocks.EngagementService), nil)

		_, err := svc.Create(ctx, activeMember(domain.RoleMember), domain.CreateAnnouncementInput{})

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Records view and attaches engagement", func(t *testing.T) {
		mockRepo := new(mocks.AnnouncementRepository)
		mockEngagement := new(mocks.EngagementService)
		svc := announcement.NewService(mockRepo, mockEngagement, nil)
		actor := activeMember(domain.RoleMember)
		a := published(domain.VisibilityMembersOnly)

		mockRepo.On("GetByID", ctx, a.ID).Return(a, nil).Once()
		mockEngagement.On("RecordView", ctx, domain.KindAnnouncement, a.ID, actor, "203.0.113.7").Return(nil).Once()
		mockEngagement.On("Summary", ctx, domain.KindAnnouncement, a.ID, actor).
			Return(domain.EngagementSummary{Views: 3, Likes: 1, Liked: true}, nil).Once()

		got, err := svc.Get(ctx, a.ID, actor, "203.0.113.7")

		assert.NoError(t, err)
		assert.True(t, got.Engagement.Liked)
		mockEngagement.AssertExpectations(t)
	})

	t.Run("Anonymous blocked from members only", func(t *testing.T) {
		mockRepo := new(mocks.AnnouncementRepository)
		svc := announcement.NewService(mockRepo, new(mocks.EngagementService), nil)
		a := published(domain.VisibilityMembersOnly)

		mockRepo.On("GetByID", ctx, a.ID).Return(a, nil).Once()

		_, err := svc.Get(ctx, a.ID, nil, "")

		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("Visitor blocked with forbidden", func(t *testing.T) {
		mockRepo := new(mocks.AnnouncementRepository)
		svc := announcement.NewService(mockRepo, new(mocks.EngagementService), nil)
		a := published(domain.VisibilityMembersOnly)

		mockRepo.On("GetByID", ctx, a.ID).Return(a, nil).Once()

		_, err := svc.Get(ctx, a.ID, activeMember(domain.RoleVisitor), "")

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestService_Transitions(t *testing.T) {
	ctx := context.Background()
	officer := activeMember(domain.RoleOfficer)

	t.Run("Publish draft", func(t *testing.T) {
		mockRepo := new(mocks.AnnouncementRepository)
		svc := announcement.NewService(mockRepo, new(mocks.EngagementService), nil)
		a := published(domain.VisibilityPublic)
		a.Status = domain.StatusDraft

		mockRepo.On("GetByID", ctx, a.ID).Return(a, nil).Once()
		mockRepo.On("UpdateStatus", ctx, a.ID, domain.StatusPublished).Return(nil).Once()

		assert.NoError(t, svc.Publish(ctx, a.ID, officer))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Publish twice", func(t *testing.T) {
		mockRepo := new(mocks.AnnouncementRepository)
		svc := announcement.NewService(mockRepo, new(mocks.EngagementService), nil)
		a := published(domain.VisibilityPublic)

		mockRepo.On("GetByID", ctx, a.ID).Return(a, nil).Once()

		err := svc.Publish(ctx, a.ID, officer)

		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		mockRepo.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("Archive requires published", func(t *testing.T) {
		mockRepo := new(mocks.AnnouncementRepository)
		svc := announcement.NewService(mockRepo, new(mocks.EngagementService), nil)
		a := published(domain.VisibilityPublic)
		a.Status = domain.StatusDraft

		mockRepo.On("GetByID", ctx, a.ID).Return(a, nil).Once()

		err := svc.Archive(ctx, a.ID, officer)

		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Author may delete own", func(t *testing.T) {
		mockRepo := new(mocks.AnnouncementRepository)
		svc := announcement.NewService(mockRepo, new(mocks.EngagementService), nil)
		author := activeMember(domain.RoleOfficer)
		a := published(domain.VisibilityPublic)
		a.AuthorID = author.ID

		mockRepo.On("GetByID", ctx, a.ID).Return(a, nil).Once()
		mockRepo.On("Delete", ctx, a.ID).Return(nil).Once()

		assert.NoError(t, svc.Delete(ctx, a.ID, author))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Other officers may not", func(t *testing.T) {
		mockRepo := new(mocks.AnnouncementRepository)
		svc := announcement.NewService(mockRepo, new(mocks.EngagementService), nil)
		a := published(domain.VisibilityPublic)

		mockRepo.On("GetByID", ctx, a.ID).Return(a, nil).Once()

		err := svc.Delete(ctx, a.ID, activeMember(domain.RoleOfficer))

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Non-officers see published only", func(t *testing.T) {
		mockRepo := new(mocks.AnnouncementRepository)
		svc := announcement.NewService(mockRepo, new(mocks.EngagementService), nil)
		actor := activeMember(domain.RoleMember)

		mockRepo.On("List", ctx, mock.MatchedBy(func(f domain.ListFilter) bool {
			return f.Status != nil && *f.Status == domain.StatusPublished &&
				len(f.Visibilities) == 2
		})).Return([]domain.Announcement{}, int64(0), nil).Once()

		_, err := svc.List(ctx, actor, domain.NewListFilter(actor))

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Requested tiers are clamped", func(t *testing.T) {
		mockRepo := new(mocks.AnnouncementRepository)
		svc := announcement.NewService(mockRepo, new(mocks.EngagementService), nil)
		actor := activeMember(domain.RoleMember)

		filter := domain.NewListFilter(actor)
		filter.Visibilities = []domain.Visibility{domain.VisibilityAdminOnly}

		mockRepo.On("List", ctx, mock.MatchedBy(func(f domain.ListFilter) bool {
			// A request entirely outside the actor's tiers falls back
			// to the actor default.
			for _, v := range f.Visibilities {
				if v == domain.VisibilityAdminOnly {
					return false
				}
			}
			return len(f.Visibilities) == 2
		})).Return([]domain.Announcement{}, int64(0), nil).Once()

		_, err := svc.List(ctx, actor, filter)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}
