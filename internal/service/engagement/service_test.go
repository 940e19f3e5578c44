package engagement_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"clubhub/internal/domain"
	"clubhub/internal/mocks"
	"clubhub/internal/service/engagement"
)

func activeMember(role domain.Role) *domain.Member {
	return &domain.Member{
		ID:         uuid.New(),
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Role:       role,
		IsActive:   true,
		IsApproved: true,
	}
}

func publishedEntity(vis domain.Visibility) domain.Engageable {
	return domain.Engageable{
		ID:         uuid.New(),
		Visibility: vis,
		Status:     domain.StatusPublished,
		AuthorID:   uuid.New(),
	}
}

func TestService_RecordView(t *testing.T) {
	ctx := context.Background()
	entityID := uuid.New()

	t.Run("Anonymous view is dropped", func(t *testing.T) {
		mockRepo := new(mocks.EngagementRepository)
		svc := engagement.NewService(mockRepo)

		err := svc.RecordView(ctx, domain.KindAnnouncement, entityID, nil, "203.0.113.7")

		assert.NoError(t, err)
		mockRepo.AssertNotCalled(t, "AddView")
	})

	t.Run("Authenticated view is recorded with IP", func(t *testing.T) {
		mockRepo := new(mocks.EngagementRepository)
		svc := engagement.NewService(mockRepo)
		actor := activeMember(domain.RoleMember)

		mockRepo.On("AddView", ctx, domain.KindAnnouncement, entityID, actor.ID, mock.MatchedBy(func(ip *string) bool {
			return ip != nil && *ip == "203.0.113.7"
		})).Return(nil).Once()

		err := svc.RecordView(ctx, domain.KindAnnouncement, entityID, actor, "203.0.113.7")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestService_ToggleLike(t *testing.T) {
	ctx := context.Background()

	t.Run("Requires authentication", func(t *testing.T) {
		svc := engagement.NewService(new(mocks.EngagementRepository))

		_, err := svc.ToggleLike(ctx, domain.KindEvent, publishedEntity(domain.VisibilityPublic), nil)

		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("Visibility gate applies", func(t *testing.T) {
		svc := engagement.NewService(new(mocks.EngagementRepository))
		visitor := activeMember(domain.RoleVisitor)

		_, err := svc.ToggleLike(ctx, domain.KindEvent, publishedEntity(domain.VisibilityMembersOnly), visitor)

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("Delegates to repository", func(t *testing.T) {
		mockRepo := new(mocks.EngagementRepository)
		svc := engagement.NewService(mockRepo)
		actor := activeMember(domain.RoleMember)
		ent := publishedEntity(domain.VisibilityMembersOnly)

		mockRepo.On("ToggleLike", ctx, domain.KindEvent, ent.ID, actor.ID).Return(true, nil).Once()
		mockRepo.On("ToggleLike", ctx, domain.KindEvent, ent.ID, actor.ID).Return(false, nil).Once()

		liked, err := svc.ToggleLike(ctx, domain.KindEvent, ent, actor)
		assert.NoError(t, err)
		assert.True(t, liked)

		liked, err = svc.ToggleLike(ctx, domain.KindEvent, ent, actor)
		assert.NoError(t, err)
		assert.False(t, liked)

		mockRepo.AssertExpectations(t)
	})
}

func TestService_AddComment(t *testing.T) {
	ctx := context.Background()
	ent := publishedEntity(domain.VisibilityPublic)

	t.Run("Success trims content", func(t *testing.T) {
		mockRepo := new(mocks.EngagementRepository)
		svc := engagement.NewService(mockRepo)
		actor := activeMember(domain.RoleMember)

		mockRepo.On("AddComment", ctx, domain.KindAnnouncement, mock.MatchedBy(func(c *domain.Comment) bool {
			return c.EntityID == ent.ID && c.MemberID == actor.ID && c.Content == "Great news"
		})).Return(nil).Once()

		comment, err := svc.AddComment(ctx, domain.KindAnnouncement, ent, actor, "  Great news  ")

		assert.NoError(t, err)
		assert.Equal(t, "Great news", comment.Content)
		assert.Equal(t, actor.FirstName, comment.Author.FirstName)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Empty content", func(t *testing.T) {
		svc := engagement.NewService(new(mocks.EngagementRepository))

		_, err := svc.AddComment(ctx, domain.KindAnnouncement, ent, activeMember(domain.RoleMember), "   ")

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("Over length limit", func(t *testing.T) {
		svc := engagement.NewService(new(mocks.EngagementRepository))

		long := strings.Repeat("a", domain.MaxCommentLength+1)
		_, err := svc.AddComment(ctx, domain.KindAnnouncement, ent, activeMember(domain.RoleMember), long)

		assert.ErrorIs(t, err, domain.ErrCommentTooLong)
	})

	t.Run("Limit counts characters not bytes", func(t *testing.T) {
		mockRepo := new(mocks.EngagementRepository)
		svc := engagement.NewService(mockRepo)
		actor := activeMember(domain.RoleMember)

		// 300 three-byte runes: 900 bytes, well under the 500-char limit.
		content := strings.Repeat("ኣ", 300)
		mockRepo.On("AddComment", ctx, domain.KindAnnouncement, mock.MatchedBy(func(c *domain.Comment) bool {
			return c.Content == content
		})).Return(nil).Once()

		_, err := svc.AddComment(ctx, domain.KindAnnouncement, ent, actor, content)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)

		_, err = svc.AddComment(ctx, domain.KindAnnouncement, ent, actor, strings.Repeat("ኣ", domain.MaxCommentLength+1))
		assert.ErrorIs(t, err, domain.ErrCommentTooLong)
	})

	t.Run("Hidden entity", func(t *testing.T) {
		svc := engagement.NewService(new(mocks.EngagementRepository))
		visitor := activeMember(domain.RoleVisitor)

		_, err := svc.AddComment(ctx, domain.KindAnnouncement, publishedEntity(domain.VisibilityMembersOnly), visitor, "hi")

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("Anonymous", func(t *testing.T) {
		svc := engagement.NewService(new(mocks.EngagementRepository))

		_, err := svc.AddComment(ctx, domain.KindAnnouncement, ent, nil, "hi")

		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})
}

func TestService_DeleteComment(t *testing.T) {
	ctx := context.Background()
	commentID := uuid.New()

	t.Run("Author may delete", func(t *testing.T) {
		mockRepo := new(mocks.EngagementRepository)
		svc := engagement.NewService(mockRepo)
		actor := activeMember(domain.RoleMember)

		mockRepo.On("GetComment", ctx, commentID).Return(&domain.Comment{ID: commentID, MemberID: actor.ID}, nil).Once()
		mockRepo.On("DeleteComment", ctx, commentID).Return(nil).Once()

		assert.NoError(t, svc.DeleteComment(ctx, commentID, actor))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Officer may moderate", func(t *testing.T) {
		mockRepo := new(mocks.EngagementRepository)
		svc := engagement.NewService(mockRepo)

		mockRepo.On("GetComment", ctx, commentID).Return(&domain.Comment{ID: commentID, MemberID: uuid.New()}, nil).Once()
		mockRepo.On("DeleteComment", ctx, commentID).Return(nil).Once()

		assert.NoError(t, svc.DeleteComment(ctx, commentID, activeMember(domain.RoleOfficer)))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Other members may not", func(t *testing.T) {
		mockRepo := new(mocks.EngagementRepository)
		svc := engagement.NewService(mockRepo)

		mockRepo.On("GetComment", ctx, commentID).Return(&domain.Comment{ID: commentID, MemberID: uuid.New()}, nil).Once()

		err := svc.DeleteComment(ctx, commentID, activeMember(domain.RoleMember))

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}
