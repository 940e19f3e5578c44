package member_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"clubhub/internal/domain"
	"clubhub/internal/mocks"
	"clubhub/internal/service/member"
)

func TestService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Only provided fields change", func(t *testing.T) {
		mockRepo := new(mocks.MemberRepository)
		svc := member.NewService(mockRepo, nil)

		phone := "555-0100"
		existing := &domain.Member{ID: id, FirstName: "Ada", LastName: "Lovelace", Phone: &phone}
		mockRepo.On("GetByID", ctx, id).Return(existing, nil).Once()
		mockRepo.On("Update", ctx, mock.MatchedBy(func(m *domain.Member) bool {
			return m.FirstName == "Augusta" && m.LastName == "Lovelace" && m.Phone == &phone
		})).Return(nil).Once()

		first := "Augusta"
		got, err := svc.UpdateProfile(ctx, id, domain.UpdateMemberInput{FirstName: &first})

		assert.NoError(t, err)
		assert.Equal(t, "Augusta", got.FirstName)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Phone can be cleared", func(t *testing.T) {
		mockRepo := new(mocks.MemberRepository)
		svc := member.NewService(mockRepo, nil)

		phone := "555-0100"
		existing := &domain.Member{ID: id, Phone: &phone}
		mockRepo.On("GetByID", ctx, id).Return(existing, nil).Once()
		mockRepo.On("Update", ctx, mock.MatchedBy(func(m *domain.Member) bool {
			return m.Phone == nil
		})).Return(nil).Once()

		var cleared *string
		_, err := svc.UpdateProfile(ctx, id, domain.UpdateMemberInput{Phone: &cleared})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestService_AssignRole(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.MemberRepository)
		svc := member.NewService(mockRepo, nil)

		mockRepo.On("UpdateRole", ctx, id, domain.RoleOfficer).Return(nil).Once()

		err := svc.AssignRole(ctx, domain.AssignRoleInput{MemberID: id, Role: domain.RoleOfficer})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown role", func(t *testing.T) {
		mockRepo := new(mocks.MemberRepository)
		svc := member.NewService(mockRepo, nil)

		err := svc.AssignRole(ctx, domain.AssignRoleInput{MemberID: id, Role: "superuser"})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		mockRepo.AssertNotCalled(t, "UpdateRole")
	})
}

func TestService_Approve(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.MemberRepository)
		mockEmail := new(mocks.EmailService)
		svc := member.NewService(mockRepo, mockEmail)

		mockRepo.On("GetByID", ctx, id).Return(&domain.Member{ID: id, Email: "new@example.com", FirstName: "New"}, nil).Once()
		mockRepo.On("SetApproval", ctx, id, true).Return(nil).Once()
		mockEmail.On("SendApprovalEmail", mock.Anything, "new@example.com", "New").Return(nil).Maybe()

		assert.NoError(t, svc.Approve(ctx, id))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown member", func(t *testing.T) {
		mockRepo := new(mocks.MemberRepository)
		svc := member.NewService(mockRepo, nil)

		mockRepo.On("GetByID", ctx, id).Return(nil, domain.ErrMemberNotFound).Once()

		err := svc.Approve(ctx, id)

		assert.ErrorIs(t, err, domain.ErrMemberNotFound)
		mockRepo.AssertNotCalled(t, "SetApproval")
	})
}
