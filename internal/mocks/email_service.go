package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, firstName string) error {
	args := m.Called(ctx, toEmail, firstName)
	return args.Error(0)
}

func (m *EmailService) SendApprovalEmail(ctx context.Context, toEmail, firstName string) error {
	args := m.Called(ctx, toEmail, firstName)
	return args.Error(0)
}

func (m *EmailService) SendEventRegistrationEmail(ctx context.Context, toEmail, firstName, eventTitle string) error {
	args := m.Called(ctx, toEmail, firstName, eventTitle)
	return args.Error(0)
}

func (m *EmailService) SendContactResponseEmail(ctx context.Context, toEmail, name, subject, response string) error {
	args := m.Called(ctx, toEmail, name, subject, response)
	return args.Error(0)
}
