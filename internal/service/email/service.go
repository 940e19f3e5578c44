package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"

	"clubhub/internal/config"
)

type Service interface {
	SendWelcomeEmail(ctx context.Context, toEmail, firstName string) error
	SendApprovalEmail(ctx context.Context, toEmail, firstName string) error
	SendEventRegistrationEmail(ctx context.Context, toEmail, firstName, eventTitle string) error
	SendContactResponseEmail(ctx context.Context, toEmail, name, subject, response string) error
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &service{
		client: client,
		config: cfg,
	}
}

func (s *service) sendEmail(toEmail, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.config.ClubName, s.config.FromEmail),
		To:      []string{toEmail},
		Html:    html,
		Subject: subject,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

func (s *service) SendWelcomeEmail(ctx context.Context, toEmail, firstName string) error {
	html := fmt.Sprintf(`
		<h2>Welcome to %s!</h2>
		<p>Hi %s,</p>
		<p>Your registration has been received. An officer will review and approve your membership shortly.</p>
		<p>You can sign in at <a href="https://%s/login">https://%s/login</a>.</p>`,
		s.config.ClubName, firstName, s.config.Domain, s.config.Domain)

	return s.sendEmail(toEmail, fmt.Sprintf("Welcome to %s", s.config.ClubName), html)
}

func (s *service) SendApprovalEmail(ctx context.Context, toEmail, firstName string) error {
	html := fmt.Sprintf(`
		<h2>Membership Approved</h2>
		<p>Hi %s,</p>
		<p>Your membership has been approved. You now have full access to member content and events.</p>`,
		firstName)

	return s.sendEmail(toEmail, fmt.Sprintf("%s - Membership Approved", s.config.ClubName), html)
}

func (s *service) SendEventRegistrationEmail(ctx context.Context, toEmail, firstName, eventTitle string) error {
	html := fmt.Sprintf(`
		<h2>Registration Confirmed</h2>
		<p>Hi %s,</p>
		<p>You are registered for <strong>%s</strong>. We look forward to seeing you there.</p>`,
		firstName, eventTitle)

	return s.sendEmail(toEmail, fmt.Sprintf("Registration Confirmed - %s", eventTitle), html)
}

func (s *service) SendContactResponseEmail(ctx context.Context, toEmail, name, subject, response string) error {
	html := fmt.Sprintf(`
		<h2>Re: %s</h2>
		<p>Hi %s,</p>
		<p>%s</p>
		<p>- %s</p>`,
		subject, name, response, s.config.ClubName)

	return s.sendEmail(toEmail, fmt.Sprintf("Re: %s", subject), html)
}
