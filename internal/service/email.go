package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"depanku-backend/internal/config"
	"depanku-backend/internal/logger"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

// NewEmailService builds the SendGrid-backed notifier. With no API key every
// send becomes a logged no-op; notifications are best-effort by design.
func NewEmailService(cfg config.EmailConfig) EmailService {
	if cfg.SendGridAPIKey == "" {
		logger.Warn("SendGrid API key not configured, email notifications disabled")
	}
	return &emailService{
		apiKey:    cfg.SendGridAPIKey,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}
}

func (s *emailService) SendPublishedNotification(ctx context.Context, email, title string) error {
	subject := fmt.Sprintf("Your opportunity %q is now live", title)
	body := fmt.Sprintf("Hello,\n\nYour opportunity %q passed review and is now published and searchable.\n\nBest regards,\nThe Depanku Team", title)
	return s.send(ctx, email, subject, body)
}

func (s *emailService) SendRejectionNotification(ctx context.Context, email, title, summary string) error {
	subject := fmt.Sprintf("Your opportunity %q needs changes", title)
	body := fmt.Sprintf("Hello,\n\nYour opportunity %q did not pass content review.\n\n%s\n\nBest regards,\nThe Depanku Team", title, summary)
	return s.send(ctx, email, subject, body)
}

func (s *emailService) send(ctx context.Context, to, subject, body string) error {
	if s.apiKey == "" {
		logger.Debug("Email notification skipped, no API key", "to", to, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	logger.ExternalServiceCall("email", "send", "to", to)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		logger.ExternalServiceResult("email", "send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("email", "send", err)
		return err
	}
	logger.ExternalServiceResult("email", "send", nil)
	return nil
}
