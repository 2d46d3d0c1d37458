// Package email sends transactional mail over SMTP.
package email

import (
	"context"
	"time"

	"designhub_backend/platform/logger"
)

// Sender delivers the transactional emails the application produces.
type Sender interface {
	// SendOTPEmail delivers a one-time password for the password-change flow.
	SendOTPEmail(ctx context.Context, toEmail, code string, validFor time.Duration) error
	// SendWelcomeEmail greets a newly registered user.
	SendWelcomeEmail(ctx context.Context, toEmail, fullName string) error
}

// NoopSender logs instead of sending. Used when email is disabled,
// which keeps development environments working without an SMTP server.
type NoopSender struct {
	log *logger.Logger
}

// NewNoopSender creates a sender that only logs.
func NewNoopSender(log *logger.Logger) *NoopSender {
	return &NoopSender{log: log}
}

func (s *NoopSender) SendOTPEmail(_ context.Context, toEmail, code string, validFor time.Duration) error {
	s.log.Info("email disabled, otp not sent", "to", toEmail, "code", code, "validFor", validFor.String())
	return nil
}

func (s *NoopSender) SendWelcomeEmail(_ context.Context, toEmail, fullName string) error {
	s.log.Info("email disabled, welcome not sent", "to", toEmail, "name", fullName)
	return nil
}
