package mailer

import (
	"context"
	"log/slog"
)

// LogMailer logs mail instead of sending it. Used in development when no
// RESEND_API_KEY is configured.
type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) Send(ctx context.Context, subject, body string, to []string) error {
	slog.Info("email sent (dev mode)", "subject", subject, "to", to, "body", body)
	return nil
}
