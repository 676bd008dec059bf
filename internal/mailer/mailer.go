package mailer

import "context"

// Mailer delivers plain-text mail. Callers treat delivery as best-effort:
// a failed Send is logged and never propagated to the user-facing operation.
type Mailer interface {
	Send(ctx context.Context, subject, body string, to []string) error
}
