// Package service defines interfaces for core, stateless domain logic and
// for external collaborators consumed by the use cases.
package service

import "context"

// Messenger is the notification-dispatch collaborator: an abstract capability
// to send email and SMS. Both channels are best-effort; callers log failures
// and never let them roll back a committed lifecycle transition.
type Messenger interface {
	// SendEmail sends a single email message.
	SendEmail(ctx context.Context, to, subject, body string) error

	// SendSMS sends a single text message. The destination must already be
	// normalized to international format.
	SendSMS(ctx context.Context, to, body string) error
}
