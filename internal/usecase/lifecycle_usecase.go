// Package usecase defines the application's use case interfaces and their
// input/output types.
package usecase

import (
	"context"

	"lifeline/internal/domain/entity"

	"github.com/google/uuid"
)

// CompletionResult reports the two independently-committed outcomes of a
// Complete call: the authoritative lifecycle transition (Request) and the
// best-effort requester notification. Notification is nil when the SMS was
// handed to the dispatcher; otherwise it carries an AppError
// (INVALID_CONTACT or NOTIFICATION_FAILED) that annotates, but never undoes,
// the committed completion.
type CompletionResult struct {
	Request      *entity.Request
	Notification error
}

// EscalationResult reports the outcome of an Escalate call. The Request is
// always the post-transition (emergency) record. Alert is nil when no
// volunteers were inside the radius; in that case Warning carries
// NO_RECIPIENTS_FOUND. When the alert persisted but some recipient sends
// failed, Warning carries PARTIAL_DELIVERY_FAILURE and FailedCount says how
// many.
type EscalationResult struct {
	Request       *entity.Request
	Alert         *entity.Alert
	NotifiedCount int
	FailedCount   int
	Warning       error
}

// LifecycleUsecase drives a help request through its state machine. Each
// operation is invoked by independent concurrent handlers; correctness is
// delegated to the repository's conditional updates, never to in-process
// locks.
type LifecycleUsecase interface {
	// Claim assigns a pending request to the calling volunteer. Exactly one
	// of two concurrent claims on the same request succeeds.
	Claim(ctx context.Context, requestID, volunteerID uuid.UUID) (*entity.Request, error)

	// Complete closes an accepted request owned by the caller and sends the
	// requester a completion SMS.
	Complete(ctx context.Context, requestID, volunteerID uuid.UUID) (*CompletionResult, error)

	// Escalate promotes an accepted request owned by the caller to emergency,
	// notifies the oversight authority, and fans an alert out to volunteers
	// within the configured radius.
	Escalate(ctx context.Context, requestID, volunteerID uuid.UUID) (*EscalationResult, error)
}
