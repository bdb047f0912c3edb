// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"lifeline/internal/domain/entity"
	"lifeline/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for alert persistence.
var (
	// ErrAlertNotFound is returned when an alert is not found.
	ErrAlertNotFound = errors.New("alert not found")
	// ErrNoRecipients is returned when an alert would be persisted with an
	// empty recipient set, which the data model forbids.
	ErrNoRecipients = errors.New("alert must have at least one recipient")
)

// AlertRepository defines the interface for alert database operations.
// CreateAlert and BatchCreateRecipients are only ever called together inside
// one transaction obtained from the TransactionManager; a partial recipient
// set must never become observable.
type AlertRepository interface {
	// CreateAlert persists the alert row.
	CreateAlert(ctx context.Context, alert *entity.Alert) error

	// BatchCreateRecipients persists all recipient rows for an alert.
	BatchCreateRecipients(ctx context.Context, recipients []*entity.AlertRecipient) error

	// FindAlertByID retrieves an alert with its recipients.
	FindAlertByID(ctx context.Context, id uuid.UUID) (*entity.Alert, error)
}
