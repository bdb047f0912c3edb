// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"lifeline/internal/domain/entity"
	"lifeline/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for request persistence.
var (
	// ErrRequestNotFound is returned when no request row exists for the id.
	ErrRequestNotFound = errors.New("request not found")
	// ErrStatusConflict is returned when a conditional status update matched
	// zero rows: the request exists but its status or assignee no longer
	// satisfies the transition's predicate.
	ErrStatusConflict = errors.New("request status conflict")
	// ErrDuplicateLocation is returned when the unique index on the exact
	// (latitude, longitude) pair rejects a new request.
	ErrDuplicateLocation = errors.New("request location already taken")
)

// RequestRepository defines the interface for help-request database operations.
//
// The three transition methods are single atomic conditional updates: the
// WHERE predicate carries the expected prior state, and a zero affected-row
// count is reported as ErrStatusConflict (or ErrRequestNotFound when the row
// does not exist at all). They must never be implemented as a read followed
// by an unconditional write.
type RequestRepository interface {
	// CreateRequest persists a new pending request.
	CreateRequest(ctx context.Context, request *entity.Request) error

	// FindRequestByID retrieves a request by its unique ID.
	FindRequestByID(ctx context.Context, id uuid.UUID) (*entity.Request, error)

	// FindRequestsByStatus retrieves requests in a given lifecycle state,
	// newest first.
	FindRequestsByStatus(ctx context.Context, status entity.Status, limit, offset int) ([]*entity.Request, error)

	// ClaimRequest transitions pending -> accepted and records the assignee,
	// conditional on the row still being pending at write time.
	ClaimRequest(ctx context.Context, id, volunteerID uuid.UUID) error

	// CompleteRequest transitions accepted -> completed, conditional on the
	// row being accepted and assigned to volunteerID.
	CompleteRequest(ctx context.Context, id, volunteerID uuid.UUID) error

	// EscalateRequest transitions accepted -> emergency, conditional on the
	// row being accepted and assigned to volunteerID.
	EscalateRequest(ctx context.Context, id, volunteerID uuid.UUID) error
}
