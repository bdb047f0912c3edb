// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"lifeline/internal/domain/entity"
	"lifeline/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for volunteer persistence.
var (
	// ErrVolunteerNotFound is returned when a volunteer is not found.
	ErrVolunteerNotFound = errors.New("volunteer not found")
	// ErrDuplicateVolunteer is returned when the contact is already registered.
	ErrDuplicateVolunteer = errors.New("volunteer already exists")
)

// VolunteerRepository defines the interface for volunteer database operations.
type VolunteerRepository interface {
	// CreateVolunteer persists a newly registered volunteer.
	CreateVolunteer(ctx context.Context, volunteer *entity.Volunteer, passwordHash string) error

	// FindVolunteerByID retrieves a volunteer by its unique ID.
	FindVolunteerByID(ctx context.Context, id uuid.UUID) (*entity.Volunteer, error)

	// FindCredentialsByContact retrieves a volunteer and its stored password
	// hash by the registered contact. The hash never leaves the login path.
	FindCredentialsByContact(ctx context.Context, contact string) (*entity.Volunteer, string, error)

	// UpdateLocation stores the volunteer's latest shared position.
	UpdateLocation(ctx context.Context, id uuid.UUID, latitude, longitude float64) error

	// TouchLastLogin refreshes the volunteer's last-login timestamp and, when
	// fcmToken is non-empty, the registered push token.
	TouchLastLogin(ctx context.Context, id uuid.UUID, fcmToken string) error

	// FindWithinRadius performs a geographic query for all volunteers whose
	// last shared location lies within radiusMeters of the point, using an
	// Earth-curvature-aware distance. Volunteers without a location never match.
	FindWithinRadius(ctx context.Context, latitude, longitude, radiusMeters float64) ([]*entity.Volunteer, error)
}
