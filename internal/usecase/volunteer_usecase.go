package usecase

import (
	"context"

	"lifeline/internal/domain/entity"

	"github.com/google/uuid"
)

// RegisterVolunteerInput carries a validated volunteer registration.
type RegisterVolunteerInput struct {
	Name           string
	Contact        string
	Password       string
	Skills         string
	Certifications []string
}

// LoginInput carries a volunteer login attempt. FCMToken is optional; mobile
// clients re-register their push token at every login.
type LoginInput struct {
	Contact  string
	Password string
	FCMToken string
}

// LoginResult pairs the authenticated volunteer with a fresh bearer token.
type LoginResult struct {
	Volunteer   *entity.Volunteer
	AccessToken string
}

// VolunteerUsecase covers volunteer registration, login, and location upkeep.
type VolunteerUsecase interface {
	// Register creates a new volunteer account with a hashed password.
	Register(ctx context.Context, input *RegisterVolunteerInput) (*entity.Volunteer, error)

	// Login verifies the contact/password pair, stamps last_login_at (the
	// availability signal for alert fan-out), and issues an access token.
	Login(ctx context.Context, input *LoginInput) (*LoginResult, error)

	// UpdateLocation refreshes the volunteer's last shared position, the only
	// write the proximity index depends on.
	UpdateLocation(ctx context.Context, volunteerID uuid.UUID, latitude, longitude float64) (*entity.Volunteer, error)

	// GetVolunteer retrieves a volunteer's profile.
	GetVolunteer(ctx context.Context, id uuid.UUID) (*entity.Volunteer, error)
}
