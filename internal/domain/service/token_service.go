package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by a volunteer bearer token.
type Claims struct {
	VolunteerID uuid.UUID
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating volunteer
// bearer tokens.
type TokenService interface {
	// ValidateToken checks the validity of a token string and extracts the
	// authenticated volunteer identity.
	ValidateToken(tokenString string) (*Claims, error)

	// GenerateAccessToken mints a short-lived token for a volunteer.
	GenerateAccessToken(volunteerID uuid.UUID) (string, error)
}
