package mocks

import (
	"lifeline/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// TokenService is a mock of service.TokenService.
type TokenService struct {
	mock.Mock
}

func (m *TokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *TokenService) GenerateAccessToken(volunteerID uuid.UUID) (string, error) {
	args := m.Called(volunteerID)

	return args.String(0), args.Error(1)
}
