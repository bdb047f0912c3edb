package mocks

import (
	"context"

	"lifeline/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// VolunteerRepository is a mock of repository.VolunteerRepository.
type VolunteerRepository struct {
	mock.Mock
}

func (m *VolunteerRepository) CreateVolunteer(ctx context.Context, volunteer *entity.Volunteer, passwordHash string) error {
	args := m.Called(ctx, volunteer, passwordHash)

	return args.Error(0)
}

func (m *VolunteerRepository) FindVolunteerByID(ctx context.Context, id uuid.UUID) (*entity.Volunteer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Volunteer), args.Error(1)
}

func (m *VolunteerRepository) UpdateLocation(ctx context.Context, id uuid.UUID, latitude, longitude float64) error {
	args := m.Called(ctx, id, latitude, longitude)

	return args.Error(0)
}

func (m *VolunteerRepository) FindCredentialsByContact(ctx context.Context, contact string) (*entity.Volunteer, string, error) {
	args := m.Called(ctx, contact)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}

	return args.Get(0).(*entity.Volunteer), args.String(1), args.Error(2)
}

func (m *VolunteerRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, fcmToken string) error {
	args := m.Called(ctx, id, fcmToken)

	return args.Error(0)
}

func (m *VolunteerRepository) FindWithinRadius(ctx context.Context, latitude, longitude, radiusMeters float64) ([]*entity.Volunteer, error) {
	args := m.Called(ctx, latitude, longitude, radiusMeters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Volunteer), args.Error(1)
}
