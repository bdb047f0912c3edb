// Package mocks contains hand-maintained testify mocks for the domain's
// repository and service interfaces.
package mocks

import (
	"context"

	"lifeline/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// RequestRepository is a mock of repository.RequestRepository.
type RequestRepository struct {
	mock.Mock
}

func (m *RequestRepository) CreateRequest(ctx context.Context, request *entity.Request) error {
	args := m.Called(ctx, request)

	return args.Error(0)
}

func (m *RequestRepository) FindRequestByID(ctx context.Context, id uuid.UUID) (*entity.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Request), args.Error(1)
}

func (m *RequestRepository) FindRequestsByStatus(ctx context.Context, status entity.Status, limit, offset int) ([]*entity.Request, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Request), args.Error(1)
}

func (m *RequestRepository) ClaimRequest(ctx context.Context, id, volunteerID uuid.UUID) error {
	args := m.Called(ctx, id, volunteerID)

	return args.Error(0)
}

func (m *RequestRepository) CompleteRequest(ctx context.Context, id, volunteerID uuid.UUID) error {
	args := m.Called(ctx, id, volunteerID)

	return args.Error(0)
}

func (m *RequestRepository) EscalateRequest(ctx context.Context, id, volunteerID uuid.UUID) error {
	args := m.Called(ctx, id, volunteerID)

	return args.Error(0)
}
