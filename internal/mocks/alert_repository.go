package mocks

import (
	"context"

	"lifeline/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// AlertRepository is a mock of repository.AlertRepository.
type AlertRepository struct {
	mock.Mock
}

func (m *AlertRepository) CreateAlert(ctx context.Context, alert *entity.Alert) error {
	args := m.Called(ctx, alert)

	return args.Error(0)
}

func (m *AlertRepository) BatchCreateRecipients(ctx context.Context, recipients []*entity.AlertRecipient) error {
	args := m.Called(ctx, recipients)

	return args.Error(0)
}

func (m *AlertRepository) FindAlertByID(ctx context.Context, id uuid.UUID) (*entity.Alert, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Alert), args.Error(1)
}
