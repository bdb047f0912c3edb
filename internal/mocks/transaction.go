package mocks

import (
	"context"

	"lifeline/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// TransactionManager is a mock of repository.TransactionManager. When a
// Factory is set, Execute runs the callback against it so tests exercise the
// real transactional flow; otherwise only the stubbed return value applies.
type TransactionManager struct {
	mock.Mock

	Factory repository.RepositoryFactory
}

func (m *TransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	args := m.Called(ctx, fn)

	if m.Factory != nil {
		if err := fn(m.Factory); err != nil {
			return err
		}
	}

	return args.Error(0)
}

// RepositoryFactory is a mock of repository.RepositoryFactory.
type RepositoryFactory struct {
	mock.Mock
}

func (m *RepositoryFactory) NewAlertRepository() repository.AlertRepository {
	args := m.Called()

	return args.Get(0).(repository.AlertRepository)
}

func (m *RepositoryFactory) NewRequestRepository() repository.RequestRepository {
	args := m.Called()

	return args.Get(0).(repository.RequestRepository)
}
