package mocks

import (
	"context"

	"lifeline/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// EventPublisher is a mock of service.EventPublisher.
type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) PublishEscalationEvent(ctx context.Context, event *service.EscalationEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *EventPublisher) Close() error {
	args := m.Called()

	return args.Error(0)
}
