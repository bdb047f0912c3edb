package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Messenger is a mock of service.Messenger.
type Messenger struct {
	mock.Mock
}

func (m *Messenger) SendEmail(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)

	return args.Error(0)
}

func (m *Messenger) SendSMS(ctx context.Context, to, body string) error {
	args := m.Called(ctx, to, body)

	return args.Error(0)
}
