package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Publisher is a mock implementation of messaging.Publisher
type Publisher struct {
	mock.Mock
}

func (m *Publisher) Publish(ctx context.Context, topic string, payload any) error {
	args := m.Called(ctx, topic, payload)
	return args.Error(0)
}

func (m *Publisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
