package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/avieira/cardbox/internal/models"
)

// MockNotifier is a mock implementation of notify.Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) ReviewCompleted(ctx context.Context, card models.Card, response models.Response) error {
	args := m.Called(ctx, card, response)
	return args.Error(0)
}
