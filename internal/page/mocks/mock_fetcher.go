package mocks

import (
	"context"

	"homepage/internal/backend"

	"github.com/stretchr/testify/mock"
)

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) GetRoot(ctx context.Context) (backend.Payload, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(backend.Payload), args.Error(1)
}
