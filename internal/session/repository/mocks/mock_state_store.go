package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockStateStore struct {
	mock.Mock
}

func (m *MockStateStore) Load(ctx context.Context, visitorID, key string) (string, error) {
	args := m.Called(ctx, visitorID, key)
	return args.String(0), args.Error(1)
}

func (m *MockStateStore) Save(ctx context.Context, visitorID, key, value string) error {
	args := m.Called(ctx, visitorID, key, value)
	return args.Error(0)
}

func (m *MockStateStore) Clear(ctx context.Context, visitorID, key string) error {
	args := m.Called(ctx, visitorID, key)
	return args.Error(0)
}

func (m *MockStateStore) PurgeIdle(ctx context.Context, idle time.Duration) (int64, error) {
	args := m.Called(ctx, idle)
	return args.Get(0).(int64), args.Error(1)
}
