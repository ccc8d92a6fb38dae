package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockSettingsRepository is a mock implementation of repository.SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) SeasonStart(ctx context.Context) (*time.Time, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockSettingsRepository) SetSeasonStart(ctx context.Context, start time.Time) error {
	args := m.Called(ctx, start)
	return args.Error(0)
}
