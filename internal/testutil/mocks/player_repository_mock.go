package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rsoares/friendsleague/internal/models"
)

// MockPlayerRepository is a mock implementation of repository.PlayerRepository
type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) Upsert(ctx context.Context, player models.Player) error {
	args := m.Called(ctx, player)
	return args.Error(0)
}

func (m *MockPlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Player), args.Error(1)
}

func (m *MockPlayerRepository) GetStat(ctx context.Context, tag string) (*models.PlayerStat, error) {
	args := m.Called(ctx, tag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlayerStat), args.Error(1)
}

func (m *MockPlayerRepository) UpsertStat(ctx context.Context, stat models.PlayerStat) error {
	args := m.Called(ctx, stat)
	return args.Error(0)
}

func (m *MockPlayerRepository) Leaderboard(ctx context.Context, limit int) ([]models.PlayerStat, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PlayerStat), args.Error(1)
}
