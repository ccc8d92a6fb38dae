package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rsoares/friendsleague/internal/clashroyale"
)

// MockBattleLogClient is a mock implementation of clashroyale.ClientInterface
type MockBattleLogClient struct {
	mock.Mock
}

func (m *MockBattleLogClient) FetchBattleLog(ctx context.Context, tag string) ([]clashroyale.BattleLogEntry, error) {
	args := m.Called(ctx, tag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]clashroyale.BattleLogEntry), args.Error(1)
}

func (m *MockBattleLogClient) FetchPlayer(ctx context.Context, tag string) (*clashroyale.PlayerProfile, error) {
	args := m.Called(ctx, tag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clashroyale.PlayerProfile), args.Error(1)
}
