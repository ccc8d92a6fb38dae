package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/rsoares/friendsleague/internal/models"
)

// MockMatchRepository is a mock implementation of repository.MatchRepository
type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) InsertIfAbsent(ctx context.Context, match models.Match) (bool, error) {
	args := m.Called(ctx, match)
	return args.Bool(0), args.Error(1)
}

func (m *MockMatchRepository) ListInScope(ctx context.Context, since time.Time) ([]models.Match, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Match), args.Error(1)
}

func (m *MockMatchRepository) ListForPlayer(ctx context.Context, tag string, filter models.MatchFilter) ([]models.Match, error) {
	args := m.Called(ctx, tag, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Match), args.Error(1)
}

func (m *MockMatchRepository) ListRecent(ctx context.Context, limit int) ([]models.Match, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Match), args.Error(1)
}

func (m *MockMatchRepository) SetRatingDeltas(ctx context.Context, matchID string, winnerDelta, loserDelta float64) error {
	args := m.Called(ctx, matchID, winnerDelta, loserDelta)
	return args.Error(0)
}

func (m *MockMatchRepository) CountInScope(ctx context.Context, since time.Time) (int, error) {
	args := m.Called(ctx, since)
	return args.Int(0), args.Error(1)
}
