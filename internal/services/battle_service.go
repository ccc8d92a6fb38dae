package services

import (
	"context"
	"time"

	apperrors "github.com/rsoares/friendsleague/internal/errors"
	"github.com/rsoares/friendsleague/internal/models"
	"github.com/rsoares/friendsleague/internal/repository"
)

// BattleService handles match history and season window business logic
type BattleService interface {
	RecentBattles(ctx context.Context, limit int) ([]models.Match, error)
	SeasonStart(ctx context.Context) (*time.Time, error)
	StartSeason(ctx context.Context, start time.Time) error
}

type battleService struct {
	matches  repository.MatchRepository
	settings repository.SettingsRepository
}

// NewBattleService creates a new BattleService
func NewBattleService(matches repository.MatchRepository, settings repository.SettingsRepository) BattleService {
	return &battleService{
		matches:  matches,
		settings: settings,
	}
}

func (s *battleService) RecentBattles(ctx context.Context, limit int) ([]models.Match, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	matches, err := s.matches.ListRecent(ctx, limit)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return matches, nil
}

func (s *battleService) SeasonStart(ctx context.Context) (*time.Time, error) {
	start, err := s.settings.SeasonStart(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return start, nil
}

// StartSeason moves the season cutoff. Matches before it stop counting
// toward standings on the next recompute.
func (s *battleService) StartSeason(ctx context.Context, start time.Time) error {
	if start.After(time.Now().UTC()) {
		return apperrors.NewValidationError("start", "cannot be in the future")
	}
	if err := s.settings.SetSeasonStart(ctx, start); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}
