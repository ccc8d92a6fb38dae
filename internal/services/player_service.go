package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rsoares/friendsleague/internal/clashroyale"
	apperrors "github.com/rsoares/friendsleague/internal/errors"
	"github.com/rsoares/friendsleague/internal/logger"
	"github.com/rsoares/friendsleague/internal/models"
	"github.com/rsoares/friendsleague/internal/repository"
)

// PlayerService handles player and standings business logic
type PlayerService interface {
	Leaderboard(ctx context.Context, limit int) (*LeaderboardResponse, error)
	GetPlayer(ctx context.Context, tag string) (*PlayerDetail, error)
	AddPlayer(ctx context.Context, tag string) (*models.Player, error)
	ListPlayers(ctx context.Context) ([]models.Player, error)
}

// LeaderboardResponse is the full standings payload: ranked players, the
// number of matches inside the season window and the freshest stat
// timestamp.
type LeaderboardResponse struct {
	Players      []models.PlayerStat `json:"players"`
	TotalMatches int                 `json:"total_matches"`
	LastUpdated  *time.Time          `json:"last_updated"`
}

// PlayerDetail combines a player's standing with their recent matches.
type PlayerDetail struct {
	Stat    models.PlayerStat `json:"stat"`
	Matches []models.Match    `json:"matches"`
}

type playerService struct {
	players  repository.PlayerRepository
	matches  repository.MatchRepository
	settings repository.SettingsRepository
	client   clashroyale.ClientInterface
}

// NewPlayerService creates a new PlayerService
func NewPlayerService(players repository.PlayerRepository, matches repository.MatchRepository, settings repository.SettingsRepository, client clashroyale.ClientInterface) PlayerService {
	return &playerService{
		players:  players,
		matches:  matches,
		settings: settings,
		client:   client,
	}
}

func (s *playerService) Leaderboard(ctx context.Context, limit int) (*LeaderboardResponse, error) {
	stats, err := s.players.Leaderboard(ctx, limit)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	start, err := s.settings.SeasonStart(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	window := models.SeasonWindow{Start: start}
	total, err := s.matches.CountInScope(ctx, window.EffectiveStart())
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	resp := &LeaderboardResponse{Players: stats, TotalMatches: total}
	for i := range stats {
		if resp.LastUpdated == nil || stats[i].LastUpdated.After(*resp.LastUpdated) {
			t := stats[i].LastUpdated
			resp.LastUpdated = &t
		}
	}
	return resp, nil
}

func (s *playerService) GetPlayer(ctx context.Context, tag string) (*PlayerDetail, error) {
	log := logger.FromContext(ctx)
	tag = clashroyale.NormalizeTag(tag)
	if tag == "" {
		return nil, apperrors.NewValidationError("tag", "cannot be empty")
	}

	stat, err := s.players.GetStat(ctx, tag)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("player", tag)
		}
		log.Error().Err(err).Str("tag", tag).Msg("failed to load player stat")
		return nil, apperrors.NewInternalError(err)
	}

	matches, err := s.matches.ListForPlayer(ctx, tag, models.MatchFilter{Limit: 25})
	if err != nil {
		log.Error().Err(err).Str("tag", tag).Msg("failed to load player matches")
		return nil, apperrors.NewInternalError(err)
	}

	return &PlayerDetail{Stat: *stat, Matches: matches}, nil
}

// AddPlayer verifies the tag against the API and stores the player. New
// members start contributing matches on the next collection run.
func (s *playerService) AddPlayer(ctx context.Context, tag string) (*models.Player, error) {
	log := logger.FromContext(ctx)
	tag = clashroyale.NormalizeTag(tag)
	if tag == "" {
		return nil, apperrors.NewValidationError("tag", "cannot be empty")
	}

	profile, err := s.client.FetchPlayer(ctx, tag)
	if err != nil {
		log.Error().Err(err).Str("tag", tag).Msg("failed to verify player tag")
		return nil, apperrors.NewUpstreamError(err)
	}

	player := models.Player{
		Tag:         tag,
		Name:        profile.Name,
		Trophies:    profile.Trophies,
		LastUpdated: time.Now().UTC(),
	}
	if err := s.players.Upsert(ctx, player); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	log.Info().Str("tag", tag).Str("name", player.Name).Msg("player added to roster")
	return &player, nil
}

func (s *playerService) ListPlayers(ctx context.Context) ([]models.Player, error) {
	players, err := s.players.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return players, nil
}
