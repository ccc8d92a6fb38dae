package repository

import (
	"context"
	"time"

	"github.com/rsoares/friendsleague/internal/models"
)

// MatchRepository handles match data access
type MatchRepository interface {
	// InsertIfAbsent stores a match unless one with the same ID already
	// exists. Returns true when the match was new.
	InsertIfAbsent(ctx context.Context, match models.Match) (bool, error)
	ListInScope(ctx context.Context, since time.Time) ([]models.Match, error)
	ListForPlayer(ctx context.Context, tag string, filter models.MatchFilter) ([]models.Match, error)
	ListRecent(ctx context.Context, limit int) ([]models.Match, error)
	// SetRatingDeltas records the per-match rating exchange once; later
	// calls for the same match are no-ops.
	SetRatingDeltas(ctx context.Context, matchID string, winnerDelta, loserDelta float64) error
	CountInScope(ctx context.Context, since time.Time) (int, error)
}

// PlayerRepository handles player and standings data access
type PlayerRepository interface {
	Upsert(ctx context.Context, player models.Player) error
	List(ctx context.Context) ([]models.Player, error)
	GetStat(ctx context.Context, tag string) (*models.PlayerStat, error)
	UpsertStat(ctx context.Context, stat models.PlayerStat) error
	Leaderboard(ctx context.Context, limit int) ([]models.PlayerStat, error)
}

// SettingsRepository handles league-wide settings such as the season cutoff
type SettingsRepository interface {
	SeasonStart(ctx context.Context) (*time.Time, error)
	SetSeasonStart(ctx context.Context, start time.Time) error
}
