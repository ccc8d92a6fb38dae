package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/rsoares/friendsleague/internal/logger"
	"github.com/rsoares/friendsleague/internal/models"
	"github.com/rsoares/friendsleague/internal/repository"
)

type playerRepository struct {
	db *sql.DB
}

// NewPlayerRepository creates a new PlayerRepository implementation
func NewPlayerRepository(db *sql.DB) repository.PlayerRepository {
	return &playerRepository{db: db}
}

func (r *playerRepository) Upsert(ctx context.Context, p models.Player) error {
	log := logger.FromContext(ctx).With().Str("component", "player_repo").Logger()

	_, err := r.db.ExecContext(ctx, `
INSERT INTO players (tag, name, trophies, last_updated)
VALUES (?, ?, ?, ?)
ON CONFLICT(tag) DO UPDATE SET name = excluded.name, trophies = excluded.trophies, last_updated = excluded.last_updated
`, p.Tag, p.Name, p.Trophies, time.Now().UTC())
	if err != nil {
		log.Error().Err(err).Str("tag", p.Tag).Msg("failed to upsert player")
	}
	return err
}

func (r *playerRepository) List(ctx context.Context) ([]models.Player, error) {
	log := logger.FromContext(ctx).With().Str("component", "player_repo").Logger()

	rows, err := r.db.QueryContext(ctx, `SELECT tag, name, trophies, last_updated FROM players ORDER BY tag`)
	if err != nil {
		log.Error().Err(err).Msg("failed to list players")
		return nil, err
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.Tag, &p.Name, &p.Trophies, &p.LastUpdated); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *playerRepository) GetStat(ctx context.Context, tag string) (*models.PlayerStat, error) {
	log := logger.FromContext(ctx).With().Str("component", "player_repo").Logger()

	var (
		s    models.PlayerStat
		form string
	)
	err := r.db.QueryRowContext(ctx, `
SELECT player_tag, name, wins, losses, total_crowns, rating, current_streak, longest_streak, crown_differential, recent_form, last_updated
FROM player_stats
WHERE player_tag = ?
`, tag).Scan(&s.Tag, &s.Name, &s.Wins, &s.Losses, &s.TotalCrowns, &s.Rating,
		&s.CurrentStreak, &s.LongestStreak, &s.CrownDifferential, &form, &s.LastUpdated)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error().Err(err).Str("tag", tag).Msg("failed to get player stat")
		}
		return nil, err
	}

	if err := json.Unmarshal([]byte(form), &s.RecentForm); err != nil {
		return nil, err
	}
	fillWinRate(&s)
	return &s, nil
}

func (r *playerRepository) UpsertStat(ctx context.Context, s models.PlayerStat) error {
	log := logger.FromContext(ctx).With().Str("component", "player_repo").Logger()

	form, err := json.Marshal(s.RecentForm)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO player_stats (player_tag, name, wins, losses, total_crowns, rating, current_streak, longest_streak, crown_differential, recent_form, last_updated)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(player_tag) DO UPDATE SET
    name = excluded.name,
    wins = excluded.wins,
    losses = excluded.losses,
    total_crowns = excluded.total_crowns,
    rating = excluded.rating,
    current_streak = excluded.current_streak,
    longest_streak = excluded.longest_streak,
    crown_differential = excluded.crown_differential,
    recent_form = excluded.recent_form,
    last_updated = excluded.last_updated
`, s.Tag, s.Name, s.Wins, s.Losses, s.TotalCrowns, s.Rating, s.CurrentStreak, s.LongestStreak, s.CrownDifferential, string(form), time.Now().UTC())
	if err != nil {
		log.Error().Err(err).Str("tag", s.Tag).Msg("failed to upsert player stat")
	}
	return err
}

func (r *playerRepository) Leaderboard(ctx context.Context, limit int) ([]models.PlayerStat, error) {
	log := logger.FromContext(ctx).With().Str("component", "player_repo").Logger()

	query := `
SELECT player_tag, name, wins, losses, total_crowns, rating, current_streak, longest_streak, crown_differential, recent_form, last_updated
FROM player_stats
ORDER BY rating DESC, wins DESC
`
	args := []any{}
	if limit > 0 {
		query += "LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error().Err(err).Msg("failed to query leaderboard")
		return nil, err
	}
	defer rows.Close()

	var stats []models.PlayerStat
	for rows.Next() {
		var (
			s    models.PlayerStat
			form string
		)
		if err := rows.Scan(&s.Tag, &s.Name, &s.Wins, &s.Losses, &s.TotalCrowns, &s.Rating,
			&s.CurrentStreak, &s.LongestStreak, &s.CrownDifferential, &form, &s.LastUpdated); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(form), &s.RecentForm); err != nil {
			return nil, err
		}
		fillWinRate(&s)
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// fillWinRate derives the win percentage (0-100) from the stored counters.
func fillWinRate(s *models.PlayerStat) {
	if total := s.Wins + s.Losses; total > 0 {
		s.WinRate = float64(s.Wins) / float64(total) * 100
	}
}
