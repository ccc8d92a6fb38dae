package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/rsoares/friendsleague/internal/logger"
	"github.com/rsoares/friendsleague/internal/models"
	"github.com/rsoares/friendsleague/internal/repository"
)

type matchRepository struct {
	db *sql.DB
}

// NewMatchRepository creates a new MatchRepository implementation
func NewMatchRepository(db *sql.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

const matchColumns = `match_id, timestamp, player_a, player_b, winner, loser, crowns, loser_crowns,
       battle_type, deck_a, deck_b, rating_delta_winner, rating_delta_loser, created_at`

func (r *matchRepository) InsertIfAbsent(ctx context.Context, m models.Match) (bool, error) {
	log := logger.FromContext(ctx).With().Str("component", "match_repo").Logger()

	deckA, err := marshalDeck(m.DeckA)
	if err != nil {
		return false, err
	}
	deckB, err := marshalDeck(m.DeckB)
	if err != nil {
		return false, err
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO battles (match_id, timestamp, player_a, player_b, winner, loser, crowns, loser_crowns, battle_type, deck_a, deck_b)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(match_id) DO NOTHING
`, m.ID, m.Timestamp.UTC(), m.PlayerA, m.PlayerB, m.Winner, m.Loser, m.Crowns, nullInt(m.LoserCrowns), m.BattleType, deckA, deckB)
	if err != nil {
		log.Error().Err(err).Str("match_id", m.ID).Msg("failed to insert match")
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		log.Debug().Str("match_id", m.ID).Msg("match already stored, skipping")
		return false, nil
	}
	log.Debug().Str("match_id", m.ID).Str("winner", m.Winner).Msg("match stored")
	return true, nil
}

func (r *matchRepository) ListInScope(ctx context.Context, since time.Time) ([]models.Match, error) {
	query := sqlBuilder.Select(matchColumns).
		From("battles").
		Where(squirrel.GtOrEq{"timestamp": since.UTC()}).
		OrderBy("timestamp ASC")

	return r.queryMatches(ctx, query)
}

func (r *matchRepository) ListForPlayer(ctx context.Context, tag string, filter models.MatchFilter) ([]models.Match, error) {
	query := sqlBuilder.Select(matchColumns).
		From("battles").
		Where(squirrel.Or{squirrel.Eq{"player_a": tag}, squirrel.Eq{"player_b": tag}}).
		OrderBy("timestamp DESC")

	if filter.Since != nil {
		query = query.Where(squirrel.GtOrEq{"timestamp": filter.Since.UTC()})
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	return r.queryMatches(ctx, query)
}

func (r *matchRepository) ListRecent(ctx context.Context, limit int) ([]models.Match, error) {
	if limit <= 0 {
		limit = 20
	}
	query := sqlBuilder.Select(matchColumns).
		From("battles").
		OrderBy("timestamp DESC").
		Limit(uint64(limit))

	return r.queryMatches(ctx, query)
}

func (r *matchRepository) SetRatingDeltas(ctx context.Context, matchID string, winnerDelta, loserDelta float64) error {
	log := logger.FromContext(ctx).With().Str("component", "match_repo").Logger()

	// Deltas are written once per match so historical exchanges stay fixed
	// even as ratings drift on later runs.
	res, err := r.db.ExecContext(ctx, `
UPDATE battles
SET rating_delta_winner = ?, rating_delta_loser = ?
WHERE match_id = ? AND rating_delta_winner IS NULL
`, winnerDelta, loserDelta, matchID)
	if err != nil {
		log.Error().Err(err).Str("match_id", matchID).Msg("failed to set rating deltas")
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		log.Debug().Str("match_id", matchID).Msg("rating deltas already set")
	}
	return nil
}

func (r *matchRepository) CountInScope(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM battles WHERE timestamp >= ?`, since.UTC()).Scan(&count)
	return count, err
}

func (r *matchRepository) queryMatches(ctx context.Context, query squirrel.SelectBuilder) ([]models.Match, error) {
	log := logger.FromContext(ctx).With().Str("component", "match_repo").Logger()

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error().Err(err).Msg("failed to build query")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error().Err(err).Msg("failed to list matches")
		return nil, err
	}
	defer rows.Close()

	var matches []models.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			log.Error().Err(err).Msg("failed to scan match")
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func scanMatch(rows *sql.Rows) (models.Match, error) {
	var (
		m            models.Match
		loserCrowns  sql.NullInt64
		deckA, deckB sql.NullString
		dw, dl       sql.NullFloat64
	)
	if err := rows.Scan(&m.ID, &m.Timestamp, &m.PlayerA, &m.PlayerB, &m.Winner, &m.Loser, &m.Crowns,
		&loserCrowns, &m.BattleType, &deckA, &deckB, &dw, &dl, &m.CreatedAt); err != nil {
		return models.Match{}, err
	}

	m.LoserCrowns = intPtr(loserCrowns)
	m.RatingDeltaWinner = floatPtr(dw)
	m.RatingDeltaLoser = floatPtr(dl)

	var err error
	if m.DeckA, err = unmarshalDeck(deckA); err != nil {
		return models.Match{}, err
	}
	if m.DeckB, err = unmarshalDeck(deckB); err != nil {
		return models.Match{}, err
	}
	return m, nil
}
