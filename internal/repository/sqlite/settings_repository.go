package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rsoares/friendsleague/internal/logger"
	"github.com/rsoares/friendsleague/internal/repository"
)

const seasonStartKey = "season_start"

type settingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SettingsRepository implementation
func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

// SeasonStart returns the configured season cutoff, or nil when none is set
// and the rolling lookback applies.
func (r *settingsRepository) SeasonStart(ctx context.Context) (*time.Time, error) {
	log := logger.FromContext(ctx).With().Str("component", "settings_repo").Logger()

	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, seasonStartKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to read season start")
		return nil, err
	}

	start, err := time.Parse(time.RFC3339, value)
	if err != nil {
		log.Error().Err(err).Str("value", value).Msg("stored season start is malformed")
		return nil, err
	}
	return &start, nil
}

func (r *settingsRepository) SetSeasonStart(ctx context.Context, start time.Time) error {
	log := logger.FromContext(ctx).With().Str("component", "settings_repo").Logger()

	_, err := r.db.ExecContext(ctx, `
INSERT INTO settings (key, value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
`, seasonStartKey, start.UTC().Format(time.RFC3339), time.Now().UTC())
	if err != nil {
		log.Error().Err(err).Msg("failed to set season start")
	}
	return err
}
