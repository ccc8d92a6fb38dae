package ranking

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"github.com/rsoares/friendsleague/internal/logger"
	"github.com/rsoares/friendsleague/internal/models"
	"github.com/rsoares/friendsleague/internal/repository"
)

const recentFormSize = 10

// Calculator recomputes player standings from the stored match history.
type Calculator struct {
	cfg     Config
	matches repository.MatchRepository
	players repository.PlayerRepository
}

func NewCalculator(cfg Config, matches repository.MatchRepository, players repository.PlayerRepository) *Calculator {
	return &Calculator{
		cfg:     cfg,
		matches: matches,
		players: players,
	}
}

// UpdateAll recomputes the stats of every roster member inside the season
// window, whether or not a players row exists yet for them. A failure for
// one player is logged and skipped so the rest of the batch still lands.
func (c *Calculator) UpdateAll(ctx context.Context, roster []string, window models.SeasonWindow) error {
	log := logger.FromContext(ctx).With().Str("component", "stats").Logger()

	names := map[string]string{}
	players, err := c.players.List(ctx)
	if err != nil {
		return err
	}
	for _, p := range players {
		names[p.Tag] = p.Name
	}

	for _, tag := range roster {
		stat, err := c.Recompute(ctx, tag, window)
		if err != nil {
			log.Error().Err(err).Str("tag", tag).Msg("failed to recompute stats, skipping player")
			continue
		}
		stat.Name = names[tag]

		if err := c.players.UpsertStat(ctx, *stat); err != nil {
			log.Error().Err(err).Str("tag", tag).Msg("failed to store stats, skipping player")
			continue
		}
		log.Debug().Str("tag", tag).Float64("rating", stat.Rating).Int("wins", stat.Wins).Msg("stats updated")
	}
	return nil
}

// Recompute derives a player's full standing from their in-scope matches.
// The walk also persists each match's rating deltas the first time they are
// seen unset; once written they are never recomputed, so historical
// exchanges stay stable across runs.
func (c *Calculator) Recompute(ctx context.Context, tag string, window models.SeasonWindow) (*models.PlayerStat, error) {
	since := window.EffectiveStart()
	desc, err := c.matches.ListForPlayer(ctx, tag, models.MatchFilter{Since: &since})
	if err != nil {
		return nil, err
	}

	// Two independently ordered copies: the replay and longest-streak walk
	// need ascending time, the streak/form walk needs descending.
	asc := make([]models.Match, len(desc))
	copy(asc, desc)
	sort.Slice(asc, func(i, j int) bool { return asc[i].Timestamp.Before(asc[j].Timestamp) })

	stat := models.PlayerStat{
		Tag:         tag,
		Rating:      c.cfg.InitialRating,
		RecentForm:  []string{},
		LastUpdated: time.Now().UTC(),
	}

	crownsScored, crownsConceded := 0, 0
	winRun := 0
	opponentRatings := map[string]float64{}

	for _, m := range asc {
		won := m.Winner == tag

		if won {
			stat.Wins++
			stat.TotalCrowns += m.Crowns
			crownsScored += m.Crowns
			if m.LoserCrowns != nil {
				crownsConceded += *m.LoserCrowns
			}
			winRun++
			if winRun > stat.LongestStreak {
				stat.LongestStreak = winRun
			}
		} else {
			stat.Losses++
			if m.LoserCrowns != nil {
				crownsScored += *m.LoserCrowns
				crownsConceded += m.Crowns
			} else {
				// Legacy rows never recorded the loser's crowns; assume a
				// full 3-crown match and charge the shortfall.
				crownsConceded += 3 - m.Crowns
			}
			winRun = 0
		}

		if err := c.replayMatch(ctx, &stat, m, won, opponentRatings); err != nil {
			return nil, err
		}
	}
	stat.CrownDifferential = crownsScored - crownsConceded

	for i, m := range desc {
		if i >= recentFormSize {
			break
		}
		if m.Winner == tag {
			stat.RecentForm = append(stat.RecentForm, "W")
		} else {
			stat.RecentForm = append(stat.RecentForm, "L")
		}
	}

	// Current streak: consecutive identical outcomes from the most recent
	// match backwards, positive for wins, negative for losses.
	for i, m := range desc {
		won := m.Winner == tag
		if i == 0 {
			if won {
				stat.CurrentStreak = 1
			} else {
				stat.CurrentStreak = -1
			}
			continue
		}
		if won && stat.CurrentStreak > 0 {
			stat.CurrentStreak++
		} else if !won && stat.CurrentStreak < 0 {
			stat.CurrentStreak--
		} else {
			break
		}
	}

	if total := stat.Wins + stat.Losses; total > 0 {
		stat.WinRate = float64(stat.Wins) / float64(total) * 100
	}
	return &stat, nil
}

// replayMatch moves the player's rating one match forward and persists the
// match's deltas when they are still unset. The opponent side uses their
// latest stored rating, not a historical snapshot.
func (c *Calculator) replayMatch(ctx context.Context, stat *models.PlayerStat, m models.Match, won bool, cache map[string]float64) error {
	opponent := m.PlayerA
	if opponent == stat.Tag {
		opponent = m.PlayerB
	}

	opponentRating, ok := cache[opponent]
	if !ok {
		var err error
		opponentRating, err = c.currentRating(ctx, opponent)
		if err != nil {
			return err
		}
		cache[opponent] = opponentRating
	}

	var winnerDelta, loserDelta float64
	if won {
		winnerDelta, loserDelta = c.cfg.Deltas(stat.Rating, opponentRating)
		stat.Rating += winnerDelta
	} else {
		winnerDelta, loserDelta = c.cfg.Deltas(opponentRating, stat.Rating)
		stat.Rating += loserDelta
	}

	if m.RatingDeltaWinner == nil {
		if err := c.matches.SetRatingDeltas(ctx, m.ID, winnerDelta, loserDelta); err != nil {
			return err
		}
	}
	return nil
}

func (c *Calculator) currentRating(ctx context.Context, tag string) (float64, error) {
	stat, err := c.players.GetStat(ctx, tag)
	if errors.Is(err, sql.ErrNoRows) {
		return c.cfg.InitialRating, nil
	}
	if err != nil {
		return 0, err
	}
	return stat.Rating, nil
}
