package ingest

import (
	"context"
	"sort"
	"strings"

	"github.com/rsoares/friendsleague/internal/clashroyale"
	"github.com/rsoares/friendsleague/internal/logger"
	"github.com/rsoares/friendsleague/internal/models"
)

// Extractor turns one player's raw battle log into league matches. Only
// decided 1v1 battles where both participants are on the roster survive;
// draws, outsiders and malformed entries are skipped.
type Extractor struct {
	roster map[string]struct{}
}

func NewExtractor(roster []string) *Extractor {
	set := make(map[string]struct{}, len(roster))
	for _, tag := range roster {
		set[clashroyale.NormalizeTag(tag)] = struct{}{}
	}
	return &Extractor{roster: set}
}

// Extract maps raw battle log entries to matches inside the season window.
// The same battle seen from either participant's log yields an identical
// match ID, so downstream dedup is purely mechanical.
func (e *Extractor) Extract(ctx context.Context, entries []clashroyale.BattleLogEntry, window models.SeasonWindow) []models.Match {
	log := logger.FromContext(ctx).With().Str("component", "extractor").Logger()

	var matches []models.Match
	for _, entry := range entries {
		if len(entry.Team) != 1 || len(entry.Opponent) != 1 {
			log.Debug().Str("type", entry.Type).Msg("skipping non-1v1 battle")
			continue
		}

		team, rival := entry.Team[0], entry.Opponent[0]
		teamTag := clashroyale.NormalizeTag(team.Tag)
		rivalTag := clashroyale.NormalizeTag(rival.Tag)
		if teamTag == "" || rivalTag == "" {
			log.Warn().Str("battle_time", entry.BattleTime).Msg("skipping entry with missing player tag")
			continue
		}
		if !e.tracked(teamTag) || !e.tracked(rivalTag) {
			continue
		}

		ts, err := clashroyale.ParseBattleTime(entry.BattleTime)
		if err != nil {
			log.Warn().Err(err).Str("battle_time", entry.BattleTime).Msg("skipping entry with malformed battle time")
			continue
		}
		if !window.Contains(ts) {
			continue
		}

		if team.Crowns == rival.Crowns {
			// Draws carry no rating signal and are not tracked.
			continue
		}

		winner, loser := team, rival
		winnerTag, loserTag := teamTag, rivalTag
		if rival.Crowns > team.Crowns {
			winner, loser = rival, team
			winnerTag, loserTag = rivalTag, teamTag
		}

		// Sides keep the log's report order: the queried player first,
		// the rival second. Only the match ID sorts the tags.
		loserCrowns := loser.Crowns
		matches = append(matches, models.Match{
			ID:          MatchID(entry.BattleTime, teamTag, rivalTag),
			Timestamp:   ts,
			PlayerA:     teamTag,
			PlayerB:     rivalTag,
			Winner:      winnerTag,
			Loser:       loserTag,
			Crowns:      winner.Crowns,
			LoserCrowns: &loserCrowns,
			BattleType:  entry.Type,
			DeckA:       buildDeck(team.Cards),
			DeckB:       buildDeck(rival.Cards),
		})
	}
	return matches
}

func (e *Extractor) tracked(tag string) bool {
	_, ok := e.roster[tag]
	return ok
}

// MatchID derives the deterministic match identifier: the raw battle time
// joined with both tags in lexicographic order. Either participant's log
// produces the same ID for the same battle.
func MatchID(battleTime string, tagA, tagB string) string {
	tags := []string{clashroyale.NormalizeTag(tagA), clashroyale.NormalizeTag(tagB)}
	sort.Strings(tags)
	return battleTime + "_" + strings.Join(tags, "_")
}

// buildDeck is best effort: the API omits cards for some battle types.
func buildDeck(cards []clashroyale.Card) *models.Deck {
	if len(cards) == 0 {
		return nil
	}
	deck := &models.Deck{Cards: make([]string, 0, len(cards))}
	total := 0
	for _, c := range cards {
		deck.Cards = append(deck.Cards, c.Name)
		total += c.ElixirCost
	}
	deck.AvgElixir = float64(total) / float64(len(cards))
	return deck
}
