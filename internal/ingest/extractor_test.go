package ingest_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsoares/friendsleague/internal/clashroyale"
	"github.com/rsoares/friendsleague/internal/ingest"
	"github.com/rsoares/friendsleague/internal/models"
)

var testWindow = models.SeasonWindow{Start: timePtr(time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC))}

func timePtr(t time.Time) *time.Time { return &t }

func entry(battleTime string, teamTag string, teamCrowns int, rivalTag string, rivalCrowns int) clashroyale.BattleLogEntry {
	return clashroyale.BattleLogEntry{
		Type:       "friendly",
		BattleTime: battleTime,
		Team:       []clashroyale.BattlePlayer{{Tag: teamTag, Crowns: teamCrowns}},
		Opponent:   []clashroyale.BattlePlayer{{Tag: rivalTag, Crowns: rivalCrowns}},
	}
}

func TestExtract_DecidedMatch(t *testing.T) {
	e := ingest.NewExtractor([]string{"#AAA111", "BBB222"})

	matches := e.Extract(context.Background(), []clashroyale.BattleLogEntry{
		entry("20240815T094512.000Z", "#BBB222", 3, "#AAA111", 1),
	}, testWindow)

	require.Len(t, matches, 1)
	m := matches[0]
	assert.Equal(t, "20240815T094512.000Z_AAA111_BBB222", m.ID)
	// Sides stay in report order: the queried player first.
	assert.Equal(t, "BBB222", m.PlayerA)
	assert.Equal(t, "AAA111", m.PlayerB)
	assert.Equal(t, "BBB222", m.Winner)
	assert.Equal(t, "AAA111", m.Loser)
	assert.Equal(t, 3, m.Crowns)
	require.NotNil(t, m.LoserCrowns)
	assert.Equal(t, 1, *m.LoserCrowns)
	assert.Equal(t, time.Date(2024, 8, 15, 9, 45, 12, 0, time.UTC), m.Timestamp.UTC())
	assert.Equal(t, "friendly", m.BattleType)
}

func TestExtract_SameIDFromEitherPerspective(t *testing.T) {
	e := ingest.NewExtractor([]string{"AAA111", "BBB222"})

	fromA := e.Extract(context.Background(), []clashroyale.BattleLogEntry{
		entry("20240815T094512.000Z", "#AAA111", 1, "#BBB222", 3),
	}, testWindow)
	fromB := e.Extract(context.Background(), []clashroyale.BattleLogEntry{
		entry("20240815T094512.000Z", "#BBB222", 3, "#AAA111", 1),
	}, testWindow)

	require.Len(t, fromA, 1)
	require.Len(t, fromB, 1)
	assert.Equal(t, fromA[0].ID, fromB[0].ID)
	assert.Equal(t, fromA[0].Winner, fromB[0].Winner)

	// Only the ID is canonical; the sides follow each log's perspective.
	assert.Equal(t, "AAA111", fromA[0].PlayerA)
	assert.Equal(t, "BBB222", fromB[0].PlayerA)
}

func TestExtract_SkipsDraws(t *testing.T) {
	e := ingest.NewExtractor([]string{"AAA111", "BBB222"})

	matches := e.Extract(context.Background(), []clashroyale.BattleLogEntry{
		entry("20240815T094512.000Z", "#AAA111", 1, "#BBB222", 1),
	}, testWindow)

	assert.Empty(t, matches)
}

func TestExtract_SkipsUntrackedOpponents(t *testing.T) {
	e := ingest.NewExtractor([]string{"AAA111", "BBB222"})

	matches := e.Extract(context.Background(), []clashroyale.BattleLogEntry{
		entry("20240815T094512.000Z", "#AAA111", 3, "#ZZZ999", 0),
	}, testWindow)

	assert.Empty(t, matches)
}

func TestExtract_SkipsMalformedEntries(t *testing.T) {
	e := ingest.NewExtractor([]string{"AAA111", "BBB222"})

	entries := []clashroyale.BattleLogEntry{
		entry("not-a-timestamp", "#AAA111", 3, "#BBB222", 0),
		entry("20240815T094512.000Z", "", 3, "#BBB222", 0),
		{
			Type:       "2v2",
			BattleTime: "20240815T100000.000Z",
			Team:       []clashroyale.BattlePlayer{{Tag: "#AAA111"}, {Tag: "#CCC333"}},
			Opponent:   []clashroyale.BattlePlayer{{Tag: "#BBB222"}, {Tag: "#DDD444"}},
		},
	}

	matches := e.Extract(context.Background(), entries, testWindow)
	assert.Empty(t, matches)
}

func TestExtract_WindowFilter(t *testing.T) {
	e := ingest.NewExtractor([]string{"AAA111", "BBB222"})

	matches := e.Extract(context.Background(), []clashroyale.BattleLogEntry{
		entry("20240715T094512.000Z", "#AAA111", 3, "#BBB222", 0),
		entry("20240815T094512.000Z", "#AAA111", 3, "#BBB222", 0),
	}, testWindow)

	require.Len(t, matches, 1)
	assert.Equal(t, time.Date(2024, 8, 15, 9, 45, 12, 0, time.UTC), matches[0].Timestamp.UTC())
}

func TestExtract_DeckIsBestEffort(t *testing.T) {
	e := ingest.NewExtractor([]string{"AAA111", "BBB222"})

	withCards := entry("20240815T094512.000Z", "#AAA111", 3, "#BBB222", 0)
	withCards.Team[0].Cards = []clashroyale.Card{
		{Name: "Hog Rider", ElixirCost: 4},
		{Name: "Fireball", ElixirCost: 4},
		{Name: "Skeletons", ElixirCost: 1},
	}

	matches := e.Extract(context.Background(), []clashroyale.BattleLogEntry{withCards}, testWindow)
	require.Len(t, matches, 1)

	// The queried side is reported first, so its deck lands on side A.
	require.NotNil(t, matches[0].DeckA)
	assert.Equal(t, []string{"Hog Rider", "Fireball", "Skeletons"}, matches[0].DeckA.Cards)
	assert.InDelta(t, 3.0, matches[0].DeckA.AvgElixir, 1e-9)
	assert.Nil(t, matches[0].DeckB)
}

func TestMatchID_Deterministic(t *testing.T) {
	a := ingest.MatchID("20240815T094512.000Z", "#BBB222", "#AAA111")
	b := ingest.MatchID("20240815T094512.000Z", "aaa111", "bbb222")
	assert.Equal(t, a, b)
	assert.Equal(t, "20240815T094512.000Z_AAA111_BBB222", a)
}

func TestDeduplicator_FirstOccurrenceWins(t *testing.T) {
	d := ingest.NewDeduplicator()

	m := models.Match{ID: "m1"}
	assert.True(t, d.Add(m))
	assert.False(t, d.Add(m))
	assert.True(t, d.Add(models.Match{ID: "m2"}))
}
