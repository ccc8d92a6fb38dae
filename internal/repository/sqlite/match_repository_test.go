package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/rsoares/friendsleague/internal/models"
	"github.com/rsoares/friendsleague/internal/repository"
	"github.com/rsoares/friendsleague/internal/repository/sqlite"
	"github.com/rsoares/friendsleague/internal/testutil"
)

type MatchRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.MatchRepository
}

func (s *MatchRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewMatchRepository(s.db)
}

func (s *MatchRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func sampleMatch(id string, ts time.Time) models.Match {
	return models.Match{
		ID:         id,
		Timestamp:  ts,
		PlayerA:    "AAA111",
		PlayerB:    "BBB222",
		Winner:     "AAA111",
		Loser:      "BBB222",
		Crowns:     2,
		BattleType: "friendly",
	}
}

func (s *MatchRepositorySuite) TestInsertIfAbsent() {
	ctx := context.Background()
	ts := time.Date(2024, 8, 15, 9, 45, 12, 0, time.UTC)

	inserted, err := s.repo.InsertIfAbsent(ctx, sampleMatch("m1", ts))
	s.Require().NoError(err)
	s.Assert().True(inserted)

	// Same ID again, e.g. the battle seen from the other player's log.
	inserted, err = s.repo.InsertIfAbsent(ctx, sampleMatch("m1", ts))
	s.Require().NoError(err)
	s.Assert().False(inserted)

	count, err := s.repo.CountInScope(ctx, ts.Add(-time.Hour))
	s.Require().NoError(err)
	s.Assert().Equal(1, count)
}

func (s *MatchRepositorySuite) TestInsertIfAbsent_WithDecksAndCrowns() {
	ctx := context.Background()
	ts := time.Date(2024, 8, 15, 9, 45, 12, 0, time.UTC)

	loserCrowns := 1
	m := sampleMatch("m-deck", ts)
	m.LoserCrowns = &loserCrowns
	m.DeckA = &models.Deck{Cards: []string{"Hog Rider", "Fireball"}, AvgElixir: 3.5}
	m.DeckB = &models.Deck{Cards: []string{"Golem"}, AvgElixir: 4.1}

	inserted, err := s.repo.InsertIfAbsent(ctx, m)
	s.Require().NoError(err)
	s.Require().True(inserted)

	matches, err := s.repo.ListInScope(ctx, ts.Add(-time.Hour))
	s.Require().NoError(err)
	s.Require().Len(matches, 1)

	got := matches[0]
	s.Require().NotNil(got.LoserCrowns)
	s.Assert().Equal(1, *got.LoserCrowns)
	s.Require().NotNil(got.DeckA)
	s.Assert().Equal([]string{"Hog Rider", "Fireball"}, got.DeckA.Cards)
	s.Assert().InDelta(3.5, got.DeckA.AvgElixir, 1e-9)
	s.Require().NotNil(got.DeckB)
	s.Assert().Nil(got.RatingDeltaWinner)
}

func (s *MatchRepositorySuite) TestListInScope_FiltersByTime() {
	ctx := context.Background()
	base := time.Date(2024, 8, 15, 12, 0, 0, 0, time.UTC)

	for i, ts := range []time.Time{base.Add(-48 * time.Hour), base.Add(-12 * time.Hour), base.Add(-1 * time.Hour)} {
		_, err := s.repo.InsertIfAbsent(ctx, sampleMatch(string(rune('a'+i)), ts))
		s.Require().NoError(err)
	}

	matches, err := s.repo.ListInScope(ctx, base.Add(-24*time.Hour))
	s.Require().NoError(err)
	s.Require().Len(matches, 2)

	// Ascending order for rating replay.
	s.Assert().True(matches[0].Timestamp.Before(matches[1].Timestamp))
}

func (s *MatchRepositorySuite) TestListForPlayer() {
	ctx := context.Background()
	base := time.Date(2024, 8, 15, 12, 0, 0, 0, time.UTC)

	m1 := sampleMatch("m1", base.Add(-2*time.Hour))
	m2 := sampleMatch("m2", base.Add(-1*time.Hour))
	m2.PlayerA = "CCC333"
	m2.Winner = "CCC333"
	m3 := sampleMatch("m3", base)
	m3.PlayerA = "CCC333"
	m3.PlayerB = "DDD444"
	m3.Winner = "DDD444"
	m3.Loser = "CCC333"

	for _, m := range []models.Match{m1, m2, m3} {
		_, err := s.repo.InsertIfAbsent(ctx, m)
		s.Require().NoError(err)
	}

	matches, err := s.repo.ListForPlayer(ctx, "BBB222", models.MatchFilter{})
	s.Require().NoError(err)
	s.Require().Len(matches, 2)
	// Most recent first.
	s.Assert().Equal("m2", matches[0].ID)
	s.Assert().Equal("m1", matches[1].ID)

	matches, err = s.repo.ListForPlayer(ctx, "BBB222", models.MatchFilter{Limit: 1})
	s.Require().NoError(err)
	s.Require().Len(matches, 1)
	s.Assert().Equal("m2", matches[0].ID)
}

func (s *MatchRepositorySuite) TestSetRatingDeltas_OnlyOnce() {
	ctx := context.Background()
	ts := time.Date(2024, 8, 15, 9, 45, 12, 0, time.UTC)

	_, err := s.repo.InsertIfAbsent(ctx, sampleMatch("m1", ts))
	s.Require().NoError(err)

	s.Require().NoError(s.repo.SetRatingDeltas(ctx, "m1", 16, -16))
	// A second write with different values must not overwrite the first.
	s.Require().NoError(s.repo.SetRatingDeltas(ctx, "m1", 99, -99))

	matches, err := s.repo.ListInScope(ctx, ts.Add(-time.Hour))
	s.Require().NoError(err)
	s.Require().Len(matches, 1)
	s.Require().NotNil(matches[0].RatingDeltaWinner)
	s.Assert().InDelta(16, *matches[0].RatingDeltaWinner, 1e-9)
	s.Require().NotNil(matches[0].RatingDeltaLoser)
	s.Assert().InDelta(-16, *matches[0].RatingDeltaLoser, 1e-9)
}

func (s *MatchRepositorySuite) TestListRecent() {
	ctx := context.Background()
	base := time.Date(2024, 8, 15, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_, err := s.repo.InsertIfAbsent(ctx, sampleMatch(string(rune('a'+i)), base.Add(time.Duration(i)*time.Minute)))
		s.Require().NoError(err)
	}

	matches, err := s.repo.ListRecent(ctx, 3)
	s.Require().NoError(err)
	s.Require().Len(matches, 3)
	s.Assert().Equal("e", matches[0].ID)
}

func TestMatchRepositorySuite(t *testing.T) {
	suite.Run(t, new(MatchRepositorySuite))
}
