package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/rsoares/friendsleague/internal/models"
	"github.com/rsoares/friendsleague/internal/repository"
	"github.com/rsoares/friendsleague/internal/repository/sqlite"
	"github.com/rsoares/friendsleague/internal/testutil"
)

type PlayerRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.PlayerRepository
}

func (s *PlayerRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewPlayerRepository(s.db)
}

func (s *PlayerRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *PlayerRepositorySuite) TestUpsertAndList() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Upsert(ctx, models.Player{Tag: "AAA111", Name: "Alice", Trophies: 5000}))
	s.Require().NoError(s.repo.Upsert(ctx, models.Player{Tag: "BBB222", Name: "Bob", Trophies: 4200}))
	// Updating an existing player must not create a second row.
	s.Require().NoError(s.repo.Upsert(ctx, models.Player{Tag: "AAA111", Name: "Alice", Trophies: 5100}))

	players, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Assert().Equal("AAA111", players[0].Tag)
	s.Assert().Equal(5100, players[0].Trophies)
}

func (s *PlayerRepositorySuite) TestGetStat_NotFound() {
	_, err := s.repo.GetStat(context.Background(), "MISSING")
	s.Assert().ErrorIs(err, sql.ErrNoRows)
}

func (s *PlayerRepositorySuite) TestUpsertStatAndGet() {
	ctx := context.Background()

	stat := models.PlayerStat{
		Tag:               "AAA111",
		Name:              "Alice",
		Wins:              7,
		Losses:            3,
		TotalCrowns:       18,
		Rating:            1248.5,
		CurrentStreak:     2,
		LongestStreak:     4,
		RecentForm:        []string{"W", "W", "L"},
		CrownDifferential: 9,
	}
	s.Require().NoError(s.repo.UpsertStat(ctx, stat))

	got, err := s.repo.GetStat(ctx, "AAA111")
	s.Require().NoError(err)
	s.Assert().Equal(7, got.Wins)
	s.Assert().Equal(3, got.Losses)
	s.Assert().InDelta(1248.5, got.Rating, 1e-9)
	s.Assert().Equal([]string{"W", "W", "L"}, got.RecentForm)
	// 7 wins out of 10 games is a 70% rate.
	s.Assert().InDelta(70, got.WinRate, 1e-9)

	// Replace on the next run.
	stat.Wins = 8
	stat.Rating = 1260.1
	s.Require().NoError(s.repo.UpsertStat(ctx, stat))

	got, err = s.repo.GetStat(ctx, "AAA111")
	s.Require().NoError(err)
	s.Assert().Equal(8, got.Wins)
	s.Assert().InDelta(1260.1, got.Rating, 1e-9)
}

func (s *PlayerRepositorySuite) TestLeaderboard_Ordering() {
	ctx := context.Background()

	// Two players tied on rating get ranked by wins.
	for _, stat := range []models.PlayerStat{
		{Tag: "AAA111", Rating: 1250, Wins: 5, RecentForm: []string{}},
		{Tag: "BBB222", Rating: 1300, Wins: 2, RecentForm: []string{}},
		{Tag: "CCC333", Rating: 1250, Wins: 8, RecentForm: []string{}},
	} {
		s.Require().NoError(s.repo.UpsertStat(ctx, stat))
	}

	stats, err := s.repo.Leaderboard(ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(stats, 3)
	s.Assert().Equal("BBB222", stats[0].Tag)
	s.Assert().Equal("CCC333", stats[1].Tag)
	s.Assert().Equal("AAA111", stats[2].Tag)

	top, err := s.repo.Leaderboard(ctx, 2)
	s.Require().NoError(err)
	s.Assert().Len(top, 2)
}

func TestPlayerRepositorySuite(t *testing.T) {
	suite.Run(t, new(PlayerRepositorySuite))
}
