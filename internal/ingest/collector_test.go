package ingest_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/rsoares/friendsleague/internal/clashroyale"
	"github.com/rsoares/friendsleague/internal/ingest"
	"github.com/rsoares/friendsleague/internal/models"
	"github.com/rsoares/friendsleague/internal/ranking"
	"github.com/rsoares/friendsleague/internal/repository"
	"github.com/rsoares/friendsleague/internal/repository/sqlite"
	"github.com/rsoares/friendsleague/internal/testutil"
	"github.com/rsoares/friendsleague/internal/testutil/mocks"
)

type CollectorSuite struct {
	suite.Suite
	db       *sql.DB
	client   *mocks.MockBattleLogClient
	matches  repository.MatchRepository
	players  repository.PlayerRepository
	settings repository.SettingsRepository
}

func (s *CollectorSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.client = new(mocks.MockBattleLogClient)
	s.matches = sqlite.NewMatchRepository(s.db)
	s.players = sqlite.NewPlayerRepository(s.db)
	s.settings = sqlite.NewSettingsRepository(s.db)

	// Fixed season start keeps the sample battle times in scope.
	s.Require().NoError(s.settings.SetSeasonStart(context.Background(), time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)))
	s.Require().NoError(s.players.Upsert(context.Background(), models.Player{Tag: "AAA111", Name: "Alice"}))
	s.Require().NoError(s.players.Upsert(context.Background(), models.Player{Tag: "BBB222", Name: "Bob"}))
}

func (s *CollectorSuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *CollectorSuite) newCollector() *ingest.Collector {
	calc := ranking.NewCalculator(ranking.DefaultConfig(), s.matches, s.players)
	return ingest.NewCollector(s.client, calc, s.matches, s.settings, []string{"AAA111", "BBB222"}, 2)
}

func (s *CollectorSuite) TestRun_DeduplicatesAcrossPerspectives() {
	ctx := context.Background()

	s.client.On("FetchBattleLog", mock.Anything, "AAA111").Return([]clashroyale.BattleLogEntry{
		entry("20240815T094512.000Z", "#AAA111", 3, "#BBB222", 1),
	}, nil)
	s.client.On("FetchBattleLog", mock.Anything, "BBB222").Return([]clashroyale.BattleLogEntry{
		entry("20240815T094512.000Z", "#BBB222", 1, "#AAA111", 3),
	}, nil)

	result, err := s.newCollector().Run(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(2, result.Fetched)
	s.Assert().Equal(1, result.New)

	count, err := s.matches.CountInScope(ctx, time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
	s.Assert().Equal(1, count)

	// Standings were recomputed as part of the run.
	board, err := s.players.Leaderboard(ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(board, 2)
	s.Assert().Equal("AAA111", board[0].Tag)
	s.Assert().InDelta(1216, board[0].Rating, 1e-9)
}

func (s *CollectorSuite) TestRun_ToleratesFetchFailure() {
	ctx := context.Background()

	s.client.On("FetchBattleLog", mock.Anything, "AAA111").Return(nil, errors.New("api down"))
	s.client.On("FetchBattleLog", mock.Anything, "BBB222").Return([]clashroyale.BattleLogEntry{
		entry("20240815T094512.000Z", "#BBB222", 2, "#AAA111", 0),
	}, nil)

	result, err := s.newCollector().Run(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(1, result.New)
}

func (s *CollectorSuite) TestRun_NoNewMatchesSkipsRecompute() {
	ctx := context.Background()

	s.client.On("FetchBattleLog", mock.Anything, mock.Anything).Return([]clashroyale.BattleLogEntry{}, nil)

	result, err := s.newCollector().Run(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(0, result.New)

	// Without new matches no stats rows appear.
	board, err := s.players.Leaderboard(ctx, 0)
	s.Require().NoError(err)
	s.Assert().Empty(board)
}

func (s *CollectorSuite) TestRun_SecondRunReportsNothingNew() {
	ctx := context.Background()

	s.client.On("FetchBattleLog", mock.Anything, "AAA111").Return([]clashroyale.BattleLogEntry{
		entry("20240815T094512.000Z", "#AAA111", 3, "#BBB222", 1),
	}, nil)
	s.client.On("FetchBattleLog", mock.Anything, "BBB222").Return([]clashroyale.BattleLogEntry{}, nil)

	collector := s.newCollector()

	first, err := collector.Run(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(1, first.New)

	second, err := collector.Run(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(0, second.New)
}

func TestCollectorSuite(t *testing.T) {
	suite.Run(t, new(CollectorSuite))
}
