package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rsoares/friendsleague/internal/clashroyale"
	"github.com/rsoares/friendsleague/internal/config"
	"github.com/rsoares/friendsleague/internal/db"
	"github.com/rsoares/friendsleague/internal/ingest"
	"github.com/rsoares/friendsleague/internal/logger"
	"github.com/rsoares/friendsleague/internal/ranking"
	"github.com/rsoares/friendsleague/internal/repository"
	"github.com/rsoares/friendsleague/internal/repository/sqlite"
)

var (
	logLevel     string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "league",
	Short: "Clash Royale friends league tool",
	Long:  "Collect battle logs for a fixed roster of friends and rank them by Elo rating.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "table", "output format (table or json)")

	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(battlesCmd)
	rootCmd.AddCommand(seasonCmd)
	rootCmd.AddCommand(addPlayerCmd)
}

// app bundles the dependencies every subcommand needs.
type app struct {
	cfg      config.Config
	db       *sql.DB
	matches  repository.MatchRepository
	players  repository.PlayerRepository
	settings repository.SettingsRepository
	client   *clashroyale.Client
	calc     *ranking.Calculator
}

func newApp() (*app, error) {
	cfg := config.Load()
	log := logger.New(logLevel)

	database, err := db.Open(cfg.DBPath, log)
	if err != nil {
		return nil, err
	}

	matches := sqlite.NewMatchRepository(database)
	players := sqlite.NewPlayerRepository(database)
	settings := sqlite.NewSettingsRepository(database)
	limiter := clashroyale.NewRateLimiter(cfg.RateLimitPerMinute)
	client := clashroyale.New(cfg.APIBaseURL, cfg.APIToken, limiter, log)

	return &app{
		cfg:      cfg,
		db:       database,
		matches:  matches,
		players:  players,
		settings: settings,
		client:   client,
		calc:     ranking.NewCalculator(ranking.DefaultConfig(), matches, players),
	}, nil
}

func (a *app) collector() *ingest.Collector {
	return ingest.NewCollector(a.client, a.calc, a.matches, a.settings, a.cfg.Roster(), a.cfg.FetchConcurrency)
}

func (a *app) close() {
	_ = a.db.Close()
}
