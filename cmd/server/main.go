package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rsoares/friendsleague/internal/api"
	"github.com/rsoares/friendsleague/internal/clashroyale"
	"github.com/rsoares/friendsleague/internal/config"
	"github.com/rsoares/friendsleague/internal/db"
	"github.com/rsoares/friendsleague/internal/ingest"
	"github.com/rsoares/friendsleague/internal/logger"
	"github.com/rsoares/friendsleague/internal/ranking"
	"github.com/rsoares/friendsleague/internal/repository/sqlite"
	"github.com/rsoares/friendsleague/internal/scheduler"
	"github.com/rsoares/friendsleague/internal/services"
	"github.com/rsoares/friendsleague/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	log.Info().
		Str("addr", cfg.Addr).
		Str("db_path", cfg.DBPath).
		Int("poll_interval_minutes", cfg.PollIntervalMinutes).
		Int("roster_size", len(cfg.Roster())).
		Msg("friends league server starting")

	database, err := db.Open(cfg.DBPath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer database.Close()

	matchRepo := sqlite.NewMatchRepository(database)
	playerRepo := sqlite.NewPlayerRepository(database)
	settingsRepo := sqlite.NewSettingsRepository(database)

	limiter := clashroyale.NewRateLimiter(cfg.RateLimitPerMinute)
	client := clashroyale.New(cfg.APIBaseURL, cfg.APIToken, limiter, log)

	calc := ranking.NewCalculator(ranking.DefaultConfig(), matchRepo, playerRepo)
	collector := ingest.NewCollector(client, calc, matchRepo, settingsRepo, cfg.Roster(), cfg.FetchConcurrency)

	// A single worker serializes collection runs against the shared storage.
	collectPool := worker.NewPool(1, 4, log)

	srv := &api.Server{
		Players: services.NewPlayerService(playerRepo, matchRepo, settingsRepo, client),
		Battles: services.NewBattleService(matchRepo, settingsRepo),
		Collect: services.NewCollectService(collector, collectPool),
		Log:     log,
	}

	ctx, cancel := context.WithCancel(logger.WithContext(context.Background(), log))
	collectPool.Start(ctx)

	sched, err := scheduler.New(collector, collectPool, time.Duration(cfg.PollIntervalMinutes)*time.Minute, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create scheduler")
	}
	sched.Start()

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := sched.Stop(); err != nil {
		log.Error().Err(err).Msg("scheduler shutdown error")
	}
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	cancel()
	collectPool.Stop()

	log.Info().Msg("friends league server stopped")
}
