package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/rsoares/friendsleague/internal/services"
)

// Server wires the HTTP surface to the service layer.
type Server struct {
	Players services.PlayerService
	Battles services.BattleService
	Collect services.CollectService
	Log     zerolog.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}).Handler)

	r.Get("/health", s.handleHealth)
	r.Get("/leaderboard", s.handleLeaderboard)
	r.Get("/players", s.handleListPlayers)
	r.Post("/players", s.handleAddPlayer)
	r.Get("/players/{tag}", s.handlePlayer)
	r.Get("/battles/recent", s.handleRecentBattles)
	r.Post("/collect", s.handleCollect)
	r.Get("/season", s.handleSeason)
	r.Put("/season", s.handleStartSeason)

	return r
}
