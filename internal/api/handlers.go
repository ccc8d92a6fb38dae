package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/rsoares/friendsleague/internal/errors"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 0)

	board, err := s.Players.Leaderboard(r.Context(), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.Players.ListPlayers(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"players": players})
}

func (s *Server) handleAddPlayer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Tag string `json:"tag"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handleError(w, r, apperrors.NewBadRequestError("invalid JSON body"))
		return
	}

	player, err := s.Players.AddPlayer(r.Context(), body.Tag)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, player)
}

func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	tag := chi.URLParam(r, "tag")

	detail, err := s.Players.GetPlayer(r.Context(), tag)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleRecentBattles(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)

	matches, err := s.Battles.RecentBattles(r.Context(), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"battles": matches})
}

// handleCollect enqueues an asynchronous collection run. The run itself
// executes on the worker pool, so the response is only an acknowledgement.
func (s *Server) handleCollect(w http.ResponseWriter, r *http.Request) {
	queued, err := s.Collect.Trigger(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"status": "queued", "queued": queued})
}

func (s *Server) handleSeason(w http.ResponseWriter, r *http.Request) {
	start, err := s.Battles.SeasonStart(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := map[string]any{"season_start": nil}
	if start != nil {
		resp["season_start"] = start.UTC().Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStartSeason(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Start string `json:"start"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handleError(w, r, apperrors.NewBadRequestError("invalid JSON body"))
		return
	}

	start, err := time.Parse(time.RFC3339, body.Start)
	if err != nil {
		handleError(w, r, apperrors.NewValidationError("start", "must be RFC3339"))
		return
	}

	if err := s.Battles.StartSeason(r.Context(), start); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"season_start": start.UTC().Format(time.RFC3339)})
}

func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}
