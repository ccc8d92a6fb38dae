package clashroyale

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/rsoares/friendsleague/internal/logger"
)

// Client talks to the Clash Royale REST API (or the RoyaleAPI proxy, which
// mirrors its paths). All calls honor the shared rate limiter.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	limiter    *RateLimiter
	log        zerolog.Logger
}

func New(baseURL, token string, limiter *RateLimiter, log zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		token:      token,
		limiter:    limiter,
		log:        log.With().Str("component", "clashroyale").Logger(),
	}
}

// Card is a single card in a battle deck.
type Card struct {
	Name       string `json:"name"`
	ElixirCost int    `json:"elixirCost"`
}

// BattlePlayer is one participant of a battle log entry.
type BattlePlayer struct {
	Tag    string `json:"tag"`
	Name   string `json:"name"`
	Crowns int    `json:"crowns"`
	Cards  []Card `json:"cards"`
}

// BattleLogEntry is a single battle as the API reports it from one player's
// perspective: the queried player appears on team, the rival on opponent.
type BattleLogEntry struct {
	Type       string         `json:"type"`
	BattleTime string         `json:"battleTime"`
	Team       []BattlePlayer `json:"team"`
	Opponent   []BattlePlayer `json:"opponent"`
}

// PlayerProfile is the subset of the player endpoint we care about.
type PlayerProfile struct {
	Tag      string `json:"tag"`
	Name     string `json:"name"`
	Trophies int    `json:"trophies"`
}

// FetchBattleLog returns the recent battles for a player tag (without the
// leading '#'). The API keeps roughly the last 25 battles.
func (c *Client) FetchBattleLog(ctx context.Context, tag string) ([]BattleLogEntry, error) {
	log := logger.FromContext(ctx).With().Str("component", "clashroyale").Str("tag", tag).Logger()
	url := fmt.Sprintf("%s/players/%s/battlelog", c.baseURL, EscapeTag(tag))

	var entries []BattleLogEntry
	if err := c.getJSON(ctx, log, url, &entries); err != nil {
		return nil, err
	}

	log.Debug().Int("battles", len(entries)).Msg("fetched battle log")
	return entries, nil
}

// FetchPlayer returns the profile for a player tag (without the leading '#').
func (c *Client) FetchPlayer(ctx context.Context, tag string) (*PlayerProfile, error) {
	log := logger.FromContext(ctx).With().Str("component", "clashroyale").Str("tag", tag).Logger()
	url := fmt.Sprintf("%s/players/%s", c.baseURL, EscapeTag(tag))

	var profile PlayerProfile
	if err := c.getJSON(ctx, log, url, &profile); err != nil {
		return nil, err
	}

	log.Debug().Str("name", profile.Name).Int("trophies", profile.Trophies).Msg("fetched player profile")
	return &profile, nil
}

func (c *Client) getJSON(ctx context.Context, log zerolog.Logger, url string, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("url", url).Msg("request failed")
		return err
	}
	defer resp.Body.Close()

	log.Debug().Str("url", url).Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("response received")

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error().Int("status", resp.StatusCode).Str("body", string(body)).Msg("request rejected")
		return fmt.Errorf("clash royale api status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Error().Err(err).Msg("failed to decode response")
		return err
	}
	return nil
}
