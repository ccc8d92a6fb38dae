package models

import "time"

// Player is a tracked league member.
type Player struct {
	Tag         string    `json:"tag"`
	Name        string    `json:"name"`
	Trophies    int       `json:"trophies"`
	LastUpdated time.Time `json:"last_updated"`
}

// Deck is the snapshot of the cards a player brought into a battle.
type Deck struct {
	Cards     []string `json:"cards"`
	AvgElixir float64  `json:"avg_elixir"`
}

// Match is a decided 1v1 battle between two tracked players. The ID is
// derived from the battle time and the pair of tags so the same battle seen
// from either player's log resolves to one record.
type Match struct {
	ID                string     `json:"id"`
	Timestamp         time.Time  `json:"timestamp"`
	PlayerA           string     `json:"player_a"`
	PlayerB           string     `json:"player_b"`
	Winner            string     `json:"winner"`
	Loser             string     `json:"loser"`
	Crowns            int        `json:"crowns"`
	LoserCrowns       *int       `json:"loser_crowns,omitempty"`
	BattleType        string     `json:"battle_type"`
	DeckA             *Deck      `json:"deck_a,omitempty"`
	DeckB             *Deck      `json:"deck_b,omitempty"`
	RatingDeltaWinner *float64   `json:"rating_delta_winner,omitempty"`
	RatingDeltaLoser  *float64   `json:"rating_delta_loser,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// PlayerStat is the derived standing of a player within the current season
// window. Recomputed from scratch on each collection run.
type PlayerStat struct {
	Tag               string    `json:"tag"`
	Name              string    `json:"name"`
	Wins              int       `json:"wins"`
	Losses            int       `json:"losses"`
	TotalCrowns       int       `json:"total_crowns"`
	Rating            float64   `json:"rating"`
	CurrentStreak     int       `json:"current_streak"`
	LongestStreak     int       `json:"longest_streak"`
	RecentForm        []string  `json:"recent_form"`
	CrownDifferential int       `json:"crown_differential"`
	WinRate           float64   `json:"win_rate"`
	LastUpdated       time.Time `json:"last_updated"`
}

// MatchFilter narrows match listings.
type MatchFilter struct {
	PlayerTag string
	Since     *time.Time
	Limit     int
}

// SeasonWindow bounds which matches count toward standings. A nil Start
// means a rolling one-day lookback from now.
type SeasonWindow struct {
	Start *time.Time
}

// Contains reports whether t falls inside the window.
func (w SeasonWindow) Contains(t time.Time) bool {
	return !t.Before(w.EffectiveStart())
}

// EffectiveStart resolves the window start, falling back to the rolling
// lookback when no season cutoff is set.
func (w SeasonWindow) EffectiveStart() time.Time {
	if w.Start != nil {
		return *w.Start
	}
	return time.Now().UTC().Add(-24 * time.Hour)
}
