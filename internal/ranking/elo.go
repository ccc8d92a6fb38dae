package ranking

import "math"

// Config holds the Elo parameters. Defaults match the league's house rules:
// everyone starts at 1200 and a single match moves at most 32 points.
type Config struct {
	InitialRating float64
	KFactor       float64
	Spread        float64
}

func DefaultConfig() Config {
	return Config{
		InitialRating: 1200,
		KFactor:       32,
		Spread:        400,
	}
}

// Expected returns the probability that a player rated `rating` beats one
// rated `opponent`.
func (c Config) Expected(rating, opponent float64) float64 {
	return 1 / (1 + math.Pow(10, (opponent-rating)/c.Spread))
}

// Deltas returns the rating adjustments for a decided match. The winner
// gains k*(1-E) and the loser gives up k*E, so the exchange is zero-sum.
func (c Config) Deltas(winnerRating, loserRating float64) (winnerDelta, loserDelta float64) {
	expected := c.Expected(winnerRating, loserRating)
	winnerDelta = c.KFactor * (1 - expected)
	loserDelta = -c.KFactor * (1 - expected)
	return winnerDelta, loserDelta
}
