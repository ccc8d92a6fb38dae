package ingest

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rsoares/friendsleague/internal/clashroyale"
	"github.com/rsoares/friendsleague/internal/logger"
	"github.com/rsoares/friendsleague/internal/models"
	"github.com/rsoares/friendsleague/internal/ranking"
	"github.com/rsoares/friendsleague/internal/repository"
)

// Collector drives one ingestion run: fetch every rostered player's battle
// log, extract and dedup matches, persist the new ones, and recompute
// standings when anything changed.
type Collector struct {
	client      clashroyale.ClientInterface
	extractor   *Extractor
	calc        *ranking.Calculator
	matches     repository.MatchRepository
	settings    repository.SettingsRepository
	roster      []string
	concurrency int
}

// Result summarizes a single run.
type Result struct {
	Players   int       `json:"players"`
	Fetched   int       `json:"fetched"`
	New       int       `json:"new"`
	StartedAt time.Time `json:"started_at"`
	Elapsed   string    `json:"elapsed"`
}

func NewCollector(
	client clashroyale.ClientInterface,
	calc *ranking.Calculator,
	matches repository.MatchRepository,
	settings repository.SettingsRepository,
	roster []string,
	concurrency int,
) *Collector {
	if concurrency < 1 {
		concurrency = 1
	}
	normalized := make([]string, 0, len(roster))
	for _, tag := range roster {
		normalized = append(normalized, clashroyale.NormalizeTag(tag))
	}
	return &Collector{
		client:      client,
		extractor:   NewExtractor(normalized),
		calc:        calc,
		matches:     matches,
		settings:    settings,
		roster:      normalized,
		concurrency: concurrency,
	}
}

// Run executes one collection pass. A fetch failure for one player is
// tolerated: that player simply contributes no matches this run.
func (c *Collector) Run(ctx context.Context) (Result, error) {
	log := logger.FromContext(ctx).With().Str("component", "collector").Logger()
	start := time.Now()

	window, err := c.seasonWindow(ctx)
	if err != nil {
		return Result{}, err
	}

	var (
		mu        sync.Mutex
		extracted []models.Match
	)

	// Battle logs are independent per player, so fetches run in parallel
	// and only join at the dedup step.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for _, tag := range c.roster {
		tag := tag
		g.Go(func() error {
			entries, err := c.client.FetchBattleLog(gctx, tag)
			if err != nil {
				log.Warn().Err(err).Str("tag", tag).Msg("battle log fetch failed, player skipped this run")
				return nil
			}
			matches := c.extractor.Extract(gctx, entries, window)

			mu.Lock()
			extracted = append(extracted, matches...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	dedupe := NewDeduplicator()
	newCount := 0
	for _, m := range extracted {
		if !dedupe.Add(m) {
			continue
		}
		inserted, err := c.matches.InsertIfAbsent(ctx, m)
		if err != nil {
			return Result{}, err
		}
		if inserted {
			newCount++
		}
	}

	if newCount > 0 {
		if err := c.calc.UpdateAll(ctx, c.roster, window); err != nil {
			return Result{}, err
		}
	}

	result := Result{
		Players:   len(c.roster),
		Fetched:   len(extracted),
		New:       newCount,
		StartedAt: start.UTC(),
		Elapsed:   time.Since(start).Round(time.Millisecond).String(),
	}
	log.Info().Int("players", result.Players).Int("fetched", result.Fetched).Int("new", result.New).
		Str("elapsed", result.Elapsed).Msg("collection run finished")
	return result, nil
}

func (c *Collector) seasonWindow(ctx context.Context) (models.SeasonWindow, error) {
	start, err := c.settings.SeasonStart(ctx)
	if err != nil {
		return models.SeasonWindow{}, err
	}
	return models.SeasonWindow{Start: start}, nil
}
