package scheduler

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"

	"github.com/rsoares/friendsleague/internal/ingest"
	"github.com/rsoares/friendsleague/internal/worker"
)

// Scheduler submits a collection job to the worker pool on a fixed cadence.
// The pool runs a single worker, so a tick that fires while a run is still
// going simply queues behind it (or is dropped when one is already waiting).
type Scheduler struct {
	sched gocron.Scheduler
	log   zerolog.Logger
}

func New(collector *ingest.Collector, pool *worker.Pool, interval time.Duration, log zerolog.Logger) (*Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	log = log.With().Str("component", "scheduler").Logger()

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if !pool.TrySubmit(&worker.CollectJob{Collector: collector}) {
				log.Debug().Msg("collection already queued, tick skipped")
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	return &Scheduler{sched: sched, log: log}, nil
}

func (s *Scheduler) Start() {
	s.log.Info().Msg("scheduler started")
	s.sched.Start()
}

func (s *Scheduler) Stop() error {
	s.log.Info().Msg("scheduler stopping")
	return s.sched.Shutdown()
}
