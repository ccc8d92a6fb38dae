package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rsoares/friendsleague/internal/logger"
)

type Job interface {
	Run(context.Context) error
	Name() string
}

// Pool runs submitted jobs on a fixed set of workers. Collection runs go
// through a single-worker pool, which serializes them: two runs never race
// on the same match's set-once rating deltas.
type Pool struct {
	jobs    chan Job
	wg      sync.WaitGroup
	workers int
	cancel  context.CancelFunc
	log     zerolog.Logger
}

func NewPool(workers, queueSize int, log zerolog.Logger) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 16
	}
	return &Pool{
		jobs:    make(chan Job, queueSize),
		workers: workers,
		log:     log.With().Str("component", "worker_pool").Logger(),
	}
}

func (p *Pool) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.log.Info().Int("workers", p.workers).Msg("starting worker pool")

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			workerLog := p.log.With().Int("worker_id", id).Logger()

			for {
				select {
				case <-ctx.Done():
					workerLog.Debug().Msg("worker shutting down")
					return
				case job := <-p.jobs:
					if job == nil {
						workerLog.Debug().Msg("worker shutting down, queue closed")
						return
					}

					jobLog := workerLog.With().Str("job", job.Name()).Logger()
					jobLog.Debug().Msg("starting job")
					start := time.Now()

					jobCtx := logger.WithContext(ctx, jobLog)
					if err := job.Run(jobCtx); err != nil {
						jobLog.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("job failed")
					} else {
						jobLog.Info().Dur("elapsed", time.Since(start)).Msg("job completed")
					}
				}
			}
		}(i + 1)
	}
}

func (p *Pool) Stop() {
	p.log.Info().Msg("stopping worker pool")
	if p.cancel != nil {
		p.cancel()
	}
	close(p.jobs)
	p.wg.Wait()
	p.log.Info().Msg("worker pool stopped")
}

// Submit blocks until the job fits in the queue.
func (p *Pool) Submit(job Job) {
	p.jobs <- job
}

// TrySubmit enqueues the job unless the queue is full.
func (p *Pool) TrySubmit(job Job) bool {
	select {
	case p.jobs <- job:
		return true
	default:
		p.log.Warn().Str("job", job.Name()).Msg("queue full, job rejected")
		return false
	}
}

// QueueSize returns the current number of pending jobs.
func (p *Pool) QueueSize() int {
	return len(p.jobs)
}
