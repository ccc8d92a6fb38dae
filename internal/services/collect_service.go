package services

import (
	"context"

	apperrors "github.com/rsoares/friendsleague/internal/errors"
	"github.com/rsoares/friendsleague/internal/ingest"
	"github.com/rsoares/friendsleague/internal/logger"
	"github.com/rsoares/friendsleague/internal/worker"
)

// CollectService triggers ingestion runs
type CollectService interface {
	// Trigger enqueues an asynchronous run and reports the queue position.
	Trigger(ctx context.Context) (int, error)
	// RunNow executes a run synchronously (CLI path).
	RunNow(ctx context.Context) (ingest.Result, error)
}

type collectService struct {
	collector *ingest.Collector
	pool      *worker.Pool
}

// NewCollectService creates a new CollectService
func NewCollectService(collector *ingest.Collector, pool *worker.Pool) CollectService {
	return &collectService{
		collector: collector,
		pool:      pool,
	}
}

func (s *collectService) Trigger(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	if !s.pool.TrySubmit(&worker.CollectJob{Collector: s.collector}) {
		return 0, apperrors.NewBadRequestError("a collection run is already queued")
	}
	queued := s.pool.QueueSize()
	log.Info().Int("queued", queued).Msg("collection run enqueued")
	return queued, nil
}

func (s *collectService) RunNow(ctx context.Context) (ingest.Result, error) {
	result, err := s.collector.Run(ctx)
	if err != nil {
		return ingest.Result{}, apperrors.NewInternalError(err)
	}
	return result, nil
}
