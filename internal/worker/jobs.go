package worker

import (
	"context"

	"github.com/rsoares/friendsleague/internal/ingest"
)

// CollectJob runs one ingestion pass over the roster's battle logs.
type CollectJob struct {
	Collector *ingest.Collector
}

func (j *CollectJob) Name() string { return "collect" }

func (j *CollectJob) Run(ctx context.Context) error {
	_, err := j.Collector.Run(ctx)
	return err
}
