package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	common "github.com/sportlink/sportlink-api/pkg/domain"
	activity_in "github.com/sportlink/sportlink-api/pkg/domain/activity/ports/in"
	rating_entities "github.com/sportlink/sportlink-api/pkg/domain/rating/entities"
	rating_out "github.com/sportlink/sportlink-api/pkg/domain/rating/ports/out"
	"github.com/sportlink/sportlink-api/pkg/infra/metrics"
)

const processableBatchSize = 50

// ELOProcessingJob drains deferred and stale rating work. It polls the
// status table on a ticker; the lock manager's takeover of stale
// calculating rows makes it safe to run on every server.
type ELOProcessingJob struct {
	statusRepository rating_out.ELOStatusRepository
	processor        activity_in.PendingProcessor
	ticker           *time.Ticker
	interval         time.Duration
}

func NewELOProcessingJob(
	statusRepository rating_out.ELOStatusRepository,
	processor activity_in.PendingProcessor,
	interval time.Duration,
) *ELOProcessingJob {
	return &ELOProcessingJob{
		statusRepository: statusRepository,
		processor:        processor,
		ticker:           time.NewTicker(interval),
		interval:         interval,
	}
}

func (j *ELOProcessingJob) Run(ctx context.Context) {
	slog.InfoContext(ctx, "Rating processing job started", "interval", j.interval)
	defer j.ticker.Stop()

	// Run once immediately on start
	j.drainPending(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Rating processing job stopped")
			return
		case <-j.ticker.C:
			j.drainPending(ctx)
		}
	}
}

// HandleQueued processes one queued activity id, used as the broker
// consumer handler for immediate wakeups.
func (j *ELOProcessingJob) HandleQueued(ctx context.Context, activityID uuid.UUID) {
	j.processOne(ctx, activityID)
}

func (j *ELOProcessingJob) drainPending(ctx context.Context) {
	ids, err := j.statusRepository.FindProcessable(ctx, rating_entities.DefaultLockTTL, processableBatchSize)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to list processable activities", "error", err)
		return
	}

	if len(ids) == 0 {
		return
	}

	slog.InfoContext(ctx, "Draining pending rating work", "count", len(ids))

	for _, id := range ids {
		j.processOne(ctx, id)
	}
}

func (j *ELOProcessingJob) processOne(ctx context.Context, activityID uuid.UUID) {
	start := time.Now()
	_, err := j.processor.ProcessActivity(ctx, activityID)
	metrics.ELOCalculationDuration.Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		metrics.ELOCalculationsTotal.WithLabelValues("completed").Inc()
	case common.IsConflictError(err):
		// Another server picked it up; nothing to do.
		metrics.ELOCalculationsTotal.WithLabelValues("contended").Inc()
	default:
		metrics.ELOCalculationsTotal.WithLabelValues("error").Inc()
		slog.ErrorContext(ctx, "Background rating processing failed",
			"activity_id", activityID,
			"error", err,
		)
	}
}
