package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	delta_out "github.com/sportlink/sportlink-api/pkg/domain/delta/ports/out"
	"github.com/sportlink/sportlink-api/pkg/infra/metrics"
)

// ChangeLogCleanupJob prunes change-log rows past the retention horizon on a
// nightly schedule.
type ChangeLogCleanupJob struct {
	changeLogRepository delta_out.ChangeLogRepository
	retentionDays       int
	cron                *cron.Cron
}

func NewChangeLogCleanupJob(changeLogRepository delta_out.ChangeLogRepository, retentionDays int) *ChangeLogCleanupJob {
	if retentionDays <= 0 {
		retentionDays = 7
	}
	return &ChangeLogCleanupJob{
		changeLogRepository: changeLogRepository,
		retentionDays:       retentionDays,
		cron:                cron.New(),
	}
}

// Start schedules the sweep and returns immediately. The job stops when the
// context is cancelled.
func (j *ChangeLogCleanupJob) Start(ctx context.Context) error {
	_, err := j.cron.AddFunc("30 3 * * *", func() {
		j.Sweep(ctx)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	slog.InfoContext(ctx, "Change log cleanup scheduled", "retention_days", j.retentionDays)

	go func() {
		<-ctx.Done()
		j.cron.Stop()
	}()

	return nil
}

// Sweep deletes everything older than the retention window.
func (j *ChangeLogCleanupJob) Sweep(ctx context.Context) {
	cutoff := time.Now().UTC().AddDate(0, 0, -j.retentionDays)

	deleted, err := j.changeLogRepository.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		slog.ErrorContext(ctx, "Change log sweep failed", "error", err)
		return
	}

	metrics.ChangeLogPrunedTotal.Add(float64(deleted))
	slog.InfoContext(ctx, "Change log sweep finished", "deleted", deleted, "cutoff", cutoff)
}
