package rating_services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	rating_entities "github.com/sportlink/sportlink-api/pkg/domain/rating/entities"
	rating_out "github.com/sportlink/sportlink-api/pkg/domain/rating/ports/out"
)

// LockManager serializes rating processing per activity across servers. The
// status row is the lock: acquisition and release are single conditional
// statements in the repository, and a holder that exceeds the TTL forfeits
// quietly to the next acquirer.
type LockManager struct {
	statusRepository rating_out.ELOStatusRepository
	serverID         string
	ttl              time.Duration
}

func NewLockManager(statusRepository rating_out.ELOStatusRepository, serverID string) *LockManager {
	return &LockManager{
		statusRepository: statusRepository,
		serverID:         serverID,
		ttl:              rating_entities.DefaultLockTTL,
	}
}

func (m *LockManager) ServerID() string {
	return m.serverID
}

// Acquire claims the activity for this server or fails with
// ErrConcurrentCalculation when another server holds a fresh lock.
func (m *LockManager) Acquire(ctx context.Context, activityID uuid.UUID) (*rating_entities.ActivityELOStatus, error) {
	status, err := m.statusRepository.Acquire(ctx, activityID, m.serverID, m.ttl)
	if err != nil {
		return nil, err
	}

	if status.RetryCount > 0 {
		slog.InfoContext(ctx, "Acquired rating lock",
			"activity_id", activityID,
			"server_id", m.serverID,
			"retry_count", status.RetryCount,
		)
	}

	return status, nil
}

// ReleaseCompleted transitions the row to completed.
func (m *LockManager) ReleaseCompleted(ctx context.Context, activityID uuid.UUID) error {
	return m.statusRepository.ReleaseCompleted(ctx, activityID)
}

// ReleaseError records the failure and transitions the row to error. The
// background drainer does not pick up error rows; the row stays re-acquirable
// and a reprocess request moves it back to pending.
func (m *LockManager) ReleaseError(ctx context.Context, activityID uuid.UUID, cause error) {
	if err := m.statusRepository.ReleaseError(ctx, activityID, cause.Error()); err != nil {
		slog.ErrorContext(ctx, "Failed to record rating processing error",
			"activity_id", activityID,
			"cause", cause,
			"error", err,
		)
	}
}
