package rating_out

import (
	"context"
	"time"

	"github.com/google/uuid"
	rating_entities "github.com/sportlink/sportlink-api/pkg/domain/rating/entities"
)

// ELOStatusRepository owns the per-activity processing/lock row. Acquire and
// Release must each be a single atomic conditional statement so two servers
// never both hold the lock.
type ELOStatusRepository interface {
	// Acquire transitions the row to calculating for serverID. It succeeds
	// when the row is absent, pending, completed, error, or calculating with
	// a lock older than ttl (takeover bumps RetryCount). A fresh calculating
	// row yields ErrConcurrentCalculation.
	Acquire(ctx context.Context, activityID uuid.UUID, serverID string, ttl time.Duration) (*rating_entities.ActivityELOStatus, error)

	// ReleaseCompleted marks the run successful, setting CompletedAt and
	// clearing ErrorMessage.
	ReleaseCompleted(ctx context.Context, activityID uuid.UUID) error

	// ReleaseError records the failure message and bumps RetryCount.
	ReleaseError(ctx context.Context, activityID uuid.UUID, message string) error

	// EnsurePending upserts the row into pending for deferred processing
	// and manual reprocessing.
	EnsurePending(ctx context.Context, activityID uuid.UUID) error

	// FindByActivity returns the status row, or nil when absent.
	FindByActivity(ctx context.Context, activityID uuid.UUID) (*rating_entities.ActivityELOStatus, error)

	// FindProcessable lists activity ids whose status is pending or whose
	// calculating lock has gone stale, oldest first.
	FindProcessable(ctx context.Context, ttl time.Duration, limit int) ([]uuid.UUID, error)
}
