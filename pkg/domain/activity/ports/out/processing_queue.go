package activity_out

import (
	"context"

	"github.com/google/uuid"
)

// ProcessingQueue hands deferred rating work to the background drainer. A
// broker-backed implementation wakes remote workers immediately; the drainer
// also polls the status table, so enqueueing is best-effort.
type ProcessingQueue interface {
	EnqueueActivity(ctx context.Context, activityID uuid.UUID) error
}
