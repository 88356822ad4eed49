package delta_out

import (
	"context"
	"time"

	"github.com/google/uuid"
	delta_entities "github.com/sportlink/sportlink-api/pkg/domain/delta/entities"
)

// CursorRepository persists per-user delta cursors. Writes are
// last-writer-wins per user.
type CursorRepository interface {
	// GetOrCreate returns the user's cursor row, inserting one with all sync
	// timestamps set to now when absent. Touches LastActiveAt and ClientType
	// on the stored row, but the returned cursor carries the PRIOR
	// LastActiveAt so adaptive poll intervals reflect genuine inactivity.
	GetOrCreate(ctx context.Context, userID uuid.UUID, clientType delta_entities.ClientType) (*delta_entities.UserDeltaCursor, error)

	// UpdateSyncTimes sets the provided per-class timestamps and touches
	// UpdatedAt and LastActiveAt.
	UpdateSyncTimes(ctx context.Context, userID uuid.UUID, times map[delta_entities.EntityType]time.Time, clientType delta_entities.ClientType) error

	// UpdatePreferredPollInterval records the last interval hint handed out.
	UpdatePreferredPollInterval(ctx context.Context, userID uuid.UUID, intervalMS int) error
}
