package delta_in

import (
	"context"
	"time"

	"github.com/google/uuid"
	delta_entities "github.com/sportlink/sportlink-api/pkg/domain/delta/entities"
)

// FetchDeltasQuery is one poll request.
type FetchDeltasQuery struct {
	UserID        uuid.UUID
	Since         *time.Time
	EntityClasses []delta_entities.EntityType
	ClientType    delta_entities.ClientType
	Limit         int
}

// FetchDeltasResult is the poll response.
type FetchDeltasResult struct {
	Changes                 []*delta_entities.EntityChangeLog         `json:"changes"`
	HasChanges              bool                                      `json:"has_changes"`
	NewCursors              map[delta_entities.EntityType]time.Time   `json:"new_cursors"`
	Metadata                FetchMetadata                             `json:"metadata"`
	RecommendedPollInterval int                                       `json:"recommended_poll_interval"`
}

type FetchMetadata struct {
	ChangeCount int                         `json:"change_count"`
	Truncated   bool                        `json:"truncated"`
	ClientType  delta_entities.ClientType   `json:"client_type"`
	QueriedAt   time.Time                   `json:"queried_at"`
	Classes     []delta_entities.EntityType `json:"classes"`
}

// CursorStatus is the /delta/status payload.
type CursorStatus struct {
	Cursor        *delta_entities.UserDeltaCursor           `json:"cursor"`
	PendingCounts map[delta_entities.EntityType]int64       `json:"pending_counts"`
}

type DeltaQuery interface {
	// FetchDeltas filters and paginates log entries since the caller's
	// cursors and computes the next-poll hint.
	FetchDeltas(ctx context.Context, q FetchDeltasQuery) (*FetchDeltasResult, error)

	// Status returns the caller's cursor row plus per-class pending counts.
	Status(ctx context.Context, userID uuid.UUID, clientType delta_entities.ClientType) (*CursorStatus, error)
}

// DeltaCommand mutates cursor state.
type DeltaCommand interface {
	// ResetCursor advances the given cursor (or all of them when class is
	// nil) to now, discarding prior history.
	ResetCursor(ctx context.Context, userID uuid.UUID, class *delta_entities.EntityType, clientType delta_entities.ClientType) (*delta_entities.UserDeltaCursor, error)
}
