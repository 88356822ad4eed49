package delta_out

import (
	"context"
	"time"

	"github.com/google/uuid"
	delta_entities "github.com/sportlink/sportlink-api/pkg/domain/delta/entities"
)

// ChangeLogQuery filters a per-user change read.
type ChangeLogQuery struct {
	AffectedUserID uuid.UUID
	After          time.Time
	EntityTypes    []delta_entities.EntityType
	Limit          int
}

// ChangeLogRepository is the append-only change store. Inserts assign
// CreatedAt server-side on commit together with a monotonic Seq tiebreaker.
type ChangeLogRepository interface {
	Insert(ctx context.Context, change *delta_entities.EntityChangeLog) error

	// FindChanges returns rows matching the query sorted descending by
	// (created_at, seq), capped by Limit.
	FindChanges(ctx context.Context, q ChangeLogQuery) ([]*delta_entities.EntityChangeLog, error)

	// CountChangesSince returns per-class pending counts for a user.
	CountChangesSince(ctx context.Context, userID uuid.UUID, since map[delta_entities.EntityType]time.Time) (map[delta_entities.EntityType]int64, error)

	// DeleteOlderThan removes rows past the retention horizon and reports
	// how many were deleted.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
