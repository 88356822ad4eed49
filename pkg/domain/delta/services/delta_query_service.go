package delta_services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	delta_entities "github.com/sportlink/sportlink-api/pkg/domain/delta/entities"
	delta_in "github.com/sportlink/sportlink-api/pkg/domain/delta/ports/in"
	delta_out "github.com/sportlink/sportlink-api/pkg/domain/delta/ports/out"
)

const (
	// MaxFetchLimit caps one poll's page size.
	MaxFetchLimit     = 100
	DefaultFetchLimit = 50

	// MinPollIntervalMS is the floor clients are never sent below.
	MinPollIntervalMS    = 2000
	WebBasePollMS        = 5000
	MobileBasePollMS     = 10000
)

// DeltaQueryService implements filtered incremental retrieval over the
// change log plus cursor maintenance.
type DeltaQueryService struct {
	changeLogRepository delta_out.ChangeLogRepository
	cursorRepository    delta_out.CursorRepository
}

func NewDeltaQueryService(
	changeLogRepository delta_out.ChangeLogRepository,
	cursorRepository delta_out.CursorRepository,
) *DeltaQueryService {
	return &DeltaQueryService{
		changeLogRepository: changeLogRepository,
		cursorRepository:    cursorRepository,
	}
}

func (s *DeltaQueryService) FetchDeltas(ctx context.Context, q delta_in.FetchDeltasQuery) (*delta_in.FetchDeltasResult, error) {
	if q.UserID == uuid.Nil {
		return nil, fmt.Errorf("user id is required")
	}

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultFetchLimit
	}
	if limit > MaxFetchLimit {
		limit = MaxFetchLimit
	}

	classes := q.EntityClasses
	if len(classes) == 0 {
		classes = delta_entities.SyncClasses
	}

	cursor, err := s.cursorRepository.GetOrCreate(ctx, q.UserID, q.ClientType)
	if err != nil {
		return nil, fmt.Errorf("failed to load delta cursor: %w", err)
	}

	now := time.Now().UTC()

	// Per-class lower bound: the newer of the explicit since argument and
	// the stored cursor.
	bounds := make(map[delta_entities.EntityType]time.Time, len(classes))
	var oldest time.Time
	for i, class := range classes {
		bound := cursor.SyncTime(class)
		if q.Since != nil && q.Since.After(bound) {
			bound = *q.Since
		}
		bounds[class] = bound
		if i == 0 || bound.Before(oldest) {
			oldest = bound
		}
	}

	// One range scan from the oldest bound keeps the query on the
	// (affected_user_id, created_at) index; the per-class bounds are
	// re-applied below.
	rows, err := s.changeLogRepository.FindChanges(ctx, delta_out.ChangeLogQuery{
		AffectedUserID: q.UserID,
		After:          oldest,
		EntityTypes:    classes,
		Limit:          limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query change log: %w", err)
	}

	truncated := len(rows) == limit

	changes := make([]*delta_entities.EntityChangeLog, 0, len(rows))
	seenClasses := make(map[delta_entities.EntityType]bool)
	for _, row := range rows {
		if bound, ok := bounds[row.EntityType]; ok && !row.CreatedAt.After(bound) {
			continue
		}
		changes = append(changes, row)
		seenClasses[row.EntityType] = true
	}

	// Advance only the cursors whose class appeared in the batch; untouched
	// classes keep their prior timestamps so nothing is silently skipped.
	newCursors := make(map[delta_entities.EntityType]time.Time, len(classes))
	advanced := make(map[delta_entities.EntityType]time.Time)
	for _, class := range classes {
		if seenClasses[class] {
			newCursors[class] = now
			advanced[class] = now
		} else {
			newCursors[class] = cursor.SyncTime(class)
		}
	}

	if len(advanced) > 0 {
		if err := s.cursorRepository.UpdateSyncTimes(ctx, q.UserID, advanced, q.ClientType); err != nil {
			return nil, fmt.Errorf("failed to advance delta cursors: %w", err)
		}
	}

	interval := RecommendPollInterval(len(changes), q.ClientType, cursor.LastActiveAt, now)
	if err := s.cursorRepository.UpdatePreferredPollInterval(ctx, q.UserID, interval); err != nil {
		slog.WarnContext(ctx, "Failed to store preferred poll interval", "user_id", q.UserID, "error", err)
	}

	return &delta_in.FetchDeltasResult{
		Changes:    changes,
		HasChanges: len(changes) > 0,
		NewCursors: newCursors,
		Metadata: delta_in.FetchMetadata{
			ChangeCount: len(changes),
			Truncated:   truncated,
			ClientType:  q.ClientType,
			QueriedAt:   now,
			Classes:     classes,
		},
		RecommendedPollInterval: interval,
	}, nil
}

func (s *DeltaQueryService) Status(ctx context.Context, userID uuid.UUID, clientType delta_entities.ClientType) (*delta_in.CursorStatus, error) {
	cursor, err := s.cursorRepository.GetOrCreate(ctx, userID, clientType)
	if err != nil {
		return nil, fmt.Errorf("failed to load delta cursor: %w", err)
	}

	since := make(map[delta_entities.EntityType]time.Time, len(delta_entities.SyncClasses))
	for _, class := range delta_entities.SyncClasses {
		since[class] = cursor.SyncTime(class)
	}

	counts, err := s.changeLogRepository.CountChangesSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending changes: %w", err)
	}

	return &delta_in.CursorStatus{
		Cursor:        cursor,
		PendingCounts: counts,
	}, nil
}

func (s *DeltaQueryService) ResetCursor(ctx context.Context, userID uuid.UUID, class *delta_entities.EntityType, clientType delta_entities.ClientType) (*delta_entities.UserDeltaCursor, error) {
	cursor, err := s.cursorRepository.GetOrCreate(ctx, userID, clientType)
	if err != nil {
		return nil, fmt.Errorf("failed to load delta cursor: %w", err)
	}

	now := time.Now().UTC()
	times := make(map[delta_entities.EntityType]time.Time)
	if class != nil {
		if !delta_entities.IsSyncClass(*class) {
			return nil, fmt.Errorf("unknown entity class %q", *class)
		}
		times[*class] = now
	} else {
		for _, c := range delta_entities.SyncClasses {
			times[c] = now
		}
	}

	if err := s.cursorRepository.UpdateSyncTimes(ctx, userID, times, clientType); err != nil {
		return nil, fmt.Errorf("failed to reset delta cursors: %w", err)
	}

	for c, ts := range times {
		cursor.SetSyncTime(c, ts)
	}
	cursor.LastActiveAt = now
	cursor.UpdatedAt = now

	slog.InfoContext(ctx, "Delta cursor reset", "user_id", userID, "all", class == nil)

	return cursor, nil
}

// RecommendPollInterval computes the advisory next-poll hint in milliseconds.
// Busy clients are told to come back sooner, idle ones to back off; the
// result never drops below MinPollIntervalMS.
func RecommendPollInterval(changeCount int, clientType delta_entities.ClientType, lastActiveAt, now time.Time) int {
	base := WebBasePollMS
	if clientType == delta_entities.ClientTypeMobile {
		base = MobileBasePollMS
	}

	hoursSinceActive := now.Sub(lastActiveAt).Hours()

	var interval int
	switch {
	case changeCount > 5:
		interval = base / 2
	case changeCount > 2:
		interval = base
	case hoursSinceActive > 4:
		interval = base * 4
	case hoursSinceActive > 1:
		interval = base * 2
	default:
		interval = base
	}

	if interval < MinPollIntervalMS {
		interval = MinPollIntervalMS
	}
	return interval
}

var (
	_ delta_in.DeltaQuery   = (*DeltaQueryService)(nil)
	_ delta_in.DeltaCommand = (*DeltaQueryService)(nil)
)
