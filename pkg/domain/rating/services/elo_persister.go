package rating_services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	common "github.com/sportlink/sportlink-api/pkg/domain"
	delta_entities "github.com/sportlink/sportlink-api/pkg/domain/delta/entities"
	delta_in "github.com/sportlink/sportlink-api/pkg/domain/delta/ports/in"
	rating_entities "github.com/sportlink/sportlink-api/pkg/domain/rating/entities"
	rating_out "github.com/sportlink/sportlink-api/pkg/domain/rating/ports/out"
)

// versionRetries bounds optimistic-concurrency retries per participant.
const versionRetries = 3

// ELOPersister applies engine deltas atomically: rating upserts and the
// change-log fan-out commit in one transaction, then the lock is released.
type ELOPersister struct {
	eloRepository rating_out.UserELORepository
	txManager     rating_out.TransactionManager
	recorder      delta_in.ChangeRecorder
}

func NewELOPersister(
	eloRepository rating_out.UserELORepository,
	txManager rating_out.TransactionManager,
	recorder delta_in.ChangeRecorder,
) *ELOPersister {
	return &ELOPersister{
		eloRepository: eloRepository,
		txManager:     txManager,
		recorder:      recorder,
	}
}

// Persist writes every delta for one activity. Any failure rolls back the
// whole transaction; the caller records the error on the status row.
func (p *ELOPersister) Persist(ctx context.Context, activityID, activityTypeID uuid.UUID, deltas []ParticipantDelta) error {
	err := p.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		for _, delta := range deltas {
			if err := p.applyDelta(txCtx, activityTypeID, delta); err != nil {
				return err
			}

			p.recorder.Record(txCtx, &delta_entities.EntityChangeLog{
				EntityType:      delta_entities.EntityTypeELO,
				EntityID:        delta.UserID,
				ChangeType:      delta_entities.ChangeTypeUpdate,
				AffectedUserID:  delta.UserID,
				RelatedEntityID: &activityID,
				PreviousData:    map[string]interface{}{"elo_score": delta.OldELO},
				NewData: map[string]interface{}{
					"elo_score":        delta.NewELO,
					"change":           delta.Change,
					"activity_type_id": activityTypeID.String(),
				},
				ChangeSource: delta_entities.ChangeSourceSystem,
			})
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to persist rating deltas for activity %s: %w", activityID, err)
	}

	slog.InfoContext(ctx, "Persisted rating deltas",
		"activity_id", activityID,
		"activity_type_id", activityTypeID,
		"participants", len(deltas),
	)

	return nil
}

// applyDelta upserts one participant's rating row: insert on first game,
// otherwise a version-guarded update retried on conflict.
func (p *ELOPersister) applyDelta(ctx context.Context, activityTypeID uuid.UUID, delta ParticipantDelta) error {
	for attempt := 0; attempt < versionRetries; attempt++ {
		existing, err := p.eloRepository.FindByUserAndType(ctx, delta.UserID, activityTypeID)
		if err != nil {
			return err
		}

		if existing == nil {
			elo := rating_entities.NewUserELO(delta.UserID, activityTypeID, delta.NewELO)
			if err := p.eloRepository.Insert(ctx, elo); err == nil {
				return nil
			}
			// Lost the insert race; reload and take the update path.
			continue
		}

		updated := *existing
		updated.ELOScore = delta.NewELO
		updated.GamesPlayed = existing.GamesPlayed + 1
		if delta.NewELO > existing.PeakELO {
			updated.PeakELO = delta.NewELO
		}
		updated.LastUpdated = time.Now().UTC()
		updated.Version = existing.Version + 1

		matched, err := p.eloRepository.UpdateVersioned(ctx, &updated, existing.Version)
		if err != nil {
			return err
		}
		if matched {
			return nil
		}

		slog.WarnContext(ctx, "Rating version conflict, retrying",
			"user_id", delta.UserID,
			"activity_type_id", activityTypeID,
			"attempt", attempt+1,
		)
	}

	return common.NewErrConcurrentRatingUpdate(delta.UserID.String())
}
