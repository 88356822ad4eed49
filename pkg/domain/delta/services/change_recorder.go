package delta_services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	delta_entities "github.com/sportlink/sportlink-api/pkg/domain/delta/entities"
	delta_in "github.com/sportlink/sportlink-api/pkg/domain/delta/ports/in"
	delta_out "github.com/sportlink/sportlink-api/pkg/domain/delta/ports/out"
)

// ChangeRecorderService appends change-log rows. A failed insert is logged
// and swallowed: clients re-observe authoritative state on their next poll
// of the resource itself, so availability wins here.
type ChangeRecorderService struct {
	changeLogRepository delta_out.ChangeLogRepository
}

func NewChangeRecorderService(changeLogRepository delta_out.ChangeLogRepository) delta_in.ChangeRecorder {
	return &ChangeRecorderService{
		changeLogRepository: changeLogRepository,
	}
}

func (s *ChangeRecorderService) Record(ctx context.Context, change *delta_entities.EntityChangeLog) {
	if change.ID == uuid.Nil {
		change.ID = uuid.New()
	}
	if change.ChangeSource == "" {
		change.ChangeSource = delta_entities.ChangeSourceSystem
	}

	if err := s.changeLogRepository.Insert(ctx, change); err != nil {
		slog.WarnContext(ctx, "Failed to record entity change",
			"entity_type", change.EntityType,
			"entity_id", change.EntityID,
			"change_type", change.ChangeType,
			"affected_user_id", change.AffectedUserID,
			"error", err,
		)
	}
}

var _ delta_in.ChangeRecorder = (*ChangeRecorderService)(nil)
