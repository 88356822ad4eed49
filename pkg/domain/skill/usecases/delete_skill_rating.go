package skill_usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	common "github.com/sportlink/sportlink-api/pkg/domain"
	delta_entities "github.com/sportlink/sportlink-api/pkg/domain/delta/entities"
)

// Delete hard-removes a rating: the author within the delete window, or an
// admin at any time. Deletion emits a change row and resummarises, same as
// every other rating mutation.
func (uc *SkillRatingCommandUseCase) Delete(ctx context.Context, ratingID, callerID uuid.UUID, isAdmin bool) error {
	rating, err := uc.ratingRepository.FindByID(ctx, ratingID)
	if err != nil {
		return fmt.Errorf("failed to load skill rating: %w", err)
	}
	if rating == nil {
		return common.NewErrNotFound("skill rating", "id", ratingID)
	}

	now := time.Now().UTC()
	if !rating.CanDelete(callerID, isAdmin, now) {
		if rating.RatingUserID != callerID && !isAdmin {
			return common.NewErrForbidden("only the rating author or an admin may delete it")
		}
		return common.NewErrConflict("ratings can only be deleted within 24 hours of submission")
	}

	if err := uc.ratingRepository.Delete(ctx, ratingID); err != nil {
		return fmt.Errorf("failed to delete skill rating: %w", err)
	}

	source := delta_entities.ChangeSourceUserAction
	if isAdmin && rating.RatingUserID != callerID {
		source = delta_entities.ChangeSourceAdmin
	}
	uc.recorder.Record(ctx, &delta_entities.EntityChangeLog{
		EntityType:      delta_entities.EntityTypeSkillRating,
		EntityID:        rating.ID,
		ChangeType:      delta_entities.ChangeTypeDelete,
		AffectedUserID:  rating.RatedUserID,
		RelatedEntityID: &rating.ActivityID,
		PreviousData: map[string]interface{}{
			"rating_value": rating.RatingValue,
			"confidence":   rating.Confidence,
		},
		TriggeredBy:  &callerID,
		ChangeSource: source,
	})

	if err := uc.recalculator.Recalculate(ctx, rating.RatedUserID, rating.SkillDefinitionID); err != nil {
		return fmt.Errorf("failed to recompute skill summaries: %w", err)
	}

	slog.InfoContext(ctx, "Skill rating deleted", "rating_id", ratingID, "admin", isAdmin)

	return nil
}
