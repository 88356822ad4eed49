package skill_usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	common "github.com/sportlink/sportlink-api/pkg/domain"
	delta_entities "github.com/sportlink/sportlink-api/pkg/domain/delta/entities"
	skill_entities "github.com/sportlink/sportlink-api/pkg/domain/skill/entities"
	skill_in "github.com/sportlink/sportlink-api/pkg/domain/skill/ports/in"
)

// Update amends a rating's value, confidence, or comment. Only the author
// may do so, and only within the edit window.
func (uc *SkillRatingCommandUseCase) Update(ctx context.Context, cmd skill_in.UpdateSkillRatingCommand) (*skill_entities.UserActivitySkillRating, error) {
	rating, err := uc.ratingRepository.FindByID(ctx, cmd.RatingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load skill rating: %w", err)
	}
	if rating == nil {
		return nil, common.NewErrNotFound("skill rating", "id", cmd.RatingID)
	}

	now := time.Now().UTC()
	if rating.RatingUserID != cmd.CallerID {
		return nil, common.NewErrForbidden("only the rating author may amend it")
	}
	if !rating.CanEdit(cmd.CallerID, now) {
		return nil, common.NewErrConflict("ratings can only be amended within one hour of submission")
	}

	previous := map[string]interface{}{
		"rating_value": rating.RatingValue,
		"confidence":   rating.Confidence,
	}

	if cmd.RatingValue != nil {
		rating.RatingValue = *cmd.RatingValue
	}
	if cmd.Confidence != nil {
		rating.Confidence = *cmd.Confidence
	}
	if cmd.Comment != nil {
		rating.Comment = *cmd.Comment
	}
	if fields := validateRatingFields(rating.RatingValue, rating.Confidence, rating.Comment); len(fields) > 0 {
		return nil, common.NewErrFieldValidation("invalid rating payload", fields)
	}
	rating.UpdatedAt = now

	if err := uc.ratingRepository.Update(ctx, rating); err != nil {
		return nil, fmt.Errorf("failed to update skill rating: %w", err)
	}

	uc.recorder.Record(ctx, &delta_entities.EntityChangeLog{
		EntityType:      delta_entities.EntityTypeSkillRating,
		EntityID:        rating.ID,
		ChangeType:      delta_entities.ChangeTypeUpdate,
		AffectedUserID:  rating.RatedUserID,
		RelatedEntityID: &rating.ActivityID,
		PreviousData:    previous,
		NewData: map[string]interface{}{
			"rating_value": rating.RatingValue,
			"confidence":   rating.Confidence,
		},
		TriggeredBy:  &cmd.CallerID,
		ChangeSource: delta_entities.ChangeSourceUserAction,
	})

	if err := uc.recalculator.Recalculate(ctx, rating.RatedUserID, rating.SkillDefinitionID); err != nil {
		return nil, fmt.Errorf("failed to recompute skill summaries: %w", err)
	}

	slog.InfoContext(ctx, "Skill rating updated", "rating_id", rating.ID, "rated_user_id", rating.RatedUserID)

	return rating, nil
}
