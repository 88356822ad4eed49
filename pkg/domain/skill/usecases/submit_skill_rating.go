package skill_usecases

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	common "github.com/sportlink/sportlink-api/pkg/domain"
	activity_out "github.com/sportlink/sportlink-api/pkg/domain/activity/ports/out"
	delta_entities "github.com/sportlink/sportlink-api/pkg/domain/delta/entities"
	delta_in "github.com/sportlink/sportlink-api/pkg/domain/delta/ports/in"
	skill_entities "github.com/sportlink/sportlink-api/pkg/domain/skill/entities"
	skill_in "github.com/sportlink/sportlink-api/pkg/domain/skill/ports/in"
	skill_out "github.com/sportlink/sportlink-api/pkg/domain/skill/ports/out"
)

// SkillRatingCommandUseCase validates and persists one peer rating, emits the
// change event, and triggers summary recomputation.
type SkillRatingCommandUseCase struct {
	activityRepository    activity_out.ActivityRepository
	participantRepository activity_out.ParticipantRepository
	typeSkillRepository   skill_out.ActivityTypeSkillRepository
	ratingRepository      skill_out.SkillRatingRepository
	recalculator          skill_in.SummaryRecalculator
	recorder              delta_in.ChangeRecorder
}

func NewSkillRatingCommandUseCase(
	activityRepository activity_out.ActivityRepository,
	participantRepository activity_out.ParticipantRepository,
	typeSkillRepository skill_out.ActivityTypeSkillRepository,
	ratingRepository skill_out.SkillRatingRepository,
	recalculator skill_in.SummaryRecalculator,
	recorder delta_in.ChangeRecorder,
) *SkillRatingCommandUseCase {
	return &SkillRatingCommandUseCase{
		activityRepository:    activityRepository,
		participantRepository: participantRepository,
		typeSkillRepository:   typeSkillRepository,
		ratingRepository:      ratingRepository,
		recalculator:          recalculator,
		recorder:              recorder,
	}
}

func (uc *SkillRatingCommandUseCase) Submit(ctx context.Context, cmd skill_in.SubmitSkillRatingCommand) (*skill_entities.UserActivitySkillRating, error) {
	// 1. The activity must exist and be completed.
	activity, err := uc.activityRepository.FindByID(ctx, cmd.ActivityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity: %w", err)
	}
	if activity == nil {
		return nil, common.NewErrNotFound("activity", "id", cmd.ActivityID)
	}
	if !activity.IsCompleted() {
		return nil, common.NewErrConflict("skill ratings can only be submitted for completed activities")
	}

	// 2. Both users must be accepted participants.
	for _, userID := range []uuid.UUID{cmd.RatingUserID, cmd.RatedUserID} {
		participant, err := uc.participantRepository.FindByActivityAndUser(ctx, cmd.ActivityID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load participant: %w", err)
		}
		if participant == nil || !participant.IsAccepted() {
			return nil, common.NewErrForbidden("both users must be accepted participants of the activity")
		}
	}

	// 3. No self-rating.
	if cmd.RatedUserID == cmd.RatingUserID {
		return nil, common.NewErrFieldValidation("users cannot rate themselves", map[string]string{
			"rated_user_id": "must differ from the rating user",
		})
	}

	// 4. Value ranges.
	if fields := validateRatingFields(cmd.RatingValue, cmd.Confidence, cmd.Comment); len(fields) > 0 {
		return nil, common.NewErrFieldValidation("invalid rating payload", fields)
	}

	// 5. The skill must be ratable for this activity's type.
	eligible, err := uc.typeSkillRepository.Exists(ctx, activity.ActivityTypeID, cmd.SkillDefinitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to check skill eligibility: %w", err)
	}
	if !eligible {
		return nil, common.NewErrFieldValidation("skill is not ratable for this activity type", map[string]string{
			"skill_definition_id": "not listed for the activity's type",
		})
	}

	// 6. No duplicate submission.
	exists, err := uc.ratingRepository.Exists(ctx, cmd.ActivityID, cmd.RatedUserID, cmd.RatingUserID, cmd.SkillDefinitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate rating: %w", err)
	}
	if exists {
		return nil, common.NewErrFieldValidation("rating already submitted", map[string]string{
			"skill_definition_id": "already rated this user for this skill in this activity",
		})
	}

	rating := &skill_entities.UserActivitySkillRating{
		ID:                uuid.New(),
		ActivityID:        cmd.ActivityID,
		RatedUserID:       cmd.RatedUserID,
		RatingUserID:      cmd.RatingUserID,
		SkillDefinitionID: cmd.SkillDefinitionID,
		RatingValue:       cmd.RatingValue,
		Confidence:        cmd.Confidence,
		Comment:           cmd.Comment,
		IsAnonymous:       cmd.IsAnonymous,
	}

	if err := uc.ratingRepository.Insert(ctx, rating); err != nil {
		return nil, fmt.Errorf("failed to persist skill rating: %w", err)
	}

	uc.recorder.Record(ctx, &delta_entities.EntityChangeLog{
		EntityType:      delta_entities.EntityTypeSkillRating,
		EntityID:        rating.ID,
		ChangeType:      delta_entities.ChangeTypeCreate,
		AffectedUserID:  cmd.RatedUserID,
		RelatedEntityID: &cmd.ActivityID,
		NewData: map[string]interface{}{
			"skill_definition_id": cmd.SkillDefinitionID.String(),
			"rating_value":        cmd.RatingValue,
		},
		TriggeredBy:  &cmd.RatingUserID,
		ChangeSource: delta_entities.ChangeSourceUserAction,
	})

	if err := uc.recalculator.Recalculate(ctx, cmd.RatedUserID, cmd.SkillDefinitionID); err != nil {
		return nil, fmt.Errorf("failed to recompute skill summaries: %w", err)
	}

	slog.InfoContext(ctx, "Skill rating submitted",
		"activity_id", cmd.ActivityID,
		"rated_user_id", cmd.RatedUserID,
		"skill_definition_id", cmd.SkillDefinitionID,
	)

	return rating, nil
}

func validateRatingFields(value, confidence int, comment string) map[string]string {
	fields := make(map[string]string)
	if value < skill_entities.MinRatingValue || value > skill_entities.MaxRatingValue {
		fields["rating_value"] = fmt.Sprintf("must be between %d and %d", skill_entities.MinRatingValue, skill_entities.MaxRatingValue)
	}
	if confidence < skill_entities.MinConfidence || confidence > skill_entities.MaxConfidence {
		fields["confidence"] = fmt.Sprintf("must be between %d and %d", skill_entities.MinConfidence, skill_entities.MaxConfidence)
	}
	if len(comment) > skill_entities.MaxCommentLength {
		fields["comment"] = fmt.Sprintf("must be at most %d characters", skill_entities.MaxCommentLength)
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

var _ skill_in.SkillRatingCommand = (*SkillRatingCommandUseCase)(nil)
