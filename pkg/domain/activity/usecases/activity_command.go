package activity_usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	common "github.com/sportlink/sportlink-api/pkg/domain"
	activity_entities "github.com/sportlink/sportlink-api/pkg/domain/activity/entities"
	activity_in "github.com/sportlink/sportlink-api/pkg/domain/activity/ports/in"
	activity_out "github.com/sportlink/sportlink-api/pkg/domain/activity/ports/out"
	delta_entities "github.com/sportlink/sportlink-api/pkg/domain/delta/entities"
	delta_in "github.com/sportlink/sportlink-api/pkg/domain/delta/ports/in"
	rating_out "github.com/sportlink/sportlink-api/pkg/domain/rating/ports/out"
	rating_services "github.com/sportlink/sportlink-api/pkg/domain/rating/services"
	skill_out "github.com/sportlink/sportlink-api/pkg/domain/skill/ports/out"
)

// eloBandWidth is the admission tolerance around an activity's eloLevel.
const eloBandWidth = 300

// ActivityCommandUseCase orchestrates the activity lifecycle, including the
// rating pipeline on completion.
type ActivityCommandUseCase struct {
	activityRepository    activity_out.ActivityRepository
	typeRepository        activity_out.ActivityTypeRepository
	participantRepository activity_out.ParticipantRepository
	eloRepository         rating_out.UserELORepository
	statusRepository      rating_out.ELOStatusRepository
	lockManager           *rating_services.LockManager
	engine                *rating_services.ELOEngine
	persister             *rating_services.ELOPersister
	skillRatingRepository skill_out.SkillRatingRepository
	summaryRepository     skill_out.SkillSummaryRepository
	recorder              delta_in.ChangeRecorder
	queue                 activity_out.ProcessingQueue
	defaultSettings       activity_entities.ELOSettings
}

func NewActivityCommandUseCase(
	activityRepository activity_out.ActivityRepository,
	typeRepository activity_out.ActivityTypeRepository,
	participantRepository activity_out.ParticipantRepository,
	eloRepository rating_out.UserELORepository,
	statusRepository rating_out.ELOStatusRepository,
	lockManager *rating_services.LockManager,
	engine *rating_services.ELOEngine,
	persister *rating_services.ELOPersister,
	skillRatingRepository skill_out.SkillRatingRepository,
	summaryRepository skill_out.SkillSummaryRepository,
	recorder delta_in.ChangeRecorder,
	queue activity_out.ProcessingQueue,
	defaultSettings activity_entities.ELOSettings,
) *ActivityCommandUseCase {
	return &ActivityCommandUseCase{
		activityRepository:    activityRepository,
		typeRepository:        typeRepository,
		participantRepository: participantRepository,
		eloRepository:         eloRepository,
		statusRepository:      statusRepository,
		lockManager:           lockManager,
		engine:                engine,
		persister:             persister,
		skillRatingRepository: skillRatingRepository,
		summaryRepository:     summaryRepository,
		recorder:              recorder,
		queue:                 queue,
		defaultSettings:       defaultSettings,
	}
}

func (uc *ActivityCommandUseCase) Create(ctx context.Context, cmd activity_in.CreateActivityCommand) (*activity_entities.Activity, error) {
	activityType, err := uc.typeRepository.FindByID(ctx, cmd.ActivityTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity type: %w", err)
	}
	if activityType == nil {
		return nil, common.NewErrNotFound("activity type", "id", cmd.ActivityTypeID)
	}

	if cmd.MaxParticipants != nil && *cmd.MaxParticipants < 2 {
		return nil, common.NewErrFieldValidation("invalid activity", map[string]string{
			"max_participants": "must be at least 2",
		})
	}

	activity := activity_entities.NewActivity(cmd.ActivityTypeID, cmd.CreatorID, cmd.Description, cmd.DateTime)
	activity.MaxParticipants = cmd.MaxParticipants
	activity.ELOLevel = cmd.ELOLevel
	activity.IsELORated = cmd.IsELORated

	if err := uc.activityRepository.Insert(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to persist activity: %w", err)
	}

	// The creator participates from the start.
	creator := activity_entities.NewParticipant(activity.ID, cmd.CreatorID)
	creator.Status = activity_entities.ParticipantStatusAccepted
	if err := uc.participantRepository.Insert(ctx, creator); err != nil {
		return nil, fmt.Errorf("failed to persist creator participation: %w", err)
	}

	uc.recorder.Record(ctx, &delta_entities.EntityChangeLog{
		EntityType:     delta_entities.EntityTypeActivity,
		EntityID:       activity.ID,
		ChangeType:     delta_entities.ChangeTypeCreate,
		AffectedUserID: cmd.CreatorID,
		TriggeredBy:    &cmd.CreatorID,
		ChangeSource:   delta_entities.ChangeSourceUserAction,
	})

	slog.InfoContext(ctx, "Activity created", "activity_id", activity.ID, "activity_type_id", cmd.ActivityTypeID)

	return activity, nil
}

func (uc *ActivityCommandUseCase) Join(ctx context.Context, activityID, userID uuid.UUID) (*activity_entities.ActivityParticipant, error) {
	activity, err := uc.activityRepository.FindByID(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity: %w", err)
	}
	if activity == nil {
		return nil, common.NewErrNotFound("activity", "id", activityID)
	}
	if !activity.IsScheduled() {
		return nil, common.NewErrConflict("activity is no longer open for joining")
	}

	existing, err := uc.participantRepository.FindByActivityAndUser(ctx, activityID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load participant: %w", err)
	}
	if existing != nil {
		return nil, common.NewErrConflict("user already joined this activity")
	}

	if activity.MaxParticipants != nil {
		count, err := uc.participantRepository.CountByActivity(ctx, activityID)
		if err != nil {
			return nil, fmt.Errorf("failed to count participants: %w", err)
		}
		if count >= int64(*activity.MaxParticipants) {
			return nil, common.NewErrConflict("activity is full")
		}
	}

	// ELO-banded activities only admit users within range of the target level.
	if activity.IsELORated && activity.ELOLevel != nil {
		userELO, err := uc.eloRepository.FindByUserAndType(ctx, userID, activity.ActivityTypeID)
		if err != nil {
			return nil, fmt.Errorf("failed to load user rating: %w", err)
		}
		var score int
		if userELO != nil {
			score = userELO.ELOScore
		} else {
			activityType, err := uc.typeRepository.FindByID(ctx, activity.ActivityTypeID)
			if err != nil {
				return nil, fmt.Errorf("failed to load activity type: %w", err)
			}
			if activityType == nil {
				return nil, common.NewErrNotFound("activity type", "id", activity.ActivityTypeID)
			}
			score = activityType.EffectiveELOSettings(uc.defaultSettings).StartingELO
		}
		if diff := score - *activity.ELOLevel; diff > eloBandWidth || diff < -eloBandWidth {
			return nil, common.NewErrFieldValidation("rating outside the activity's band", map[string]string{
				"elo_level": fmt.Sprintf("user rating %d is more than %d away from the activity level %d", score, eloBandWidth, *activity.ELOLevel),
			})
		}
	}

	participant := activity_entities.NewParticipant(activityID, userID)
	if err := uc.participantRepository.Insert(ctx, participant); err != nil {
		return nil, fmt.Errorf("failed to persist participant: %w", err)
	}

	uc.recorder.Record(ctx, &delta_entities.EntityChangeLog{
		EntityType:      delta_entities.EntityTypeActivity,
		EntityID:        activityID,
		ChangeType:      delta_entities.ChangeTypeUpdate,
		AffectedUserID:  activity.CreatorID,
		RelatedEntityID: &participant.ID,
		ChangeDetails:   "participant requested to join",
		TriggeredBy:     &userID,
		ChangeSource:    delta_entities.ChangeSourceUserAction,
	})

	return participant, nil
}

func (uc *ActivityCommandUseCase) Leave(ctx context.Context, activityID, userID uuid.UUID) error {
	activity, err := uc.activityRepository.FindByID(ctx, activityID)
	if err != nil {
		return fmt.Errorf("failed to load activity: %w", err)
	}
	if activity == nil {
		return common.NewErrNotFound("activity", "id", activityID)
	}
	if activity.IsCompleted() {
		return common.NewErrConflict("cannot leave a completed activity")
	}

	participant, err := uc.participantRepository.FindByActivityAndUser(ctx, activityID, userID)
	if err != nil {
		return fmt.Errorf("failed to load participant: %w", err)
	}
	if participant == nil {
		return common.NewErrNotFound("participant", "user_id", userID)
	}

	if err := uc.participantRepository.Delete(ctx, participant.ID); err != nil {
		return fmt.Errorf("failed to remove participant: %w", err)
	}

	uc.recorder.Record(ctx, &delta_entities.EntityChangeLog{
		EntityType:     delta_entities.EntityTypeActivity,
		EntityID:       activityID,
		ChangeType:     delta_entities.ChangeTypeUpdate,
		AffectedUserID: activity.CreatorID,
		ChangeDetails:  "participant left",
		TriggeredBy:    &userID,
		ChangeSource:   delta_entities.ChangeSourceUserAction,
	})

	return nil
}

func (uc *ActivityCommandUseCase) Respond(ctx context.Context, activityID, participantID, invokerID uuid.UUID, decision activity_in.RespondDecision) error {
	activity, err := uc.activityRepository.FindByID(ctx, activityID)
	if err != nil {
		return fmt.Errorf("failed to load activity: %w", err)
	}
	if activity == nil {
		return common.NewErrNotFound("activity", "id", activityID)
	}
	if activity.CreatorID != invokerID && !common.IsAdmin(ctx) {
		return common.NewErrForbidden("only the creator may respond to join requests")
	}
	if !activity.IsScheduled() {
		return common.NewErrConflict("activity is no longer accepting participant changes")
	}

	participants, err := uc.participantRepository.FindByActivity(ctx, activityID)
	if err != nil {
		return fmt.Errorf("failed to load participants: %w", err)
	}
	var participant *activity_entities.ActivityParticipant
	for _, p := range participants {
		if p.ID == participantID {
			participant = p
			break
		}
	}
	if participant == nil {
		return common.NewErrNotFound("participant", "id", participantID)
	}

	switch decision {
	case activity_in.DecisionApprove:
		participant.Status = activity_entities.ParticipantStatusAccepted
		participant.UpdatedAt = time.Now().UTC()
		err = uc.participantRepository.Update(ctx, participant)
	case activity_in.DecisionReject:
		participant.Status = activity_entities.ParticipantStatusDeclined
		participant.UpdatedAt = time.Now().UTC()
		err = uc.participantRepository.Update(ctx, participant)
	case activity_in.DecisionRemove:
		err = uc.participantRepository.Delete(ctx, participant.ID)
	default:
		return common.NewErrFieldValidation("unknown decision", map[string]string{"decision": "must be approve, reject, or remove"})
	}
	if err != nil {
		return fmt.Errorf("failed to apply participant decision: %w", err)
	}

	uc.recorder.Record(ctx, &delta_entities.EntityChangeLog{
		EntityType:      delta_entities.EntityTypeActivity,
		EntityID:        activityID,
		ChangeType:      delta_entities.ChangeTypeUpdate,
		AffectedUserID:  participant.UserID,
		RelatedEntityID: &participant.ID,
		ChangeDetails:   fmt.Sprintf("join request resolved: %s", decision),
		TriggeredBy:     &invokerID,
		ChangeSource:    delta_entities.ChangeSourceUserAction,
	})

	return nil
}

var _ activity_in.ActivityCommand = (*ActivityCommandUseCase)(nil)
