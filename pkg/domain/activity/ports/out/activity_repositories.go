package activity_out

import (
	"context"

	"github.com/google/uuid"
	activity_entities "github.com/sportlink/sportlink-api/pkg/domain/activity/entities"
)

// ActivityRepository persists activities.
type ActivityRepository interface {
	Insert(ctx context.Context, activity *activity_entities.Activity) error
	Update(ctx context.Context, activity *activity_entities.Activity) error

	// FindByID returns the activity, or nil when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*activity_entities.Activity, error)

	// FindByCreator lists a user's organised activities, newest first.
	FindByCreator(ctx context.Context, creatorID uuid.UUID, limit int) ([]*activity_entities.Activity, error)
}

// ActivityTypeRepository reads the activity-type catalogue.
type ActivityTypeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*activity_entities.ActivityType, error)
	FindAll(ctx context.Context) ([]*activity_entities.ActivityType, error)
}

// ParticipantRepository persists activity participation rows.
type ParticipantRepository interface {
	Insert(ctx context.Context, participant *activity_entities.ActivityParticipant) error
	Update(ctx context.Context, participant *activity_entities.ActivityParticipant) error
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByActivity lists every participant row of an activity.
	FindByActivity(ctx context.Context, activityID uuid.UUID) ([]*activity_entities.ActivityParticipant, error)

	// FindAcceptedByActivity lists only accepted participants.
	FindAcceptedByActivity(ctx context.Context, activityID uuid.UUID) ([]*activity_entities.ActivityParticipant, error)

	// FindByActivityAndUser returns the unique row, or nil when absent.
	FindByActivityAndUser(ctx context.Context, activityID, userID uuid.UUID) (*activity_entities.ActivityParticipant, error)

	// CountByActivity counts pending plus accepted rows, for capacity checks.
	CountByActivity(ctx context.Context, activityID uuid.UUID) (int64, error)

	// FindActivityIDsByUser lists activity ids a user participates in.
	FindActivityIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}
