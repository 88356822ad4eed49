package skill_out

import (
	"context"
	"time"

	"github.com/google/uuid"
	skill_entities "github.com/sportlink/sportlink-api/pkg/domain/skill/entities"
)

// SkillDefinitionRepository reads the skill catalogue.
type SkillDefinitionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*skill_entities.SkillDefinition, error)
	FindAll(ctx context.Context) ([]*skill_entities.SkillDefinition, error)
}

// ActivityTypeSkillRepository reads which skills are ratable per activity type.
type ActivityTypeSkillRepository interface {
	// Exists reports whether the skill is listed for the activity type.
	Exists(ctx context.Context, activityTypeID, skillDefinitionID uuid.UUID) (bool, error)

	// FindTypesForSkill lists the activity types that list the skill.
	FindTypesForSkill(ctx context.Context, skillDefinitionID uuid.UUID) ([]uuid.UUID, error)

	// FindByActivityType lists the ratable skills of a type in display order.
	FindByActivityType(ctx context.Context, activityTypeID uuid.UUID) ([]*skill_entities.ActivityTypeSkill, error)
}

// SuspiciousPattern is one detector finding: a rater repeatedly handing the
// same extreme value to the same user.
type SuspiciousPattern struct {
	RatingUserID uuid.UUID `json:"rating_user_id" bson:"_id.rating_user_id"`
	RatedUserID  uuid.UUID `json:"rated_user_id" bson:"_id.rated_user_id"`
	RatingValue  int       `json:"rating_value" bson:"_id.rating_value"`
	Occurrences  int       `json:"occurrences" bson:"occurrences"`
}

// SkillRatingRepository persists peer ratings.
type SkillRatingRepository interface {
	Insert(ctx context.Context, rating *skill_entities.UserActivitySkillRating) error
	Update(ctx context.Context, rating *skill_entities.UserActivitySkillRating) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*skill_entities.UserActivitySkillRating, error)

	// Exists reports whether the unique (activity, rated, rater, skill) row exists.
	Exists(ctx context.Context, activityID, ratedUserID, ratingUserID, skillDefinitionID uuid.UUID) (bool, error)

	// FindByActivity lists all ratings submitted for one activity.
	FindByActivity(ctx context.Context, activityID uuid.UUID) ([]*skill_entities.UserActivitySkillRating, error)

	// FindReceivedInActivity lists ratings one user received in one activity.
	FindReceivedInActivity(ctx context.Context, activityID, ratedUserID uuid.UUID) ([]*skill_entities.UserActivitySkillRating, error)

	// FindForSummary lists ratings of a user for a skill across all
	// activities of one activity type, oldest first.
	FindForSummary(ctx context.Context, ratedUserID, skillDefinitionID, activityTypeID uuid.UUID) ([]*skill_entities.UserActivitySkillRating, error)

	// FindRecentCommented lists a user's newest received ratings that carry
	// a comment.
	FindRecentCommented(ctx context.Context, ratedUserID uuid.UUID, limit int) ([]*skill_entities.UserActivitySkillRating, error)

	// FindSuspiciousPatterns surfaces (rater, rated, value) triples with at
	// least minOccurrences extreme-valued repeats since the given time.
	FindSuspiciousPatterns(ctx context.Context, since time.Time, minOccurrences int) ([]SuspiciousPattern, error)
}

// SkillSummaryRepository persists rollups.
type SkillSummaryRepository interface {
	// UpsertTypeSummary overwrites on (user, activity type, skill) conflict.
	UpsertTypeSummary(ctx context.Context, summary *skill_entities.UserActivityTypeSkillSummary) error

	// UpsertGeneralSummary overwrites on (user, skill) conflict.
	UpsertGeneralSummary(ctx context.Context, summary *skill_entities.UserGeneralSkillSummary) error

	// DeleteTypeSummary removes a rollup that no longer has source ratings.
	DeleteTypeSummary(ctx context.Context, userID, activityTypeID, skillDefinitionID uuid.UUID) error

	// FindByUser lists a user's per-type summaries.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*skill_entities.UserActivityTypeSkillSummary, error)

	// FindByUserAndType lists a user's summaries within one activity type.
	FindByUserAndType(ctx context.Context, userID, activityTypeID uuid.UUID) ([]*skill_entities.UserActivityTypeSkillSummary, error)
}
