package skill_in

import (
	"context"

	"github.com/google/uuid"
	skill_entities "github.com/sportlink/sportlink-api/pkg/domain/skill/entities"
	skill_out "github.com/sportlink/sportlink-api/pkg/domain/skill/ports/out"
)

// SubmitSkillRatingCommand is one peer-rating submission.
type SubmitSkillRatingCommand struct {
	ActivityID        uuid.UUID `json:"activity_id"`
	RatedUserID       uuid.UUID `json:"rated_user_id"`
	RatingUserID      uuid.UUID `json:"-"`
	SkillDefinitionID uuid.UUID `json:"skill_definition_id"`
	RatingValue       int       `json:"rating_value"`
	Confidence        int       `json:"confidence"`
	Comment           string    `json:"comment,omitempty"`
	IsAnonymous       bool      `json:"is_anonymous"`
}

// UpdateSkillRatingCommand amends an existing rating; only value,
// confidence, and comment are mutable.
type UpdateSkillRatingCommand struct {
	RatingID    uuid.UUID `json:"-"`
	CallerID    uuid.UUID `json:"-"`
	RatingValue *int      `json:"rating_value,omitempty"`
	Confidence  *int      `json:"confidence,omitempty"`
	Comment     *string   `json:"comment,omitempty"`
}

type SkillRatingCommand interface {
	Submit(ctx context.Context, cmd SubmitSkillRatingCommand) (*skill_entities.UserActivitySkillRating, error)
	Update(ctx context.Context, cmd UpdateSkillRatingCommand) (*skill_entities.UserActivitySkillRating, error)
	Delete(ctx context.Context, ratingID, callerID uuid.UUID, isAdmin bool) error
}

// UserSkillProfile is the /skill-ratings/user payload: rollups plus recent
// commented ratings.
type UserSkillProfile struct {
	Summaries       []*skill_entities.UserActivityTypeSkillSummary `json:"summaries"`
	RecentCommented []*skill_entities.UserActivitySkillRating      `json:"recent_commented"`
}

type SkillRatingQuery interface {
	UserProfile(ctx context.Context, userID uuid.UUID) (*UserSkillProfile, error)
	ActivityRatings(ctx context.Context, activityID, callerID uuid.UUID) ([]*skill_entities.UserActivitySkillRating, error)
	SuspiciousPatterns(ctx context.Context) ([]skill_out.SuspiciousPattern, error)
}

// SummaryRecalculator recomputes rollups after a rating mutation.
type SummaryRecalculator interface {
	Recalculate(ctx context.Context, ratedUserID, skillDefinitionID uuid.UUID) error
}
