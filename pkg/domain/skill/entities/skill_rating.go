package skill_entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinRatingValue   = 1
	MaxRatingValue   = 10
	MinConfidence    = 1
	MaxConfidence    = 5
	MaxCommentLength = 500

	// EditWindow is how long the author may amend a rating.
	EditWindow = time.Hour
	// DeleteWindow is how long the author may hard-delete a rating.
	DeleteWindow = 24 * time.Hour
)

// UserActivitySkillRating is one peer rating.
// Unique on (ActivityID, RatedUserID, RatingUserID, SkillDefinitionID).
type UserActivitySkillRating struct {
	ID                uuid.UUID `json:"id" bson:"_id"`
	ActivityID        uuid.UUID `json:"activity_id" bson:"activity_id"`
	RatedUserID       uuid.UUID `json:"rated_user_id" bson:"rated_user_id"`
	RatingUserID      uuid.UUID `json:"rating_user_id" bson:"rating_user_id"`
	SkillDefinitionID uuid.UUID `json:"skill_definition_id" bson:"skill_definition_id"`
	RatingValue       int       `json:"rating_value" bson:"rating_value"`
	Confidence        int       `json:"confidence" bson:"confidence"`
	Comment           string    `json:"comment,omitempty" bson:"comment,omitempty"`
	IsAnonymous       bool      `json:"is_anonymous" bson:"is_anonymous"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" bson:"updated_at"`
}

// CanEdit reports whether the caller may still amend this rating.
func (r *UserActivitySkillRating) CanEdit(callerID uuid.UUID, now time.Time) bool {
	return callerID == r.RatingUserID && now.Sub(r.CreatedAt) <= EditWindow
}

// CanDelete reports whether the caller may remove this rating.
func (r *UserActivitySkillRating) CanDelete(callerID uuid.UUID, isAdmin bool, now time.Time) bool {
	if isAdmin {
		return true
	}
	return callerID == r.RatingUserID && now.Sub(r.CreatedAt) <= DeleteWindow
}
