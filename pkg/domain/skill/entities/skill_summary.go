package skill_entities

import (
	"time"

	"github.com/google/uuid"
)

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// UserActivityTypeSkillSummary is the rollup of ratings a user received for
// one skill within one activity type. AverageRating is stored as the mean
// scaled by 100 (two decimal digits); readers divide at the boundary.
// Unique on (UserID, ActivityTypeID, SkillDefinitionID).
type UserActivityTypeSkillSummary struct {
	ID                uuid.UUID `json:"id" bson:"_id"`
	UserID            uuid.UUID `json:"user_id" bson:"user_id"`
	ActivityTypeID    uuid.UUID `json:"activity_type_id" bson:"activity_type_id"`
	SkillDefinitionID uuid.UUID `json:"skill_definition_id" bson:"skill_definition_id"`
	AverageRating     int       `json:"average_rating" bson:"average_rating"`
	TotalRatings      int       `json:"total_ratings" bson:"total_ratings"`
	Trend             Trend     `json:"trend" bson:"trend"`
	LastCalculatedAt  time.Time `json:"last_calculated_at" bson:"last_calculated_at"`
}

// Average returns the unscaled mean on the 1..10 scale.
func (s *UserActivityTypeSkillSummary) Average() float64 {
	return float64(s.AverageRating) / 100.0
}

// UserGeneralSkillSummary is the across-activity-type rollup for general
// skills, weighted by per-type rating counts. Unique on (UserID, SkillDefinitionID).
type UserGeneralSkillSummary struct {
	ID                uuid.UUID `json:"id" bson:"_id"`
	UserID            uuid.UUID `json:"user_id" bson:"user_id"`
	SkillDefinitionID uuid.UUID `json:"skill_definition_id" bson:"skill_definition_id"`
	AverageRating     int       `json:"average_rating" bson:"average_rating"`
	TotalRatings      int       `json:"total_ratings" bson:"total_ratings"`
	LastCalculatedAt  time.Time `json:"last_calculated_at" bson:"last_calculated_at"`
}
