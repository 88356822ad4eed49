package rating_entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	// MinimumELO is the hard floor applied after every update.
	MinimumELO = 100

	// DefaultVolatility is assigned on first rating creation.
	DefaultVolatility = 300
)

// UserActivityTypeELO is a user's rating for one activity type.
// Unique on (UserID, ActivityTypeID); Version guards concurrent writers.
type UserActivityTypeELO struct {
	ID             uuid.UUID `json:"id" bson:"_id"`
	UserID         uuid.UUID `json:"user_id" bson:"user_id"`
	ActivityTypeID uuid.UUID `json:"activity_type_id" bson:"activity_type_id"`
	ELOScore       int       `json:"elo_score" bson:"elo_score"`
	GamesPlayed    int       `json:"games_played" bson:"games_played"`
	PeakELO        int       `json:"peak_elo" bson:"peak_elo"`
	Volatility     int       `json:"volatility" bson:"volatility"`
	LastUpdated    time.Time `json:"last_updated" bson:"last_updated"`
	Version        int64     `json:"version" bson:"version"`
}

// NewUserELO creates the first rating row for a (user, activity type) pair.
func NewUserELO(userID, activityTypeID uuid.UUID, score int) *UserActivityTypeELO {
	return &UserActivityTypeELO{
		ID:             uuid.New(),
		UserID:         userID,
		ActivityTypeID: activityTypeID,
		ELOScore:       score,
		GamesPlayed:    1,
		PeakELO:        score,
		Volatility:     DefaultVolatility,
		LastUpdated:    time.Now().UTC(),
		Version:        1,
	}
}
