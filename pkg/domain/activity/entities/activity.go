package activity_entities

import (
	"time"

	"github.com/google/uuid"
)

type CompletionStatus string

const (
	CompletionStatusScheduled CompletionStatus = "scheduled"
	CompletionStatusCompleted CompletionStatus = "completed"
	CompletionStatusCancelled CompletionStatus = "cancelled"
)

// Activity is a single organised session of an activity type.
type Activity struct {
	ID               uuid.UUID        `json:"id" bson:"_id"`
	ActivityTypeID   uuid.UUID        `json:"activity_type_id" bson:"activity_type_id"`
	CreatorID        uuid.UUID        `json:"creator_id" bson:"creator_id"`
	Description      string           `json:"description" bson:"description"`
	DateTime         time.Time        `json:"date_time" bson:"date_time"`
	MaxParticipants  *int             `json:"max_participants,omitempty" bson:"max_participants,omitempty"`
	ELOLevel         *int             `json:"elo_level,omitempty" bson:"elo_level,omitempty"`
	IsELORated       bool             `json:"is_elo_rated" bson:"is_elo_rated"`
	CompletionStatus CompletionStatus `json:"completion_status" bson:"completion_status"`
	CreatedAt        time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at" bson:"updated_at"`
}

// NewActivity creates a scheduled activity.
func NewActivity(activityTypeID, creatorID uuid.UUID, description string, dateTime time.Time) *Activity {
	now := time.Now().UTC()
	return &Activity{
		ID:               uuid.New(),
		ActivityTypeID:   activityTypeID,
		CreatorID:        creatorID,
		Description:      description,
		DateTime:         dateTime,
		CompletionStatus: CompletionStatusScheduled,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func (a *Activity) IsScheduled() bool {
	return a.CompletionStatus == CompletionStatusScheduled
}

func (a *Activity) IsCompleted() bool {
	return a.CompletionStatus == CompletionStatusCompleted
}
