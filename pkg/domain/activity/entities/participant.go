package activity_entities

import (
	"time"

	"github.com/google/uuid"
)

type ParticipantStatus string

const (
	ParticipantStatusPending  ParticipantStatus = "pending"
	ParticipantStatusAccepted ParticipantStatus = "accepted"
	ParticipantStatusDeclined ParticipantStatus = "declined"
)

type FinalResult string

const (
	ResultWin  FinalResult = "win"
	ResultLoss FinalResult = "loss"
	ResultDraw FinalResult = "draw"
)

// ActivityParticipant links a user to an activity. (ActivityID, UserID) is unique.
type ActivityParticipant struct {
	ID               uuid.UUID         `json:"id" bson:"_id"`
	ActivityID       uuid.UUID         `json:"activity_id" bson:"activity_id"`
	UserID           uuid.UUID         `json:"user_id" bson:"user_id"`
	Status           ParticipantStatus `json:"status" bson:"status"`
	Team             *string           `json:"team,omitempty" bson:"team,omitempty"`
	FinalResult      *FinalResult      `json:"final_result,omitempty" bson:"final_result,omitempty"`
	PerformanceNotes string            `json:"performance_notes,omitempty" bson:"performance_notes,omitempty"`
	CreatedAt        time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at" bson:"updated_at"`
}

// NewParticipant creates a pending participation request.
func NewParticipant(activityID, userID uuid.UUID) *ActivityParticipant {
	now := time.Now().UTC()
	return &ActivityParticipant{
		ID:         uuid.New(),
		ActivityID: activityID,
		UserID:     userID,
		Status:     ParticipantStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (p *ActivityParticipant) IsAccepted() bool {
	return p.Status == ParticipantStatusAccepted
}

// ValidResult reports whether the value is one of the recognised final results.
func ValidResult(r FinalResult) bool {
	switch r {
	case ResultWin, ResultLoss, ResultDraw:
		return true
	}
	return false
}
