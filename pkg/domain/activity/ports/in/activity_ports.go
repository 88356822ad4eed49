package activity_in

import (
	"context"
	"time"

	"github.com/google/uuid"
	activity_entities "github.com/sportlink/sportlink-api/pkg/domain/activity/entities"
	rating_entities "github.com/sportlink/sportlink-api/pkg/domain/rating/entities"
)

// CreateActivityCommand creates a scheduled activity.
type CreateActivityCommand struct {
	CreatorID       uuid.UUID `json:"-"`
	ActivityTypeID  uuid.UUID `json:"activity_type_id"`
	Description     string    `json:"description"`
	DateTime        time.Time `json:"date_time"`
	MaxParticipants *int      `json:"max_participants,omitempty"`
	ELOLevel        *int      `json:"elo_level,omitempty"`
	IsELORated      bool      `json:"is_elo_rated"`
}

// ParticipantResult is one entry of a completion request.
type ParticipantResult struct {
	UserID           uuid.UUID                      `json:"user_id"`
	FinalResult      activity_entities.FinalResult  `json:"final_result"`
	PerformanceNotes string                         `json:"performance_notes,omitempty"`
}

// CompleteActivityCommand finalises an activity and optionally triggers
// rating processing inline.
type CompleteActivityCommand struct {
	ActivityID         uuid.UUID           `json:"-"`
	InvokerID          uuid.UUID           `json:"-"`
	ParticipantResults []ParticipantResult `json:"participant_results"`
	ProcessImmediately *bool               `json:"process_immediately,omitempty"`
}

// CompleteActivityResult reports the state transition plus the rating
// processing outcome when it ran inline.
type CompleteActivityResult struct {
	Activity  *activity_entities.Activity           `json:"activity"`
	ELOStatus *rating_entities.ActivityELOStatus    `json:"elo_status,omitempty"`
}

// RespondDecision is the creator's decision on a pending participant.
type RespondDecision string

const (
	DecisionApprove RespondDecision = "approve"
	DecisionReject  RespondDecision = "reject"
	DecisionRemove  RespondDecision = "remove"
)

// TeamAssignment is one participant's computed team label.
type TeamAssignment struct {
	UserID uuid.UUID `json:"user_id"`
	Team   string    `json:"team"`
	ELO    int       `json:"elo"`
}

type ActivityCommand interface {
	Create(ctx context.Context, cmd CreateActivityCommand) (*activity_entities.Activity, error)
	Join(ctx context.Context, activityID, userID uuid.UUID) (*activity_entities.ActivityParticipant, error)
	Leave(ctx context.Context, activityID, userID uuid.UUID) error
	Respond(ctx context.Context, activityID, participantID, invokerID uuid.UUID, decision RespondDecision) error
	Complete(ctx context.Context, cmd CompleteActivityCommand) (*CompleteActivityResult, error)
	ReprocessELO(ctx context.Context, activityID, invokerID uuid.UUID) (*CompleteActivityResult, error)
	BalanceTeams(ctx context.Context, activityID, invokerID uuid.UUID) ([]TeamAssignment, error)
}

type ActivityQuery interface {
	Get(ctx context.Context, activityID uuid.UUID) (*activity_entities.Activity, error)
	ELOStatus(ctx context.Context, activityID uuid.UUID) (*rating_entities.ActivityELOStatus, error)
	Leaderboard(ctx context.Context, activityTypeID uuid.UUID, limit int) ([]*rating_entities.UserActivityTypeELO, error)
}

// PendingProcessor drains deferred or failed rating work; the background
// worker shares this entry point with the HTTP reprocess path.
type PendingProcessor interface {
	ProcessActivity(ctx context.Context, activityID uuid.UUID) (*rating_entities.ActivityELOStatus, error)
}
