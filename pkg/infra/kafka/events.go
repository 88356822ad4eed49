package kafka

import (
	"context"
	"time"

	"github.com/google/uuid"
	activity_out "github.com/sportlink/sportlink-api/pkg/domain/activity/ports/out"
)

// Topic constants for rating pipeline events
const (
	TopicELOPending      = "ratings.elo.pending"
	TopicELOProcessed    = "ratings.elo.processed"
	TopicSkillSubmitted  = "ratings.skill.submitted"
)

// Event types
const (
	EventTypeELOPending     = "ELO_PENDING"
	EventTypeELOProcessed   = "ELO_PROCESSED"
	EventTypeSkillSubmitted = "SKILL_RATING_SUBMITTED"
)

// EventPublisher publishes rating pipeline events to Kafka topics. A nil
// client turns every publish into a no-op for development mode.
type EventPublisher struct {
	client *Client
}

func NewEventPublisher(client *Client) *EventPublisher {
	return &EventPublisher{client: client}
}

// ELOPendingEvent wakes background workers for a deferred activity.
type ELOPendingEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	ActivityID uuid.UUID `json:"activity_id"`
	EventType  string    `json:"event_type"`
	QueuedAt   int64     `json:"queued_at"`
}

// EnqueueActivity publishes a pending-processing event. Best-effort: the
// status table is the source of truth and the drainer polls it regardless.
func (p *EventPublisher) EnqueueActivity(ctx context.Context, activityID uuid.UUID) error {
	if p.client == nil {
		return nil
	}

	event := &ELOPendingEvent{
		EventID:    uuid.New(),
		ActivityID: activityID,
		EventType:  EventTypeELOPending,
		QueuedAt:   time.Now().UnixMilli(),
	}

	msg := &Message{
		Key:       activityID.String(),
		Value:     event,
		Timestamp: time.Now(),
		Headers: map[string]string{
			"event_type": event.EventType,
		},
	}

	return p.client.Publish(ctx, TopicELOPending, msg)
}

// ELOProcessedEvent announces a finished rating run.
type ELOProcessedEvent struct {
	EventID      uuid.UUID `json:"event_id"`
	ActivityID   uuid.UUID `json:"activity_id"`
	EventType    string    `json:"event_type"`
	Participants int       `json:"participants"`
	ProcessedAt  int64     `json:"processed_at"`
}

// PublishProcessed publishes a completion event for downstream consumers.
func (p *EventPublisher) PublishProcessed(ctx context.Context, activityID uuid.UUID, participants int) error {
	if p.client == nil {
		return nil
	}

	event := &ELOProcessedEvent{
		EventID:      uuid.New(),
		ActivityID:   activityID,
		EventType:    EventTypeELOProcessed,
		Participants: participants,
		ProcessedAt:  time.Now().UnixMilli(),
	}

	msg := &Message{
		Key:       activityID.String(),
		Value:     event,
		Timestamp: time.Now(),
		Headers: map[string]string{
			"event_type": event.EventType,
		},
	}

	return p.client.Publish(ctx, TopicELOProcessed, msg)
}

var _ activity_out.ProcessingQueue = (*EventPublisher)(nil)
