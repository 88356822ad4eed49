package rating_entities

import (
	"time"

	"github.com/google/uuid"
)

type ELOStatus string

const (
	ELOStatusPending     ELOStatus = "pending"
	ELOStatusCalculating ELOStatus = "calculating"
	ELOStatusCompleted   ELOStatus = "completed"
	ELOStatusError       ELOStatus = "error"
)

// DefaultLockTTL is how long a calculating holder keeps the lock before
// another server may take it over.
const DefaultLockTTL = 5 * time.Minute

// ActivityELOStatus is the per-activity processing record doubling as the
// distributed lock row. Unique on ActivityID.
type ActivityELOStatus struct {
	ID           uuid.UUID  `json:"id" bson:"_id"`
	ActivityID   uuid.UUID  `json:"activity_id" bson:"activity_id"`
	Status       ELOStatus  `json:"status" bson:"status"`
	LockedBy     string     `json:"locked_by,omitempty" bson:"locked_by,omitempty"`
	LockedAt     *time.Time `json:"locked_at,omitempty" bson:"locked_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty" bson:"error_message,omitempty"`
	RetryCount   int        `json:"retry_count" bson:"retry_count"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
}
