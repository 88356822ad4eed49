package delta_entities

import (
	"time"

	"github.com/google/uuid"
)

type EntityType string

const (
	EntityTypeELO         EntityType = "elo"
	EntityTypeActivity    EntityType = "activity"
	EntityTypeSkillRating EntityType = "skill_rating"
	EntityTypeConnection  EntityType = "connection"
	EntityTypeMatchmaking EntityType = "matchmaking"
	EntityTypeTeam        EntityType = "team"
	EntityTypeTeamMember  EntityType = "team_member"
)

type ChangeType string

const (
	ChangeTypeCreate ChangeType = "create"
	ChangeTypeUpdate ChangeType = "update"
	ChangeTypeDelete ChangeType = "delete"
)

type ChangeSource string

const (
	ChangeSourceUserAction ChangeSource = "user_action"
	ChangeSourceSystem     ChangeSource = "system"
	ChangeSourceAdmin      ChangeSource = "admin"
)

// EntityChangeLog is one append-only mutation record, fanned out per affected
// user. Consumers order by (CreatedAt, Seq); Seq breaks same-timestamp ties.
type EntityChangeLog struct {
	ID              uuid.UUID              `json:"id" bson:"_id"`
	EntityType      EntityType             `json:"entity_type" bson:"entity_type"`
	EntityID        uuid.UUID              `json:"entity_id" bson:"entity_id"`
	ChangeType      ChangeType             `json:"change_type" bson:"change_type"`
	AffectedUserID  uuid.UUID              `json:"affected_user_id" bson:"affected_user_id"`
	RelatedEntityID *uuid.UUID             `json:"related_entity_id,omitempty" bson:"related_entity_id,omitempty"`
	PreviousData    map[string]interface{} `json:"previous_data,omitempty" bson:"previous_data,omitempty"`
	NewData         map[string]interface{} `json:"new_data,omitempty" bson:"new_data,omitempty"`
	ChangeDetails   string                 `json:"change_details,omitempty" bson:"change_details,omitempty"`
	TriggeredBy     *uuid.UUID             `json:"triggered_by,omitempty" bson:"triggered_by,omitempty"`
	ChangeSource    ChangeSource           `json:"change_source" bson:"change_source"`
	Seq             int64                  `json:"seq" bson:"seq"`
	CreatedAt       time.Time              `json:"created_at" bson:"created_at"`
}

// SyncClasses are the entity classes tracked by per-user cursors.
var SyncClasses = []EntityType{
	EntityTypeELO,
	EntityTypeActivity,
	EntityTypeSkillRating,
	EntityTypeConnection,
	EntityTypeMatchmaking,
}

// IsSyncClass reports whether the class has a dedicated cursor.
func IsSyncClass(t EntityType) bool {
	for _, c := range SyncClasses {
		if c == t {
			return true
		}
	}
	return false
}
