package delta_entities

import (
	"time"

	"github.com/google/uuid"
)

type ClientType string

const (
	ClientTypeWeb    ClientType = "web"
	ClientTypeMobile ClientType = "mobile"
)

// UserDeltaCursor tracks one user's last-observed timestamp per entity class.
// The five cursors are independent so a slow consumer for one class does not
// starve the others. Unique on UserID.
type UserDeltaCursor struct {
	ID                    uuid.UUID  `json:"id" bson:"_id"`
	UserID                uuid.UUID  `json:"user_id" bson:"user_id"`
	LastELOSync           time.Time  `json:"last_elo_sync" bson:"last_elo_sync"`
	LastActivitySync      time.Time  `json:"last_activity_sync" bson:"last_activity_sync"`
	LastSkillRatingSync   time.Time  `json:"last_skill_rating_sync" bson:"last_skill_rating_sync"`
	LastConnectionSync    time.Time  `json:"last_connection_sync" bson:"last_connection_sync"`
	LastMatchmakingSync   time.Time  `json:"last_matchmaking_sync" bson:"last_matchmaking_sync"`
	ClientType            ClientType `json:"client_type" bson:"client_type"`
	LastActiveAt          time.Time  `json:"last_active_at" bson:"last_active_at"`
	PreferredPollInterval int        `json:"preferred_poll_interval" bson:"preferred_poll_interval"`
	CreatedAt             time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at" bson:"updated_at"`
}

// NewCursor creates a cursor row with every sync timestamp set to now, so a
// new user sees no pre-existing history.
func NewCursor(userID uuid.UUID, clientType ClientType, now time.Time) *UserDeltaCursor {
	return &UserDeltaCursor{
		ID:                  uuid.New(),
		UserID:              userID,
		LastELOSync:         now,
		LastActivitySync:    now,
		LastSkillRatingSync: now,
		LastConnectionSync:  now,
		LastMatchmakingSync: now,
		ClientType:          clientType,
		LastActiveAt:        now,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// SyncTime returns the cursor timestamp for the given entity class.
func (c *UserDeltaCursor) SyncTime(class EntityType) time.Time {
	switch class {
	case EntityTypeELO:
		return c.LastELOSync
	case EntityTypeActivity:
		return c.LastActivitySync
	case EntityTypeSkillRating:
		return c.LastSkillRatingSync
	case EntityTypeConnection:
		return c.LastConnectionSync
	case EntityTypeMatchmaking:
		return c.LastMatchmakingSync
	}
	return time.Time{}
}

// SetSyncTime updates the cursor timestamp for the given entity class.
func (c *UserDeltaCursor) SetSyncTime(class EntityType, ts time.Time) {
	switch class {
	case EntityTypeELO:
		c.LastELOSync = ts
	case EntityTypeActivity:
		c.LastActivitySync = ts
	case EntityTypeSkillRating:
		c.LastSkillRatingSync = ts
	case EntityTypeConnection:
		c.LastConnectionSync = ts
	case EntityTypeMatchmaking:
		c.LastMatchmakingSync = ts
	}
}
