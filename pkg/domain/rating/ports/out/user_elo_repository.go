package rating_out

import (
	"context"

	"github.com/google/uuid"
	rating_entities "github.com/sportlink/sportlink-api/pkg/domain/rating/entities"
)

// UserELORepository persists per-(user, activity type) ratings.
type UserELORepository interface {
	// FindByUserAndType returns the rating row, or nil when absent.
	FindByUserAndType(ctx context.Context, userID, activityTypeID uuid.UUID) (*rating_entities.UserActivityTypeELO, error)

	// FindByUsersAndType returns the existing rating rows for the given users.
	FindByUsersAndType(ctx context.Context, userIDs []uuid.UUID, activityTypeID uuid.UUID) ([]*rating_entities.UserActivityTypeELO, error)

	// Insert creates the first rating row; fails on duplicate (user, type).
	Insert(ctx context.Context, elo *rating_entities.UserActivityTypeELO) error

	// UpdateVersioned applies the row guarded by the expected version and
	// reports whether a row matched.
	UpdateVersioned(ctx context.Context, elo *rating_entities.UserActivityTypeELO, expectedVersion int64) (bool, error)

	// TopByType lists the highest-rated users of a type with at least
	// minGames games played, for leaderboards.
	TopByType(ctx context.Context, activityTypeID uuid.UUID, minGames, limit int) ([]*rating_entities.UserActivityTypeELO, error)
}
