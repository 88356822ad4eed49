package activity_services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	common "github.com/sportlink/sportlink-api/pkg/domain"
	activity_entities "github.com/sportlink/sportlink-api/pkg/domain/activity/entities"
	activity_in "github.com/sportlink/sportlink-api/pkg/domain/activity/ports/in"
	activity_out "github.com/sportlink/sportlink-api/pkg/domain/activity/ports/out"
	rating_entities "github.com/sportlink/sportlink-api/pkg/domain/rating/entities"
	rating_out "github.com/sportlink/sportlink-api/pkg/domain/rating/ports/out"
)

const (
	defaultLeaderboardLimit = 50
	leaderboardMinGames     = 3
)

// ActivityQueryService serves activity and rating read paths.
type ActivityQueryService struct {
	activityRepository activity_out.ActivityRepository
	statusRepository   rating_out.ELOStatusRepository
	eloRepository      rating_out.UserELORepository
}

func NewActivityQueryService(
	activityRepository activity_out.ActivityRepository,
	statusRepository rating_out.ELOStatusRepository,
	eloRepository rating_out.UserELORepository,
) *ActivityQueryService {
	return &ActivityQueryService{
		activityRepository: activityRepository,
		statusRepository:   statusRepository,
		eloRepository:      eloRepository,
	}
}

func (s *ActivityQueryService) Get(ctx context.Context, activityID uuid.UUID) (*activity_entities.Activity, error) {
	activity, err := s.activityRepository.FindByID(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity: %w", err)
	}
	if activity == nil {
		return nil, common.NewErrNotFound("activity", "id", activityID)
	}
	return activity, nil
}

func (s *ActivityQueryService) ELOStatus(ctx context.Context, activityID uuid.UUID) (*rating_entities.ActivityELOStatus, error) {
	status, err := s.statusRepository.FindByActivity(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rating status: %w", err)
	}
	if status == nil {
		return nil, common.NewErrNotFound("elo status", "activity_id", activityID)
	}
	return status, nil
}

func (s *ActivityQueryService) Leaderboard(ctx context.Context, activityTypeID uuid.UUID, limit int) ([]*rating_entities.UserActivityTypeELO, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultLeaderboardLimit
	}
	top, err := s.eloRepository.TopByType(ctx, activityTypeID, leaderboardMinGames, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	return top, nil
}

var _ activity_in.ActivityQuery = (*ActivityQueryService)(nil)
