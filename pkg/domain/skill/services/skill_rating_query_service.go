package skill_services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	common "github.com/sportlink/sportlink-api/pkg/domain"
	activity_out "github.com/sportlink/sportlink-api/pkg/domain/activity/ports/out"
	skill_entities "github.com/sportlink/sportlink-api/pkg/domain/skill/entities"
	skill_in "github.com/sportlink/sportlink-api/pkg/domain/skill/ports/in"
	skill_out "github.com/sportlink/sportlink-api/pkg/domain/skill/ports/out"
)

const (
	recentCommentedLimit = 10

	// Suspicious-pattern detector thresholds: identical extreme values
	// repeated by the same rater for the same user within the window.
	suspiciousWindow         = 30 * 24 * time.Hour
	suspiciousMinOccurrences = 3
)

// SkillRatingQueryService serves rating read paths.
type SkillRatingQueryService struct {
	ratingRepository      skill_out.SkillRatingRepository
	summaryRepository     skill_out.SkillSummaryRepository
	activityRepository    activity_out.ActivityRepository
	participantRepository activity_out.ParticipantRepository
}

func NewSkillRatingQueryService(
	ratingRepository skill_out.SkillRatingRepository,
	summaryRepository skill_out.SkillSummaryRepository,
	activityRepository activity_out.ActivityRepository,
	participantRepository activity_out.ParticipantRepository,
) *SkillRatingQueryService {
	return &SkillRatingQueryService{
		ratingRepository:      ratingRepository,
		summaryRepository:     summaryRepository,
		activityRepository:    activityRepository,
		participantRepository: participantRepository,
	}
}

func (s *SkillRatingQueryService) UserProfile(ctx context.Context, userID uuid.UUID) (*skill_in.UserSkillProfile, error) {
	summaries, err := s.summaryRepository.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load skill summaries: %w", err)
	}

	recent, err := s.ratingRepository.FindRecentCommented(ctx, userID, recentCommentedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent ratings: %w", err)
	}

	// Raters who asked for anonymity are blanked out of the payload.
	for _, r := range recent {
		if r.IsAnonymous {
			r.RatingUserID = uuid.Nil
		}
	}

	return &skill_in.UserSkillProfile{
		Summaries:       summaries,
		RecentCommented: recent,
	}, nil
}

func (s *SkillRatingQueryService) ActivityRatings(ctx context.Context, activityID, callerID uuid.UUID) ([]*skill_entities.UserActivitySkillRating, error) {
	activity, err := s.activityRepository.FindByID(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity: %w", err)
	}
	if activity == nil {
		return nil, common.NewErrNotFound("activity", "id", activityID)
	}

	if activity.CreatorID != callerID && !common.IsAdmin(ctx) {
		participant, err := s.participantRepository.FindByActivityAndUser(ctx, activityID, callerID)
		if err != nil {
			return nil, fmt.Errorf("failed to load participant: %w", err)
		}
		if participant == nil {
			return nil, common.NewErrForbidden("only participants and the creator may view activity ratings")
		}
	}

	ratings, err := s.ratingRepository.FindByActivity(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity ratings: %w", err)
	}

	for _, r := range ratings {
		if r.IsAnonymous && r.RatingUserID != callerID {
			r.RatingUserID = uuid.Nil
		}
	}

	return ratings, nil
}

// SuspiciousPatterns surfaces likely rating collusion without acting on it.
func (s *SkillRatingQueryService) SuspiciousPatterns(ctx context.Context) ([]skill_out.SuspiciousPattern, error) {
	if !common.IsAdmin(ctx) {
		return nil, common.NewErrForbidden("only admins may view suspicious rating patterns")
	}

	since := time.Now().UTC().Add(-suspiciousWindow)
	patterns, err := s.ratingRepository.FindSuspiciousPatterns(ctx, since, suspiciousMinOccurrences)
	if err != nil {
		return nil, fmt.Errorf("failed to scan for suspicious rating patterns: %w", err)
	}

	return patterns, nil
}

var _ skill_in.SkillRatingQuery = (*SkillRatingQueryService)(nil)
