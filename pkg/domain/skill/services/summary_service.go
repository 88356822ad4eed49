package skill_services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	skill_entities "github.com/sportlink/sportlink-api/pkg/domain/skill/entities"
	skill_in "github.com/sportlink/sportlink-api/pkg/domain/skill/ports/in"
	skill_out "github.com/sportlink/sportlink-api/pkg/domain/skill/ports/out"
)

// trendMinimumRatings is the sample size below which the trend stays stable.
const trendMinimumRatings = 3

// SummaryService recomputes per-(user, activity type, skill) rollups from
// the raw ratings. Recomputation is idempotent: repeated runs over the same
// data produce identical rows.
type SummaryService struct {
	typeSkillRepository skill_out.ActivityTypeSkillRepository
	ratingRepository    skill_out.SkillRatingRepository
	summaryRepository   skill_out.SkillSummaryRepository
	definitionRepo      skill_out.SkillDefinitionRepository
}

func NewSummaryService(
	typeSkillRepository skill_out.ActivityTypeSkillRepository,
	ratingRepository skill_out.SkillRatingRepository,
	summaryRepository skill_out.SkillSummaryRepository,
	definitionRepo skill_out.SkillDefinitionRepository,
) *SummaryService {
	return &SummaryService{
		typeSkillRepository: typeSkillRepository,
		ratingRepository:    ratingRepository,
		summaryRepository:   summaryRepository,
		definitionRepo:      definitionRepo,
	}
}

// Recalculate refreshes every activity-type rollup for (user, skill), plus
// the cross-type general rollup when the skill is general.
func (s *SummaryService) Recalculate(ctx context.Context, ratedUserID, skillDefinitionID uuid.UUID) error {
	typeIDs, err := s.typeSkillRepository.FindTypesForSkill(ctx, skillDefinitionID)
	if err != nil {
		return fmt.Errorf("failed to list activity types for skill %s: %w", skillDefinitionID, err)
	}

	now := time.Now().UTC()
	type typeStats struct {
		average float64
		count   int
	}
	perType := make(map[uuid.UUID]typeStats)

	for _, typeID := range typeIDs {
		ratings, err := s.ratingRepository.FindForSummary(ctx, ratedUserID, skillDefinitionID, typeID)
		if err != nil {
			return fmt.Errorf("failed to load ratings for summary: %w", err)
		}

		if len(ratings) == 0 {
			if err := s.summaryRepository.DeleteTypeSummary(ctx, ratedUserID, typeID, skillDefinitionID); err != nil {
				return fmt.Errorf("failed to drop empty summary: %w", err)
			}
			continue
		}

		values := make([]float64, len(ratings))
		var sum float64
		for i, r := range ratings {
			values[i] = float64(r.RatingValue)
			sum += values[i]
		}
		avg := sum / float64(len(values))

		summary := &skill_entities.UserActivityTypeSkillSummary{
			ID:                uuid.New(),
			UserID:            ratedUserID,
			ActivityTypeID:    typeID,
			SkillDefinitionID: skillDefinitionID,
			AverageRating:     int(math.Round(avg * 100)),
			TotalRatings:      len(values),
			Trend:             ComputeTrend(values),
			LastCalculatedAt:  now,
		}

		if err := s.summaryRepository.UpsertTypeSummary(ctx, summary); err != nil {
			return fmt.Errorf("failed to upsert skill summary: %w", err)
		}

		perType[typeID] = typeStats{average: avg, count: len(values)}
	}

	definition, err := s.definitionRepo.FindByID(ctx, skillDefinitionID)
	if err != nil {
		return fmt.Errorf("failed to load skill definition %s: %w", skillDefinitionID, err)
	}
	if definition != nil && definition.IsGeneral && len(perType) > 0 {
		var weightedSum float64
		var total int
		for _, st := range perType {
			weightedSum += st.average * float64(st.count)
			total += st.count
		}

		general := &skill_entities.UserGeneralSkillSummary{
			ID:                uuid.New(),
			UserID:            ratedUserID,
			SkillDefinitionID: skillDefinitionID,
			AverageRating:     int(math.Round(weightedSum / float64(total) * 100)),
			TotalRatings:      total,
			LastCalculatedAt:  now,
		}
		if err := s.summaryRepository.UpsertGeneralSummary(ctx, general); err != nil {
			return fmt.Errorf("failed to upsert general skill summary: %w", err)
		}
	}

	slog.InfoContext(ctx, "Recalculated skill summaries",
		"rated_user_id", ratedUserID,
		"skill_definition_id", skillDefinitionID,
		"activity_types", len(perType),
	)

	return nil
}

// ComputeTrend compares the mean of the newest floor(n/2) ratings against
// the mean of the oldest ceil(n/2). Values must be ordered oldest first.
func ComputeTrend(values []float64) skill_entities.Trend {
	n := len(values)
	if n < trendMinimumRatings {
		return skill_entities.TrendStable
	}

	oldCount := (n + 1) / 2
	oldMean := mean(values[:oldCount])
	newMean := mean(values[oldCount:])

	diff := newMean - oldMean
	switch {
	case diff > 0.5:
		return skill_entities.TrendImproving
	case diff < -0.5:
		return skill_entities.TrendDeclining
	default:
		return skill_entities.TrendStable
	}
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

var _ skill_in.SummaryRecalculator = (*SummaryService)(nil)
