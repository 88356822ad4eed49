package skill_services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	skill_entities "github.com/sportlink/sportlink-api/pkg/domain/skill/entities"
	skill_services "github.com/sportlink/sportlink-api/pkg/domain/skill/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestComputeTrend(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   skill_entities.Trend
	}{
		{"too few ratings stay stable", []float64{3, 9}, skill_entities.TrendStable},
		{"empty stays stable", nil, skill_entities.TrendStable},
		{"rising halves improve", []float64{5, 5, 5, 9, 9}, skill_entities.TrendImproving},
		{"falling halves decline", []float64{9, 9, 9, 3, 3}, skill_entities.TrendDeclining},
		{"flat stays stable", []float64{6, 6, 6, 6}, skill_entities.TrendStable},
		{"half-point diff is not enough", []float64{5, 5, 5.5, 5.5}, skill_entities.TrendStable},
		{"just over the threshold improves", []float64{5, 5, 5.6, 5.6}, skill_entities.TrendImproving},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, skill_services.ComputeTrend(tt.values))
		})
	}
}

func ratingRow(value int) *skill_entities.UserActivitySkillRating {
	return &skill_entities.UserActivitySkillRating{
		ID:          uuid.New(),
		RatingValue: value,
		Confidence:  3,
	}
}

func TestRecalculate_ScalesAverageByHundred(t *testing.T) {
	typeSkills := new(MockActivityTypeSkillRepository)
	ratings := new(MockSkillRatingRepository)
	summaries := new(MockSkillSummaryRepository)
	definitions := new(MockSkillDefinitionRepository)
	svc := skill_services.NewSummaryService(typeSkills, ratings, summaries, definitions)

	userID := uuid.New()
	skillID := uuid.New()
	typeID := uuid.New()

	typeSkills.On("FindTypesForSkill", mock.Anything, skillID).Return([]uuid.UUID{typeID}, nil)
	ratings.On("FindForSummary", mock.Anything, userID, skillID, typeID).Return([]*skill_entities.UserActivitySkillRating{
		ratingRow(7), ratingRow(8), ratingRow(8),
	}, nil)

	// mean 7.6667 stored as 767
	summaries.On("UpsertTypeSummary", mock.Anything, mock.MatchedBy(func(s *skill_entities.UserActivityTypeSkillSummary) bool {
		return s.AverageRating == 767 && s.TotalRatings == 3 && s.Trend == skill_entities.TrendStable
	})).Return(nil)

	definitions.On("FindByID", mock.Anything, skillID).Return(&skill_entities.SkillDefinition{
		ID:        skillID,
		IsGeneral: false,
	}, nil)

	err := svc.Recalculate(context.Background(), userID, skillID)
	require.NoError(t, err)
	summaries.AssertExpectations(t)
}

func TestRecalculate_Idempotent(t *testing.T) {
	typeSkills := new(MockActivityTypeSkillRepository)
	ratings := new(MockSkillRatingRepository)
	summaries := new(MockSkillSummaryRepository)
	definitions := new(MockSkillDefinitionRepository)
	svc := skill_services.NewSummaryService(typeSkills, ratings, summaries, definitions)

	userID := uuid.New()
	skillID := uuid.New()
	typeID := uuid.New()

	typeSkills.On("FindTypesForSkill", mock.Anything, skillID).Return([]uuid.UUID{typeID}, nil)
	ratings.On("FindForSummary", mock.Anything, userID, skillID, typeID).Return([]*skill_entities.UserActivitySkillRating{
		ratingRow(4), ratingRow(5), ratingRow(6), ratingRow(9),
	}, nil)
	definitions.On("FindByID", mock.Anything, skillID).Return(&skill_entities.SkillDefinition{ID: skillID}, nil)

	var captured []*skill_entities.UserActivityTypeSkillSummary
	summaries.On("UpsertTypeSummary", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = append(captured, args.Get(1).(*skill_entities.UserActivityTypeSkillSummary))
	}).Return(nil)

	require.NoError(t, svc.Recalculate(context.Background(), userID, skillID))
	require.NoError(t, svc.Recalculate(context.Background(), userID, skillID))

	require.Len(t, captured, 2)
	assert.Equal(t, captured[0].AverageRating, captured[1].AverageRating)
	assert.Equal(t, captured[0].TotalRatings, captured[1].TotalRatings)
	assert.Equal(t, captured[0].Trend, captured[1].Trend)
}

func TestRecalculate_GeneralSkillRollsUpAcrossTypes(t *testing.T) {
	typeSkills := new(MockActivityTypeSkillRepository)
	ratings := new(MockSkillRatingRepository)
	summaries := new(MockSkillSummaryRepository)
	definitions := new(MockSkillDefinitionRepository)
	svc := skill_services.NewSummaryService(typeSkills, ratings, summaries, definitions)

	userID := uuid.New()
	skillID := uuid.New()
	typeA := uuid.New()
	typeB := uuid.New()

	typeSkills.On("FindTypesForSkill", mock.Anything, skillID).Return([]uuid.UUID{typeA, typeB}, nil)
	// Type A: one rating of 8; type B: three ratings of 5.
	ratings.On("FindForSummary", mock.Anything, userID, skillID, typeA).Return([]*skill_entities.UserActivitySkillRating{
		ratingRow(8),
	}, nil)
	ratings.On("FindForSummary", mock.Anything, userID, skillID, typeB).Return([]*skill_entities.UserActivitySkillRating{
		ratingRow(5), ratingRow(5), ratingRow(5),
	}, nil)
	summaries.On("UpsertTypeSummary", mock.Anything, mock.Anything).Return(nil)

	definitions.On("FindByID", mock.Anything, skillID).Return(&skill_entities.SkillDefinition{
		ID:        skillID,
		IsGeneral: true,
	}, nil)

	// Weighted mean = (8*1 + 5*3) / 4 = 5.75 stored as 575.
	summaries.On("UpsertGeneralSummary", mock.Anything, mock.MatchedBy(func(s *skill_entities.UserGeneralSkillSummary) bool {
		return s.AverageRating == 575 && s.TotalRatings == 4
	})).Return(nil)

	require.NoError(t, svc.Recalculate(context.Background(), userID, skillID))
	summaries.AssertExpectations(t)
}

func TestRecalculate_DropsEmptySummaries(t *testing.T) {
	typeSkills := new(MockActivityTypeSkillRepository)
	ratings := new(MockSkillRatingRepository)
	summaries := new(MockSkillSummaryRepository)
	definitions := new(MockSkillDefinitionRepository)
	svc := skill_services.NewSummaryService(typeSkills, ratings, summaries, definitions)

	userID := uuid.New()
	skillID := uuid.New()
	typeID := uuid.New()

	typeSkills.On("FindTypesForSkill", mock.Anything, skillID).Return([]uuid.UUID{typeID}, nil)
	ratings.On("FindForSummary", mock.Anything, userID, skillID, typeID).Return([]*skill_entities.UserActivitySkillRating{}, nil)
	summaries.On("DeleteTypeSummary", mock.Anything, userID, typeID, skillID).Return(nil)
	definitions.On("FindByID", mock.Anything, skillID).Return(&skill_entities.SkillDefinition{ID: skillID}, nil)

	require.NoError(t, svc.Recalculate(context.Background(), userID, skillID))
	summaries.AssertNotCalled(t, "UpsertTypeSummary", mock.Anything, mock.Anything)
	summaries.AssertExpectations(t)
}
