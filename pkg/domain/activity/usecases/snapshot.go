package activity_usecases

import (
	"context"
	"fmt"

	common "github.com/sportlink/sportlink-api/pkg/domain"
	activity_entities "github.com/sportlink/sportlink-api/pkg/domain/activity/entities"
	rating_entities "github.com/sportlink/sportlink-api/pkg/domain/rating/entities"
	rating_services "github.com/sportlink/sportlink-api/pkg/domain/rating/services"
)

// loadSnapshot assembles the engine input: settings, accepted participants
// with their ratings, and per-participant skill bonuses derived from peer
// ratings received in this activity versus historical summaries.
func (uc *ActivityCommandUseCase) loadSnapshot(ctx context.Context, activity *activity_entities.Activity) (*rating_services.EngineInput, error) {
	activityType, err := uc.typeRepository.FindByID(ctx, activity.ActivityTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity type: %w", err)
	}
	if activityType == nil {
		return nil, common.NewErrNotFound("activity type", "id", activity.ActivityTypeID)
	}
	settings := activityType.EffectiveELOSettings(uc.defaultSettings)

	accepted, err := uc.participantRepository.FindAcceptedByActivity(ctx, activity.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load participants: %w", err)
	}

	if settings.TeamBased {
		if err := validateTeamResults(accepted); err != nil {
			return nil, err
		}
	}

	participants := make([]rating_services.EngineParticipant, 0, len(accepted))
	for _, p := range accepted {
		if p.FinalResult == nil {
			return nil, common.NewErrValidation(fmt.Sprintf("participant %s has no final result", p.UserID))
		}

		ep := rating_services.EngineParticipant{
			UserID:      p.UserID,
			CurrentELO:  settings.StartingELO,
			GamesPlayed: 0,
			Volatility:  rating_entities.DefaultVolatility,
			Team:        p.Team,
			FinalResult: *p.FinalResult,
		}

		elo, err := uc.eloRepository.FindByUserAndType(ctx, p.UserID, activity.ActivityTypeID)
		if err != nil {
			return nil, fmt.Errorf("failed to load user rating: %w", err)
		}
		if elo != nil {
			ep.CurrentELO = elo.ELOScore
			ep.GamesPlayed = elo.GamesPlayed
			ep.Volatility = elo.Volatility
		}

		received, err := uc.skillRatingRepository.FindReceivedInActivity(ctx, activity.ID, p.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to load received skill ratings: %w", err)
		}
		ratings := make([]rating_services.ReceivedSkillRating, len(received))
		for i, r := range received {
			ratings[i] = rating_services.ReceivedSkillRating{Value: r.RatingValue, Confidence: r.Confidence}
		}

		summaries, err := uc.summaryRepository.FindByUser(ctx, p.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to load skill summaries: %w", err)
		}
		averages := make([]float64, len(summaries))
		for i, s := range summaries {
			averages[i] = s.Average()
		}

		ep.SkillBonus = rating_services.ComputeSkillBonus(ratings, averages, settings.SkillInfluence)
		participants = append(participants, ep)
	}

	return &rating_services.EngineInput{
		ActivityID:     activity.ID,
		ActivityTypeID: activity.ActivityTypeID,
		Settings:       settings,
		Participants:   participants,
	}, nil
}

// validateTeamResults checks every member of a team shares one result
// before the engine runs.
func validateTeamResults(participants []*activity_entities.ActivityParticipant) error {
	results := make(map[string]activity_entities.FinalResult)
	for _, p := range participants {
		if p.Team == nil || *p.Team == "" {
			return common.NewErrValidation(fmt.Sprintf("participant %s has no team assignment", p.UserID))
		}
		if p.FinalResult == nil {
			continue
		}
		if prev, ok := results[*p.Team]; ok && prev != *p.FinalResult {
			return common.NewErrValidation(fmt.Sprintf("team %q has conflicting results", *p.Team))
		}
		results[*p.Team] = *p.FinalResult
	}
	return nil
}
