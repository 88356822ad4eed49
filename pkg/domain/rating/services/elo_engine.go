package rating_services

import (
	"math"

	"github.com/google/uuid"
	activity_entities "github.com/sportlink/sportlink-api/pkg/domain/activity/entities"
	common "github.com/sportlink/sportlink-api/pkg/domain"
	rating_entities "github.com/sportlink/sportlink-api/pkg/domain/rating/entities"
)

// EngineParticipant is one participant's input snapshot. SkillBonus is
// precomputed by the snapshot loader via ComputeSkillBonus.
type EngineParticipant struct {
	UserID      uuid.UUID
	CurrentELO  int
	GamesPlayed int
	Volatility  int
	Team        *string
	FinalResult activity_entities.FinalResult
	SkillBonus  int
}

// EngineInput is the full snapshot for one activity. The engine is pure:
// identical inputs produce identical outputs regardless of wall time.
type EngineInput struct {
	ActivityID     uuid.UUID
	ActivityTypeID uuid.UUID
	Settings       activity_entities.ELOSettings
	Participants   []EngineParticipant
}

// ParticipantDelta is one participant's computed rating change.
type ParticipantDelta struct {
	UserID     uuid.UUID
	OldELO     int
	NewELO     int
	Change     int
	KFactor    float64
	SkillBonus int
}

// ELOEngine computes per-participant rating deltas for a completed activity,
// in individual (pairwise) or team (averaged) mode.
type ELOEngine struct{}

func NewELOEngine() *ELOEngine {
	return &ELOEngine{}
}

// Calculate produces the deltas for every participant. Deltas are returned
// in input order.
func (e *ELOEngine) Calculate(input EngineInput) ([]ParticipantDelta, error) {
	min := input.Settings.MinimumParticipants
	if min < 2 {
		min = 2
	}
	if len(input.Participants) < min {
		return nil, &common.ErrInsufficientParticipants{Required: min, Actual: len(input.Participants)}
	}

	if input.Settings.TeamBased {
		return e.calculateTeamMode(input)
	}
	return e.calculateIndividualMode(input)
}

// calculateIndividualMode scores every player pairwise against every other
// opponent and averages the contributions.
func (e *ELOEngine) calculateIndividualMode(input EngineInput) ([]ParticipantDelta, error) {
	participants := input.Participants
	deltas := make([]ParticipantDelta, len(participants))

	for i, p := range participants {
		k := KFactor(p.GamesPlayed, p.Volatility, input.Settings)

		var sum float64
		for j, opp := range participants {
			if i == j {
				continue
			}
			expected := ExpectedScore(p.CurrentELO, opp.CurrentELO)
			actual := pairwiseActual(p.FinalResult, opp.FinalResult)
			sum += k * (actual - expected)
		}

		change := sum / float64(len(participants)-1)
		deltas[i] = finalizeDelta(p, change, k)
	}

	return deltas, nil
}

// calculateTeamMode groups participants by team label, scores teams against
// each other on mean ELO, and applies each team-pair contribution to every
// member with the member's own K.
func (e *ELOEngine) calculateTeamMode(input EngineInput) ([]ParticipantDelta, error) {
	type teamGroup struct {
		label   string
		members []int
		meanELO float64
		result  activity_entities.FinalResult
	}

	index := make(map[string]int)
	teams := make([]teamGroup, 0, 2)
	for i, p := range input.Participants {
		label := ""
		if p.Team != nil {
			label = *p.Team
		}
		ti, ok := index[label]
		if !ok {
			ti = len(teams)
			index[label] = ti
			teams = append(teams, teamGroup{label: label, result: p.FinalResult})
		}
		teams[ti].members = append(teams[ti].members, i)
	}

	if len(teams) < 2 {
		return nil, &common.ErrInsufficientTeams{Actual: len(teams)}
	}

	for ti := range teams {
		var total float64
		for _, mi := range teams[ti].members {
			total += float64(input.Participants[mi].CurrentELO)
		}
		teams[ti].meanELO = total / float64(len(teams[ti].members))
	}

	// Each member accumulates the sum of its team's pairwise contributions.
	changes := make([]float64, len(input.Participants))
	for a := 0; a < len(teams); a++ {
		for b := a + 1; b < len(teams); b++ {
			expectedA := expectedScoreFloat(teams[a].meanELO, teams[b].meanELO)
			actualA := pairwiseActual(teams[a].result, teams[b].result)
			expectedB := 1 - expectedA
			actualB := 1 - actualA

			for _, mi := range teams[a].members {
				p := input.Participants[mi]
				k := KFactor(p.GamesPlayed, p.Volatility, input.Settings)
				changes[mi] += k * (actualA - expectedA)
			}
			for _, mi := range teams[b].members {
				p := input.Participants[mi]
				k := KFactor(p.GamesPlayed, p.Volatility, input.Settings)
				changes[mi] += k * (actualB - expectedB)
			}
		}
	}

	deltas := make([]ParticipantDelta, len(input.Participants))
	for i, p := range input.Participants {
		deltas[i] = finalizeDelta(p, changes[i], KFactor(p.GamesPlayed, p.Volatility, input.Settings))
	}

	return deltas, nil
}

func finalizeDelta(p EngineParticipant, change, k float64) ParticipantDelta {
	newELO := int(math.Round(float64(p.CurrentELO) + change + float64(p.SkillBonus)))
	if newELO < rating_entities.MinimumELO {
		newELO = rating_entities.MinimumELO
	}
	return ParticipantDelta{
		UserID:     p.UserID,
		OldELO:     p.CurrentELO,
		NewELO:     newELO,
		Change:     newELO - p.CurrentELO,
		KFactor:    k,
		SkillBonus: p.SkillBonus,
	}
}

// KFactor selects the update multiplier for a participant. Provisional
// players get the elevated new-player K, boosted further by accumulated
// volatility above the baseline.
func KFactor(gamesPlayed, volatility int, settings activity_entities.ELOSettings) float64 {
	switch {
	case gamesPlayed < settings.ProvisionalGames:
		boost := float64(volatility-rating_entities.DefaultVolatility) / 10.0
		if boost < 0 {
			boost = 0
		}
		return settings.KFactor.New + boost
	case gamesPlayed < 100:
		return settings.KFactor.Established
	default:
		return settings.KFactor.Expert
	}
}

// ExpectedScore is the 400-based logistic expectation of A beating B.
func ExpectedScore(eloA, eloB int) float64 {
	return expectedScoreFloat(float64(eloA), float64(eloB))
}

func expectedScoreFloat(eloA, eloB float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (eloB-eloA)/400.0))
}

// pairwiseActual scores A's result against B's: 1 for a stronger result,
// 0 for a weaker one, 0.5 for equal results. Win/loss, draws, and
// ranking-style equal results all reduce to the same comparison.
func pairwiseActual(a, b activity_entities.FinalResult) float64 {
	ra, rb := resultRank(a), resultRank(b)
	switch {
	case ra > rb:
		return 1
	case ra < rb:
		return 0
	default:
		return 0.5
	}
}

func resultRank(r activity_entities.FinalResult) int {
	switch r {
	case activity_entities.ResultWin:
		return 2
	case activity_entities.ResultDraw:
		return 1
	default:
		return 0
	}
}

// ReceivedSkillRating is one peer rating received in the activity being
// processed, used for the skill bonus.
type ReceivedSkillRating struct {
	Value      int
	Confidence int
}

// ComputeSkillBonus derives the ELO adjustment from peer ratings received in
// this activity versus the participant's historical skill averages. With no
// ratings received the bonus is zero; with no history the baseline is 5.
func ComputeSkillBonus(received []ReceivedSkillRating, historicalAverages []float64, skillInfluence float64) int {
	if len(received) == 0 || skillInfluence == 0 {
		return 0
	}

	var weightedSum, weightTotal float64
	for _, r := range received {
		w := float64(r.Confidence) / 5.0
		weightedSum += float64(r.Value) * w
		weightTotal += w
	}
	if weightTotal == 0 {
		return 0
	}
	current := weightedSum / weightTotal

	historical := 5.0
	if len(historicalAverages) > 0 {
		var sum float64
		for _, h := range historicalAverages {
			sum += h
		}
		historical = sum / float64(len(historicalAverages))
	}

	return int(math.Round(((current - historical) / 5.0) * 20.0 * skillInfluence))
}
