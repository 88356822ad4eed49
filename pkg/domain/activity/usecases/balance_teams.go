package activity_usecases

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	common "github.com/sportlink/sportlink-api/pkg/domain"
	activity_in "github.com/sportlink/sportlink-api/pkg/domain/activity/ports/in"
	delta_entities "github.com/sportlink/sportlink-api/pkg/domain/delta/entities"
)

// BalanceTeams partitions the accepted participants into two teams with
// near-equal ELO sums via greedy largest-first assignment and writes the
// labels back onto the participant rows.
func (uc *ActivityCommandUseCase) BalanceTeams(ctx context.Context, activityID, invokerID uuid.UUID) ([]activity_in.TeamAssignment, error) {
	activity, err := uc.activityRepository.FindByID(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity: %w", err)
	}
	if activity == nil {
		return nil, common.NewErrNotFound("activity", "id", activityID)
	}
	if activity.CreatorID != invokerID {
		return nil, common.NewErrForbidden("only the creator may balance teams")
	}
	if !activity.IsScheduled() {
		return nil, common.NewErrConflict("teams can only be balanced before completion")
	}

	accepted, err := uc.participantRepository.FindAcceptedByActivity(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load participants: %w", err)
	}
	if len(accepted) < 2 {
		return nil, &common.ErrInsufficientParticipants{Required: 2, Actual: len(accepted)}
	}

	type rated struct {
		index int
		elo   int
	}
	ratings := make([]rated, len(accepted))
	for i, p := range accepted {
		score := uc.defaultSettings.StartingELO
		elo, err := uc.eloRepository.FindByUserAndType(ctx, p.UserID, activity.ActivityTypeID)
		if err != nil {
			return nil, fmt.Errorf("failed to load user rating: %w", err)
		}
		if elo != nil {
			score = elo.ELOScore
		}
		ratings[i] = rated{index: i, elo: score}
	}

	sort.SliceStable(ratings, func(a, b int) bool {
		return ratings[a].elo > ratings[b].elo
	})

	var sumA, sumB int
	assignments := make([]activity_in.TeamAssignment, len(accepted))
	now := time.Now().UTC()
	for _, r := range ratings {
		team := "A"
		if sumB < sumA {
			team = "B"
		}
		if team == "A" {
			sumA += r.elo
		} else {
			sumB += r.elo
		}

		p := accepted[r.index]
		p.Team = &team
		p.UpdatedAt = now
		if err := uc.participantRepository.Update(ctx, p); err != nil {
			return nil, fmt.Errorf("failed to store team assignment: %w", err)
		}

		assignments[r.index] = activity_in.TeamAssignment{
			UserID: p.UserID,
			Team:   team,
			ELO:    r.elo,
		}
	}

	for _, p := range accepted {
		uc.recorder.Record(ctx, &delta_entities.EntityChangeLog{
			EntityType:     delta_entities.EntityTypeActivity,
			EntityID:       activityID,
			ChangeType:     delta_entities.ChangeTypeUpdate,
			AffectedUserID: p.UserID,
			ChangeDetails:  "teams balanced",
			TriggeredBy:    &invokerID,
			ChangeSource:   delta_entities.ChangeSourceUserAction,
		})
	}

	slog.InfoContext(ctx, "Teams balanced",
		"activity_id", activityID,
		"team_a_elo", sumA,
		"team_b_elo", sumB,
	)

	return assignments, nil
}
