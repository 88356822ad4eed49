package activity_usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	common "github.com/sportlink/sportlink-api/pkg/domain"
	activity_entities "github.com/sportlink/sportlink-api/pkg/domain/activity/entities"
	activity_in "github.com/sportlink/sportlink-api/pkg/domain/activity/ports/in"
	delta_entities "github.com/sportlink/sportlink-api/pkg/domain/delta/entities"
	rating_entities "github.com/sportlink/sportlink-api/pkg/domain/rating/entities"
)

// Complete validates results, flips the activity to completed, and runs or
// defers rating processing. The state transition commits first so clients
// observe the completion even when rating processing later fails.
func (uc *ActivityCommandUseCase) Complete(ctx context.Context, cmd activity_in.CompleteActivityCommand) (*activity_in.CompleteActivityResult, error) {
	activity, err := uc.activityRepository.FindByID(ctx, cmd.ActivityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity: %w", err)
	}
	if activity == nil {
		return nil, common.NewErrNotFound("activity", "id", cmd.ActivityID)
	}
	if activity.CreatorID != cmd.InvokerID && !common.IsAdmin(ctx) {
		return nil, common.NewErrForbidden("only the creator may complete the activity")
	}
	if !activity.IsScheduled() {
		return nil, common.NewErrConflict("activity is not in a completable state")
	}

	accepted, err := uc.participantRepository.FindAcceptedByActivity(ctx, cmd.ActivityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load participants: %w", err)
	}

	// Every accepted participant needs exactly one result; extras are rejected.
	results := make(map[uuid.UUID]activity_in.ParticipantResult, len(cmd.ParticipantResults))
	for _, r := range cmd.ParticipantResults {
		if !activity_entities.ValidResult(r.FinalResult) {
			return nil, common.NewErrFieldValidation("invalid participant result", map[string]string{
				"final_result": fmt.Sprintf("unknown result %q for user %s", r.FinalResult, r.UserID),
			})
		}
		if _, dup := results[r.UserID]; dup {
			return nil, common.NewErrFieldValidation("duplicate participant result", map[string]string{
				"user_id": r.UserID.String(),
			})
		}
		results[r.UserID] = r
	}
	for _, p := range accepted {
		if _, ok := results[p.UserID]; !ok {
			return nil, common.NewErrFieldValidation("missing participant result", map[string]string{
				"user_id": p.UserID.String(),
			})
		}
	}
	if len(results) != len(accepted) {
		return nil, common.NewErrFieldValidation("results for non-participants supplied", map[string]string{
			"participant_results": fmt.Sprintf("expected %d results, got %d", len(accepted), len(results)),
		})
	}

	now := time.Now().UTC()
	activity.CompletionStatus = activity_entities.CompletionStatusCompleted
	activity.UpdatedAt = now
	if err := uc.activityRepository.Update(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to mark activity completed: %w", err)
	}

	for _, p := range accepted {
		r := results[p.UserID]
		result := r.FinalResult
		p.FinalResult = &result
		p.PerformanceNotes = r.PerformanceNotes
		p.UpdatedAt = now
		if err := uc.participantRepository.Update(ctx, p); err != nil {
			return nil, fmt.Errorf("failed to store participant result: %w", err)
		}
	}

	for _, p := range accepted {
		if p.UserID == cmd.InvokerID {
			continue
		}
		uc.recorder.Record(ctx, &delta_entities.EntityChangeLog{
			EntityType:     delta_entities.EntityTypeActivity,
			EntityID:       activity.ID,
			ChangeType:     delta_entities.ChangeTypeUpdate,
			AffectedUserID: p.UserID,
			NewData: map[string]interface{}{
				"completion_status": string(activity_entities.CompletionStatusCompleted),
			},
			TriggeredBy:  &cmd.InvokerID,
			ChangeSource: delta_entities.ChangeSourceUserAction,
		})
	}

	result := &activity_in.CompleteActivityResult{Activity: activity}

	if !activity.IsELORated {
		return result, nil
	}

	processImmediately := cmd.ProcessImmediately == nil || *cmd.ProcessImmediately
	if processImmediately {
		status, err := uc.ProcessActivity(ctx, activity.ID)
		if err != nil {
			// The completion itself stands; the failure lives on the status
			// row for /elo-status to report.
			slog.WarnContext(ctx, "Inline rating processing failed",
				"activity_id", activity.ID,
				"error", err,
			)
		}
		if status == nil {
			status, _ = uc.statusRepository.FindByActivity(ctx, activity.ID)
		}
		result.ELOStatus = status
		return result, nil
	}

	if err := uc.statusRepository.EnsurePending(ctx, activity.ID); err != nil {
		return nil, fmt.Errorf("failed to queue rating processing: %w", err)
	}
	if uc.queue != nil {
		if err := uc.queue.EnqueueActivity(ctx, activity.ID); err != nil {
			slog.WarnContext(ctx, "Failed to enqueue rating processing, drainer will pick it up",
				"activity_id", activity.ID,
				"error", err,
			)
		}
	}

	status, err := uc.statusRepository.FindByActivity(ctx, activity.ID)
	if err == nil {
		result.ELOStatus = status
	}

	return result, nil
}

// ReprocessELO resets the status row and reruns the pipeline. Admin or
// creator only; the activity must already be completed.
func (uc *ActivityCommandUseCase) ReprocessELO(ctx context.Context, activityID, invokerID uuid.UUID) (*activity_in.CompleteActivityResult, error) {
	activity, err := uc.activityRepository.FindByID(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity: %w", err)
	}
	if activity == nil {
		return nil, common.NewErrNotFound("activity", "id", activityID)
	}
	if activity.CreatorID != invokerID && !common.IsAdmin(ctx) {
		return nil, common.NewErrForbidden("only the creator or an admin may reprocess ratings")
	}
	if !activity.IsCompleted() {
		return nil, common.NewErrConflict("only completed activities can be reprocessed")
	}
	if !activity.IsELORated {
		return nil, common.NewErrConflict("activity is not ELO rated")
	}

	if err := uc.statusRepository.EnsurePending(ctx, activityID); err != nil {
		return nil, fmt.Errorf("failed to reset rating status: %w", err)
	}

	status, err := uc.ProcessActivity(ctx, activityID)
	if err != nil {
		slog.WarnContext(ctx, "Reprocessing failed", "activity_id", activityID, "error", err)
		if status == nil {
			status, _ = uc.statusRepository.FindByActivity(ctx, activityID)
		}
	}

	return &activity_in.CompleteActivityResult{Activity: activity, ELOStatus: status}, nil
}

// ProcessActivity runs the full rating pipeline for one completed activity
// under the distributed lock. It is shared by inline completion, manual
// reprocessing, and the background drainer.
func (uc *ActivityCommandUseCase) ProcessActivity(ctx context.Context, activityID uuid.UUID) (*rating_entities.ActivityELOStatus, error) {
	activity, err := uc.activityRepository.FindByID(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity: %w", err)
	}
	if activity == nil {
		return nil, common.NewErrNotFound("activity", "id", activityID)
	}
	if !activity.IsCompleted() || !activity.IsELORated {
		return nil, common.NewErrConflict("activity is not eligible for rating processing")
	}

	status, err := uc.lockManager.Acquire(ctx, activityID)
	if err != nil {
		return nil, err
	}

	input, err := uc.loadSnapshot(ctx, activity)
	if err != nil {
		uc.lockManager.ReleaseError(ctx, activityID, err)
		return nil, common.NewErrELOProcessing(activityID.String(), err)
	}

	deltas, err := uc.engine.Calculate(*input)
	if err != nil {
		uc.lockManager.ReleaseError(ctx, activityID, err)
		return nil, common.NewErrELOProcessing(activityID.String(), err)
	}

	if err := uc.persister.Persist(ctx, activityID, activity.ActivityTypeID, deltas); err != nil {
		uc.lockManager.ReleaseError(ctx, activityID, err)
		return nil, common.NewErrELOProcessing(activityID.String(), err)
	}

	if err := uc.lockManager.ReleaseCompleted(ctx, activityID); err != nil {
		return nil, fmt.Errorf("failed to release rating lock: %w", err)
	}

	slog.InfoContext(ctx, "Rating processing completed",
		"activity_id", activityID,
		"participants", len(deltas),
		"retry_count", status.RetryCount,
	)

	return uc.statusRepository.FindByActivity(ctx, activityID)
}

var _ activity_in.PendingProcessor = (*ActivityCommandUseCase)(nil)
