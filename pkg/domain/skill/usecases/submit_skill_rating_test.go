package skill_usecases_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	common "github.com/sportlink/sportlink-api/pkg/domain"
	activity_entities "github.com/sportlink/sportlink-api/pkg/domain/activity/entities"
	delta_entities "github.com/sportlink/sportlink-api/pkg/domain/delta/entities"
	skill_entities "github.com/sportlink/sportlink-api/pkg/domain/skill/entities"
	skill_in "github.com/sportlink/sportlink-api/pkg/domain/skill/ports/in"
	skill_usecases "github.com/sportlink/sportlink-api/pkg/domain/skill/usecases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type submitFixture struct {
	activities   *MockActivityRepository
	participants *MockParticipantRepository
	typeSkills   *MockActivityTypeSkillRepository
	ratings      *MockSkillRatingRepository
	recalculator *MockSummaryRecalculator
	recorder     *MockChangeRecorder
	usecase      *skill_usecases.SkillRatingCommandUseCase

	activityID uuid.UUID
	typeID     uuid.UUID
	skillID    uuid.UUID
	rated      uuid.UUID
	rater      uuid.UUID
}

func newSubmitFixture() *submitFixture {
	f := &submitFixture{
		activities:   new(MockActivityRepository),
		participants: new(MockParticipantRepository),
		typeSkills:   new(MockActivityTypeSkillRepository),
		ratings:      new(MockSkillRatingRepository),
		recalculator: new(MockSummaryRecalculator),
		recorder:     new(MockChangeRecorder),
		activityID:   uuid.New(),
		typeID:       uuid.New(),
		skillID:      uuid.New(),
		rated:        uuid.New(),
		rater:        uuid.New(),
	}
	f.usecase = skill_usecases.NewSkillRatingCommandUseCase(
		f.activities,
		f.participants,
		f.typeSkills,
		f.ratings,
		f.recalculator,
		f.recorder,
	)
	return f
}

func (f *submitFixture) completedActivity() *activity_entities.Activity {
	return &activity_entities.Activity{
		ID:               f.activityID,
		ActivityTypeID:   f.typeID,
		CompletionStatus: activity_entities.CompletionStatusCompleted,
	}
}

func (f *submitFixture) acceptedParticipant(userID uuid.UUID) *activity_entities.ActivityParticipant {
	return &activity_entities.ActivityParticipant{
		ID:         uuid.New(),
		ActivityID: f.activityID,
		UserID:     userID,
		Status:     activity_entities.ParticipantStatusAccepted,
	}
}

func (f *submitFixture) cmd() skill_in.SubmitSkillRatingCommand {
	return skill_in.SubmitSkillRatingCommand{
		ActivityID:        f.activityID,
		RatedUserID:       f.rated,
		RatingUserID:      f.rater,
		SkillDefinitionID: f.skillID,
		RatingValue:       8,
		Confidence:        4,
	}
}

func TestSubmit_Success(t *testing.T) {
	f := newSubmitFixture()

	f.activities.On("FindByID", mock.Anything, f.activityID).Return(f.completedActivity(), nil)
	f.participants.On("FindByActivityAndUser", mock.Anything, f.activityID, f.rater).Return(f.acceptedParticipant(f.rater), nil)
	f.participants.On("FindByActivityAndUser", mock.Anything, f.activityID, f.rated).Return(f.acceptedParticipant(f.rated), nil)
	f.typeSkills.On("Exists", mock.Anything, f.typeID, f.skillID).Return(true, nil)
	f.ratings.On("Exists", mock.Anything, f.activityID, f.rated, f.rater, f.skillID).Return(false, nil)
	f.ratings.On("Insert", mock.Anything, mock.Anything).Return(nil)
	f.recorder.On("Record", mock.Anything, mock.MatchedBy(func(change *delta_entities.EntityChangeLog) bool {
		return change.EntityType == delta_entities.EntityTypeSkillRating &&
			change.ChangeType == delta_entities.ChangeTypeCreate &&
			change.AffectedUserID == f.rated
	})).Return()
	f.recalculator.On("Recalculate", mock.Anything, f.rated, f.skillID).Return(nil)

	rating, err := f.usecase.Submit(context.Background(), f.cmd())

	require.NoError(t, err)
	assert.Equal(t, 8, rating.RatingValue)
	f.ratings.AssertExpectations(t)
	f.recorder.AssertExpectations(t)
	f.recalculator.AssertExpectations(t)
}

func TestSubmit_ActivityNotFound(t *testing.T) {
	f := newSubmitFixture()
	f.activities.On("FindByID", mock.Anything, f.activityID).Return(nil, nil)

	_, err := f.usecase.Submit(context.Background(), f.cmd())
	assert.True(t, common.IsNotFoundError(err))
}

func TestSubmit_ActivityNotCompleted(t *testing.T) {
	f := newSubmitFixture()
	activity := f.completedActivity()
	activity.CompletionStatus = activity_entities.CompletionStatusScheduled
	f.activities.On("FindByID", mock.Anything, f.activityID).Return(activity, nil)

	_, err := f.usecase.Submit(context.Background(), f.cmd())
	assert.True(t, common.IsConflictError(err))
}

func TestSubmit_RaterNotAccepted(t *testing.T) {
	f := newSubmitFixture()
	f.activities.On("FindByID", mock.Anything, f.activityID).Return(f.completedActivity(), nil)
	pending := f.acceptedParticipant(f.rater)
	pending.Status = activity_entities.ParticipantStatusPending
	f.participants.On("FindByActivityAndUser", mock.Anything, f.activityID, f.rater).Return(pending, nil)

	_, err := f.usecase.Submit(context.Background(), f.cmd())
	assert.True(t, common.IsForbiddenError(err))
}

func TestSubmit_SelfRatingRejected(t *testing.T) {
	f := newSubmitFixture()
	f.rated = f.rater

	f.activities.On("FindByID", mock.Anything, f.activityID).Return(f.completedActivity(), nil)
	f.participants.On("FindByActivityAndUser", mock.Anything, f.activityID, f.rater).Return(f.acceptedParticipant(f.rater), nil)

	_, err := f.usecase.Submit(context.Background(), f.cmd())
	assert.True(t, common.IsValidationError(err))
}

func TestSubmit_ValueBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		value      int
		confidence int
		comment    string
		wantErr    bool
	}{
		{"value 1 accepted", 1, 3, "", false},
		{"value 10 accepted", 10, 3, "", false},
		{"value 0 rejected", 0, 3, "", true},
		{"value 11 rejected", 11, 3, "", true},
		{"confidence 5 accepted", 7, 5, "", false},
		{"confidence 0 rejected", 7, 0, "", true},
		{"confidence 6 rejected", 7, 6, "", true},
		{"comment at 500 accepted", 7, 3, strings.Repeat("x", 500), false},
		{"comment over 500 rejected", 7, 3, strings.Repeat("x", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSubmitFixture()
			f.activities.On("FindByID", mock.Anything, f.activityID).Return(f.completedActivity(), nil)
			f.participants.On("FindByActivityAndUser", mock.Anything, f.activityID, mock.Anything).Return(f.acceptedParticipant(uuid.New()), nil)
			f.typeSkills.On("Exists", mock.Anything, f.typeID, f.skillID).Return(true, nil)
			f.ratings.On("Exists", mock.Anything, f.activityID, f.rated, f.rater, f.skillID).Return(false, nil)
			f.ratings.On("Insert", mock.Anything, mock.Anything).Return(nil)
			f.recorder.On("Record", mock.Anything, mock.Anything).Return()
			f.recalculator.On("Recalculate", mock.Anything, f.rated, f.skillID).Return(nil)

			cmd := f.cmd()
			cmd.RatingValue = tt.value
			cmd.Confidence = tt.confidence
			cmd.Comment = tt.comment

			_, err := f.usecase.Submit(context.Background(), cmd)
			if tt.wantErr {
				assert.True(t, common.IsValidationError(err), "expected validation error, got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSubmit_IneligibleSkill(t *testing.T) {
	f := newSubmitFixture()
	f.activities.On("FindByID", mock.Anything, f.activityID).Return(f.completedActivity(), nil)
	f.participants.On("FindByActivityAndUser", mock.Anything, f.activityID, mock.Anything).Return(f.acceptedParticipant(uuid.New()), nil)
	f.typeSkills.On("Exists", mock.Anything, f.typeID, f.skillID).Return(false, nil)

	_, err := f.usecase.Submit(context.Background(), f.cmd())
	assert.True(t, common.IsValidationError(err))
}

func TestSubmit_DuplicateRejected(t *testing.T) {
	f := newSubmitFixture()
	f.activities.On("FindByID", mock.Anything, f.activityID).Return(f.completedActivity(), nil)
	f.participants.On("FindByActivityAndUser", mock.Anything, f.activityID, mock.Anything).Return(f.acceptedParticipant(uuid.New()), nil)
	f.typeSkills.On("Exists", mock.Anything, f.typeID, f.skillID).Return(true, nil)
	f.ratings.On("Exists", mock.Anything, f.activityID, f.rated, f.rater, f.skillID).Return(true, nil)

	_, err := f.usecase.Submit(context.Background(), f.cmd())
	assert.True(t, common.IsValidationError(err))
}

func TestUpdate_AuthorWithinWindow(t *testing.T) {
	f := newSubmitFixture()

	rating := &skill_entities.UserActivitySkillRating{
		ID:                uuid.New(),
		ActivityID:        f.activityID,
		RatedUserID:       f.rated,
		RatingUserID:      f.rater,
		SkillDefinitionID: f.skillID,
		RatingValue:       6,
		Confidence:        3,
		CreatedAt:         time.Now().UTC().Add(-30 * time.Minute),
	}

	f.ratings.On("FindByID", mock.Anything, rating.ID).Return(rating, nil)
	f.ratings.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.recorder.On("Record", mock.Anything, mock.Anything).Return()
	f.recalculator.On("Recalculate", mock.Anything, f.rated, f.skillID).Return(nil)

	newValue := 9
	updated, err := f.usecase.Update(context.Background(), skill_in.UpdateSkillRatingCommand{
		RatingID:    rating.ID,
		CallerID:    f.rater,
		RatingValue: &newValue,
	})

	require.NoError(t, err)
	assert.Equal(t, 9, updated.RatingValue)
}

func TestUpdate_WindowExpired(t *testing.T) {
	f := newSubmitFixture()

	rating := &skill_entities.UserActivitySkillRating{
		ID:           uuid.New(),
		RatingUserID: f.rater,
		RatedUserID:  f.rated,
		CreatedAt:    time.Now().UTC().Add(-2 * time.Hour),
	}
	f.ratings.On("FindByID", mock.Anything, rating.ID).Return(rating, nil)

	newValue := 9
	_, err := f.usecase.Update(context.Background(), skill_in.UpdateSkillRatingCommand{
		RatingID:    rating.ID,
		CallerID:    f.rater,
		RatingValue: &newValue,
	})

	assert.True(t, common.IsConflictError(err))
}

func TestUpdate_NonAuthorForbidden(t *testing.T) {
	f := newSubmitFixture()

	rating := &skill_entities.UserActivitySkillRating{
		ID:           uuid.New(),
		RatingUserID: f.rater,
		RatedUserID:  f.rated,
		CreatedAt:    time.Now().UTC(),
	}
	f.ratings.On("FindByID", mock.Anything, rating.ID).Return(rating, nil)

	newValue := 9
	_, err := f.usecase.Update(context.Background(), skill_in.UpdateSkillRatingCommand{
		RatingID:    rating.ID,
		CallerID:    uuid.New(),
		RatingValue: &newValue,
	})

	assert.True(t, common.IsForbiddenError(err))
}

func TestDelete_AdminAnytime(t *testing.T) {
	f := newSubmitFixture()

	rating := &skill_entities.UserActivitySkillRating{
		ID:                uuid.New(),
		ActivityID:        f.activityID,
		RatingUserID:      f.rater,
		RatedUserID:       f.rated,
		SkillDefinitionID: f.skillID,
		CreatedAt:         time.Now().UTC().Add(-72 * time.Hour),
	}
	f.ratings.On("FindByID", mock.Anything, rating.ID).Return(rating, nil)
	f.ratings.On("Delete", mock.Anything, rating.ID).Return(nil)
	f.recorder.On("Record", mock.Anything, mock.MatchedBy(func(change *delta_entities.EntityChangeLog) bool {
		return change.ChangeType == delta_entities.ChangeTypeDelete &&
			change.ChangeSource == delta_entities.ChangeSourceAdmin
	})).Return()
	f.recalculator.On("Recalculate", mock.Anything, f.rated, f.skillID).Return(nil)

	err := f.usecase.Delete(context.Background(), rating.ID, uuid.New(), true)
	require.NoError(t, err)
	f.recorder.AssertExpectations(t)
}

func TestDelete_AuthorWindowExpired(t *testing.T) {
	f := newSubmitFixture()

	rating := &skill_entities.UserActivitySkillRating{
		ID:           uuid.New(),
		RatingUserID: f.rater,
		RatedUserID:  f.rated,
		CreatedAt:    time.Now().UTC().Add(-25 * time.Hour),
	}
	f.ratings.On("FindByID", mock.Anything, rating.ID).Return(rating, nil)

	err := f.usecase.Delete(context.Background(), rating.ID, f.rater, false)
	assert.True(t, common.IsConflictError(err))
}
