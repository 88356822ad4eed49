package skill_usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	activity_entities "github.com/sportlink/sportlink-api/pkg/domain/activity/entities"
	delta_entities "github.com/sportlink/sportlink-api/pkg/domain/delta/entities"
	skill_entities "github.com/sportlink/sportlink-api/pkg/domain/skill/entities"
	skill_out "github.com/sportlink/sportlink-api/pkg/domain/skill/ports/out"
	"github.com/stretchr/testify/mock"
)

// MockActivityRepository implements activity_out.ActivityRepository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Insert(ctx context.Context, activity *activity_entities.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) Update(ctx context.Context, activity *activity_entities.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) FindByID(ctx context.Context, id uuid.UUID) (*activity_entities.Activity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*activity_entities.Activity), args.Error(1)
}

func (m *MockActivityRepository) FindByCreator(ctx context.Context, creatorID uuid.UUID, limit int) ([]*activity_entities.Activity, error) {
	args := m.Called(ctx, creatorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*activity_entities.Activity), args.Error(1)
}

// MockParticipantRepository implements activity_out.ParticipantRepository
type MockParticipantRepository struct {
	mock.Mock
}

func (m *MockParticipantRepository) Insert(ctx context.Context, participant *activity_entities.ActivityParticipant) error {
	args := m.Called(ctx, participant)
	return args.Error(0)
}

func (m *MockParticipantRepository) Update(ctx context.Context, participant *activity_entities.ActivityParticipant) error {
	args := m.Called(ctx, participant)
	return args.Error(0)
}

func (m *MockParticipantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockParticipantRepository) FindByActivity(ctx context.Context, activityID uuid.UUID) ([]*activity_entities.ActivityParticipant, error) {
	args := m.Called(ctx, activityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*activity_entities.ActivityParticipant), args.Error(1)
}

func (m *MockParticipantRepository) FindAcceptedByActivity(ctx context.Context, activityID uuid.UUID) ([]*activity_entities.ActivityParticipant, error) {
	args := m.Called(ctx, activityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*activity_entities.ActivityParticipant), args.Error(1)
}

func (m *MockParticipantRepository) FindByActivityAndUser(ctx context.Context, activityID, userID uuid.UUID) (*activity_entities.ActivityParticipant, error) {
	args := m.Called(ctx, activityID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*activity_entities.ActivityParticipant), args.Error(1)
}

func (m *MockParticipantRepository) CountByActivity(ctx context.Context, activityID uuid.UUID) (int64, error) {
	args := m.Called(ctx, activityID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockParticipantRepository) FindActivityIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// MockActivityTypeSkillRepository implements skill_out.ActivityTypeSkillRepository
type MockActivityTypeSkillRepository struct {
	mock.Mock
}

func (m *MockActivityTypeSkillRepository) Exists(ctx context.Context, activityTypeID, skillDefinitionID uuid.UUID) (bool, error) {
	args := m.Called(ctx, activityTypeID, skillDefinitionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockActivityTypeSkillRepository) FindTypesForSkill(ctx context.Context, skillDefinitionID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, skillDefinitionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockActivityTypeSkillRepository) FindByActivityType(ctx context.Context, activityTypeID uuid.UUID) ([]*skill_entities.ActivityTypeSkill, error) {
	args := m.Called(ctx, activityTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*skill_entities.ActivityTypeSkill), args.Error(1)
}

// MockSkillRatingRepository implements skill_out.SkillRatingRepository
type MockSkillRatingRepository struct {
	mock.Mock
}

func (m *MockSkillRatingRepository) Insert(ctx context.Context, rating *skill_entities.UserActivitySkillRating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockSkillRatingRepository) Update(ctx context.Context, rating *skill_entities.UserActivitySkillRating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockSkillRatingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSkillRatingRepository) FindByID(ctx context.Context, id uuid.UUID) (*skill_entities.UserActivitySkillRating, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*skill_entities.UserActivitySkillRating), args.Error(1)
}

func (m *MockSkillRatingRepository) Exists(ctx context.Context, activityID, ratedUserID, ratingUserID, skillDefinitionID uuid.UUID) (bool, error) {
	args := m.Called(ctx, activityID, ratedUserID, ratingUserID, skillDefinitionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSkillRatingRepository) FindByActivity(ctx context.Context, activityID uuid.UUID) ([]*skill_entities.UserActivitySkillRating, error) {
	args := m.Called(ctx, activityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*skill_entities.UserActivitySkillRating), args.Error(1)
}

func (m *MockSkillRatingRepository) FindReceivedInActivity(ctx context.Context, activityID, ratedUserID uuid.UUID) ([]*skill_entities.UserActivitySkillRating, error) {
	args := m.Called(ctx, activityID, ratedUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*skill_entities.UserActivitySkillRating), args.Error(1)
}

func (m *MockSkillRatingRepository) FindForSummary(ctx context.Context, ratedUserID, skillDefinitionID, activityTypeID uuid.UUID) ([]*skill_entities.UserActivitySkillRating, error) {
	args := m.Called(ctx, ratedUserID, skillDefinitionID, activityTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*skill_entities.UserActivitySkillRating), args.Error(1)
}

func (m *MockSkillRatingRepository) FindRecentCommented(ctx context.Context, ratedUserID uuid.UUID, limit int) ([]*skill_entities.UserActivitySkillRating, error) {
	args := m.Called(ctx, ratedUserID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*skill_entities.UserActivitySkillRating), args.Error(1)
}

func (m *MockSkillRatingRepository) FindSuspiciousPatterns(ctx context.Context, since time.Time, minOccurrences int) ([]skill_out.SuspiciousPattern, error) {
	args := m.Called(ctx, since, minOccurrences)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]skill_out.SuspiciousPattern), args.Error(1)
}

// MockSummaryRecalculator implements skill_in.SummaryRecalculator
type MockSummaryRecalculator struct {
	mock.Mock
}

func (m *MockSummaryRecalculator) Recalculate(ctx context.Context, ratedUserID, skillDefinitionID uuid.UUID) error {
	args := m.Called(ctx, ratedUserID, skillDefinitionID)
	return args.Error(0)
}

// MockChangeRecorder implements delta_in.ChangeRecorder
type MockChangeRecorder struct {
	mock.Mock
}

func (m *MockChangeRecorder) Record(ctx context.Context, change *delta_entities.EntityChangeLog) {
	m.Called(ctx, change)
}
