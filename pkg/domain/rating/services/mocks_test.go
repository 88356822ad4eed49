package rating_services_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	delta_entities "github.com/sportlink/sportlink-api/pkg/domain/delta/entities"
	rating_entities "github.com/sportlink/sportlink-api/pkg/domain/rating/entities"
	"github.com/stretchr/testify/mock"
)

// MockUserELORepository implements rating_out.UserELORepository
type MockUserELORepository struct {
	mock.Mock
}

func (m *MockUserELORepository) FindByUserAndType(ctx context.Context, userID, activityTypeID uuid.UUID) (*rating_entities.UserActivityTypeELO, error) {
	args := m.Called(ctx, userID, activityTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rating_entities.UserActivityTypeELO), args.Error(1)
}

func (m *MockUserELORepository) FindByUsersAndType(ctx context.Context, userIDs []uuid.UUID, activityTypeID uuid.UUID) ([]*rating_entities.UserActivityTypeELO, error) {
	args := m.Called(ctx, userIDs, activityTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rating_entities.UserActivityTypeELO), args.Error(1)
}

func (m *MockUserELORepository) Insert(ctx context.Context, elo *rating_entities.UserActivityTypeELO) error {
	args := m.Called(ctx, elo)
	return args.Error(0)
}

func (m *MockUserELORepository) UpdateVersioned(ctx context.Context, elo *rating_entities.UserActivityTypeELO, expectedVersion int64) (bool, error) {
	args := m.Called(ctx, elo, expectedVersion)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserELORepository) TopByType(ctx context.Context, activityTypeID uuid.UUID, minGames, limit int) ([]*rating_entities.UserActivityTypeELO, error) {
	args := m.Called(ctx, activityTypeID, minGames, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rating_entities.UserActivityTypeELO), args.Error(1)
}

// MockELOStatusRepository implements rating_out.ELOStatusRepository
type MockELOStatusRepository struct {
	mock.Mock
}

func (m *MockELOStatusRepository) Acquire(ctx context.Context, activityID uuid.UUID, serverID string, ttl time.Duration) (*rating_entities.ActivityELOStatus, error) {
	args := m.Called(ctx, activityID, serverID, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rating_entities.ActivityELOStatus), args.Error(1)
}

func (m *MockELOStatusRepository) ReleaseCompleted(ctx context.Context, activityID uuid.UUID) error {
	args := m.Called(ctx, activityID)
	return args.Error(0)
}

func (m *MockELOStatusRepository) ReleaseError(ctx context.Context, activityID uuid.UUID, message string) error {
	args := m.Called(ctx, activityID, message)
	return args.Error(0)
}

func (m *MockELOStatusRepository) EnsurePending(ctx context.Context, activityID uuid.UUID) error {
	args := m.Called(ctx, activityID)
	return args.Error(0)
}

func (m *MockELOStatusRepository) FindByActivity(ctx context.Context, activityID uuid.UUID) (*rating_entities.ActivityELOStatus, error) {
	args := m.Called(ctx, activityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rating_entities.ActivityELOStatus), args.Error(1)
}

func (m *MockELOStatusRepository) FindProcessable(ctx context.Context, ttl time.Duration, limit int) ([]uuid.UUID, error) {
	args := m.Called(ctx, ttl, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// MockChangeRecorder implements delta_in.ChangeRecorder
type MockChangeRecorder struct {
	mock.Mock
}

func (m *MockChangeRecorder) Record(ctx context.Context, change *delta_entities.EntityChangeLog) {
	m.Called(ctx, change)
}

// passthroughTxManager runs the closure directly, standing in for a real
// transaction.
type passthroughTxManager struct{}

func (passthroughTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
