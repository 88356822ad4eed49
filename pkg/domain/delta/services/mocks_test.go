package delta_services_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	delta_entities "github.com/sportlink/sportlink-api/pkg/domain/delta/entities"
	delta_out "github.com/sportlink/sportlink-api/pkg/domain/delta/ports/out"
	"github.com/stretchr/testify/mock"
)

// MockChangeLogRepository implements delta_out.ChangeLogRepository
type MockChangeLogRepository struct {
	mock.Mock
}

func (m *MockChangeLogRepository) Insert(ctx context.Context, change *delta_entities.EntityChangeLog) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}

func (m *MockChangeLogRepository) FindChanges(ctx context.Context, q delta_out.ChangeLogQuery) ([]*delta_entities.EntityChangeLog, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delta_entities.EntityChangeLog), args.Error(1)
}

func (m *MockChangeLogRepository) CountChangesSince(ctx context.Context, userID uuid.UUID, since map[delta_entities.EntityType]time.Time) (map[delta_entities.EntityType]int64, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[delta_entities.EntityType]int64), args.Error(1)
}

func (m *MockChangeLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockCursorRepository implements delta_out.CursorRepository
type MockCursorRepository struct {
	mock.Mock
}

func (m *MockCursorRepository) GetOrCreate(ctx context.Context, userID uuid.UUID, clientType delta_entities.ClientType) (*delta_entities.UserDeltaCursor, error) {
	args := m.Called(ctx, userID, clientType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delta_entities.UserDeltaCursor), args.Error(1)
}

func (m *MockCursorRepository) UpdateSyncTimes(ctx context.Context, userID uuid.UUID, times map[delta_entities.EntityType]time.Time, clientType delta_entities.ClientType) error {
	args := m.Called(ctx, userID, times, clientType)
	return args.Error(0)
}

func (m *MockCursorRepository) UpdatePreferredPollInterval(ctx context.Context, userID uuid.UUID, intervalMS int) error {
	args := m.Called(ctx, userID, intervalMS)
	return args.Error(0)
}
