package db

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	delta_entities "github.com/sportlink/sportlink-api/pkg/domain/delta/entities"
	delta_out "github.com/sportlink/sportlink-api/pkg/domain/delta/ports/out"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const changeLogCollection = "entity_change_log"

// ChangeLogMongoDBRepository is the append-only change store. CreatedAt is
// assigned here, not by callers, and a process-monotonic sequence breaks
// same-millisecond ties for consumers ordering by (created_at, seq).
type ChangeLogMongoDBRepository struct {
	collection *mongo.Collection
	seq        atomic.Int64
}

func NewChangeLogMongoDBRepository(database *mongo.Database) delta_out.ChangeLogRepository {
	collection := database.Collection(changeLogCollection)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "affected_user_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
		},
		{
			Keys: bson.D{
				{Key: "affected_user_id", Value: 1},
				{Key: "entity_type", Value: 1},
				{Key: "created_at", Value: -1},
			},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: 1}},
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		slog.Warn("Failed to create entity_change_log indexes", "error", err)
	}

	return &ChangeLogMongoDBRepository{collection: collection}
}

func (r *ChangeLogMongoDBRepository) Insert(ctx context.Context, change *delta_entities.EntityChangeLog) error {
	if change.ID == uuid.Nil {
		change.ID = uuid.New()
	}
	change.CreatedAt = time.Now().UTC()
	change.Seq = r.seq.Add(1)

	if _, err := r.collection.InsertOne(ctx, change); err != nil {
		return fmt.Errorf("failed to insert change log entry: %w", err)
	}
	return nil
}

func (r *ChangeLogMongoDBRepository) FindChanges(ctx context.Context, q delta_out.ChangeLogQuery) ([]*delta_entities.EntityChangeLog, error) {
	filter := bson.M{
		"affected_user_id": q.AffectedUserID,
		"created_at":       bson.M{"$gt": q.After},
	}
	if len(q.EntityTypes) > 0 {
		types := make([]string, len(q.EntityTypes))
		for i, t := range q.EntityTypes {
			types[i] = string(t)
		}
		filter["entity_type"] = bson.M{"$in": types}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "seq", Value: -1}}).
		SetLimit(int64(q.Limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query change log: %w", err)
	}
	defer cursor.Close(ctx)

	var changes []*delta_entities.EntityChangeLog
	if err := cursor.All(ctx, &changes); err != nil {
		return nil, fmt.Errorf("failed to decode change log entries: %w", err)
	}

	return changes, nil
}

func (r *ChangeLogMongoDBRepository) CountChangesSince(ctx context.Context, userID uuid.UUID, since map[delta_entities.EntityType]time.Time) (map[delta_entities.EntityType]int64, error) {
	counts := make(map[delta_entities.EntityType]int64, len(since))
	for class, ts := range since {
		count, err := r.collection.CountDocuments(ctx, bson.M{
			"affected_user_id": userID,
			"entity_type":      string(class),
			"created_at":       bson.M{"$gt": ts},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to count pending changes: %w", err)
		}
		counts[class] = count
	}
	return counts, nil
}

func (r *ChangeLogMongoDBRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"created_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, fmt.Errorf("failed to prune change log: %w", err)
	}
	return result.DeletedCount, nil
}

var _ delta_out.ChangeLogRepository = (*ChangeLogMongoDBRepository)(nil)
