package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	common "github.com/sportlink/sportlink-api/pkg/domain"
	rating_entities "github.com/sportlink/sportlink-api/pkg/domain/rating/entities"
	rating_out "github.com/sportlink/sportlink-api/pkg/domain/rating/ports/out"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const eloStatusCollection = "activity_elo_status"

// ELOStatusMongoDBRepository implements the lock-bearing status row. Acquire
// and Release are each one conditional statement so cross-server races
// resolve inside the database.
type ELOStatusMongoDBRepository struct {
	collection *mongo.Collection
}

func NewELOStatusMongoDBRepository(database *mongo.Database) rating_out.ELOStatusRepository {
	collection := database.Collection(eloStatusCollection)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "activity_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "locked_at", Value: 1}},
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		slog.Warn("Failed to create activity_elo_status indexes", "error", err)
	}

	return &ELOStatusMongoDBRepository{collection: collection}
}

func (r *ELOStatusMongoDBRepository) Acquire(ctx context.Context, activityID uuid.UUID, serverID string, ttl time.Duration) (*rating_entities.ActivityELOStatus, error) {
	now := time.Now().UTC()
	stale := now.Add(-ttl)

	// Matches when the row is absent (upsert), re-acquirable, or held by a
	// stale calculating lock. A fresh calculating row fails the filter and
	// surfaces as a duplicate-key error on the upsert.
	filter := bson.M{
		"activity_id": activityID,
		"$or": []bson.M{
			{"status": bson.M{"$in": []string{
				string(rating_entities.ELOStatusPending),
				string(rating_entities.ELOStatusCompleted),
				string(rating_entities.ELOStatusError),
			}}},
			{"status": string(rating_entities.ELOStatusCalculating), "locked_at": bson.M{"$lt": stale}},
		},
	}

	// Pipeline update so a takeover bumps retry_count in the same statement.
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"retry_count": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$status", string(rating_entities.ELOStatusCalculating)}},
				bson.M{"$add": bson.A{bson.M{"$ifNull": bson.A{"$retry_count", 0}}, 1}},
				bson.M{"$ifNull": bson.A{"$retry_count", 0}},
			}},
			"status":     string(rating_entities.ELOStatusCalculating),
			"locked_by":  serverID,
			"locked_at":  now,
			"updated_at": now,
			"created_at": bson.M{"$ifNull": bson.A{"$created_at", now}},
			"_id":        bson.M{"$ifNull": bson.A{"$_id", uuid.New()}},
		}}},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var status rating_entities.ActivityELOStatus
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&status)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			holder := ""
			if existing, findErr := r.FindByActivity(ctx, activityID); findErr == nil && existing != nil {
				holder = existing.LockedBy
			}
			return nil, common.NewErrConcurrentCalculation(activityID.String(), holder)
		}
		slog.ErrorContext(ctx, "Failed to acquire rating lock", "activity_id", activityID, "error", err)
		return nil, fmt.Errorf("failed to acquire rating lock: %w", err)
	}

	return &status, nil
}

func (r *ELOStatusMongoDBRepository) ReleaseCompleted(ctx context.Context, activityID uuid.UUID) error {
	now := time.Now().UTC()
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"activity_id": activityID},
		bson.M{"$set": bson.M{
			"status":        string(rating_entities.ELOStatusCompleted),
			"completed_at":  now,
			"error_message": "",
			"updated_at":    now,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to release rating lock: %w", err)
	}
	if result.MatchedCount == 0 {
		return common.NewErrNotFound("elo status", "activity_id", activityID)
	}
	return nil
}

func (r *ELOStatusMongoDBRepository) ReleaseError(ctx context.Context, activityID uuid.UUID, message string) error {
	now := time.Now().UTC()
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"activity_id": activityID},
		bson.M{
			"$set": bson.M{
				"status":        string(rating_entities.ELOStatusError),
				"error_message": message,
				"updated_at":    now,
			},
			"$inc": bson.M{"retry_count": 1},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to record rating error: %w", err)
	}
	if result.MatchedCount == 0 {
		return common.NewErrNotFound("elo status", "activity_id", activityID)
	}
	return nil
}

func (r *ELOStatusMongoDBRepository) EnsurePending(ctx context.Context, activityID uuid.UUID) error {
	now := time.Now().UTC()
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"activity_id": activityID},
		bson.M{
			"$set": bson.M{
				"status":     string(rating_entities.ELOStatusPending),
				"updated_at": now,
			},
			"$setOnInsert": bson.M{
				"_id":         uuid.New(),
				"retry_count": 0,
				"created_at":  now,
			},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to mark rating status pending: %w", err)
	}
	return nil
}

func (r *ELOStatusMongoDBRepository) FindByActivity(ctx context.Context, activityID uuid.UUID) (*rating_entities.ActivityELOStatus, error) {
	var status rating_entities.ActivityELOStatus
	err := r.collection.FindOne(ctx, bson.M{"activity_id": activityID}).Decode(&status)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load rating status: %w", err)
	}
	return &status, nil
}

func (r *ELOStatusMongoDBRepository) FindProcessable(ctx context.Context, ttl time.Duration, limit int) ([]uuid.UUID, error) {
	stale := time.Now().UTC().Add(-ttl)
	filter := bson.M{"$or": []bson.M{
		{"status": string(rating_entities.ELOStatusPending)},
		{"status": string(rating_entities.ELOStatusCalculating), "locked_at": bson.M{"$lt": stale}},
	}}

	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list processable activities: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []uuid.UUID
	for cursor.Next(ctx) {
		var row struct {
			ActivityID uuid.UUID `bson:"activity_id"`
		}
		if err := cursor.Decode(&row); err != nil {
			continue
		}
		ids = append(ids, row.ActivityID)
	}

	return ids, nil
}

var _ rating_out.ELOStatusRepository = (*ELOStatusMongoDBRepository)(nil)
