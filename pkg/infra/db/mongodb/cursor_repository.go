package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	delta_entities "github.com/sportlink/sportlink-api/pkg/domain/delta/entities"
	delta_out "github.com/sportlink/sportlink-api/pkg/domain/delta/ports/out"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const cursorCollection = "user_delta_cursors"

var cursorFieldByClass = map[delta_entities.EntityType]string{
	delta_entities.EntityTypeELO:         "last_elo_sync",
	delta_entities.EntityTypeActivity:    "last_activity_sync",
	delta_entities.EntityTypeSkillRating: "last_skill_rating_sync",
	delta_entities.EntityTypeConnection:  "last_connection_sync",
	delta_entities.EntityTypeMatchmaking: "last_matchmaking_sync",
}

// CursorMongoDBRepository persists per-user delta cursors, last-writer-wins.
type CursorMongoDBRepository struct {
	collection *mongo.Collection
}

func NewCursorMongoDBRepository(database *mongo.Database) delta_out.CursorRepository {
	collection := database.Collection(cursorCollection)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		slog.Warn("Failed to create user_delta_cursors indexes", "error", err)
	}

	return &CursorMongoDBRepository{collection: collection}
}

func (r *CursorMongoDBRepository) GetOrCreate(ctx context.Context, userID uuid.UUID, clientType delta_entities.ClientType) (*delta_entities.UserDeltaCursor, error) {
	now := time.Now().UTC()

	// A new user's cursors all start at now: no pre-existing history.
	fresh := delta_entities.NewCursor(userID, clientType, now)

	update := bson.M{
		"$set": bson.M{
			"last_active_at": now,
			"client_type":    string(clientType),
		},
		"$setOnInsert": bson.M{
			"_id":                     fresh.ID,
			"user_id":                 userID,
			"last_elo_sync":           now,
			"last_activity_sync":      now,
			"last_skill_rating_sync":  now,
			"last_connection_sync":    now,
			"last_matchmaking_sync":   now,
			"preferred_poll_interval": 0,
			"created_at":              now,
			"updated_at":              now,
		},
	}

	// Return the PRE-update document: the adaptive poll interval keys off
	// the cursor's prior activity time, and reading back the value just
	// written would make every caller look freshly active.
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.Before)

	var cursor delta_entities.UserDeltaCursor
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"user_id": userID}, update, opts).Decode(&cursor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Upsert inserted the row; the fresh cursor is the prior state.
			return fresh, nil
		}
		return nil, fmt.Errorf("failed to load delta cursor: %w", err)
	}

	// The touch applies to the stored row only; LastActiveAt keeps the
	// prior value for interval computation.
	cursor.ClientType = clientType

	return &cursor, nil
}

func (r *CursorMongoDBRepository) UpdateSyncTimes(ctx context.Context, userID uuid.UUID, times map[delta_entities.EntityType]time.Time, clientType delta_entities.ClientType) error {
	now := time.Now().UTC()
	set := bson.M{
		"updated_at":     now,
		"last_active_at": now,
		"client_type":    string(clientType),
	}
	for class, ts := range times {
		field, ok := cursorFieldByClass[class]
		if !ok {
			return fmt.Errorf("unknown entity class %q", class)
		}
		set[field] = ts
	}

	_, err := r.collection.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update delta cursors: %w", err)
	}
	return nil
}

func (r *CursorMongoDBRepository) UpdatePreferredPollInterval(ctx context.Context, userID uuid.UUID, intervalMS int) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"preferred_poll_interval": intervalMS}},
	)
	if err != nil {
		return fmt.Errorf("failed to store poll interval: %w", err)
	}
	return nil
}

var _ delta_out.CursorRepository = (*CursorMongoDBRepository)(nil)
