package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	activity_entities "github.com/sportlink/sportlink-api/pkg/domain/activity/entities"
	activity_out "github.com/sportlink/sportlink-api/pkg/domain/activity/ports/out"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	activityCollection     = "activities"
	activityTypeCollection = "activity_types"
)

// ActivityMongoDBRepository persists activities.
type ActivityMongoDBRepository struct {
	collection *mongo.Collection
}

func NewActivityMongoDBRepository(database *mongo.Database) activity_out.ActivityRepository {
	collection := database.Collection(activityCollection)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "creator_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "activity_type_id", Value: 1}, {Key: "date_time", Value: -1}},
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		slog.Warn("Failed to create activities indexes", "error", err)
	}

	return &ActivityMongoDBRepository{collection: collection}
}

func (r *ActivityMongoDBRepository) Insert(ctx context.Context, activity *activity_entities.Activity) error {
	if _, err := r.collection.InsertOne(ctx, activity); err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	return nil
}

func (r *ActivityMongoDBRepository) Update(ctx context.Context, activity *activity_entities.Activity) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": activity.ID},
		bson.M{"$set": activity},
	)
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("activity not found: %s", activity.ID)
	}
	return nil
}

func (r *ActivityMongoDBRepository) FindByID(ctx context.Context, id uuid.UUID) (*activity_entities.Activity, error) {
	var activity activity_entities.Activity
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&activity)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find activity: %w", err)
	}
	return &activity, nil
}

func (r *ActivityMongoDBRepository) FindByCreator(ctx context.Context, creatorID uuid.UUID, limit int) ([]*activity_entities.Activity, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"creator_id": creatorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find activities: %w", err)
	}
	defer cursor.Close(ctx)

	var activities []*activity_entities.Activity
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, fmt.Errorf("failed to decode activities: %w", err)
	}
	return activities, nil
}

var _ activity_out.ActivityRepository = (*ActivityMongoDBRepository)(nil)

// ActivityTypeMongoDBRepository reads the activity-type catalogue.
type ActivityTypeMongoDBRepository struct {
	collection *mongo.Collection
}

func NewActivityTypeMongoDBRepository(database *mongo.Database) activity_out.ActivityTypeRepository {
	return &ActivityTypeMongoDBRepository{collection: database.Collection(activityTypeCollection)}
}

func (r *ActivityTypeMongoDBRepository) FindByID(ctx context.Context, id uuid.UUID) (*activity_entities.ActivityType, error) {
	var activityType activity_entities.ActivityType
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&activityType)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find activity type: %w", err)
	}
	return &activityType, nil
}

func (r *ActivityTypeMongoDBRepository) FindAll(ctx context.Context) ([]*activity_entities.ActivityType, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list activity types: %w", err)
	}
	defer cursor.Close(ctx)

	var types []*activity_entities.ActivityType
	if err := cursor.All(ctx, &types); err != nil {
		return nil, fmt.Errorf("failed to decode activity types: %w", err)
	}
	return types, nil
}

var _ activity_out.ActivityTypeRepository = (*ActivityTypeMongoDBRepository)(nil)
