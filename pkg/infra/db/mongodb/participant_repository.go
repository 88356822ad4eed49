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

const participantCollection = "activity_participants"

// ParticipantMongoDBRepository persists participation rows; the compound
// unique index enforces one row per (activity, user).
type ParticipantMongoDBRepository struct {
	collection *mongo.Collection
}

func NewParticipantMongoDBRepository(database *mongo.Database) activity_out.ParticipantRepository {
	collection := database.Collection(participantCollection)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "activity_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		slog.Warn("Failed to create activity_participants indexes", "error", err)
	}

	return &ParticipantMongoDBRepository{collection: collection}
}

func (r *ParticipantMongoDBRepository) Insert(ctx context.Context, participant *activity_entities.ActivityParticipant) error {
	if _, err := r.collection.InsertOne(ctx, participant); err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}
	return nil
}

func (r *ParticipantMongoDBRepository) Update(ctx context.Context, participant *activity_entities.ActivityParticipant) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": participant.ID},
		bson.M{"$set": participant},
	)
	if err != nil {
		return fmt.Errorf("failed to update participant: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("participant not found: %s", participant.ID)
	}
	return nil
}

func (r *ParticipantMongoDBRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("participant not found: %s", id)
	}
	return nil
}

func (r *ParticipantMongoDBRepository) FindByActivity(ctx context.Context, activityID uuid.UUID) ([]*activity_entities.ActivityParticipant, error) {
	return r.find(ctx, bson.M{"activity_id": activityID})
}

func (r *ParticipantMongoDBRepository) FindAcceptedByActivity(ctx context.Context, activityID uuid.UUID) ([]*activity_entities.ActivityParticipant, error) {
	return r.find(ctx, bson.M{
		"activity_id": activityID,
		"status":      string(activity_entities.ParticipantStatusAccepted),
	})
}

func (r *ParticipantMongoDBRepository) find(ctx context.Context, filter bson.M) ([]*activity_entities.ActivityParticipant, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find participants: %w", err)
	}
	defer cursor.Close(ctx)

	var participants []*activity_entities.ActivityParticipant
	if err := cursor.All(ctx, &participants); err != nil {
		return nil, fmt.Errorf("failed to decode participants: %w", err)
	}
	return participants, nil
}

func (r *ParticipantMongoDBRepository) FindByActivityAndUser(ctx context.Context, activityID, userID uuid.UUID) (*activity_entities.ActivityParticipant, error) {
	var participant activity_entities.ActivityParticipant
	err := r.collection.FindOne(ctx, bson.M{
		"activity_id": activityID,
		"user_id":     userID,
	}).Decode(&participant)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find participant: %w", err)
	}
	return &participant, nil
}

func (r *ParticipantMongoDBRepository) CountByActivity(ctx context.Context, activityID uuid.UUID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"activity_id": activityID,
		"status": bson.M{"$in": []string{
			string(activity_entities.ParticipantStatusPending),
			string(activity_entities.ParticipantStatusAccepted),
		}},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count participants: %w", err)
	}
	return count, nil
}

func (r *ParticipantMongoDBRepository) FindActivityIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetProjection(bson.M{"activity_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to find participations: %w", err)
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

var _ activity_out.ParticipantRepository = (*ParticipantMongoDBRepository)(nil)
