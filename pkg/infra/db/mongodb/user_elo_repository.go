package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	rating_entities "github.com/sportlink/sportlink-api/pkg/domain/rating/entities"
	rating_out "github.com/sportlink/sportlink-api/pkg/domain/rating/ports/out"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const userELOCollection = "user_activity_type_elos"

// UserELOMongoDBRepository persists per-(user, activity type) ratings with
// optimistic version guards.
type UserELOMongoDBRepository struct {
	collection *mongo.Collection
}

func NewUserELOMongoDBRepository(database *mongo.Database) rating_out.UserELORepository {
	collection := database.Collection(userELOCollection)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "activity_type_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "activity_type_id", Value: 1}, {Key: "elo_score", Value: -1}},
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		slog.Warn("Failed to create user_activity_type_elos indexes", "error", err)
	}

	return &UserELOMongoDBRepository{collection: collection}
}

func (r *UserELOMongoDBRepository) FindByUserAndType(ctx context.Context, userID, activityTypeID uuid.UUID) (*rating_entities.UserActivityTypeELO, error) {
	var elo rating_entities.UserActivityTypeELO
	err := r.collection.FindOne(ctx, bson.M{
		"user_id":          userID,
		"activity_type_id": activityTypeID,
	}).Decode(&elo)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user rating: %w", err)
	}
	return &elo, nil
}

func (r *UserELOMongoDBRepository) FindByUsersAndType(ctx context.Context, userIDs []uuid.UUID, activityTypeID uuid.UUID) ([]*rating_entities.UserActivityTypeELO, error) {
	cursor, err := r.collection.Find(ctx, bson.M{
		"user_id":          bson.M{"$in": userIDs},
		"activity_type_id": activityTypeID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find user ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var elos []*rating_entities.UserActivityTypeELO
	if err := cursor.All(ctx, &elos); err != nil {
		return nil, fmt.Errorf("failed to decode user ratings: %w", err)
	}
	return elos, nil
}

func (r *UserELOMongoDBRepository) Insert(ctx context.Context, elo *rating_entities.UserActivityTypeELO) error {
	if _, err := r.collection.InsertOne(ctx, elo); err != nil {
		return fmt.Errorf("failed to insert user rating: %w", err)
	}
	return nil
}

// UpdateVersioned applies the row only when the stored version still matches
// the expectation; callers retry on a miss.
func (r *UserELOMongoDBRepository) UpdateVersioned(ctx context.Context, elo *rating_entities.UserActivityTypeELO, expectedVersion int64) (bool, error) {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{
			"user_id":          elo.UserID,
			"activity_type_id": elo.ActivityTypeID,
			"version":          expectedVersion,
		},
		bson.M{"$set": bson.M{
			"elo_score":    elo.ELOScore,
			"games_played": elo.GamesPlayed,
			"peak_elo":     elo.PeakELO,
			"volatility":   elo.Volatility,
			"last_updated": elo.LastUpdated,
			"version":      elo.Version,
		}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to update user rating: %w", err)
	}
	return result.MatchedCount > 0, nil
}

func (r *UserELOMongoDBRepository) TopByType(ctx context.Context, activityTypeID uuid.UUID, minGames, limit int) ([]*rating_entities.UserActivityTypeELO, error) {
	filter := bson.M{
		"activity_type_id": activityTypeID,
		"games_played":     bson.M{"$gte": minGames},
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "elo_score", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	defer cursor.Close(ctx)

	var elos []*rating_entities.UserActivityTypeELO
	if err := cursor.All(ctx, &elos); err != nil {
		return nil, fmt.Errorf("failed to decode leaderboard: %w", err)
	}
	return elos, nil
}

var _ rating_out.UserELORepository = (*UserELOMongoDBRepository)(nil)
