package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	skill_entities "github.com/sportlink/sportlink-api/pkg/domain/skill/entities"
	skill_out "github.com/sportlink/sportlink-api/pkg/domain/skill/ports/out"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const skillRatingCollection = "user_activity_skill_ratings"

// SkillRatingMongoDBRepository persists peer ratings; the compound unique
// index enforces one rating per (activity, rated, rater, skill).
type SkillRatingMongoDBRepository struct {
	collection *mongo.Collection
}

func NewSkillRatingMongoDBRepository(database *mongo.Database) skill_out.SkillRatingRepository {
	collection := database.Collection(skillRatingCollection)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "activity_id", Value: 1},
				{Key: "rated_user_id", Value: 1},
				{Key: "rating_user_id", Value: 1},
				{Key: "skill_definition_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "rated_user_id", Value: 1},
				{Key: "skill_definition_id", Value: 1},
				{Key: "created_at", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "rating_user_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		slog.Warn("Failed to create user_activity_skill_ratings indexes", "error", err)
	}

	return &SkillRatingMongoDBRepository{collection: collection}
}

func (r *SkillRatingMongoDBRepository) Insert(ctx context.Context, rating *skill_entities.UserActivitySkillRating) error {
	now := time.Now().UTC()
	rating.CreatedAt = now
	rating.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, rating); err != nil {
		return fmt.Errorf("failed to insert skill rating: %w", err)
	}
	return nil
}

func (r *SkillRatingMongoDBRepository) Update(ctx context.Context, rating *skill_entities.UserActivitySkillRating) error {
	rating.UpdatedAt = time.Now().UTC()

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": rating.ID},
		bson.M{"$set": rating},
	)
	if err != nil {
		return fmt.Errorf("failed to update skill rating: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("skill rating not found: %s", rating.ID)
	}
	return nil
}

func (r *SkillRatingMongoDBRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete skill rating: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("skill rating not found: %s", id)
	}
	return nil
}

func (r *SkillRatingMongoDBRepository) FindByID(ctx context.Context, id uuid.UUID) (*skill_entities.UserActivitySkillRating, error) {
	var rating skill_entities.UserActivitySkillRating
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rating)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find skill rating: %w", err)
	}
	return &rating, nil
}

func (r *SkillRatingMongoDBRepository) Exists(ctx context.Context, activityID, ratedUserID, ratingUserID, skillDefinitionID uuid.UUID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"activity_id":         activityID,
		"rated_user_id":       ratedUserID,
		"rating_user_id":      ratingUserID,
		"skill_definition_id": skillDefinitionID,
	}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check for existing rating: %w", err)
	}
	return count > 0, nil
}

func (r *SkillRatingMongoDBRepository) FindByActivity(ctx context.Context, activityID uuid.UUID) ([]*skill_entities.UserActivitySkillRating, error) {
	return r.find(ctx, bson.M{"activity_id": activityID}, nil)
}

func (r *SkillRatingMongoDBRepository) FindReceivedInActivity(ctx context.Context, activityID, ratedUserID uuid.UUID) ([]*skill_entities.UserActivitySkillRating, error) {
	return r.find(ctx, bson.M{
		"activity_id":   activityID,
		"rated_user_id": ratedUserID,
	}, nil)
}

func (r *SkillRatingMongoDBRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*skill_entities.UserActivitySkillRating, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.collection.Find(ctx, filter, opts)
	} else {
		cursor, err = r.collection.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find skill ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var ratings []*skill_entities.UserActivitySkillRating
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, fmt.Errorf("failed to decode skill ratings: %w", err)
	}
	return ratings, nil
}

// FindForSummary joins through activities to scope ratings to one activity
// type, oldest first so trend halves line up with submission order.
func (r *SkillRatingMongoDBRepository) FindForSummary(ctx context.Context, ratedUserID, skillDefinitionID, activityTypeID uuid.UUID) ([]*skill_entities.UserActivitySkillRating, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"rated_user_id":       ratedUserID,
			"skill_definition_id": skillDefinitionID,
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         activityCollection,
			"localField":   "activity_id",
			"foreignField": "_id",
			"as":           "activity",
		}}},
		{{Key: "$match", Value: bson.M{
			"activity.activity_type_id": activityTypeID,
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: 1}}}},
		{{Key: "$unset", Value: "activity"}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate summary ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var ratings []*skill_entities.UserActivitySkillRating
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, fmt.Errorf("failed to decode summary ratings: %w", err)
	}
	return ratings, nil
}

func (r *SkillRatingMongoDBRepository) FindRecentCommented(ctx context.Context, ratedUserID uuid.UUID, limit int) ([]*skill_entities.UserActivitySkillRating, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	return r.find(ctx, bson.M{
		"rated_user_id": ratedUserID,
		"comment":       bson.M{"$nin": bson.A{"", nil}},
	}, opts)
}

// FindSuspiciousPatterns groups extreme-valued repeats by (rater, rated,
// value) within the window.
func (r *SkillRatingMongoDBRepository) FindSuspiciousPatterns(ctx context.Context, since time.Time, minOccurrences int) ([]skill_out.SuspiciousPattern, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"created_at":   bson.M{"$gte": since},
			"rating_value": bson.M{"$in": bson.A{1, 2, 9, 10}},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"rating_user_id": "$rating_user_id",
				"rated_user_id":  "$rated_user_id",
				"rating_value":   "$rating_value",
			},
			"occurrences": bson.M{"$sum": 1},
		}}},
		{{Key: "$match", Value: bson.M{
			"occurrences": bson.M{"$gte": minOccurrences},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "occurrences", Value: -1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to scan rating patterns: %w", err)
	}
	defer cursor.Close(ctx)

	var patterns []skill_out.SuspiciousPattern
	for cursor.Next(ctx) {
		var row struct {
			Key struct {
				RatingUserID uuid.UUID `bson:"rating_user_id"`
				RatedUserID  uuid.UUID `bson:"rated_user_id"`
				RatingValue  int       `bson:"rating_value"`
			} `bson:"_id"`
			Occurrences int `bson:"occurrences"`
		}
		if err := cursor.Decode(&row); err != nil {
			continue
		}
		patterns = append(patterns, skill_out.SuspiciousPattern{
			RatingUserID: row.Key.RatingUserID,
			RatedUserID:  row.Key.RatedUserID,
			RatingValue:  row.Key.RatingValue,
			Occurrences:  row.Occurrences,
		})
	}

	return patterns, nil
}

var _ skill_out.SkillRatingRepository = (*SkillRatingMongoDBRepository)(nil)
