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

const (
	typeSummaryCollection    = "user_activity_type_skill_summaries"
	generalSummaryCollection = "user_general_skill_summaries"
)

// SkillSummaryMongoDBRepository persists rating rollups with
// overwrite-on-conflict semantics so recomputation stays idempotent.
type SkillSummaryMongoDBRepository struct {
	typeSummaries    *mongo.Collection
	generalSummaries *mongo.Collection
}

func NewSkillSummaryMongoDBRepository(database *mongo.Database) skill_out.SkillSummaryRepository {
	typeSummaries := database.Collection(typeSummaryCollection)
	generalSummaries := database.Collection(generalSummaryCollection)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := typeSummaries.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "activity_type_id", Value: 1},
			{Key: "skill_definition_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		slog.Warn("Failed to create skill summary indexes", "error", err)
	}

	if _, err := generalSummaries.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "skill_definition_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		slog.Warn("Failed to create general skill summary indexes", "error", err)
	}

	return &SkillSummaryMongoDBRepository{
		typeSummaries:    typeSummaries,
		generalSummaries: generalSummaries,
	}
}

func (r *SkillSummaryMongoDBRepository) UpsertTypeSummary(ctx context.Context, summary *skill_entities.UserActivityTypeSkillSummary) error {
	_, err := r.typeSummaries.UpdateOne(ctx,
		bson.M{
			"user_id":             summary.UserID,
			"activity_type_id":    summary.ActivityTypeID,
			"skill_definition_id": summary.SkillDefinitionID,
		},
		bson.M{
			"$set": bson.M{
				"average_rating":     summary.AverageRating,
				"total_ratings":      summary.TotalRatings,
				"trend":              string(summary.Trend),
				"last_calculated_at": summary.LastCalculatedAt,
			},
			"$setOnInsert": bson.M{"_id": summary.ID},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert skill summary: %w", err)
	}
	return nil
}

func (r *SkillSummaryMongoDBRepository) UpsertGeneralSummary(ctx context.Context, summary *skill_entities.UserGeneralSkillSummary) error {
	_, err := r.generalSummaries.UpdateOne(ctx,
		bson.M{
			"user_id":             summary.UserID,
			"skill_definition_id": summary.SkillDefinitionID,
		},
		bson.M{
			"$set": bson.M{
				"average_rating":     summary.AverageRating,
				"total_ratings":      summary.TotalRatings,
				"last_calculated_at": summary.LastCalculatedAt,
			},
			"$setOnInsert": bson.M{"_id": summary.ID},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert general skill summary: %w", err)
	}
	return nil
}

func (r *SkillSummaryMongoDBRepository) DeleteTypeSummary(ctx context.Context, userID, activityTypeID, skillDefinitionID uuid.UUID) error {
	_, err := r.typeSummaries.DeleteOne(ctx, bson.M{
		"user_id":             userID,
		"activity_type_id":    activityTypeID,
		"skill_definition_id": skillDefinitionID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete skill summary: %w", err)
	}
	return nil
}

func (r *SkillSummaryMongoDBRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*skill_entities.UserActivityTypeSkillSummary, error) {
	return r.findTypeSummaries(ctx, bson.M{"user_id": userID})
}

func (r *SkillSummaryMongoDBRepository) FindByUserAndType(ctx context.Context, userID, activityTypeID uuid.UUID) ([]*skill_entities.UserActivityTypeSkillSummary, error) {
	return r.findTypeSummaries(ctx, bson.M{
		"user_id":          userID,
		"activity_type_id": activityTypeID,
	})
}

func (r *SkillSummaryMongoDBRepository) findTypeSummaries(ctx context.Context, filter bson.M) ([]*skill_entities.UserActivityTypeSkillSummary, error) {
	cursor, err := r.typeSummaries.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find skill summaries: %w", err)
	}
	defer cursor.Close(ctx)

	var summaries []*skill_entities.UserActivityTypeSkillSummary
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, fmt.Errorf("failed to decode skill summaries: %w", err)
	}
	return summaries, nil
}

var _ skill_out.SkillSummaryRepository = (*SkillSummaryMongoDBRepository)(nil)
