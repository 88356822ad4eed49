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
	skillDefinitionCollection = "skill_definitions"
	typeSkillCollection       = "activity_type_skills"
)

// SkillDefinitionMongoDBRepository reads the skill catalogue.
type SkillDefinitionMongoDBRepository struct {
	collection *mongo.Collection
}

func NewSkillDefinitionMongoDBRepository(database *mongo.Database) skill_out.SkillDefinitionRepository {
	return &SkillDefinitionMongoDBRepository{collection: database.Collection(skillDefinitionCollection)}
}

func (r *SkillDefinitionMongoDBRepository) FindByID(ctx context.Context, id uuid.UUID) (*skill_entities.SkillDefinition, error) {
	var definition skill_entities.SkillDefinition
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&definition)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find skill definition: %w", err)
	}
	return &definition, nil
}

func (r *SkillDefinitionMongoDBRepository) FindAll(ctx context.Context) ([]*skill_entities.SkillDefinition, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list skill definitions: %w", err)
	}
	defer cursor.Close(ctx)

	var definitions []*skill_entities.SkillDefinition
	if err := cursor.All(ctx, &definitions); err != nil {
		return nil, fmt.Errorf("failed to decode skill definitions: %w", err)
	}
	return definitions, nil
}

var _ skill_out.SkillDefinitionRepository = (*SkillDefinitionMongoDBRepository)(nil)

// ActivityTypeSkillMongoDBRepository reads the per-type ratable skill list.
type ActivityTypeSkillMongoDBRepository struct {
	collection *mongo.Collection
}

func NewActivityTypeSkillMongoDBRepository(database *mongo.Database) skill_out.ActivityTypeSkillRepository {
	collection := database.Collection(typeSkillCollection)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "activity_type_id", Value: 1}, {Key: "skill_definition_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "skill_definition_id", Value: 1}},
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		slog.Warn("Failed to create activity_type_skills indexes", "error", err)
	}

	return &ActivityTypeSkillMongoDBRepository{collection: collection}
}

func (r *ActivityTypeSkillMongoDBRepository) Exists(ctx context.Context, activityTypeID, skillDefinitionID uuid.UUID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"activity_type_id":    activityTypeID,
		"skill_definition_id": skillDefinitionID,
	}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check skill eligibility: %w", err)
	}
	return count > 0, nil
}

func (r *ActivityTypeSkillMongoDBRepository) FindTypesForSkill(ctx context.Context, skillDefinitionID uuid.UUID) ([]uuid.UUID, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"skill_definition_id": skillDefinitionID},
		options.Find().SetProjection(bson.M{"activity_type_id": 1}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity types for skill: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []uuid.UUID
	for cursor.Next(ctx) {
		var row struct {
			ActivityTypeID uuid.UUID `bson:"activity_type_id"`
		}
		if err := cursor.Decode(&row); err != nil {
			continue
		}
		ids = append(ids, row.ActivityTypeID)
	}
	return ids, nil
}

func (r *ActivityTypeSkillMongoDBRepository) FindByActivityType(ctx context.Context, activityTypeID uuid.UUID) ([]*skill_entities.ActivityTypeSkill, error) {
	opts := options.Find().SetSort(bson.D{{Key: "display_order", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"activity_type_id": activityTypeID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratable skills: %w", err)
	}
	defer cursor.Close(ctx)

	var skills []*skill_entities.ActivityTypeSkill
	if err := cursor.All(ctx, &skills); err != nil {
		return nil, fmt.Errorf("failed to decode ratable skills: %w", err)
	}
	return skills, nil
}

var _ skill_out.ActivityTypeSkillRepository = (*ActivityTypeSkillMongoDBRepository)(nil)
