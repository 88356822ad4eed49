package skill_entities

import (
	"github.com/google/uuid"
)

type SkillType string

const (
	SkillTypePhysical  SkillType = "physical"
	SkillTypeTechnical SkillType = "technical"
	SkillTypeMental    SkillType = "mental"
	SkillTypeTactical  SkillType = "tactical"
)

// SkillDefinition is a ratable skill such as "passing" or "endurance".
type SkillDefinition struct {
	ID        uuid.UUID `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	SkillType SkillType `json:"skill_type" bson:"skill_type"`
	IsGeneral bool      `json:"is_general" bson:"is_general"`
}

// ActivityTypeSkill lists a skill as ratable for an activity type.
type ActivityTypeSkill struct {
	ID                uuid.UUID `json:"id" bson:"_id"`
	ActivityTypeID    uuid.UUID `json:"activity_type_id" bson:"activity_type_id"`
	SkillDefinitionID uuid.UUID `json:"skill_definition_id" bson:"skill_definition_id"`
	Weight            float64   `json:"weight" bson:"weight"`
	DisplayOrder      int       `json:"display_order" bson:"display_order"`
}
