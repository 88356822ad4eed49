package activity_entities

import (
	"github.com/google/uuid"
)

// ActivityType describes a playable sport or game and its rating configuration.
type ActivityType struct {
	ID                uuid.UUID   `json:"id" bson:"_id"`
	Name              string      `json:"name" bson:"name"`
	Category          string      `json:"category" bson:"category"`
	IsSoloPerformable bool        `json:"is_solo_performable" bson:"is_solo_performable"`
	ELOSettings       ELOSettings `json:"elo_settings" bson:"elo_settings"`
}

// KFactorConfig holds the rating multipliers per experience tier.
type KFactorConfig struct {
	New         float64 `json:"new" bson:"new"`
	Established float64 `json:"established" bson:"established"`
	Expert      float64 `json:"expert" bson:"expert"`
}

// ELOSettings is the per-activity-type rating configuration. Unknown fields
// supplied by clients are preserved opaquely in Extra and never influence
// the rating engine.
type ELOSettings struct {
	StartingELO         int                    `json:"starting_elo" bson:"starting_elo"`
	KFactor             KFactorConfig          `json:"k_factor" bson:"k_factor"`
	ProvisionalGames    int                    `json:"provisional_games" bson:"provisional_games"`
	MinimumParticipants int                    `json:"minimum_participants" bson:"minimum_participants"`
	TeamBased           bool                   `json:"team_based" bson:"team_based"`
	AllowDraws          bool                   `json:"allow_draws" bson:"allow_draws"`
	SkillInfluence      float64                `json:"skill_influence" bson:"skill_influence"`
	Extra               map[string]interface{} `json:"extra,omitempty" bson:"extra,omitempty"`
}

// DefaultELOSettings returns the fallback configuration used when an
// activity type carries none and no defaults file is configured.
func DefaultELOSettings() ELOSettings {
	return ELOSettings{
		StartingELO: 1000,
		KFactor: KFactorConfig{
			New:         40,
			Established: 20,
			Expert:      10,
		},
		ProvisionalGames:    10,
		MinimumParticipants: 2,
		TeamBased:           false,
		AllowDraws:          true,
		SkillInfluence:      0.3,
	}
}

// EffectiveELOSettings returns the type's settings with zero-valued required
// fields backfilled from defaults.
func (t *ActivityType) EffectiveELOSettings(defaults ELOSettings) ELOSettings {
	s := t.ELOSettings
	if s.StartingELO == 0 {
		s.StartingELO = defaults.StartingELO
	}
	if s.KFactor.New == 0 {
		s.KFactor.New = defaults.KFactor.New
	}
	if s.KFactor.Established == 0 {
		s.KFactor.Established = defaults.KFactor.Established
	}
	if s.KFactor.Expert == 0 {
		s.KFactor.Expert = defaults.KFactor.Expert
	}
	if s.ProvisionalGames == 0 {
		s.ProvisionalGames = defaults.ProvisionalGames
	}
	if s.MinimumParticipants == 0 {
		s.MinimumParticipants = defaults.MinimumParticipants
	}
	if s.SkillInfluence == 0 {
		s.SkillInfluence = defaults.SkillInfluence
	}
	return s
}
