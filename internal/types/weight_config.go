package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	WeightPresetBalanced    = "BALANCED"
	WeightPresetBodyFocused = "BODY_FOCUSED"
	WeightPresetMindFocused = "MIND_FOCUSED"
	WeightPresetCustom      = "CUSTOM"
)

// WeightConfig holds per-user pillar weighting, expressed as percentages.
// Training/Sleep/Nutrition must sum to 100, as must Meditation/Reading/
// Learning. JournalingWeight is carried alongside the mind weights but is
// not part of the mind sum; see the scoring service for how it is (not)
// blended.
type WeightConfig struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User             *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Preset           string    `gorm:"column:preset;not null;default:'BALANCED'" json:"preset"`
	TrainingWeight   int       `gorm:"column:training_weight;not null;default:34" json:"training_weight"`
	SleepWeight      int       `gorm:"column:sleep_weight;not null;default:33" json:"sleep_weight"`
	NutritionWeight  int       `gorm:"column:nutrition_weight;not null;default:33" json:"nutrition_weight"`
	MeditationWeight int       `gorm:"column:meditation_weight;not null;default:34" json:"meditation_weight"`
	ReadingWeight    int       `gorm:"column:reading_weight;not null;default:33" json:"reading_weight"`
	LearningWeight   int       `gorm:"column:learning_weight;not null;default:33" json:"learning_weight"`
	JournalingWeight int       `gorm:"column:journaling_weight;not null;default:0" json:"journaling_weight"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null" json:"updated_at"`
}

func (WeightConfig) TableName() string { return "weight_configs" }

func (w *WeightConfig) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
