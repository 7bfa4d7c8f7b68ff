package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Trigger condition kinds. A closed set, one evaluator per kind; adding a
// kind means adding a constant and an evaluator, nothing else moves.
const (
	TriggerWhoopRecoveryAbove   = "WHOOP_RECOVERY_ABOVE"
	TriggerWhoopRecoveryBelow   = "WHOOP_RECOVERY_BELOW"
	TriggerWhoopSleepHoursAbove = "WHOOP_SLEEP_HOURS_ABOVE"
	TriggerWhoopSleepHoursBelow = "WHOOP_SLEEP_HOURS_BELOW"
	TriggerWhoopStrainAbove     = "WHOOP_STRAIN_ABOVE"
	TriggerWhoopWorkoutType     = "WHOOP_WORKOUT_TYPE"
	TriggerActivityCompleted    = "ACTIVITY_COMPLETED"
)

// AutoTrigger auto-completes its activity when an external signal matches.
// Which optional field is meaningful depends on TriggerType.
type AutoTrigger struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ActivityID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"activity_id"`
	Activity          *Activity  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ActivityID;references:ID" json:"activity,omitempty"`
	TriggerType       string     `gorm:"column:trigger_type;not null" json:"trigger_type"`
	ThresholdValue    *float64   `gorm:"column:threshold_value" json:"threshold_value,omitempty"`
	WorkoutTypeID     *int       `gorm:"column:workout_type_id" json:"workout_type_id,omitempty"`
	TriggerActivityID *uuid.UUID `gorm:"type:uuid;column:trigger_activity_id" json:"trigger_activity_id,omitempty"`
	IsActive          bool       `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt         time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"not null" json:"updated_at"`
}

func (AutoTrigger) TableName() string { return "auto_triggers" }

func (t *AutoTrigger) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
