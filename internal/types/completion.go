package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CompletionSourceManual      = "MANUAL"
	CompletionSourceWhoop       = "WHOOP"
	CompletionSourceAutoTrigger = "AUTO_TRIGGER"
)

// Completion records one performance of an activity. CompletedOn holds the
// canonical calendar day (midnight) and is only set for habit activities,
// so the unique (activity_id, completed_on) index enforces once-per-day at
// the database, while non-habit logs can repeat within a day.
type Completion struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ActivityID   uuid.UUID  `gorm:"type:uuid;not null;index;index:idx_completion_activity_day,unique" json:"activity_id"`
	Activity     *Activity  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ActivityID;references:ID" json:"activity,omitempty"`
	CompletedAt  time.Time  `gorm:"column:completed_at;not null;index" json:"completed_at"`
	CompletedOn  *time.Time `gorm:"column:completed_on;index:idx_completion_activity_day,unique" json:"completed_on,omitempty"`
	PointsEarned int        `gorm:"column:points_earned;not null;default:0" json:"points_earned"`
	XPEarned     int        `gorm:"column:xp_earned;not null;default:0" json:"xp_earned"`
	Details      string     `gorm:"column:details;not null;default:''" json:"details"`
	Source       string     `gorm:"column:source;not null;default:'MANUAL'" json:"source"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
}

func (Completion) TableName() string { return "completions" }

func (c *Completion) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
