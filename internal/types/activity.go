package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity is a trackable habit. Archiving is a soft flag, not a delete:
// completions outlive the archived activity.
type Activity struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Name        string      `gorm:"column:name;not null" json:"name"`
	Pillar      Pillar      `gorm:"column:pillar;not null" json:"pillar"`
	SubCategory SubCategory `gorm:"column:sub_category;not null;index" json:"sub_category"`
	Points      int         `gorm:"column:points;not null;default:10" json:"points"`
	IsHabit     bool        `gorm:"column:is_habit;not null;default:true" json:"is_habit"`
	Archived    bool        `gorm:"column:archived;not null;default:false" json:"archived"`
	CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"not null" json:"updated_at"`
}

func (Activity) TableName() string { return "activities" }

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
