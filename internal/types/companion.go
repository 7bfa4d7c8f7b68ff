package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Companion is the per-user, per-category Habitanimal. Level and
// EvolutionStage are derived from XP; Health only moves via decay-on-read
// or recovery-on-completion. Only the completion transaction writes here.
type Companion struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID   `gorm:"type:uuid;not null;index:idx_companion_user_category,unique" json:"user_id"`
	User            *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Category        SubCategory `gorm:"column:category;not null;index:idx_companion_user_category,unique" json:"category"`
	XP              int         `gorm:"column:xp;not null;default:0" json:"xp"`
	Level           int         `gorm:"column:level;not null;default:1" json:"level"`
	EvolutionStage  int         `gorm:"column:evolution_stage;not null;default:1" json:"evolution_stage"`
	Health          int         `gorm:"column:health;not null;default:100" json:"health"`
	LastInteraction time.Time   `gorm:"column:last_interaction;not null" json:"last_interaction"`
	CreatedAt       time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"not null" json:"updated_at"`
}

func (Companion) TableName() string { return "companions" }

func (c *Companion) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
