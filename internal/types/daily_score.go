package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DailyScore is the upserted scoring snapshot for one (user, day).
// WhoopInputs captures the external biometrics that overrode manual scores,
// for auditability of a given day's numbers.
type DailyScore struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index:idx_daily_score_user_date,unique" json:"user_id"`
	User            *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Date            time.Time      `gorm:"column:date;not null;index:idx_daily_score_user_date,unique" json:"date"`
	BodyScore       int            `gorm:"column:body_score;not null;default:0" json:"body_score"`
	MindScore       int            `gorm:"column:mind_score;not null;default:0" json:"mind_score"`
	BalanceScore    int            `gorm:"column:balance_score;not null;default:0" json:"balance_score"`
	TrainingScore   int            `gorm:"column:training_score;not null;default:0" json:"training_score"`
	SleepScore      int            `gorm:"column:sleep_score;not null;default:0" json:"sleep_score"`
	NutritionScore  int            `gorm:"column:nutrition_score;not null;default:0" json:"nutrition_score"`
	MeditationScore int            `gorm:"column:meditation_score;not null;default:0" json:"meditation_score"`
	ReadingScore    int            `gorm:"column:reading_score;not null;default:0" json:"reading_score"`
	LearningScore   int            `gorm:"column:learning_score;not null;default:0" json:"learning_score"`
	WhoopInputs     datatypes.JSON `gorm:"type:jsonb;column:whoop_inputs" json:"whoop_inputs,omitempty"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`
}

func (DailyScore) TableName() string { return "daily_scores" }

func (d *DailyScore) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
