package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string         `gorm:"column:email;not null;uniqueIndex" json:"email"`
	Password    string         `gorm:"column:password;not null" json:"-"`
	FirstName   string         `gorm:"column:first_name;not null" json:"first_name"`
	LastName    string         `gorm:"column:last_name;not null" json:"last_name"`
	AvatarColor string         `gorm:"column:avatar_color;not null;default:''" json:"avatar_color"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
