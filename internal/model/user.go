package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username            string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	PasswordHash        string    `gorm:"size:255;not null" json:"-"`
	Email               *string   `gorm:"size:100" json:"email,omitempty"`
	IsAdmin             bool      `gorm:"not null;default:false" json:"is_admin"`
	HasCompletedProfile bool      `gorm:"not null;default:false" json:"has_completed_profile"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
	Profile             *Profile  `gorm:"constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type Profile struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	FullName  string    `gorm:"size:100;not null" json:"full_name"`
	Bio       *string   `gorm:"type:text" json:"bio,omitempty"`
	Interest  *string   `gorm:"size:100" json:"interest,omitempty"`
	AvatarURL *string   `gorm:"type:text" json:"avatar_url,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
