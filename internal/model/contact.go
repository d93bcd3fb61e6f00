package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Purposes accepted on the public contact form.
const (
	ContactPurposeBecomeAdmin = "become_admin"
	ContactPurposeShareCourse = "share_course"
	ContactPurposeCopyright   = "copyright"
	ContactPurposeOther       = "other"
)

type ContactSubmission struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string    `gorm:"size:100;not null" json:"name"`
	Email            string    `gorm:"size:100;not null" json:"email"`
	TelegramUsername *string   `gorm:"size:100" json:"telegram_username,omitempty"`
	Purpose          string    `gorm:"size:30;not null" json:"purpose"`
	Message          string    `gorm:"type:text;not null" json:"message"`
	IsRead           bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (c *ContactSubmission) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
