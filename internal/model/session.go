package model

import (
	"time"

	"github.com/google/uuid"
)

// Session backs the SQL session store. The token is opaque and delivered to
// the client as an HttpOnly cookie.
type Session struct {
	Token     string    `gorm:"size:64;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
