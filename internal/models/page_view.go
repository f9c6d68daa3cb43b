package models

import (
	"time"

	"github.com/google/uuid"
)

// PageView is append-only; the application never mutates or deletes rows.
type PageView struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PageURL   string     `gorm:"size:500;not null" json:"page_url"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	User      *User      `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	ViewedAt  time.Time  `gorm:"not null;index" json:"viewed_at"`
	IPAddress string     `gorm:"size:45" json:"ip_address"`
	UserAgent string     `gorm:"size:500" json:"user_agent"`
}
