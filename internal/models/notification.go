package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification is only ever created as a side effect of catalog or ledger
// mutations. EventID is nullable and survives event deletion via set-null.
type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User      User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	EventID   *uuid.UUID `gorm:"type:uuid;index" json:"event_id"`
	Event     *Event     `gorm:"foreignKey:EventID;constraint:OnDelete:SET NULL" json:"-"`
	Title     string     `gorm:"size:255;not null" json:"title"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	IsRead    bool       `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time  `json:"created_at"`
}
