package models

import (
	"time"

	"github.com/google/uuid"
)

// Registration status values. Current flows only ever produce Registered;
// unregistering is a hard delete, not a status change.
const (
	RegistrationStatusRegistered = "Registered"
	RegistrationStatusCancelled  = "Cancelled"
	RegistrationStatusAttended   = "Attended"
)

// EventRegistration is unique per (event, user). The composite index is the
// source of truth for race safety; the service pre-check only gives a nicer error.
type EventRegistration struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_registrations_event_user;index" json:"event_id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_registrations_event_user;index" json:"user_id"`
	Event        Event     `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	User         User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Status       string    `gorm:"size:20;not null;default:'Registered'" json:"status"`
	RegisteredAt time.Time `gorm:"not null" json:"registered_at"`
}
