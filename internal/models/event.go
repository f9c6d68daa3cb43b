package models

import (
	"time"

	"github.com/google/uuid"
)

// Event is soft-deleted via IsActive; inactive events stay in storage but are
// excluded from every user-facing query.
type Event struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title            string    `gorm:"size:255;not null" json:"title"`
	Description      string    `gorm:"type:text;not null" json:"description"`
	EventDate        time.Time `gorm:"not null;index" json:"event_date"`
	City             string    `gorm:"size:100;not null;index" json:"city"`
	Location         string    `gorm:"size:255" json:"location"`
	AreaOfInterest   string    `gorm:"size:100;index" json:"area_of_interest"`
	RegistrationLink string    `gorm:"size:500" json:"registration_link"`
	OrganizerID      uuid.UUID `gorm:"type:uuid;not null;index" json:"organizer_id"`
	Organizer        User      `gorm:"foreignKey:OrganizerID;constraint:OnDelete:RESTRICT" json:"-"`
	IsActive         bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
