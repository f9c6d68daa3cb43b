package dto

import (
	"time"

	"github.com/google/uuid"
)

// DatabaseTable is one table of the admin raw view. Rows holds a slice of the
// typed per-table row structs below; every column is one of a closed set of
// value kinds (string, bool, timestamp, uuid, null).
type DatabaseTable struct {
	TableName string      `json:"table_name"`
	Rows      interface{} `json:"rows"`
}

type UserRow struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type EventRow struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	City           string    `json:"city"`
	AreaOfInterest string    `json:"area_of_interest"`
	EventDate      time.Time `json:"event_date"`
	Organizer      string    `json:"organizer"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

type RegistrationRow struct {
	ID           uuid.UUID `json:"id"`
	Event        string    `json:"event"`
	User         string    `json:"user"`
	Status       string    `json:"status"`
	RegisteredAt time.Time `json:"registered_at"`
}

type NotificationRow struct {
	ID        uuid.UUID `json:"id"`
	User      string    `json:"user"`
	Title     string    `json:"title"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type PageViewRow struct {
	ID        uuid.UUID `json:"id"`
	PageURL   string    `json:"page_url"`
	IPAddress string    `json:"ip_address"`
	ViewedAt  time.Time `json:"viewed_at"`
}

type AdminUserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

type AdminEventResponse struct {
	ID                uuid.UUID `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	EventDate         time.Time `json:"event_date"`
	City              string    `json:"city"`
	Location          string    `json:"location"`
	AreaOfInterest    string    `json:"area_of_interest"`
	OrganizerName     string    `json:"organizer_name"`
	RegistrationCount int64     `json:"registration_count"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
}
