package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateEventRequest struct {
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	EventDate        time.Time `json:"event_date"`
	City             string    `json:"city"`
	Location         string    `json:"location"`
	AreaOfInterest   string    `json:"area_of_interest"`
	RegistrationLink string    `json:"registration_link"`
}

type UpdateEventRequest struct {
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	EventDate        time.Time `json:"event_date"`
	City             string    `json:"city"`
	Location         string    `json:"location"`
	AreaOfInterest   string    `json:"area_of_interest"`
	RegistrationLink string    `json:"registration_link"`
}

// EventSearchRequest carries the query filters. All filters are conjunctive;
// SearchTerm alone matches title OR description.
type EventSearchRequest struct {
	City           string     `query:"city"`
	AreaOfInterest string     `query:"areaOfInterest"`
	FromDate       *time.Time `query:"fromDate"`
	ToDate         *time.Time `query:"toDate"`
	SearchTerm     string     `query:"searchTerm"`
	Page           int        `query:"page"`
	PageSize       int        `query:"pageSize"`
}

type EventResponse struct {
	ID                uuid.UUID `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	EventDate         time.Time `json:"event_date"`
	City              string    `json:"city"`
	Location          string    `json:"location"`
	AreaOfInterest    string    `json:"area_of_interest"`
	RegistrationLink  string    `json:"registration_link"`
	OrganizerID       uuid.UUID `json:"organizer_id"`
	OrganizerName     string    `json:"organizer_name"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	RegistrationCount int64     `json:"registration_count"`
	IsUserRegistered  bool      `json:"is_user_registered"`
}

type RegistrationResponse struct {
	ID           uuid.UUID      `json:"id"`
	EventID      uuid.UUID      `json:"event_id"`
	UserID       uuid.UUID      `json:"user_id"`
	RegisteredAt time.Time      `json:"registered_at"`
	Status       string         `json:"status"`
	Event        *EventResponse `json:"event,omitempty"`
}
