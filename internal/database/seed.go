package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/eventhubhq/eventhub-backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed provisions one admin, one organizer, one attendee and five sample
// events at first initialization. It is a no-op once any user row exists.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	admin, err := seedUser(db, "admin@eventhub.dev", "Admin@123", "Admin", "User", models.RoleAdmin)
	if err != nil {
		return err
	}
	organizer, err := seedUser(db, "organizer@eventhub.dev", "Organizer@123", "John", "Organizer", models.RoleOrganizer)
	if err != nil {
		return err
	}
	if _, err := seedUser(db, "attendee@eventhub.dev", "Attendee@123", "Jane", "Attendee", models.RoleAttendee); err != nil {
		return err
	}

	now := time.Now().UTC()
	events := []models.Event{
		{
			Title:            "AI Summit 2026",
			Description:      "The biggest AI conference of the year with keynotes from industry leaders and hands-on workshops.",
			EventDate:        time.Date(now.Year(), 11, 15, 9, 0, 0, 0, time.UTC),
			City:             "San Francisco",
			Location:         "Moscone Center, 747 Howard St",
			AreaOfInterest:   "AI",
			RegistrationLink: "https://aisummit.example.com/register",
		},
		{
			Title:          "Backend Developers Meetup",
			Description:    "Monthly meetup for backend developers to share experiences and network.",
			EventDate:      time.Date(now.Year(), 11, 5, 18, 0, 0, 0, time.UTC),
			City:           "New York",
			Location:       "WeWork, 115 W 18th St",
			AreaOfInterest: "Backend",
		},
		{
			Title:          "UX Design Workshop",
			Description:    "A full-day workshop covering research, prototyping and usability testing.",
			EventDate:      time.Date(now.Year(), 11, 20, 10, 0, 0, 0, time.UTC),
			City:           "Austin",
			Location:       "Capital Factory, 701 Brazos St",
			AreaOfInterest: "UX",
		},
		{
			Title:          "DevOps Days",
			Description:    "Two days of talks on delivery pipelines, SRE practice and platform engineering.",
			EventDate:      time.Date(now.Year(), 12, 2, 9, 30, 0, 0, time.UTC),
			City:           "Boston",
			Location:       "Hynes Convention Center",
			AreaOfInterest: "DevOps",
		},
		{
			Title:          "Cloud Native Con",
			Description:    "Kubernetes, service meshes and everything in between.",
			EventDate:      time.Date(now.Year(), 12, 10, 9, 0, 0, 0, time.UTC),
			City:           "Seattle",
			Location:       "Washington State Convention Center",
			AreaOfInterest: "Cloud",
		},
	}

	for i := range events {
		events[i].ID = uuid.New()
		events[i].OrganizerID = organizer.ID
		events[i].IsActive = true
		if err := db.Create(&events[i]).Error; err != nil {
			return fmt.Errorf("failed to seed event %q: %w", events[i].Title, err)
		}
	}

	slog.Info("seed data created", "users", 3, "events", len(events), "admin", admin.Email)
	return nil
}

func seedUser(db *gorm.DB, email, password, firstName, lastName, role string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}
	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to seed user %s: %w", email, err)
	}
	return &user, nil
}
