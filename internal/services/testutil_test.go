package services

import (
	"sync"
	"testing"
	"time"

	"github.com/eventhubhq/eventhub-backend/internal/config"
	"github.com/eventhubhq/eventhub-backend/internal/database"
	"github.com/eventhubhq/eventhub-backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database. A single connection keeps
// the memory DB alive and serializes writes, so concurrent callers contend on
// the same unique index just like they would against postgres.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
		FromEmail: "noreply@eventhub.test",
		FromName:  "EventHub",
		BaseURL:   "https://eventhub.test",
	}
}

// fakeMailer records calls instead of talking SMTP.
type fakeMailer struct {
	mu            sync.Mutex
	created       []string
	confirmations []string
}

func (m *fakeMailer) SendEventCreated(toEmail, recipientName, eventTitle string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, toEmail)
}

func (m *fakeMailer) SendRegistrationConfirmation(toEmail, recipientName, eventTitle string, eventDate time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.confirmations = append(m.confirmations, toEmail)
}

func (m *fakeMailer) confirmationCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.confirmations)
}

func createTestUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "Test",
		LastName:     "User",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestEvent(t *testing.T, db *gorm.DB, organizer *models.User, title, city, area string, date time.Time) *models.Event {
	t.Helper()

	event := models.Event{
		ID:             uuid.New(),
		Title:          title,
		Description:    "A test event",
		EventDate:      date,
		City:           city,
		Location:       "Somewhere",
		AreaOfInterest: area,
		OrganizerID:    organizer.ID,
		IsActive:       true,
	}
	require.NoError(t, db.Create(&event).Error)
	return &event
}

func newTestEventService(db *gorm.DB) (*EventService, *fakeMailer) {
	mailer := &fakeMailer{}
	return NewEventService(db, NewNotificationService(db), mailer), mailer
}
