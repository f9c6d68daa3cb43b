package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/eventhubhq/eventhub-backend/internal/dto"
	"github.com/eventhubhq/eventhub-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchFiltersAreConjunctive(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestEventService(db)
	organizer := createTestUser(t, db, "org@example.com", models.RoleOrganizer)

	date := time.Now().UTC().AddDate(0, 1, 0)
	austinAI := createTestEvent(t, db, organizer, "Austin AI Conf", "Austin", "AI", date)
	createTestEvent(t, db, organizer, "Austin UX Meet", "Austin", "UX", date)
	createTestEvent(t, db, organizer, "Boston AI Forum", "Boston", "AI", date)
	createTestEvent(t, db, organizer, "Boston UX Lab", "Boston", "UX", date)

	results, err := svc.Search(&dto.EventSearchRequest{City: "Austin", AreaOfInterest: "AI"}, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, austinAI.ID, results[0].ID)

	// City matching is a case-insensitive substring.
	results, err = svc.Search(&dto.EventSearchRequest{City: "aus"}, nil)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearchTermMatchesTitleOrDescription(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestEventService(db)
	organizer := createTestUser(t, db, "org@example.com", models.RoleOrganizer)

	date := time.Now().UTC().AddDate(0, 1, 0)
	byTitle := createTestEvent(t, db, organizer, "Kubernetes Deep Dive", "Austin", "Cloud", date)

	other := models.Event{
		ID:             uuid.New(),
		Title:          "Platform Night",
		Description:    "An evening about kubernetes operators",
		EventDate:      date,
		City:           "Boston",
		AreaOfInterest: "Cloud",
		OrganizerID:    organizer.ID,
		IsActive:       true,
	}
	require.NoError(t, db.Create(&other).Error)
	createTestEvent(t, db, organizer, "Rust Meetup", "Austin", "Systems", date)

	results, err := svc.Search(&dto.EventSearchRequest{SearchTerm: "kubernetes"}, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)

	ids := []uuid.UUID{results[0].ID, results[1].ID}
	assert.Contains(t, ids, byTitle.ID)
	assert.Contains(t, ids, other.ID)

	// searchTerm still ANDs with the city filter
	results, err = svc.Search(&dto.EventSearchRequest{SearchTerm: "kubernetes", City: "Boston"}, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, other.ID, results[0].ID)
}

func TestSearchPagination(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestEventService(db)
	organizer := createTestUser(t, db, "org@example.com", models.RoleOrganizer)

	base := time.Now().UTC().AddDate(0, 0, 1)
	for i := 0; i < 25; i++ {
		createTestEvent(t, db, organizer, fmt.Sprintf("Event %02d", i), "Austin", "AI", base.AddDate(0, 0, i))
	}

	page1, err := svc.Search(&dto.EventSearchRequest{Page: 1, PageSize: 10}, nil)
	require.NoError(t, err)
	require.Len(t, page1, 10)
	for i := 1; i < len(page1); i++ {
		assert.False(t, page1[i].EventDate.Before(page1[i-1].EventDate), "results must be ordered by ascending date")
	}
	assert.Equal(t, "Event 00", page1[0].Title)

	page3, err := svc.Search(&dto.EventSearchRequest{Page: 3, PageSize: 10}, nil)
	require.NoError(t, err)
	assert.Len(t, page3, 5)
	assert.Equal(t, "Event 20", page3[0].Title)

	// Oversized pageSize falls back to the default of 10.
	clamped, err := svc.Search(&dto.EventSearchRequest{Page: 1, PageSize: 100000}, nil)
	require.NoError(t, err)
	assert.Len(t, clamped, 10)
}

func TestSearchExcludesInactiveEvents(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestEventService(db)
	organizer := createTestUser(t, db, "org@example.com", models.RoleOrganizer)

	date := time.Now().UTC().AddDate(0, 1, 0)
	createTestEvent(t, db, organizer, "Visible", "Austin", "AI", date)
	hidden := createTestEvent(t, db, organizer, "Hidden", "Austin", "AI", date)
	require.NoError(t, db.Model(hidden).Update("is_active", false).Error)

	results, err := svc.Search(&dto.EventSearchRequest{}, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Visible", results[0].Title)

	_, err = svc.GetByID(hidden.ID, nil)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestCreateEventFansOutNotificationAndEmail(t *testing.T) {
	db := newTestDB(t)
	svc, mailer := newTestEventService(db)
	organizer := createTestUser(t, db, "org@example.com", models.RoleOrganizer)

	resp, err := svc.Create(&dto.CreateEventRequest{
		Title:       "GopherCon Local",
		Description: "Talks and hallway track",
		EventDate:   time.Now().UTC().AddDate(0, 2, 0),
		City:        "Denver",
	}, organizer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test User", resp.OrganizerName)
	assert.True(t, resp.IsActive)

	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", organizer.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, "Event Published", notifications[0].Title)
	assert.False(t, notifications[0].IsRead)

	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	assert.Equal(t, []string{"org@example.com"}, mailer.created)
}

func TestCreateEventUnknownOrganizer(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestEventService(db)

	_, err := svc.Create(&dto.CreateEventRequest{
		Title:       "Ghost Event",
		Description: "No organizer",
		EventDate:   time.Now().UTC().AddDate(0, 1, 0),
		City:        "Nowhere",
	}, uuid.New())
	assert.ErrorIs(t, err, ErrOrganizerNotFound)
}

func TestUpdateOwnershipGate(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestEventService(db)
	owner := createTestUser(t, db, "owner@example.com", models.RoleOrganizer)
	other := createTestUser(t, db, "other@example.com", models.RoleOrganizer)
	admin := createTestUser(t, db, "admin@example.com", models.RoleAdmin)

	event := createTestEvent(t, db, owner, "Original", "Austin", "AI", time.Now().UTC().AddDate(0, 1, 0))
	req := &dto.UpdateEventRequest{
		Title:       "Renamed",
		Description: "Updated",
		EventDate:   event.EventDate,
		City:        event.City,
	}

	// A non-owning organizer gets the same answer as for a missing event.
	_, err := svc.Update(event.ID, req, other.ID, models.RoleOrganizer)
	assert.ErrorIs(t, err, ErrEventNotFound)

	updated, err := svc.Update(event.ID, req, owner.ID, models.RoleOrganizer)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	req.Title = "Admin Renamed"
	updated, err = svc.Update(event.ID, req, admin.ID, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "Admin Renamed", updated.Title)
}

func TestDeleteIsAdminOnlyAndIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestEventService(db)
	owner := createTestUser(t, db, "owner@example.com", models.RoleOrganizer)
	admin := createTestUser(t, db, "admin@example.com", models.RoleAdmin)

	event := createTestEvent(t, db, owner, "Doomed", "Austin", "AI", time.Now().UTC().AddDate(0, 1, 0))

	// Ownership does not grant delete rights.
	err := svc.Delete(event.ID, owner.ID, models.RoleOrganizer)
	assert.ErrorIs(t, err, ErrEventNotFound)

	require.NoError(t, svc.Delete(event.ID, admin.ID, models.RoleAdmin))

	var stored models.Event
	require.NoError(t, db.First(&stored, "id = ?", event.ID).Error)
	assert.False(t, stored.IsActive, "soft delete keeps the row")

	// Second delete succeeds again.
	require.NoError(t, svc.Delete(event.ID, admin.ID, models.RoleAdmin))

	err = svc.Delete(uuid.New(), admin.ID, models.RoleAdmin)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestRegisterUnregisterReRegister(t *testing.T) {
	db := newTestDB(t)
	svc, mailer := newTestEventService(db)
	organizer := createTestUser(t, db, "org@example.com", models.RoleOrganizer)
	attendee := createTestUser(t, db, "attendee@example.com", models.RoleAttendee)

	event := createTestEvent(t, db, organizer, "Conf", "Austin", "AI", time.Now().UTC().AddDate(0, 1, 0))

	reg, err := svc.RegisterForEvent(event.ID, attendee.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationStatusRegistered, reg.Status)
	require.NotNil(t, reg.Event)
	assert.True(t, reg.Event.IsUserRegistered)
	assert.EqualValues(t, 1, reg.Event.RegistrationCount)
	assert.Equal(t, 1, mailer.confirmationCount())

	_, err = svc.RegisterForEvent(event.ID, attendee.ID)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	require.NoError(t, svc.Unregister(event.ID, attendee.ID))
	assert.ErrorIs(t, svc.Unregister(event.ID, attendee.ID), ErrRegistrationNotFound)

	// No residual uniqueness block, and a fresh identifier.
	again, err := svc.RegisterForEvent(event.ID, attendee.ID)
	require.NoError(t, err)
	assert.NotEqual(t, reg.ID, again.ID)
}

func TestRegisterForMissingOrInactiveEvent(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestEventService(db)
	organizer := createTestUser(t, db, "org@example.com", models.RoleOrganizer)
	attendee := createTestUser(t, db, "attendee@example.com", models.RoleAttendee)

	_, err := svc.RegisterForEvent(uuid.New(), attendee.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)

	event := createTestEvent(t, db, organizer, "Gone", "Austin", "AI", time.Now().UTC().AddDate(0, 1, 0))
	require.NoError(t, db.Model(event).Update("is_active", false).Error)

	_, err = svc.RegisterForEvent(event.ID, attendee.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)

	active := createTestEvent(t, db, organizer, "Here", "Austin", "AI", time.Now().UTC().AddDate(0, 1, 0))
	_, err = svc.RegisterForEvent(active.ID, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestConcurrentRegistrationAdmitsExactlyOne(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestEventService(db)
	organizer := createTestUser(t, db, "org@example.com", models.RoleOrganizer)
	attendee := createTestUser(t, db, "attendee@example.com", models.RoleAttendee)

	event := createTestEvent(t, db, organizer, "Hot Ticket", "Austin", "AI", time.Now().UTC().AddDate(0, 1, 0))

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.RegisterForEvent(event.ID, attendee.ID)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, ErrAlreadyRegistered)
		}
	}
	assert.Equal(t, 1, successes)

	var count int64
	require.NoError(t, db.Model(&models.EventRegistration{}).
		Where("event_id = ? AND user_id = ?", event.ID, attendee.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestListForUserDropsSoftDeletedEvents(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestEventService(db)
	organizer := createTestUser(t, db, "org@example.com", models.RoleOrganizer)
	attendee := createTestUser(t, db, "attendee@example.com", models.RoleAttendee)

	first := createTestEvent(t, db, organizer, "First", "Austin", "AI", time.Now().UTC().AddDate(0, 1, 0))
	second := createTestEvent(t, db, organizer, "Second", "Boston", "UX", time.Now().UTC().AddDate(0, 2, 0))

	_, err := svc.RegisterForEvent(first.ID, attendee.ID)
	require.NoError(t, err)
	// Force distinct timestamps so ordering is deterministic.
	require.NoError(t, db.Model(&models.EventRegistration{}).
		Where("event_id = ?", first.ID).
		Update("registered_at", time.Now().UTC().Add(-time.Hour)).Error)
	_, err = svc.RegisterForEvent(second.ID, attendee.ID)
	require.NoError(t, err)

	listed, err := svc.ListForUser(attendee.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, second.ID, listed[0].EventID, "newest registration first")

	require.NoError(t, db.Model(second).Update("is_active", false).Error)

	listed, err = svc.ListForUser(attendee.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, first.ID, listed[0].EventID)
}

func TestListForOrganizer(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestEventService(db)
	organizer := createTestUser(t, db, "org@example.com", models.RoleOrganizer)
	other := createTestUser(t, db, "other@example.com", models.RoleOrganizer)

	mine := createTestEvent(t, db, organizer, "Mine", "Austin", "AI", time.Now().UTC().AddDate(0, 1, 0))
	createTestEvent(t, db, other, "Theirs", "Boston", "UX", time.Now().UTC().AddDate(0, 1, 0))
	inactive := createTestEvent(t, db, organizer, "Old", "Austin", "AI", time.Now().UTC().AddDate(0, 1, 0))
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)

	events, err := svc.ListForOrganizer(organizer.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, mine.ID, events[0].ID)
}

func TestSearchAnnotatesPerCaller(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestEventService(db)
	organizer := createTestUser(t, db, "org@example.com", models.RoleOrganizer)
	alice := createTestUser(t, db, "alice@example.com", models.RoleAttendee)
	bob := createTestUser(t, db, "bob@example.com", models.RoleAttendee)

	event := createTestEvent(t, db, organizer, "Annotated", "Austin", "AI", time.Now().UTC().AddDate(0, 1, 0))
	_, err := svc.RegisterForEvent(event.ID, alice.ID)
	require.NoError(t, err)
	_, err = svc.RegisterForEvent(event.ID, bob.ID)
	require.NoError(t, err)

	forAlice, err := svc.Search(&dto.EventSearchRequest{}, &alice.ID)
	require.NoError(t, err)
	require.Len(t, forAlice, 1)
	assert.True(t, forAlice[0].IsUserRegistered)
	assert.EqualValues(t, 2, forAlice[0].RegistrationCount)

	anonymous, err := svc.Search(&dto.EventSearchRequest{}, nil)
	require.NoError(t, err)
	require.Len(t, anonymous, 1)
	assert.False(t, anonymous[0].IsUserRegistered)
	assert.EqualValues(t, 2, anonymous[0].RegistrationCount)
}
