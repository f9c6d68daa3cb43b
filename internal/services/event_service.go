package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/eventhubhq/eventhub-backend/internal/dto"
	"github.com/eventhubhq/eventhub-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrEventNotFound covers both an absent event and one the caller may not
	// touch; update/delete deliberately do not distinguish the two.
	ErrEventNotFound        = errors.New("event not found")
	ErrOrganizerNotFound    = errors.New("organizer not found")
	ErrAlreadyRegistered    = errors.New("already registered for this event")
	ErrRegistrationNotFound = errors.New("registration not found")
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type EventService struct {
	db            *gorm.DB
	notifications *NotificationService
	mailer        Mailer
}

func NewEventService(db *gorm.DB, notifications *NotificationService, mailer Mailer) *EventService {
	return &EventService{db: db, notifications: notifications, mailer: mailer}
}

// Search returns one page of active events ordered by ascending event date.
// Filters are conjunctive; SearchTerm matches title OR description.
func (s *EventService) Search(req *dto.EventSearchRequest, currentUserID *uuid.UUID) ([]dto.EventResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	offset := (page - 1) * pageSize

	query := s.db.Where("is_active = ?", true)

	if req.City != "" {
		query = query.Where("LOWER(city) LIKE ?", containsPattern(req.City))
	}
	if req.AreaOfInterest != "" {
		query = query.Where("LOWER(area_of_interest) LIKE ?", containsPattern(req.AreaOfInterest))
	}
	if req.FromDate != nil {
		query = query.Where("event_date >= ?", *req.FromDate)
	}
	if req.ToDate != nil {
		query = query.Where("event_date <= ?", *req.ToDate)
	}
	if req.SearchTerm != "" {
		pattern := containsPattern(req.SearchTerm)
		query = query.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
	}

	var events []models.Event
	if err := query.Order("event_date ASC").
		Limit(pageSize).Offset(offset).
		Preload("Organizer").
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("event search failed: %w", err)
	}

	return s.mapEvents(events, currentUserID)
}

func (s *EventService) GetByID(id uuid.UUID, currentUserID *uuid.UUID) (*dto.EventResponse, error) {
	var event models.Event
	if err := s.db.Preload("Organizer").First(&event, "id = ? AND is_active = ?", id, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	resps, err := s.mapEvents([]models.Event{event}, currentUserID)
	if err != nil {
		return nil, err
	}
	return &resps[0], nil
}

func (s *EventService) Create(req *dto.CreateEventRequest, organizerID uuid.UUID) (*dto.EventResponse, error) {
	var organizer models.User
	if err := s.db.First(&organizer, "id = ?", organizerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizerNotFound
		}
		return nil, err
	}

	event := models.Event{
		ID:               uuid.New(),
		Title:            req.Title,
		Description:      req.Description,
		EventDate:        req.EventDate,
		City:             req.City,
		Location:         req.Location,
		AreaOfInterest:   req.AreaOfInterest,
		RegistrationLink: req.RegistrationLink,
		OrganizerID:      organizerID,
		IsActive:         true,
	}

	if err := s.db.Create(&event).Error; err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	// Post-commit side effects, each independently fault-isolated.
	if err := s.notifications.Create(organizerID, &event.ID, "Event Published",
		fmt.Sprintf("Your event %q has been successfully published!", event.Title)); err != nil {
		slog.Error("event-published notification failed", "event_id", event.ID, "error", err)
	}
	s.mailer.SendEventCreated(organizer.Email, organizer.FullName(), event.Title)

	event.Organizer = organizer
	resps, err := s.mapEvents([]models.Event{event}, &organizerID)
	if err != nil {
		return nil, err
	}
	return &resps[0], nil
}

// Update is allowed for admins and the owning organizer. Anyone else gets
// ErrEventNotFound, same as a missing event.
func (s *EventService) Update(id uuid.UUID, req *dto.UpdateEventRequest, userID uuid.UUID, role string) (*dto.EventResponse, error) {
	var event models.Event
	if err := s.db.Preload("Organizer").First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if role != models.RoleAdmin && event.OrganizerID != userID {
		return nil, ErrEventNotFound
	}

	event.Title = req.Title
	event.Description = req.Description
	event.EventDate = req.EventDate
	event.City = req.City
	event.Location = req.Location
	event.AreaOfInterest = req.AreaOfInterest
	event.RegistrationLink = req.RegistrationLink

	if err := s.db.Save(&event).Error; err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	resps, err := s.mapEvents([]models.Event{event}, &userID)
	if err != nil {
		return nil, err
	}
	return &resps[0], nil
}

// Delete soft-deletes an event. Admin only; organizer ownership does not
// grant delete rights. Repeating the call on an already-inactive event
// succeeds again. Registrations and notifications are not cascaded.
func (s *EventService) Delete(id uuid.UUID, userID uuid.UUID, role string) error {
	if role != models.RoleAdmin {
		return ErrEventNotFound
	}

	var event models.Event
	if err := s.db.First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	return s.db.Model(&event).Update("is_active", false).Error
}

// RegisterForEvent inserts at most one registration per (event, user). The
// pre-check gives the common case a clean error; the composite unique index
// settles concurrent double-submits, surfacing as ErrAlreadyRegistered.
func (s *EventService) RegisterForEvent(eventID, userID uuid.UUID) (*dto.RegistrationResponse, error) {
	var event models.Event
	if err := s.db.Preload("Organizer").First(&event, "id = ? AND is_active = ?", eventID, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var existing models.EventRegistration
	if err := s.db.Where("event_id = ? AND user_id = ?", eventID, userID).First(&existing).Error; err == nil {
		return nil, ErrAlreadyRegistered
	}

	registration := models.EventRegistration{
		ID:           uuid.New(),
		EventID:      eventID,
		UserID:       userID,
		Status:       models.RegistrationStatusRegistered,
		RegisteredAt: nowUTC(),
	}

	if err := s.db.Create(&registration).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}

	if err := s.notifications.Create(userID, &eventID, "Registration Confirmed",
		fmt.Sprintf("You have successfully registered for %q", event.Title)); err != nil {
		slog.Error("registration notification failed", "event_id", eventID, "user_id", userID, "error", err)
	}
	s.mailer.SendRegistrationConfirmation(user.Email, user.FullName(), event.Title, event.EventDate)

	resps, err := s.mapEvents([]models.Event{event}, &userID)
	if err != nil {
		return nil, err
	}

	return &dto.RegistrationResponse{
		ID:           registration.ID,
		EventID:      registration.EventID,
		UserID:       registration.UserID,
		RegisteredAt: registration.RegisteredAt,
		Status:       registration.Status,
		Event:        &resps[0],
	}, nil
}

// Unregister hard-deletes the registration. No notification or email.
func (s *EventService) Unregister(eventID, userID uuid.UUID) error {
	result := s.db.Where("event_id = ? AND user_id = ?", eventID, userID).Delete(&models.EventRegistration{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRegistrationNotFound
	}
	return nil
}

// ListForUser returns the user's registrations, newest first. Registrations
// whose event has been soft-deleted are silently dropped.
func (s *EventService) ListForUser(userID uuid.UUID) ([]dto.RegistrationResponse, error) {
	var registrations []models.EventRegistration
	if err := s.db.
		Joins("JOIN events ON events.id = event_registrations.event_id").
		Where("event_registrations.user_id = ? AND events.is_active = ?", userID, true).
		Order("event_registrations.registered_at DESC").
		Preload("Event.Organizer").
		Find(&registrations).Error; err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}

	events := make([]models.Event, len(registrations))
	for i, r := range registrations {
		events[i] = r.Event
	}
	eventResps, err := s.mapEvents(events, &userID)
	if err != nil {
		return nil, err
	}

	resps := make([]dto.RegistrationResponse, len(registrations))
	for i, r := range registrations {
		resps[i] = dto.RegistrationResponse{
			ID:           r.ID,
			EventID:      r.EventID,
			UserID:       r.UserID,
			RegisteredAt: r.RegisteredAt,
			Status:       r.Status,
			Event:        &eventResps[i],
		}
	}
	return resps, nil
}

// ListForOrganizer returns the organizer's active events, newest-created first.
func (s *EventService) ListForOrganizer(organizerID uuid.UUID) ([]dto.EventResponse, error) {
	var events []models.Event
	if err := s.db.
		Where("organizer_id = ? AND is_active = ?", organizerID, true).
		Order("created_at DESC").
		Preload("Organizer").
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list organizer events: %w", err)
	}
	return s.mapEvents(events, &organizerID)
}

// mapEvents annotates a batch of events with registration counts and, when a
// caller identity is given, whether that caller is registered. Two grouped
// queries instead of one per event.
func (s *EventService) mapEvents(events []models.Event, currentUserID *uuid.UUID) ([]dto.EventResponse, error) {
	ids := make([]uuid.UUID, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}

	counts := make(map[uuid.UUID]int64)
	registered := make(map[uuid.UUID]bool)
	if len(ids) > 0 {
		var rows []struct {
			EventID uuid.UUID
			N       int64
		}
		if err := s.db.Model(&models.EventRegistration{}).
			Select("event_id, COUNT(*) AS n").
			Where("event_id IN ?", ids).
			Group("event_id").
			Scan(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to count registrations: %w", err)
		}
		for _, r := range rows {
			counts[r.EventID] = r.N
		}

		if currentUserID != nil {
			var mine []models.EventRegistration
			if err := s.db.
				Where("user_id = ? AND event_id IN ?", *currentUserID, ids).
				Find(&mine).Error; err != nil {
				return nil, fmt.Errorf("failed to load caller registrations: %w", err)
			}
			for _, r := range mine {
				registered[r.EventID] = true
			}
		}
	}

	resps := make([]dto.EventResponse, len(events))
	for i, e := range events {
		resps[i] = dto.EventResponse{
			ID:                e.ID,
			Title:             e.Title,
			Description:       e.Description,
			EventDate:         e.EventDate,
			City:              e.City,
			Location:          e.Location,
			AreaOfInterest:    e.AreaOfInterest,
			RegistrationLink:  e.RegistrationLink,
			OrganizerID:       e.OrganizerID,
			OrganizerName:     e.Organizer.FullName(),
			IsActive:          e.IsActive,
			CreatedAt:         e.CreatedAt,
			UpdatedAt:         e.UpdatedAt,
			RegistrationCount: counts[e.ID],
			IsUserRegistered:  registered[e.ID],
		}
	}
	return resps, nil
}

func containsPattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}
