package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/eventhubhq/eventhub-backend/internal/dto"
	"github.com/eventhubhq/eventhub-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// listLimit caps notification listings at the 50 most recent.
const listLimit = 50

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Create appends an unread notification. Never called directly by a client;
// only as a side effect of catalog/ledger mutations.
func (s *NotificationService) Create(userID uuid.UUID, eventID *uuid.UUID, title, message string) error {
	notification := models.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		EventID: eventID,
		Title:   title,
		Message: message,
		IsRead:  false,
	}
	if err := s.db.Create(&notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (s *NotificationService) ListForUser(userID uuid.UUID, unreadOnly bool) ([]dto.NotificationResponse, error) {
	query := s.db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC").Limit(listLimit).
		Preload("Event").
		Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	resps := make([]dto.NotificationResponse, len(notifications))
	for i := range notifications {
		resps[i] = mapNotificationToResponse(&notifications[i])
	}
	return resps, nil
}

// MarkRead verifies ownership: a notification belonging to another user is
// reported as not found, not forbidden.
func (s *NotificationService) MarkRead(notificationID, userID uuid.UUID) (*dto.NotificationResponse, error) {
	var notification models.Notification
	if err := s.db.Preload("Event").
		First(&notification, "id = ? AND user_id = ?", notificationID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}

	if err := s.db.Model(&notification).Update("is_read", true).Error; err != nil {
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}
	notification.IsRead = true

	resp := mapNotificationToResponse(&notification)
	return &resp, nil
}

func (s *NotificationService) MarkAllRead(userID uuid.UUID) error {
	return s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

func (s *NotificationService) UnreadCount(userID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func mapNotificationToResponse(n *models.Notification) dto.NotificationResponse {
	resp := dto.NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		EventID:   n.EventID,
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
	// Enrich with the event title when the event still exists.
	if n.Event != nil && n.Event.ID != uuid.Nil {
		resp.EventTitle = &n.Event.Title
	}
	return resp
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
