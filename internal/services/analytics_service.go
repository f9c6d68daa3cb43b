package services

import (
	"fmt"
	"sort"

	"github.com/eventhubhq/eventhub-backend/internal/dto"
	"github.com/eventhubhq/eventhub-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// Overview runs plain counting aggregations over the full dataset.
func (s *AnalyticsService) Overview() (*dto.AnalyticsOverviewResponse, error) {
	resp := &dto.AnalyticsOverviewResponse{}

	if err := s.db.Model(&models.PageView{}).Distinct("ip_address").Count(&resp.TotalVisitors).Error; err != nil {
		return nil, fmt.Errorf("failed to count visitors: %w", err)
	}
	if err := s.db.Model(&models.PageView{}).Count(&resp.TotalPageViews).Error; err != nil {
		return nil, fmt.Errorf("failed to count page views: %w", err)
	}
	if err := s.db.Model(&models.Event{}).Count(&resp.TotalEvents).Error; err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}
	if err := s.db.Model(&models.Event{}).
		Where("is_active = ? AND event_date >= ?", true, nowUTC()).
		Count(&resp.ActiveEvents).Error; err != nil {
		return nil, fmt.Errorf("failed to count active events: %w", err)
	}
	if err := s.db.Model(&models.EventRegistration{}).Count(&resp.TotalRegistrations).Error; err != nil {
		return nil, fmt.Errorf("failed to count registrations: %w", err)
	}
	if err := s.db.Model(&models.User{}).Where("is_active = ?", true).Count(&resp.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	return resp, nil
}

// PageViewSeries groups views in the trailing days by UTC calendar date,
// ascending. Grouping happens in memory so the query stays portable across
// the postgres and sqlite drivers.
func (s *AnalyticsService) PageViewSeries(days int) ([]dto.PageViewStat, error) {
	if days < 1 {
		days = 7
	}
	start := nowUTC().AddDate(0, 0, -days)

	var views []models.PageView
	if err := s.db.Select("viewed_at").Where("viewed_at >= ?", start).Find(&views).Error; err != nil {
		return nil, fmt.Errorf("failed to load page views: %w", err)
	}

	byDate := make(map[string]int64)
	for _, v := range views {
		byDate[v.ViewedAt.UTC().Format("2006-01-02")]++
	}

	stats := make([]dto.PageViewStat, 0, len(byDate))
	for date, count := range byDate {
		stats = append(stats, dto.PageViewStat{Date: date, ViewCount: count})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Date < stats[j].Date })
	return stats, nil
}

// RegistrationLeaderboard returns the top 10 active events by registration count.
func (s *AnalyticsService) RegistrationLeaderboard() ([]dto.RegistrationStat, error) {
	var stats []dto.RegistrationStat
	if err := s.db.Model(&models.EventRegistration{}).
		Select("events.title AS event_title, COUNT(*) AS registration_count").
		Joins("JOIN events ON events.id = event_registrations.event_id").
		Where("events.is_active = ?", true).
		Group("events.title").
		Order("registration_count DESC").
		Limit(10).
		Scan(&stats).Error; err != nil {
		return nil, fmt.Errorf("failed to build leaderboard: %w", err)
	}
	if stats == nil {
		stats = []dto.RegistrationStat{}
	}
	return stats, nil
}

// TrackPageView appends an anonymous-friendly page view record.
func (s *AnalyticsService) TrackPageView(pageURL string, userID *uuid.UUID, ipAddress, userAgent string) error {
	view := models.PageView{
		ID:        uuid.New(),
		PageURL:   pageURL,
		UserID:    userID,
		ViewedAt:  nowUTC(),
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
	if err := s.db.Create(&view).Error; err != nil {
		return fmt.Errorf("failed to track page view: %w", err)
	}
	return nil
}
