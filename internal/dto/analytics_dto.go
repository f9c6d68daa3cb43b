package dto

type AnalyticsOverviewResponse struct {
	TotalVisitors      int64 `json:"total_visitors"`
	TotalPageViews     int64 `json:"total_page_views"`
	TotalEvents        int64 `json:"total_events"`
	ActiveEvents       int64 `json:"active_events"`
	TotalRegistrations int64 `json:"total_registrations"`
	TotalUsers         int64 `json:"total_users"`
}

type PageViewStat struct {
	Date      string `json:"date"`
	ViewCount int64  `json:"view_count"`
}

type RegistrationStat struct {
	EventTitle        string `json:"event_title"`
	RegistrationCount int64  `json:"registration_count"`
}

type TrackPageViewRequest struct {
	PageURL   string `json:"page_url"`
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
}
