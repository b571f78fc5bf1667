package domain

// DashboardStats is the admin overview.
type DashboardStats struct {
	TotalUsers      int     `json:"total_users"`
	TotalEvents     int     `json:"total_events"`
	TotalMessages   int     `json:"total_messages"`
	PendingMessages int     `json:"pending_messages"`
	RecentEvents    []Event `json:"recent_events"`
}
