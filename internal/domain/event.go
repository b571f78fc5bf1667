package domain

import "time"

// Event is an immutable record of something a user did in the shop.
type Event struct {
	ID         int64          `json:"id"`
	UserID     string         `json:"user_id"`
	EventType  string         `json:"event_type"`
	ProductID  *string        `json:"product_id,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
	Properties map[string]any `json:"properties"`
}

// RecentEventFilter selects a user's events newer than Since.
// ExcludeID, when non-zero, leaves one event out.
type RecentEventFilter struct {
	UserID    string
	Since     time.Time
	ExcludeID int64
	Limit     int
}
