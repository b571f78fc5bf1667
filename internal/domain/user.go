package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserProfile is a shop customer known to the engagement agent.
// Profiles are created implicitly by the first event of an unknown user.
type UserProfile struct {
	ID         int64           `json:"id"`
	UserID     string          `json:"user_id"`
	Name       string          `json:"name"`
	Email      *string         `json:"email,omitempty"`
	Phone      *string         `json:"phone,omitempty"`
	Segment    Segment         `json:"segment"`
	TotalSpent decimal.Decimal `json:"total_spent"`
	Interests  []string        `json:"interests"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// NewUserProfile returns the profile stored for a previously unseen user id.
func NewUserProfile(userID string, now time.Time) UserProfile {
	return UserProfile{
		UserID:     userID,
		Name:       "User_" + userID,
		Segment:    SegmentNew,
		TotalSpent: decimal.Zero,
		Interests:  []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IsVIP reports whether the lifetime spend is strictly above threshold.
func (u UserProfile) IsVIP(threshold decimal.Decimal) bool {
	return u.TotalSpent.GreaterThan(threshold)
}
