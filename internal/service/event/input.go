package event

import (
	"strings"
	"time"

	"github.com/heartmarshall/engage-agent/internal/domain"
)

// RecordInput is one event reported by the shop.
type RecordInput struct {
	UserID     string
	Event      string
	ProductID  *string
	Timestamp  *time.Time
	Properties map[string]any
}

// Validate checks all fields and collects all errors.
func (i RecordInput) Validate() error {
	var errs []domain.FieldError

	userID := strings.TrimSpace(i.UserID)
	if userID == "" {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if len(userID) > 255 {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "max 255 characters"})
	}

	event := strings.TrimSpace(i.Event)
	if event == "" {
		errs = append(errs, domain.FieldError{Field: "event", Message: "required"})
	}
	if len(event) > 100 {
		errs = append(errs, domain.FieldError{Field: "event", Message: "max 100 characters"})
	}

	if i.ProductID != nil && len(*i.ProductID) > 255 {
		errs = append(errs, domain.FieldError{Field: "product_id", Message: "max 255 characters"})
	}

	if i.Timestamp == nil || i.Timestamp.IsZero() {
		errs = append(errs, domain.FieldError{Field: "timestamp", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Outcome is what recording an event led to. MessageID is set when a
// message was stored.
type Outcome struct {
	Decision  domain.Decision
	MessageID *int64
}
