package user

import (
	"strings"

	"github.com/heartmarshall/engage-agent/internal/domain"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// ListInput holds the parameters for listing users.
type ListInput struct {
	Limit  int
	Offset int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Limit > MaxLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "max 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// GenerateTextInput holds the parameters for drafting copy for a user.
type GenerateTextInput struct {
	UserID          string
	Channel         domain.Channel
	RecentViews     []string
	PurchaseHistory []string
}

// Validate checks all fields and collects all errors.
func (i GenerateTextInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.UserID) == "" {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if !i.Channel.IsValid() {
		errs = append(errs, domain.FieldError{Field: "channel", Message: "must be email, push or sms"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
