package prompt

import (
	"strings"

	"github.com/heartmarshall/engage-agent/internal/domain"
)

const maxNameLen = 100

// SaveInput holds the editable fields of a template. IsActive defaults to
// true when omitted.
type SaveInput struct {
	Name        string
	Template    string
	Description string
	IsActive    *bool
}

func (i *SaveInput) normalize() {
	i.Name = strings.TrimSpace(i.Name)
	i.Description = strings.TrimSpace(i.Description)
}

// Validate checks required fields.
func (i SaveInput) Validate() error {
	var errs []domain.FieldError

	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(i.Name) > maxNameLen {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}

	if strings.TrimSpace(i.Template) == "" {
		errs = append(errs, domain.FieldError{Field: "template", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i SaveInput) active() bool {
	if i.IsActive == nil {
		return true
	}
	return *i.IsActive
}
