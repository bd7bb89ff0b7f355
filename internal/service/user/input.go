package user

import (
	"net/mail"
	"strings"

	"github.com/dailystart/messages-backend/internal/domain"
)

// UpdateProfileInput holds a partial profile update. Nil fields are left
// unchanged.
type UpdateProfileInput struct {
	DisplayName *string
	Email       *string
	Settings    map[string]any
}

// Validate checks all fields and collects all errors.
func (i UpdateProfileInput) Validate() error {
	var errs []domain.FieldError

	if i.DisplayName == nil && i.Email == nil && i.Settings == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.DisplayName != nil && len(strings.TrimSpace(*i.DisplayName)) > 100 {
		errs = append(errs, domain.FieldError{Field: "display_name", Message: "max 100 characters"})
	}
	if i.Email != nil && strings.TrimSpace(*i.Email) != "" {
		if _, err := mail.ParseAddress(*i.Email); err != nil {
			errs = append(errs, domain.FieldError{Field: "email", Message: "invalid email address"})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
