package journal

import (
	"time"

	"github.com/dailystart/messages-backend/internal/domain"
)

const maxContentLen = 10000

// CreateInput holds the parameters for creating a journal entry.
type CreateInput struct {
	EntryDate string
	Content   *string
	Mood      *string
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if err := checkDateField(i.EntryDate); err != nil {
		errs = append(errs, *err)
	}
	errs = append(errs, checkContentAndMood(i.Content, i.Mood)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i CreateInput) mood() *domain.Mood {
	return moodPtr(i.Mood)
}

// UpdateInput holds a partial journal entry update. Nil fields are left
// unchanged.
type UpdateInput struct {
	Content *string
	Mood    *string
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.Content == nil && i.Mood == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	errs = append(errs, checkContentAndMood(i.Content, i.Mood)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i UpdateInput) mood() *domain.Mood {
	return moodPtr(i.Mood)
}

func checkContentAndMood(content *string, mood *string) []domain.FieldError {
	var errs []domain.FieldError

	if content != nil && len(*content) > maxContentLen {
		errs = append(errs, domain.FieldError{Field: "content", Message: "max 10000 characters"})
	}
	if mood != nil && !domain.Mood(*mood).IsValid() {
		errs = append(errs, domain.FieldError{Field: "mood", Message: "must be one of: great, good, okay, bad, terrible"})
	}

	return errs
}

func checkDateField(date string) *domain.FieldError {
	if date == "" {
		return &domain.FieldError{Field: "entry_date", Message: "required"}
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return &domain.FieldError{Field: "entry_date", Message: "must be YYYY-MM-DD"}
	}
	return nil
}

func checkDate(date string) error {
	if fe := checkDateField(date); fe != nil {
		return &domain.ValidationError{Errors: []domain.FieldError{*fe}}
	}
	return nil
}

func moodPtr(s *string) *domain.Mood {
	if s == nil {
		return nil
	}
	m := domain.Mood(*s)
	return &m
}
