package goal

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dailystart/messages-backend/internal/domain"
)

// CreateInput holds the parameters for creating a goal.
type CreateInput struct {
	Title       string
	Description *string
	Category    string
	Type        string
	TargetCount int
	StartDate   *time.Time
	TargetDate  *time.Time
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	title := strings.TrimSpace(i.Title)
	if title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if len(title) > 200 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 200 characters"})
	}
	if !domain.GoalCategory(i.Category).IsValid() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "must be one of: health, study, work, relationship, hobby, other"})
	}
	if !domain.GoalType(i.Type).IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "must be weekly or monthly"})
	}
	if i.TargetCount < 1 {
		errs = append(errs, domain.FieldError{Field: "target_count", Message: "must be at least 1"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i CreateInput) toGoal(userID uuid.UUID) *domain.Goal {
	start := time.Now()
	if i.StartDate != nil {
		start = *i.StartDate
	}
	return &domain.Goal{
		UserID:      userID,
		Title:       strings.TrimSpace(i.Title),
		Description: i.Description,
		Category:    domain.GoalCategory(i.Category),
		Type:        domain.GoalType(i.Type),
		TargetCount: i.TargetCount,
		StartDate:   start,
		TargetDate:  i.TargetDate,
	}
}

// UpdateInput holds a partial goal update. Nil fields are left unchanged.
type UpdateInput struct {
	Title       *string
	Description *string
	Category    *string
	Type        *string
	TargetCount *int
	TargetDate  *time.Time
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.Title == nil && i.Description == nil && i.Category == nil &&
		i.Type == nil && i.TargetCount == nil && i.TargetDate == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Title != nil {
		title := strings.TrimSpace(*i.Title)
		if title == "" {
			errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
		}
		if len(title) > 200 {
			errs = append(errs, domain.FieldError{Field: "title", Message: "max 200 characters"})
		}
	}
	if i.Category != nil && !domain.GoalCategory(*i.Category).IsValid() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "must be one of: health, study, work, relationship, hobby, other"})
	}
	if i.Type != nil && !domain.GoalType(*i.Type).IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "must be weekly or monthly"})
	}
	if i.TargetCount != nil && *i.TargetCount < 1 {
		errs = append(errs, domain.FieldError{Field: "target_count", Message: "must be at least 1"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i UpdateInput) toParams() domain.GoalUpdateParams {
	params := domain.GoalUpdateParams{
		Description: i.Description,
		TargetCount: i.TargetCount,
		TargetDate:  i.TargetDate,
	}
	if i.Title != nil {
		t := strings.TrimSpace(*i.Title)
		params.Title = &t
	}
	if i.Category != nil {
		c := domain.GoalCategory(*i.Category)
		params.Category = &c
	}
	if i.Type != nil {
		gt := domain.GoalType(*i.Type)
		params.Type = &gt
	}
	return params
}
