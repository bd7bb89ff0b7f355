package message

import (
	"strings"

	"github.com/dailystart/messages-backend/internal/domain"
)

// ListInput holds the parameters for listing messages.
type ListInput struct {
	Category   *string
	TimePeriod *string
	Limit      int
	Random     bool
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError

	if err := checkTimePeriod(i.TimePeriod); err != nil {
		errs = append(errs, *err)
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// toFilter translates the input into a repository filter. The "all"
// sentinel and empty values disable the corresponding filter.
func (i ListInput) toFilter() domain.MessageFilter {
	f := domain.MessageFilter{
		Limit:       i.Limit,
		RandomOrder: i.Random,
	}
	if i.Category != nil {
		if c := strings.TrimSpace(*i.Category); c != "" {
			f.Category = &c
		}
	}
	if i.TimePeriod != nil {
		if p := strings.TrimSpace(*i.TimePeriod); p != "" {
			tp := domain.TimePeriod(p)
			f.TimePeriod = &tp
		}
	}
	f.Normalize()
	return f
}

// RandomInput holds the parameters for random message selection.
type RandomInput struct {
	Category   *string
	TimePeriod *string
	Client     domain.ClientInfo
}

// Validate checks all fields and collects all errors.
func (i RandomInput) Validate() error {
	var errs []domain.FieldError

	if err := checkTimePeriod(i.TimePeriod); err != nil {
		errs = append(errs, *err)
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ReactionInput holds the parameters for recording a reaction.
type ReactionInput struct {
	MessageID int64
	Reaction  string
	Client    domain.ClientInfo
}

// Validate checks all fields and collects all errors.
func (i ReactionInput) Validate() error {
	var errs []domain.FieldError

	if i.MessageID <= 0 {
		errs = append(errs, domain.FieldError{Field: "message_id", Message: "required"})
	}
	if !domain.Reaction(strings.TrimSpace(i.Reaction)).IsValid() {
		errs = append(errs, domain.FieldError{Field: "reaction", Message: "must be one of: like, love, fire"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// checkTimePeriod validates an optional time period parameter.
// Empty and "all" are accepted and mean "no filter".
func checkTimePeriod(p *string) *domain.FieldError {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" || v == domain.TimePeriodAll.String() {
		return nil
	}
	if !domain.TimePeriod(v).IsValid() {
		return &domain.FieldError{Field: "time_period", Message: "must be one of: morning, afternoon, evening, night, all"}
	}
	return nil
}
