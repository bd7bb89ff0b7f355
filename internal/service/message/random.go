package message

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dailystart/messages-backend/internal/domain"
)

// RandomResult holds a randomly selected message plus the context of
// the selection: how wide the candidate pool was and which filters
// ended up applied.
type RandomResult struct {
	Message           domain.Message
	SelectedFrom      int
	Category          string
	TimePeriod        string
	CurrentTimePeriod domain.TimePeriod
}

// PickRandom selects one random active message. When the caller gives no
// time period, the current one is used. If nothing matches, the selection
// silently retries against the whole active pool before giving up with
// ErrNotFound. The selection is logged to the access log without blocking
// the response.
func (s *Service) PickRandom(ctx context.Context, input RandomInput) (*RandomResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	current := s.currentTimePeriod()

	f := domain.MessageFilter{}
	if input.Category != nil && *input.Category != "" {
		c := *input.Category
		f.Category = &c
	}
	if input.TimePeriod != nil && *input.TimePeriod != "" {
		tp := domain.TimePeriod(*input.TimePeriod)
		f.TimePeriod = &tp
	} else {
		tp := current
		f.TimePeriod = &tp
	}

	msg, used, err := s.pickWithFallback(ctx, f)
	if err != nil {
		return nil, err
	}

	// The pool size is informational; a failed count never fails a
	// selection that already succeeded.
	pool, err := s.messages.Count(ctx, used)
	if err != nil {
		s.log.WarnContext(ctx, "count candidates",
			slog.String("error", err.Error()),
		)
		pool = 1
	}

	s.logAccess(ctx, msg.ID, input.Client)

	s.log.InfoContext(ctx, "random message selected",
		slog.Int64("message_id", msg.ID),
		slog.String("category", appliedCategory(used)),
		slog.String("time_period", appliedTimePeriod(used)),
		slog.Int("selected_from", pool),
	)

	return &RandomResult{
		Message:           *msg,
		SelectedFrom:      pool,
		Category:          appliedCategory(used),
		TimePeriod:        appliedTimePeriod(used),
		CurrentTimePeriod: current,
	}, nil
}

// pickWithFallback tries the filter as given. When nothing qualifies it
// retries once against all active messages, with no filters. Returns the
// message together with the filter that actually produced it.
func (s *Service) pickWithFallback(ctx context.Context, f domain.MessageFilter) (*domain.Message, domain.MessageFilter, error) {
	msg, err := s.messages.PickRandom(ctx, f)
	if err == nil {
		return msg, f, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, f, fmt.Errorf("pick random message: %w", err)
	}
	if !f.FilterByCategory() && !f.FilterByTime() {
		return nil, f, fmt.Errorf("no active messages: %w", domain.ErrNotFound)
	}

	widest := domain.MessageFilter{}
	msg, err = s.messages.PickRandom(ctx, widest)
	if err == nil {
		s.log.DebugContext(ctx, "random selection widened to full pool")
		return msg, widest, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, widest, fmt.Errorf("pick random message: %w", err)
	}
	return nil, widest, fmt.Errorf("no active messages: %w", domain.ErrNotFound)
}
