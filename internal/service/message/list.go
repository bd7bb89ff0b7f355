package message

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dailystart/messages-backend/internal/domain"
)

// ListResult holds a page of messages and the filters that produced it.
type ListResult struct {
	Messages          []domain.Message
	Count             int
	Category          string
	TimePeriod        string
	CurrentTimePeriod domain.TimePeriod
}

// List returns active messages matching the given filters. Without the
// random flag, results come back by priority, then recency.
func (s *Service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	f := input.toFilter()

	msgs, err := s.messages.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	s.log.DebugContext(ctx, "messages listed",
		slog.Int("count", len(msgs)),
		slog.String("category", appliedCategory(f)),
		slog.String("time_period", appliedTimePeriod(f)),
	)

	return &ListResult{
		Messages:          msgs,
		Count:             len(msgs),
		Category:          appliedCategory(f),
		TimePeriod:        appliedTimePeriod(f),
		CurrentTimePeriod: s.currentTimePeriod(),
	}, nil
}

// appliedCategory names the effective category filter, "all" when disabled.
func appliedCategory(f domain.MessageFilter) string {
	if f.FilterByCategory() {
		return *f.Category
	}
	return "all"
}

// appliedTimePeriod names the effective time filter, "all" when disabled.
func appliedTimePeriod(f domain.MessageFilter) string {
	if f.FilterByTime() {
		return f.TimePeriod.String()
	}
	return "all"
}
