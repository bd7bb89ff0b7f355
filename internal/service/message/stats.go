package message

import (
	"context"
	"fmt"

	"github.com/dailystart/messages-backend/internal/domain"
)

// Stats returns the global usage aggregate: active message count, total
// and today's view counts, and the most viewed categories.
func (s *Service) Stats(ctx context.Context) (*domain.Stats, error) {
	total, err := s.messages.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("count active messages: %w", err)
	}

	views, err := s.access.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count views: %w", err)
	}

	today, err := s.access.CountToday(ctx)
	if err != nil {
		return nil, fmt.Errorf("count today views: %w", err)
	}

	popular, err := s.access.PopularCategories(ctx, s.popularLimit)
	if err != nil {
		return nil, fmt.Errorf("popular categories: %w", err)
	}

	return &domain.Stats{
		TotalMessages:     total,
		TotalViews:        views,
		TodayViews:        today,
		PopularCategories: popular,
	}, nil
}
