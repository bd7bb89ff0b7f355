package message

import (
	"context"
	"fmt"

	"github.com/dailystart/messages-backend/internal/domain"
)

// Categories returns every category that has at least one active message,
// in lexicographic order, with counts and display metadata.
func (s *Service) Categories(ctx context.Context) ([]domain.CategoryCount, error) {
	cats, err := s.messages.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}
