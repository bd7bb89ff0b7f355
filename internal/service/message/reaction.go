package message

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dailystart/messages-backend/internal/domain"
)

// AddReaction records a reaction to a message and returns the message it
// was recorded against. Unlike plain view logging this write is
// synchronous: the caller learns about failures.
func (s *Service) AddReaction(ctx context.Context, input ReactionInput) (*domain.Message, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	msg, err := s.messages.GetByID(ctx, input.MessageID)
	if err != nil {
		return nil, fmt.Errorf("get message: %w", err)
	}

	reaction := domain.Reaction(strings.TrimSpace(input.Reaction))
	rec := domain.AccessRecord{
		MessageID: input.MessageID,
		ClientIP:  input.Client.IP,
		UserAgent: input.Client.UserAgent,
		Reaction:  &reaction,
	}
	if err := s.access.Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("record reaction: %w", err)
	}

	s.log.InfoContext(ctx, "reaction recorded",
		slog.Int64("message_id", input.MessageID),
		slog.String("reaction", reaction.String()),
	)

	return msg, nil
}
