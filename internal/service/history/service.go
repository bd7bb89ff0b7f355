package history

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dailystart/messages-backend/internal/domain"
	"github.com/dailystart/messages-backend/pkg/ctxutil"
)

type historyRepo interface {
	AddHistory(ctx context.Context, item *domain.HistoryItem) (*domain.HistoryItem, error)
	ListHistory(ctx context.Context, userID uuid.UUID, limit int) ([]domain.HistoryItem, error)
	ClearHistory(ctx context.Context, userID uuid.UUID) (int, error)
}

// Service manages a user's personal view history.
type Service struct {
	history      historyRepo
	defaultLimit int
	log          *slog.Logger
}

// NewService creates a new history service. defaultLimit caps List
// when the caller gives no limit.
func NewService(logger *slog.Logger, history historyRepo, defaultLimit int) *Service {
	if defaultLimit <= 0 {
		defaultLimit = 100
	}
	return &Service{
		history:      history,
		defaultLimit: defaultLimit,
		log:          logger.With("service", "history"),
	}
}

// RecordInput holds the parameters for recording a viewed message.
type RecordInput struct {
	MessageID   string
	MessageData map[string]any
}

// Validate checks all fields and collects all errors.
func (i RecordInput) Validate() error {
	var errs []domain.FieldError

	if i.MessageID == "" {
		errs = append(errs, domain.FieldError{Field: "message_id", Message: "required"})
	}
	if len(i.MessageData) == 0 {
		errs = append(errs, domain.FieldError{Field: "message_data", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Record appends a viewed message to the authenticated user's history.
func (s *Service) Record(ctx context.Context, input RecordInput) (*domain.HistoryItem, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	item, err := s.history.AddHistory(ctx, &domain.HistoryItem{
		UserID:      userID,
		MessageID:   input.MessageID,
		MessageData: input.MessageData,
	})
	if err != nil {
		return nil, fmt.Errorf("record history: %w", err)
	}
	return item, nil
}

// List returns the authenticated user's history, newest first.
// limit <= 0 falls back to the configured default.
func (s *Service) List(ctx context.Context, limit int) ([]domain.HistoryItem, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if limit <= 0 || limit > s.defaultLimit {
		limit = s.defaultLimit
	}

	items, err := s.history.ListHistory(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return items, nil
}

// Clear wipes the authenticated user's history and reports how many rows
// were removed.
func (s *Service) Clear(ctx context.Context) (int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	n, err := s.history.ClearHistory(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}

	s.log.InfoContext(ctx, "history cleared",
		slog.String("user_id", userID.String()),
		slog.Int("removed", n),
	)

	return n, nil
}
