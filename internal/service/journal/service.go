package journal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dailystart/messages-backend/internal/domain"
	"github.com/dailystart/messages-backend/pkg/ctxutil"
)

type journalRepo interface {
	Create(ctx context.Context, e *domain.JournalEntry) (*domain.JournalEntry, error)
	GetByDate(ctx context.Context, userID uuid.UUID, date string) (*domain.JournalEntry, error)
	List(ctx context.Context, userID uuid.UUID, limit int) ([]domain.JournalEntry, error)
	Update(ctx context.Context, userID uuid.UUID, date string, params domain.JournalUpdateParams) (*domain.JournalEntry, error)
}

// Service manages daily journal entries. A user keeps at most one entry
// per calendar date.
type Service struct {
	journal  journalRepo
	pageSize int
	log      *slog.Logger
}

// NewService creates a new journal service.
func NewService(logger *slog.Logger, journal journalRepo, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = 30
	}
	return &Service{
		journal:  journal,
		pageSize: pageSize,
		log:      logger.With("service", "journal"),
	}
}

// Create adds a journal entry for the given date.
// Returns ErrAlreadyExists when the date already has an entry.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.JournalEntry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	entry, err := s.journal.Create(ctx, &domain.JournalEntry{
		UserID:    userID,
		EntryDate: input.EntryDate,
		Content:   input.Content,
		Mood:      input.mood(),
	})
	if err != nil {
		return nil, fmt.Errorf("create journal entry: %w", err)
	}

	s.log.InfoContext(ctx, "journal entry created",
		slog.String("user_id", userID.String()),
		slog.String("entry_date", input.EntryDate),
	)

	return entry, nil
}

// Get returns the authenticated user's entry for one date.
func (s *Service) Get(ctx context.Context, date string) (*domain.JournalEntry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := checkDate(date); err != nil {
		return nil, err
	}

	entry, err := s.journal.GetByDate(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("get journal entry: %w", err)
	}
	return entry, nil
}

// List returns the authenticated user's entries, most recent date first.
func (s *Service) List(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if limit <= 0 || limit > s.pageSize {
		limit = s.pageSize
	}

	entries, err := s.journal.List(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	return entries, nil
}

// Update applies a partial update to the entry for one date.
func (s *Service) Update(ctx context.Context, date string, input UpdateInput) (*domain.JournalEntry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := checkDate(date); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	entry, err := s.journal.Update(ctx, userID, date, domain.JournalUpdateParams{
		Content: input.Content,
		Mood:    input.mood(),
	})
	if err != nil {
		return nil, fmt.Errorf("update journal entry: %w", err)
	}

	s.log.InfoContext(ctx, "journal entry updated",
		slog.String("user_id", userID.String()),
		slog.String("entry_date", date),
	)

	return entry, nil
}
