package favorite

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dailystart/messages-backend/internal/domain"
	"github.com/dailystart/messages-backend/pkg/ctxutil"
)

type favoriteRepo interface {
	Add(ctx context.Context, fav *domain.Favorite) (*domain.Favorite, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Favorite, error)
	Delete(ctx context.Context, userID, favoriteID uuid.UUID) error
}

// Service manages a user's bookmarked messages.
type Service struct {
	favorites favoriteRepo
	log       *slog.Logger
}

// NewService creates a new favorite service.
func NewService(logger *slog.Logger, favorites favoriteRepo) *Service {
	return &Service{
		favorites: favorites,
		log:       logger.With("service", "favorite"),
	}
}

// AddInput holds the parameters for bookmarking a message.
type AddInput struct {
	MessageID   string
	MessageData map[string]any
}

// Validate checks all fields and collects all errors.
func (i AddInput) Validate() error {
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

// Add bookmarks a message for the authenticated user.
// Returns ErrAlreadyExists when the message is already bookmarked.
func (s *Service) Add(ctx context.Context, input AddInput) (*domain.Favorite, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	fav, err := s.favorites.Add(ctx, &domain.Favorite{
		UserID:      userID,
		MessageID:   input.MessageID,
		MessageData: input.MessageData,
	})
	if err != nil {
		return nil, fmt.Errorf("add favorite: %w", err)
	}

	s.log.InfoContext(ctx, "favorite added",
		slog.String("user_id", userID.String()),
		slog.String("message_id", input.MessageID),
	)

	return fav, nil
}

// List returns the authenticated user's favorites, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Favorite, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	favs, err := s.favorites.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return favs, nil
}

// Remove deletes one of the authenticated user's favorites.
// Returns ErrNotFound when the favorite does not exist or belongs to
// someone else.
func (s *Service) Remove(ctx context.Context, favoriteID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if favoriteID == uuid.Nil {
		return domain.NewValidationError("favorite_id", "required")
	}

	if err := s.favorites.Delete(ctx, userID, favoriteID); err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}

	s.log.InfoContext(ctx, "favorite removed",
		slog.String("user_id", userID.String()),
		slog.String("favorite_id", favoriteID.String()),
	)

	return nil
}
