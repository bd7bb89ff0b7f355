package goal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dailystart/messages-backend/internal/domain"
	"github.com/dailystart/messages-backend/pkg/ctxutil"
)

type goalRepo interface {
	Create(ctx context.Context, g *domain.Goal) (*domain.Goal, error)
	GetByID(ctx context.Context, userID, goalID uuid.UUID) (*domain.Goal, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Goal, error)
	Update(ctx context.Context, userID, goalID uuid.UUID, params domain.GoalUpdateParams) (*domain.Goal, error)
	Advance(ctx context.Context, userID, goalID uuid.UUID) (*domain.Goal, error)
	Delete(ctx context.Context, userID, goalID uuid.UUID) error
}

// Service manages personal weekly and monthly goals.
type Service struct {
	goals goalRepo
	log   *slog.Logger
}

// NewService creates a new goal service.
func NewService(logger *slog.Logger, goals goalRepo) *Service {
	return &Service{
		goals: goals,
		log:   logger.With("service", "goal"),
	}
}

// Create adds a new goal for the authenticated user.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Goal, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	g, err := s.goals.Create(ctx, input.toGoal(userID))
	if err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}

	s.log.InfoContext(ctx, "goal created",
		slog.String("user_id", userID.String()),
		slog.String("goal_id", g.ID.String()),
	)

	return g, nil
}

// Get returns one of the authenticated user's goals.
func (s *Service) Get(ctx context.Context, goalID uuid.UUID) (*domain.Goal, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if goalID == uuid.Nil {
		return nil, domain.NewValidationError("goal_id", "required")
	}

	g, err := s.goals.GetByID(ctx, userID, goalID)
	if err != nil {
		return nil, fmt.Errorf("get goal: %w", err)
	}
	return g, nil
}

// List returns the authenticated user's goals.
func (s *Service) List(ctx context.Context) ([]domain.Goal, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	goals, err := s.goals.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

// Update applies a partial update to a goal.
func (s *Service) Update(ctx context.Context, goalID uuid.UUID, input UpdateInput) (*domain.Goal, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if goalID == uuid.Nil {
		return nil, domain.NewValidationError("goal_id", "required")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	g, err := s.goals.Update(ctx, userID, goalID, input.toParams())
	if err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}

	s.log.InfoContext(ctx, "goal updated",
		slog.String("user_id", userID.String()),
		slog.String("goal_id", goalID.String()),
	)

	return g, nil
}

// Advance increments a goal's progress counter by one. Reaching the
// target marks the goal completed.
func (s *Service) Advance(ctx context.Context, goalID uuid.UUID) (*domain.Goal, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if goalID == uuid.Nil {
		return nil, domain.NewValidationError("goal_id", "required")
	}

	g, err := s.goals.Advance(ctx, userID, goalID)
	if err != nil {
		return nil, fmt.Errorf("advance goal: %w", err)
	}

	if g.IsCompleted {
		s.log.InfoContext(ctx, "goal completed",
			slog.String("user_id", userID.String()),
			slog.String("goal_id", goalID.String()),
		)
	}

	return g, nil
}

// Delete removes one of the authenticated user's goals.
func (s *Service) Delete(ctx context.Context, goalID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if goalID == uuid.Nil {
		return domain.NewValidationError("goal_id", "required")
	}

	if err := s.goals.Delete(ctx, userID, goalID); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}

	s.log.InfoContext(ctx, "goal deleted",
		slog.String("user_id", userID.String()),
		slog.String("goal_id", goalID.String()),
	)

	return nil
}
