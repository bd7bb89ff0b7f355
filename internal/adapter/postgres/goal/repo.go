// Package goal implements the user goals repository. Partial updates are
// built dynamically with squirrel; progress uses an atomic single-statement
// increment so concurrent bumps never lose counts.
package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/dailystart/messages-backend/internal/adapter/postgres"
	"github.com/dailystart/messages-backend/internal/domain"
)

// Repo provides goal persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new goal repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const goalColumns = "id, user_id, title, description, category, goal_type, target_count, current_count, is_completed, start_date, target_date, completed_at, created_at, updated_at"

type goalRow struct {
	ID           uuid.UUID  `db:"id"`
	UserID       uuid.UUID  `db:"user_id"`
	Title        string     `db:"title"`
	Description  *string    `db:"description"`
	Category     string     `db:"category"`
	GoalType     string     `db:"goal_type"`
	TargetCount  int        `db:"target_count"`
	CurrentCount int        `db:"current_count"`
	IsCompleted  bool       `db:"is_completed"`
	StartDate    time.Time  `db:"start_date"`
	TargetDate   *time.Time `db:"target_date"`
	CompletedAt  *time.Time `db:"completed_at"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

const createSQL = `
INSERT INTO user_goals (id, user_id, title, description, category, goal_type, target_count, start_date, target_date)
VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8, now()), $9)
RETURNING ` + goalColumns

// Create inserts a new goal, generating the id when the caller left it unset.
func (r *Repo) Create(ctx context.Context, g *domain.Goal) (*domain.Goal, error) {
	id := g.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	targetCount := g.TargetCount
	if targetCount <= 0 {
		targetCount = 1
	}

	var startDate *time.Time
	if !g.StartDate.IsZero() {
		startDate = &g.StartDate
	}

	var row goalRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.q), &row, createSQL,
		id, g.UserID, g.Title, g.Description, g.Category.String(), g.Type.String(),
		targetCount, startDate, g.TargetDate)
	if err != nil {
		return nil, postgres.MapError(err, "goal", g.ID)
	}

	created := toDomain(row)
	return &created, nil
}

const getByIDSQL = `SELECT ` + goalColumns + ` FROM user_goals WHERE id = $1 AND user_id = $2`

// GetByID returns a goal by primary key with user_id filter. Returns
// domain.ErrNotFound if the goal does not exist or belongs to another user.
func (r *Repo) GetByID(ctx context.Context, userID, goalID uuid.UUID) (*domain.Goal, error) {
	var row goalRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.q), &row, getByIDSQL, goalID, userID); err != nil {
		return nil, postgres.MapError(err, "goal", goalID)
	}

	g := toDomain(row)
	return &g, nil
}

const listSQL = `
SELECT ` + goalColumns + `
FROM user_goals
WHERE user_id = $1
ORDER BY created_at DESC`

// List returns all goals for a user, newest first.
func (r *Repo) List(ctx context.Context, userID uuid.UUID) ([]domain.Goal, error) {
	var rows []goalRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.q), &rows, listSQL, userID); err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}

	goals := make([]domain.Goal, len(rows))
	for i, row := range rows {
		goals[i] = toDomain(row)
	}

	return goals, nil
}

// Update applies a partial update; only the params the caller set are
// included in the statement.
func (r *Repo) Update(ctx context.Context, userID, goalID uuid.UUID, params domain.GoalUpdateParams) (*domain.Goal, error) {
	ub := psql.Update("user_goals").
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": goalID, "user_id": userID}).
		Suffix("RETURNING " + goalColumns)

	if params.Title != nil {
		ub = ub.Set("title", *params.Title)
	}
	if params.Description != nil {
		ub = ub.Set("description", *params.Description)
	}
	if params.Category != nil {
		ub = ub.Set("category", params.Category.String())
	}
	if params.Type != nil {
		ub = ub.Set("goal_type", params.Type.String())
	}
	if params.TargetCount != nil {
		ub = ub.Set("target_count", *params.TargetCount)
	}
	if params.TargetDate != nil {
		ub = ub.Set("target_date", *params.TargetDate)
	}

	sql, args, err := ub.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build goal update: %w", err)
	}

	var row goalRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.q), &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "goal", goalID)
	}

	g := toDomain(row)
	return &g, nil
}

const advanceSQL = `
UPDATE user_goals
SET current_count = current_count + 1,
    is_completed  = (current_count + 1 >= target_count),
    completed_at  = CASE WHEN current_count + 1 >= target_count AND completed_at IS NULL
                         THEN now() ELSE completed_at END,
    updated_at    = now()
WHERE id = $1 AND user_id = $2
RETURNING ` + goalColumns

// Advance increments the goal's progress by one and marks it completed once
// the target is reached. Returns domain.ErrNotFound if the goal does not
// exist or belongs to another user.
func (r *Repo) Advance(ctx context.Context, userID, goalID uuid.UUID) (*domain.Goal, error) {
	var row goalRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.q), &row, advanceSQL, goalID, userID); err != nil {
		return nil, postgres.MapError(err, "goal", goalID)
	}

	g := toDomain(row)
	return &g, nil
}

const deleteSQL = `DELETE FROM user_goals WHERE id = $1 AND user_id = $2`

// Delete removes a goal. Returns domain.ErrNotFound if it does not exist or
// belongs to another user.
func (r *Repo) Delete(ctx context.Context, userID, goalID uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.q).Exec(ctx, deleteSQL, goalID, userID)
	if err != nil {
		return postgres.MapError(err, "goal", goalID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("goal %s: %w", goalID, domain.ErrNotFound)
	}
	return nil
}

func toDomain(row goalRow) domain.Goal {
	return domain.Goal{
		ID:           row.ID,
		UserID:       row.UserID,
		Title:        row.Title,
		Description:  row.Description,
		Category:     domain.GoalCategory(row.Category),
		Type:         domain.GoalType(row.GoalType),
		TargetCount:  row.TargetCount,
		CurrentCount: row.CurrentCount,
		IsCompleted:  row.IsCompleted,
		StartDate:    row.StartDate,
		TargetDate:   row.TargetDate,
		CompletedAt:  row.CompletedAt,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
