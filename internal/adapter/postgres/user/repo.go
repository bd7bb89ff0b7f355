// Package user implements the user repository: registration, profile
// lookups and the per-user stats aggregation.
package user

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/dailystart/messages-backend/internal/adapter/postgres"
	"github.com/dailystart/messages-backend/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new user repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

const userColumns = "id, username, email, password_hash, display_name, settings, is_active, created_at, updated_at, last_login"

type userRow struct {
	ID           uuid.UUID      `db:"id"`
	Username     string         `db:"username"`
	Email        *string        `db:"email"`
	PasswordHash string         `db:"password_hash"`
	DisplayName  *string        `db:"display_name"`
	Settings     map[string]any `db:"settings"`
	IsActive     bool           `db:"is_active"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	LastLogin    *time.Time     `db:"last_login"`
}

const createSQL = `
INSERT INTO users (id, username, email, password_hash, display_name, settings)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + userColumns

// Create inserts a new user. Username/email uniqueness is enforced by DB
// constraints; violations map to domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	settings := u.Settings
	if settings == nil {
		settings = map[string]any{}
	}

	var row userRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.q), &row, createSQL,
		u.ID, u.Username, u.Email, u.PasswordHash, u.DisplayName, settings)
	if err != nil {
		return nil, postgres.MapError(err, "user", u.ID)
	}

	created := toDomain(row)
	return &created, nil
}

const getByIDSQL = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var row userRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.q), &row, getByIDSQL, id); err != nil {
		return nil, postgres.MapError(err, "user", id)
	}

	u := toDomain(row)
	return &u, nil
}

const getByUsernameSQL = `SELECT ` + userColumns + ` FROM users WHERE username = $1`

// GetByUsername returns a user by unique username.
func (r *Repo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var row userRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.q), &row, getByUsernameSQL, username); err != nil {
		return nil, postgres.MapError(err, "user", username)
	}

	u := toDomain(row)
	return &u, nil
}

const updateProfileSQL = `
UPDATE users
SET display_name = COALESCE($2, display_name),
    email        = COALESCE($3, email),
    settings     = COALESCE($4, settings),
    updated_at   = now()
WHERE id = $1
RETURNING ` + userColumns

// UpdateProfile applies a partial profile update; nil params keep current
// values.
func (r *Repo) UpdateProfile(ctx context.Context, id uuid.UUID, params domain.UserUpdateParams) (*domain.User, error) {
	var settings any
	if params.Settings != nil {
		settings = params.Settings
	}

	var row userRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.q), &row, updateProfileSQL,
		id, params.DisplayName, params.Email, settings)
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}

	u := toDomain(row)
	return &u, nil
}

const touchLastLoginSQL = `UPDATE users SET last_login = now() WHERE id = $1`

// TouchLastLogin records a successful login.
func (r *Repo) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	if _, err := postgres.QuerierFromCtx(ctx, r.q).Exec(ctx, touchLastLoginSQL, id); err != nil {
		return fmt.Errorf("touch last_login: %w", err)
	}
	return nil
}

const statsSQL = `
SELECT
    (SELECT count(*) FROM user_favorites   WHERE user_id = $1)                    AS total_favorites,
    (SELECT count(*) FROM user_history     WHERE user_id = $1)                    AS total_history,
    (SELECT count(*) FROM journal_entries  WHERE user_id = $1)                    AS total_journal_entries,
    (SELECT count(*) FROM user_goals       WHERE user_id = $1)                    AS total_goals,
    (SELECT count(*) FROM user_goals       WHERE user_id = $1 AND is_completed)   AS completed_goals`

type statsRow struct {
	TotalFavorites      int `db:"total_favorites"`
	TotalHistory        int `db:"total_history"`
	TotalJournalEntries int `db:"total_journal_entries"`
	TotalGoals          int `db:"total_goals"`
	CompletedGoals      int `db:"completed_goals"`
}

// Stats aggregates the user's activity counts in a single query.
func (r *Repo) Stats(ctx context.Context, id uuid.UUID) (*domain.UserStats, error) {
	var row statsRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.q), &row, statsSQL, id); err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}

	return &domain.UserStats{
		TotalFavorites:      row.TotalFavorites,
		TotalHistory:        row.TotalHistory,
		TotalJournalEntries: row.TotalJournalEntries,
		TotalGoals:          row.TotalGoals,
		CompletedGoals:      row.CompletedGoals,
	}, nil
}

func toDomain(row userRow) domain.User {
	return domain.User{
		ID:           row.ID,
		Username:     row.Username,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		DisplayName:  row.DisplayName,
		Settings:     row.Settings,
		IsActive:     row.IsActive,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
		LastLogin:    row.LastLogin,
	}
}
