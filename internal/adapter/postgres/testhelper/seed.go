package testhelper

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dailystart/messages-backend/internal/domain"
)

// SeedUser inserts a user with a unique username and returns it.
func SeedUser(t *testing.T, pool *pgxpool.Pool) *domain.User {
	t.Helper()

	id := uuid.New()
	username := fmt.Sprintf("user_%s", id.String()[:8])
	email := username + "@example.com"

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	const sql = `
INSERT INTO users (id, username, email, password_hash)
VALUES ($1, $2, $3, $4)
RETURNING created_at, updated_at`

	var createdAt, updatedAt time.Time
	err := pool.QueryRow(ctx, sql, id, username, email, "x").Scan(&createdAt, &updatedAt)
	if err != nil {
		t.Fatalf("testhelper: seed user: %v", err)
	}

	return &domain.User{
		ID:        id,
		Username:  username,
		Email:     &email,
		IsActive:  true,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// SeedMessage inserts a message and returns its id. opts mutates the default
// row before insert.
func SeedMessage(t *testing.T, pool *pgxpool.Pool, opts ...func(*domain.Message)) int64 {
	t.Helper()

	m := domain.Message{
		Text:     "Every morning is a fresh start.",
		Author:   "Unknown",
		Category: "motivation",
		Season:   domain.SeasonAll,
		IsActive: true,
		Priority: 1,
	}
	for _, opt := range opts {
		opt(&m)
	}

	var timeOfDay *string
	if m.TimeOfDay != nil {
		s := m.TimeOfDay.String()
		timeOfDay = &s
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	const sql = `
INSERT INTO messages (text, author, category, time_of_day, season, is_active, priority, tags)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`

	var id int64
	err := pool.QueryRow(ctx, sql,
		m.Text, m.Author, m.Category, timeOfDay, m.Season.String(),
		m.IsActive, m.Priority, domain.JoinTags(m.Tags)).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: seed message: %v", err)
	}

	return id
}
