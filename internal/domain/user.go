package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered application user.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        *string
	PasswordHash string
	DisplayName  *string
	Settings     map[string]any
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLogin    *time.Time
}

// UserUpdateParams carries a partial profile update. Nil fields are left
// unchanged.
type UserUpdateParams struct {
	DisplayName *string
	Email       *string
	Settings    map[string]any
}

// UserStats is the per-user usage aggregate.
type UserStats struct {
	TotalFavorites      int
	TotalHistory        int
	TotalJournalEntries int
	TotalGoals          int
	CompletedGoals      int
}
