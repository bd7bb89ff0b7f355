package domain

import (
	"time"

	"github.com/google/uuid"
)

// Goal is a personal weekly or monthly goal with a target count.
type Goal struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Title        string
	Description  *string
	Category     GoalCategory
	Type         GoalType
	TargetCount  int
	CurrentCount int
	IsCompleted  bool
	StartDate    time.Time
	TargetDate   *time.Time
	CompletedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// GoalUpdateParams carries a partial goal update. Nil fields are left
// unchanged.
type GoalUpdateParams struct {
	Title       *string
	Description *string
	Category    *GoalCategory
	Type        *GoalType
	TargetCount *int
	TargetDate  *time.Time
}
