package domain

import (
	"time"

	"github.com/google/uuid"
)

// Favorite is a message a user has bookmarked. MessageData carries the full
// message snapshot so the favorite survives message deactivation.
type Favorite struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	MessageID   string
	MessageData map[string]any
	AddedAt     time.Time
}

// HistoryItem is one user-scoped view history row. Unlike AccessRecord it is
// owned by the user and can be cleared on request.
type HistoryItem struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	MessageID   string
	MessageData map[string]any
	ViewedAt    time.Time
}
