package domain

import (
	"time"

	"github.com/google/uuid"
)

// JournalEntry is a user's diary entry for one calendar date.
// EntryDate uses the YYYY-MM-DD form; a user has at most one entry per date.
type JournalEntry struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	EntryDate string
	Content   *string
	Mood      *Mood
	CreatedAt time.Time
	UpdatedAt time.Time
}

// JournalUpdateParams carries a partial journal update. Nil fields are left
// unchanged.
type JournalUpdateParams struct {
	Content *string
	Mood    *Mood
}
