// Package journal implements the journal entry repository: one entry per
// user per calendar date.
package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/dailystart/messages-backend/internal/adapter/postgres"
	"github.com/dailystart/messages-backend/internal/domain"
)

// Repo provides journal persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new journal repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

const journalColumns = "id, user_id, entry_date, content, mood, created_at, updated_at"

type journalRow struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	EntryDate string    `db:"entry_date"`
	Content   *string   `db:"content"`
	Mood      *string   `db:"mood"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

const createSQL = `
INSERT INTO journal_entries (id, user_id, entry_date, content, mood)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + journalColumns

// Create inserts a journal entry, generating the id when the caller left it
// unset. The (user_id, entry_date) unique constraint maps a second entry for
// the same date to domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, e *domain.JournalEntry) (*domain.JournalEntry, error) {
	id := e.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	var mood *string
	if e.Mood != nil {
		s := e.Mood.String()
		mood = &s
	}

	var row journalRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.q), &row, createSQL,
		id, e.UserID, e.EntryDate, e.Content, mood)
	if err != nil {
		return nil, postgres.MapError(err, "journal_entry", e.EntryDate)
	}

	created := toDomain(row)
	return &created, nil
}

const getByDateSQL = `
SELECT ` + journalColumns + `
FROM journal_entries
WHERE user_id = $1 AND entry_date = $2`

// GetByDate returns the user's entry for a date, or domain.ErrNotFound.
func (r *Repo) GetByDate(ctx context.Context, userID uuid.UUID, date string) (*domain.JournalEntry, error) {
	var row journalRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.q), &row, getByDateSQL, userID, date); err != nil {
		return nil, postgres.MapError(err, "journal_entry", date)
	}

	e := toDomain(row)
	return &e, nil
}

const listSQL = `
SELECT ` + journalColumns + `
FROM journal_entries
WHERE user_id = $1
ORDER BY entry_date DESC
LIMIT $2`

// List returns the user's most recent entries, newest date first.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, limit int) ([]domain.JournalEntry, error) {
	var rows []journalRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.q), &rows, listSQL, userID, limit); err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}

	entries := make([]domain.JournalEntry, len(rows))
	for i, row := range rows {
		entries[i] = toDomain(row)
	}

	return entries, nil
}

const updateSQL = `
UPDATE journal_entries
SET content    = COALESCE($3, content),
    mood       = COALESCE($4, mood),
    updated_at = now()
WHERE user_id = $1 AND entry_date = $2
RETURNING ` + journalColumns

// Update applies a partial update to the entry for a date; nil params keep
// current values. Returns domain.ErrNotFound if no entry exists for the date.
func (r *Repo) Update(ctx context.Context, userID uuid.UUID, date string, params domain.JournalUpdateParams) (*domain.JournalEntry, error) {
	var mood *string
	if params.Mood != nil {
		s := params.Mood.String()
		mood = &s
	}

	var row journalRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.q), &row, updateSQL,
		userID, date, params.Content, mood)
	if err != nil {
		return nil, postgres.MapError(err, "journal_entry", date)
	}

	e := toDomain(row)
	return &e, nil
}

func toDomain(row journalRow) domain.JournalEntry {
	e := domain.JournalEntry{
		ID:        row.ID,
		UserID:    row.UserID,
		EntryDate: row.EntryDate,
		Content:   row.Content,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}

	if row.Mood != nil && *row.Mood != "" {
		m := domain.Mood(*row.Mood)
		e.Mood = &m
	}

	return e
}
