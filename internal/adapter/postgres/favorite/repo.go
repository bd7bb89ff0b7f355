// Package favorite implements the user favorites and view-history
// repositories. Both store a denormalized message snapshot (JSONB) so rows
// stay meaningful after a message is deactivated.
package favorite

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/dailystart/messages-backend/internal/adapter/postgres"
	"github.com/dailystart/messages-backend/internal/domain"
)

// Repo provides favorite and history persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new favorite repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

const favoriteColumns = "id, user_id, message_id, message_data, added_at"

type favoriteRow struct {
	ID          uuid.UUID      `db:"id"`
	UserID      uuid.UUID      `db:"user_id"`
	MessageID   string         `db:"message_id"`
	MessageData map[string]any `db:"message_data"`
	AddedAt     time.Time      `db:"added_at"`
}

const addFavoriteSQL = `
INSERT INTO user_favorites (id, user_id, message_id, message_data)
VALUES ($1, $2, $3, $4)
RETURNING ` + favoriteColumns

// Add inserts a favorite, generating the id when the caller left it unset.
// The (user_id, message_id) unique constraint maps duplicates to
// domain.ErrAlreadyExists.
func (r *Repo) Add(ctx context.Context, fav *domain.Favorite) (*domain.Favorite, error) {
	id := fav.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	var row favoriteRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.q), &row, addFavoriteSQL,
		id, fav.UserID, fav.MessageID, fav.MessageData)
	if err != nil {
		return nil, postgres.MapError(err, "favorite", fav.MessageID)
	}

	created := toFavorite(row)
	return &created, nil
}

const listFavoritesSQL = `
SELECT ` + favoriteColumns + `
FROM user_favorites
WHERE user_id = $1
ORDER BY added_at DESC`

// List returns the user's favorites, newest first. Returns an empty slice
// (not nil) when the user has none.
func (r *Repo) List(ctx context.Context, userID uuid.UUID) ([]domain.Favorite, error) {
	var rows []favoriteRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.q), &rows, listFavoritesSQL, userID); err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	favorites := make([]domain.Favorite, len(rows))
	for i, row := range rows {
		favorites[i] = toFavorite(row)
	}

	return favorites, nil
}

const deleteFavoriteSQL = `DELETE FROM user_favorites WHERE id = $1 AND user_id = $2`

// Delete removes a favorite. Returns domain.ErrNotFound if it does not exist
// or belongs to another user.
func (r *Repo) Delete(ctx context.Context, userID, favoriteID uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.q).Exec(ctx, deleteFavoriteSQL, favoriteID, userID)
	if err != nil {
		return postgres.MapError(err, "favorite", favoriteID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("favorite %s: %w", favoriteID, domain.ErrNotFound)
	}
	return nil
}

const historyColumns = "id, user_id, message_id, message_data, viewed_at"

type historyRow struct {
	ID          uuid.UUID      `db:"id"`
	UserID      uuid.UUID      `db:"user_id"`
	MessageID   string         `db:"message_id"`
	MessageData map[string]any `db:"message_data"`
	ViewedAt    time.Time      `db:"viewed_at"`
}

const addHistorySQL = `
INSERT INTO user_history (id, user_id, message_id, message_data)
VALUES ($1, $2, $3, $4)
RETURNING ` + historyColumns

// AddHistory appends a view-history row for the user.
func (r *Repo) AddHistory(ctx context.Context, item *domain.HistoryItem) (*domain.HistoryItem, error) {
	id := item.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	var row historyRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.q), &row, addHistorySQL,
		id, item.UserID, item.MessageID, item.MessageData)
	if err != nil {
		return nil, postgres.MapError(err, "history", item.MessageID)
	}

	created := toHistory(row)
	return &created, nil
}

const listHistorySQL = `
SELECT ` + historyColumns + `
FROM user_history
WHERE user_id = $1
ORDER BY viewed_at DESC
LIMIT $2`

// ListHistory returns the user's most recent history rows.
func (r *Repo) ListHistory(ctx context.Context, userID uuid.UUID, limit int) ([]domain.HistoryItem, error) {
	var rows []historyRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.q), &rows, listHistorySQL, userID, limit); err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	items := make([]domain.HistoryItem, len(rows))
	for i, row := range rows {
		items[i] = toHistory(row)
	}

	return items, nil
}

const clearHistorySQL = `DELETE FROM user_history WHERE user_id = $1`

// ClearHistory deletes all history rows for the user and returns how many
// were removed.
func (r *Repo) ClearHistory(ctx context.Context, userID uuid.UUID) (int, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.q).Exec(ctx, clearHistorySQL, userID)
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func toFavorite(row favoriteRow) domain.Favorite {
	return domain.Favorite{
		ID:          row.ID,
		UserID:      row.UserID,
		MessageID:   row.MessageID,
		MessageData: row.MessageData,
		AddedAt:     row.AddedAt,
	}
}

func toHistory(row historyRow) domain.HistoryItem {
	return domain.HistoryItem{
		ID:          row.ID,
		UserID:      row.UserID,
		MessageID:   row.MessageID,
		MessageData: row.MessageData,
		ViewedAt:    row.ViewedAt,
	}
}
