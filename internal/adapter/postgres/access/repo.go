// Package access implements the append-only access log: one row per message
// view or reaction, plus the aggregations the stats endpoint reads.
package access

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/dailystart/messages-backend/internal/adapter/postgres"
	"github.com/dailystart/messages-backend/internal/domain"
)

// Repo provides access-log persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new access log repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

const insertSQL = `
INSERT INTO message_access_log (message_id, client_ip, user_agent, reaction)
VALUES ($1, $2, $3, $4)`

// Insert appends a new access record. The referenced message's existence is
// deliberately not checked here; that policy belongs to the caller.
func (r *Repo) Insert(ctx context.Context, rec domain.AccessRecord) error {
	var reaction *string
	if rec.Reaction != nil {
		s := rec.Reaction.String()
		reaction = &s
	}

	_, err := postgres.QuerierFromCtx(ctx, r.q).Exec(ctx, insertSQL,
		rec.MessageID, rec.ClientIP, rec.UserAgent, reaction)
	if err != nil {
		return postgres.MapError(err, "access_record", rec.MessageID)
	}
	return nil
}

const countAllSQL = `SELECT count(*) FROM message_access_log`

// CountAll returns the total number of access records, regardless of the
// referenced message's active state.
func (r *Repo) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := postgres.QuerierFromCtx(ctx, r.q).QueryRow(ctx, countAllSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("count access records: %w", err)
	}
	return count, nil
}

const countTodaySQL = `SELECT count(*) FROM message_access_log WHERE accessed_at::date = CURRENT_DATE`

// CountToday returns the number of access records whose timestamp falls on
// the current calendar date (database local time).
func (r *Repo) CountToday(ctx context.Context) (int, error) {
	var count int
	if err := postgres.QuerierFromCtx(ctx, r.q).QueryRow(ctx, countTodaySQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("count today's access records: %w", err)
	}
	return count, nil
}

const popularCategoriesSQL = `
SELECT m.category, count(a.id) AS views
FROM messages m
JOIN message_access_log a ON a.message_id = m.id
GROUP BY m.category
ORDER BY views DESC, m.category ASC
LIMIT $1`

type categoryViewsRow struct {
	Category string `db:"category"`
	Views    int    `db:"views"`
}

// PopularCategories returns the top categories by access count, descending,
// with ties broken by category name for determinism.
func (r *Repo) PopularCategories(ctx context.Context, limit int) ([]domain.CategoryViews, error) {
	var rows []categoryViewsRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.q), &rows, popularCategoriesSQL, limit); err != nil {
		return nil, fmt.Errorf("popular categories: %w", err)
	}

	result := make([]domain.CategoryViews, len(rows))
	for i, row := range rows {
		result[i] = domain.CategoryViews{Category: row.Category, Views: row.Views}
	}

	return result, nil
}
