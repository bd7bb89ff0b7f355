// Package message implements the message store and the SQL side of the
// filter/select engine: dynamic category/time filtering, priority or random
// ordering, uniform random picks and the category aggregation.
package message

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/dailystart/messages-backend/internal/adapter/postgres"
	"github.com/dailystart/messages-backend/internal/domain"
)

// Repo provides message persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new message repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const messageColumns = "id, text, author, category, time_of_day, season, is_active, priority, tags, created_at, updated_at, created_by"

// messageRow mirrors the messages table for scany.
type messageRow struct {
	ID        int64      `db:"id"`
	Text      string     `db:"text"`
	Author    string     `db:"author"`
	Category  string     `db:"category"`
	TimeOfDay *string    `db:"time_of_day"`
	Season    string     `db:"season"`
	IsActive  bool       `db:"is_active"`
	Priority  int        `db:"priority"`
	Tags      string     `db:"tags"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
	CreatedBy string     `db:"created_by"`
}

// applyFilter adds the active-only guard and the caller's category/time
// conditions. An absent/empty time_of_day is treated as "any time" and always
// qualifies.
func applyFilter(sb squirrel.SelectBuilder, f domain.MessageFilter) squirrel.SelectBuilder {
	sb = sb.Where(squirrel.Eq{"is_active": true})

	if f.FilterByCategory() {
		sb = sb.Where(squirrel.Eq{"category": *f.Category})
	}

	if f.FilterByTime() {
		sb = sb.Where(squirrel.Or{
			squirrel.Eq{"time_of_day": f.TimePeriod.String()},
			squirrel.Eq{"time_of_day": nil},
			squirrel.Eq{"time_of_day": ""},
		})
	}

	return sb
}

// List returns active messages matching the filter. Random order draws a
// fresh permutation per call; otherwise priority desc, newest first, with id
// as the stable tie-breaker. Returns an empty slice when nothing qualifies.
func (r *Repo) List(ctx context.Context, f domain.MessageFilter) ([]domain.Message, error) {
	f.Normalize()

	sb := applyFilter(psql.Select(messageColumns).From("messages"), f)
	if f.RandomOrder {
		sb = sb.OrderBy("random()")
	} else {
		sb = sb.OrderBy("priority DESC", "created_at DESC", "id DESC")
	}
	sb = sb.Limit(uint64(f.Limit))

	sql, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var rows []messageRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.q), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	messages := make([]domain.Message, len(rows))
	for i, row := range rows {
		messages[i] = toDomain(row)
	}

	return messages, nil
}

// Count returns the size of the qualifying set for the filter. Limit and
// ordering are ignored.
func (r *Repo) Count(ctx context.Context, f domain.MessageFilter) (int, error) {
	sb := applyFilter(psql.Select("count(*)").From("messages"), f)

	sql, args, err := sb.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int
	if err := postgres.QuerierFromCtx(ctx, r.q).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}

	return count, nil
}

// PickRandom draws one message uniformly at random from the qualifying set.
// Returns domain.ErrNotFound when the set is empty; the fallback widening
// policy lives in the service layer.
func (r *Repo) PickRandom(ctx context.Context, f domain.MessageFilter) (*domain.Message, error) {
	sb := applyFilter(psql.Select(messageColumns).From("messages"), f).
		OrderBy("random()").
		Limit(1)

	sql, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build pick query: %w", err)
	}

	var row messageRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.q), &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "message", "random")
	}

	m := toDomain(row)
	return &m, nil
}

const getByIDSQL = `SELECT ` + messageColumns + ` FROM messages WHERE id = $1`

// GetByID returns a message by primary key regardless of active state.
// Returns domain.ErrNotFound if the id is unknown.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	var row messageRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.q), &row, getByIDSQL, id); err != nil {
		return nil, postgres.MapError(err, "message", id)
	}

	m := toDomain(row)
	return &m, nil
}

const listCategoriesSQL = `
SELECT m.category AS name, count(*) AS count, c.color, c.icon
FROM messages m
LEFT JOIN message_categories c ON c.name = m.category AND c.is_active
WHERE m.is_active
GROUP BY m.category, c.color, c.icon
ORDER BY m.category`

type categoryRow struct {
	Name  string  `db:"name"`
	Count int     `db:"count"`
	Color *string `db:"color"`
	Icon  *string `db:"icon"`
}

// ListCategories returns the distinct categories of active messages with
// per-category counts, ordered by name. Categories with zero active messages
// never appear. Display metadata is joined in when a message_categories row
// exists.
func (r *Repo) ListCategories(ctx context.Context) ([]domain.CategoryCount, error) {
	var rows []categoryRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.q), &rows, listCategoriesSQL); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	categories := make([]domain.CategoryCount, len(rows))
	for i, row := range rows {
		categories[i] = domain.CategoryCount{
			Name:        row.Name,
			Count:       row.Count,
			DisplayName: row.Name,
			Color:       row.Color,
			Icon:        row.Icon,
		}
	}

	return categories, nil
}

const countActiveSQL = `SELECT count(*) FROM messages WHERE is_active`

// CountActive returns the number of active messages.
func (r *Repo) CountActive(ctx context.Context) (int, error) {
	var count int
	if err := postgres.QuerierFromCtx(ctx, r.q).QueryRow(ctx, countActiveSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("count active messages: %w", err)
	}
	return count, nil
}

const insertMessageSQL = `
INSERT INTO messages (text, author, category, time_of_day, season, is_active, priority, tags, created_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + messageColumns

// Create inserts a new message and returns the persisted row. Used by the
// seeder; the retrieval API never writes messages.
func (r *Repo) Create(ctx context.Context, m *domain.Message) (*domain.Message, error) {
	var timeOfDay *string
	if m.TimeOfDay != nil {
		s := m.TimeOfDay.String()
		timeOfDay = &s
	}

	season := m.Season
	if season == "" {
		season = domain.SeasonAll
	}
	createdBy := m.CreatedBy
	if createdBy == "" {
		createdBy = "system"
	}

	var row messageRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.q), &row, insertMessageSQL,
		m.Text, m.Author, m.Category, timeOfDay, season.String(),
		m.IsActive, m.Priority, domain.JoinTags(m.Tags), createdBy,
	)
	if err != nil {
		return nil, postgres.MapError(err, "message", 0)
	}

	created := toDomain(row)
	return &created, nil
}

const setActiveSQL = `UPDATE messages SET is_active = $2, updated_at = now() WHERE id = $1`

// SetActive soft-activates or deactivates a message.
// Returns domain.ErrNotFound if the id is unknown.
func (r *Repo) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.q).Exec(ctx, setActiveSQL, id, active)
	if err != nil {
		return postgres.MapError(err, "message", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("message %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

const upsertCategorySQL = `
INSERT INTO message_categories (name, description, color, icon, sort_order)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (name) DO UPDATE
SET description = EXCLUDED.description,
    color       = EXCLUDED.color,
    icon        = EXCLUDED.icon,
    sort_order  = EXCLUDED.sort_order`

// CategoryMeta is the display metadata the seeder imports alongside messages.
type CategoryMeta struct {
	Name        string
	Description *string
	Color       string
	Icon        *string
	SortOrder   int
}

// UpsertCategory creates or refreshes a category metadata row.
func (r *Repo) UpsertCategory(ctx context.Context, c CategoryMeta) error {
	color := c.Color
	if color == "" {
		color = "#666666"
	}

	_, err := postgres.QuerierFromCtx(ctx, r.q).Exec(ctx, upsertCategorySQL,
		c.Name, c.Description, color, c.Icon, c.SortOrder)
	if err != nil {
		return postgres.MapError(err, "category", c.Name)
	}
	return nil
}

// toDomain converts a scanned row into a domain.Message.
func toDomain(row messageRow) domain.Message {
	m := domain.Message{
		ID:        row.ID,
		Text:      row.Text,
		Author:    row.Author,
		Category:  row.Category,
		Season:    domain.Season(row.Season),
		IsActive:  row.IsActive,
		Priority:  row.Priority,
		Tags:      domain.SplitTags(row.Tags),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
		CreatedBy: row.CreatedBy,
	}

	if row.TimeOfDay != nil && *row.TimeOfDay != "" {
		p := domain.TimePeriod(*row.TimeOfDay)
		m.TimeOfDay = &p
	}

	return m
}
