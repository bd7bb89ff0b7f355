package domain

import (
	"strings"
	"time"
)

// Message is a single inspirational text entry with category/time/season tags.
// Messages are created by administrative tooling and soft-deactivated, never
// deleted; only active messages participate in retrieval.
type Message struct {
	ID        int64
	Text      string
	Author    string
	Category  string
	TimeOfDay *TimePeriod // nil means "any time of day"
	Season    Season
	IsActive  bool
	Priority  int
	Tags      []string
	CreatedAt time.Time
	UpdatedAt *time.Time
	CreatedBy string
}

// SplitTags parses the comma-separated tags column into a slice.
// An empty value yields an empty (non-nil) slice.
func SplitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// JoinTags renders a tag slice back into the comma-separated storage form.
func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}

// MessageFilter contains filtering parameters for message listings.
// A nil Category or TimePeriod (or the "all" sentinel) disables that filter.
type MessageFilter struct {
	Category    *string
	TimePeriod  *TimePeriod
	Limit       int
	RandomOrder bool
}

const (
	defaultMessageLimit = 10
	maxMessageLimit     = 100
)

// Normalize applies defaults and clamps Limit to [1, 100].
func (f *MessageFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = defaultMessageLimit
	}
	if f.Limit > maxMessageLimit {
		f.Limit = maxMessageLimit
	}
}

// FilterByCategory reports whether the category filter is in effect.
func (f MessageFilter) FilterByCategory() bool {
	return f.Category != nil && *f.Category != "" && *f.Category != "all"
}

// FilterByTime reports whether the time-of-day filter is in effect.
func (f MessageFilter) FilterByTime() bool {
	return f.TimePeriod != nil && *f.TimePeriod != "" && *f.TimePeriod != TimePeriodAll
}

// ClientInfo identifies the caller of a message retrieval for access logging.
type ClientInfo struct {
	IP        string
	UserAgent string
}

// AccessRecord is one append-only audit row per message view or reaction.
type AccessRecord struct {
	ID         int64
	MessageID  int64
	ClientIP   string
	UserAgent  string
	AccessedAt time.Time
	Reaction   *Reaction // nil for plain views
}

// CategoryCount is one row of the category aggregation: a category name,
// how many active messages carry it, and optional display metadata from
// the message_categories table.
type CategoryCount struct {
	Name        string
	Count       int
	DisplayName string
	Color       *string
	Icon        *string
}

// CategoryViews is one row of the popular-categories aggregation.
type CategoryViews struct {
	Category string
	Views    int
}

// Stats is the global usage aggregate.
type Stats struct {
	TotalMessages     int
	TotalViews        int
	TodayViews        int
	PopularCategories []CategoryViews
}
