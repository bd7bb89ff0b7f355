package seeder

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dailystart/messages-backend/internal/domain"
)

// Dataset is the on-disk import format: a JSON document with optional
// category metadata and the messages themselves.
type Dataset struct {
	Categories []CategoryEntry `json:"categories"`
	Messages   []MessageEntry  `json:"messages"`
}

// CategoryEntry describes display metadata for one category.
type CategoryEntry struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Color       string  `json:"color"`
	Icon        *string `json:"icon"`
	SortOrder   int     `json:"sortOrder"`
}

// MessageEntry is one message in the import file.
type MessageEntry struct {
	Text      string   `json:"text"`
	Author    string   `json:"author"`
	Category  string   `json:"category"`
	TimeOfDay *string  `json:"timeOfDay"`
	Season    string   `json:"season"`
	Priority  int      `json:"priority"`
	Tags      []string `json:"tags"`
	Active    *bool    `json:"active"`
}

// LoadDataset reads and decodes an import file.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return &ds, nil
}

// Validate checks every entry and returns one error describing all problems,
// so a bad file is reported in a single run.
func (ds *Dataset) Validate() error {
	var problems []string

	for i, c := range ds.Categories {
		if strings.TrimSpace(c.Name) == "" {
			problems = append(problems, fmt.Sprintf("categories[%d]: name is required", i))
		}
	}

	for i, m := range ds.Messages {
		if strings.TrimSpace(m.Text) == "" {
			problems = append(problems, fmt.Sprintf("messages[%d]: text is required", i))
		}
		if strings.TrimSpace(m.Category) == "" {
			problems = append(problems, fmt.Sprintf("messages[%d]: category is required", i))
		}
		if m.TimeOfDay != nil && !domain.TimePeriod(*m.TimeOfDay).IsValid() {
			problems = append(problems, fmt.Sprintf("messages[%d]: unknown time of day %q", i, *m.TimeOfDay))
		}
		if m.Season != "" && !domain.Season(m.Season).IsValid() {
			problems = append(problems, fmt.Sprintf("messages[%d]: unknown season %q", i, m.Season))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid dataset: %s", strings.Join(problems, "; "))
	}
	return nil
}

// toDomain converts an entry into the domain model with defaults applied.
func (m MessageEntry) toDomain() *domain.Message {
	msg := &domain.Message{
		Text:     strings.TrimSpace(m.Text),
		Author:   strings.TrimSpace(m.Author),
		Category: strings.TrimSpace(m.Category),
		Season:   domain.SeasonAll,
		Priority: m.Priority,
		Tags:     m.Tags,
		IsActive: true,
	}
	if m.TimeOfDay != nil && *m.TimeOfDay != "" {
		tp := domain.TimePeriod(*m.TimeOfDay)
		msg.TimeOfDay = &tp
	}
	if m.Season != "" {
		msg.Season = domain.Season(m.Season)
	}
	if m.Active != nil {
		msg.IsActive = *m.Active
	}
	return msg
}
