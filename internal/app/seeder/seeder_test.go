package seeder

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dailystart/messages-backend/internal/adapter/postgres/message"
	"github.com/dailystart/messages-backend/internal/domain"
)

type messageWriterMock struct {
	CreateFunc         func(ctx context.Context, m *domain.Message) (*domain.Message, error)
	UpsertCategoryFunc func(ctx context.Context, c message.CategoryMeta) error
}

func (m *messageWriterMock) Create(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	if m.CreateFunc == nil {
		panic("messageWriterMock.CreateFunc is nil")
	}
	return m.CreateFunc(ctx, msg)
}

func (m *messageWriterMock) UpsertCategory(ctx context.Context, c message.CategoryMeta) error {
	if m.UpsertCategoryFunc == nil {
		panic("messageWriterMock.UpsertCategoryFunc is nil")
	}
	return m.UpsertCategoryFunc(ctx, c)
}

type txRunnerMock struct {
	calls int
	err   error
}

func (m *txRunnerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	return fn(ctx)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr[T any](v T) *T { return &v }

func validDataset() *Dataset {
	return &Dataset{
		Categories: []CategoryEntry{
			{Name: "motivation", Color: "#ff8800", SortOrder: 1},
		},
		Messages: []MessageEntry{
			{Text: "Rise and shine", Category: "motivation", TimeOfDay: ptr("morning")},
			{Text: "Keep going", Category: "motivation", Season: "winter", Tags: []string{"grit"}},
		},
	}
}

func TestRun_ImportsEverything(t *testing.T) {
	var created []*domain.Message
	var upserted []message.CategoryMeta

	writer := &messageWriterMock{
		CreateFunc: func(_ context.Context, m *domain.Message) (*domain.Message, error) {
			created = append(created, m)
			return m, nil
		},
		UpsertCategoryFunc: func(_ context.Context, c message.CategoryMeta) error {
			upserted = append(upserted, c)
			return nil
		},
	}
	tx := &txRunnerMock{}

	im := NewImporter(discardLogger(), writer, tx, false)
	report, err := im.Run(context.Background(), validDataset())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if tx.calls != 1 {
		t.Fatalf("expected a single transaction, got %d", tx.calls)
	}
	if report.Categories != 1 || report.Messages != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(upserted) != 1 || upserted[0].Name != "motivation" {
		t.Fatalf("unexpected categories: %+v", upserted)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(created))
	}
	if created[0].TimeOfDay == nil || *created[0].TimeOfDay != domain.TimePeriodMorning {
		t.Errorf("first message lost its time of day: %+v", created[0])
	}
	if !created[0].IsActive {
		t.Error("messages should default to active")
	}
	if created[1].Season != domain.SeasonWinter {
		t.Errorf("second message season = %q", created[1].Season)
	}
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	writer := &messageWriterMock{} // any write would panic
	tx := &txRunnerMock{}

	im := NewImporter(discardLogger(), writer, tx, true)
	report, err := im.Run(context.Background(), validDataset())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if tx.calls != 0 {
		t.Error("dry run must not open a transaction")
	}
	if !report.DryRun || report.Messages != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestRun_InvalidDataset(t *testing.T) {
	ds := &Dataset{
		Messages: []MessageEntry{
			{Text: "", Category: "motivation"},
			{Text: "ok", Category: "", TimeOfDay: ptr("noonish")},
		},
	}

	im := NewImporter(discardLogger(), &messageWriterMock{}, &txRunnerMock{}, false)
	_, err := im.Run(context.Background(), ds)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"messages[0]: text is required", "messages[1]: category is required", `unknown time of day "noonish"`} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestRun_WriteFailureAbortsImport(t *testing.T) {
	writeErr := errors.New("unique violation")
	writer := &messageWriterMock{
		UpsertCategoryFunc: func(context.Context, message.CategoryMeta) error { return nil },
		CreateFunc: func(context.Context, *domain.Message) (*domain.Message, error) {
			return nil, writeErr
		},
	}

	im := NewImporter(discardLogger(), writer, &txRunnerMock{}, false)
	_, err := im.Run(context.Background(), validDataset())
	if !errors.Is(err, writeErr) {
		t.Fatalf("expected wrapped write error, got %v", err)
	}
}

func TestLoadDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.json")
	payload := `{
		"categories": [{"name": "calm", "color": "#4488ff", "sortOrder": 2}],
		"messages": [{"text": "Breathe", "category": "calm", "tags": ["mindful"]}]
	}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	ds, err := LoadDataset(path)
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}
	if len(ds.Categories) != 1 || len(ds.Messages) != 1 {
		t.Fatalf("unexpected dataset: %+v", ds)
	}
	if ds.Messages[0].Text != "Breathe" {
		t.Errorf("text = %q", ds.Messages[0].Text)
	}

	if _, err := LoadDataset(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
