package journal_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dailystart/messages-backend/internal/adapter/postgres/journal"
	"github.com/dailystart/messages-backend/internal/adapter/postgres/testhelper"
	"github.com/dailystart/messages-backend/internal/domain"
)

func newRepo(t *testing.T) (*journal.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return journal.New(pool), pool
}

func ptr[T any](v T) *T { return &v }

func newEntry(userID uuid.UUID, date string) *domain.JournalEntry {
	mood := domain.MoodGood
	return &domain.JournalEntry{
		ID:        uuid.New(),
		UserID:    userID,
		EntryDate: date,
		Content:   ptr("Slept well, read in the morning."),
		Mood:      &mood,
	}
}

func TestRepo_Create_And_GetByDate(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	u := testhelper.SeedUser(t, pool)

	created, err := repo.Create(ctx, newEntry(u.ID, "2025-06-01"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}

	got, err := repo.GetByDate(ctx, u.ID, "2025-06-01")
	if err != nil {
		t.Fatalf("GetByDate: %v", err)
	}
	if got.Mood == nil || *got.Mood != domain.MoodGood {
		t.Errorf("mood = %v", got.Mood)
	}
	if got.Content == nil || *got.Content != "Slept well, read in the morning." {
		t.Errorf("content = %v", got.Content)
	}

	if _, err := repo.GetByDate(ctx, u.ID, "2025-06-02"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_Create_DuplicateDate(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	u := testhelper.SeedUser(t, pool)
	if _, err := repo.Create(ctx, newEntry(u.ID, "2025-06-03")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := repo.Create(ctx, newEntry(u.ID, "2025-06-03"))
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	// The same date is fine for a different user.
	other := testhelper.SeedUser(t, pool)
	if _, err := repo.Create(ctx, newEntry(other.ID, "2025-06-03")); err != nil {
		t.Fatalf("Create for other user: %v", err)
	}
}

func TestRepo_List_NewestFirst(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	u := testhelper.SeedUser(t, pool)
	for _, date := range []string{"2025-05-30", "2025-06-01", "2025-05-31"} {
		if _, err := repo.Create(ctx, newEntry(u.ID, date)); err != nil {
			t.Fatalf("Create %s: %v", date, err)
		}
	}

	got, err := repo.List(ctx, u.ID, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].EntryDate != "2025-06-01" || got[1].EntryDate != "2025-05-31" {
		t.Errorf("order = %s, %s", got[0].EntryDate, got[1].EntryDate)
	}
}

func TestRepo_Update_Partial(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	u := testhelper.SeedUser(t, pool)
	if _, err := repo.Create(ctx, newEntry(u.ID, "2025-06-05")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	terrible := domain.MoodTerrible
	updated, err := repo.Update(ctx, u.ID, "2025-06-05", domain.JournalUpdateParams{Mood: &terrible})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Mood == nil || *updated.Mood != domain.MoodTerrible {
		t.Errorf("mood = %v", updated.Mood)
	}
	if updated.Content == nil || *updated.Content != "Slept well, read in the morning." {
		t.Error("content lost on mood-only update")
	}

	_, err = repo.Update(ctx, u.ID, "2025-06-06", domain.JournalUpdateParams{Mood: &terrible})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing date, got %v", err)
	}
}
