package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dailystart/messages-backend/internal/adapter/postgres"
	"github.com/dailystart/messages-backend/internal/adapter/postgres/testhelper"
)

// messageExists checks whether a message row with the given text exists.
func messageExists(t *testing.T, pool *pgxpool.Pool, text string) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(
		context.Background(),
		`SELECT EXISTS(SELECT 1 FROM messages WHERE text = $1)`,
		text,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("messageExists query: %v", err)
	}
	return exists
}

func insertMessage(ctx context.Context, q postgres.Querier, text string) error {
	_, err := q.Exec(ctx,
		`INSERT INTO messages (text, author, category) VALUES ($1, 'tx-test', 'tx-test')`,
		text,
	)
	return err
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	text := "commit " + uuid.New().String()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return insertMessage(ctx, postgres.QuerierFromCtx(ctx, pool), text)
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !messageExists(t, pool, text) {
		t.Fatal("expected message to exist after committed transaction")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	text := "rollback " + uuid.New().String()
	sentinel := errors.New("business logic error")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertMessage(ctx, postgres.QuerierFromCtx(ctx, pool), text); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}

	if messageExists(t, pool, text) {
		t.Fatal("expected rollback to discard the insert")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	text := "panic " + uuid.New().String()

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Fatal("expected panic to propagate")
			}
		}()
		_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
			if err := insertMessage(ctx, postgres.QuerierFromCtx(ctx, pool), text); err != nil {
				return err
			}
			panic("boom")
		})
	}()

	if messageExists(t, pool, text) {
		t.Fatal("expected rollback to discard the insert")
	}
}
