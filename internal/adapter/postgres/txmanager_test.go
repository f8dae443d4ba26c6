package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/communityops/partnerbot/internal/adapter/postgres"
	"github.com/communityops/partnerbot/internal/adapter/postgres/testhelper"
)

// recordExists checks whether a partnership record with the given ID exists.
func recordExists(t *testing.T, pool *pgxpool.Pool, id uuid.UUID) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(
		context.Background(),
		`SELECT EXISTS(SELECT 1 FROM partnership_records WHERE id = $1)`,
		id,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("recordExists query: %v", err)
	}
	return exists
}

func insertRecord(ctx context.Context, q postgres.Querier, id uuid.UUID) error {
	_, err := q.Exec(ctx,
		`INSERT INTO partnership_records
		   (id, guild_id, owner_id, action_type, raw_text, channel_ref, message_refs, created_at)
		 VALUES ($1, 'g1', 'o1', 'CREATE', 'text', 'c1', '{}', $2)`,
		id, time.Now().UTC(),
	)
	return err
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	id := uuid.New()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return insertRecord(ctx, postgres.QuerierFromCtx(ctx, pool), id)
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !recordExists(t, pool, id) {
		t.Fatal("expected record to exist after committed transaction")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	id := uuid.New()
	sentinel := errors.New("business logic error")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if execErr := insertRecord(ctx, postgres.QuerierFromCtx(ctx, pool), id); execErr != nil {
			t.Fatalf("insert inside tx failed: %v", execErr)
		}
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}

	if recordExists(t, pool, id) {
		t.Fatal("expected record NOT to exist after rolled-back transaction")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	id := uuid.New()

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Fatal("expected panic to propagate")
			}
		}()
		_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
			if execErr := insertRecord(ctx, postgres.QuerierFromCtx(ctx, pool), id); execErr != nil {
				t.Fatalf("insert inside tx failed: %v", execErr)
			}
			panic("boom")
		})
	}()

	if recordExists(t, pool, id) {
		t.Fatal("expected record NOT to exist after panicked transaction")
	}
}
