package postgres

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/communityops/partnerbot/internal/domain"
)

// RunLock serializes audit runs per guild and target day using a session
// advisory lock. Two invocations for the same key never evaluate
// concurrently; the second one observes domain.ErrRunLocked and skips.
type RunLock struct {
	pool *pgxpool.Pool
}

// NewRunLock creates a RunLock.
func NewRunLock(pool *pgxpool.Pool) *RunLock {
	return &RunLock{pool: pool}
}

// Acquire takes the advisory lock for (guildID, targetDay) without waiting.
// On success it returns a release func that must be called when the run
// finishes. When the lock is already held it returns domain.ErrRunLocked.
//
// The lock is tied to a dedicated connection; crash of the holding process
// releases it automatically on the server side.
func (l *RunLock) Acquire(ctx context.Context, guildID string, targetDay time.Time) (release func(), err error) {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	key := lockKey(guildID, targetDay)

	var locked bool
	if err := conn.QueryRow(ctx, `SELECT pg_try_advisory_lock($1)`, key).Scan(&locked); err != nil {
		conn.Release()
		return nil, fmt.Errorf("try advisory lock: %w", err)
	}
	if !locked {
		conn.Release()
		return nil, fmt.Errorf("guild %s day %s: %w", guildID, targetDay.Format("2006-01-02"), domain.ErrRunLocked)
	}

	return func() {
		// Unlock on the same session that locked; release the connection
		// regardless of the unlock outcome.
		_, _ = conn.Exec(context.Background(), `SELECT pg_advisory_unlock($1)`, key)
		conn.Release()
	}, nil
}

func lockKey(guildID string, targetDay time.Time) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "partnership-audit:%s:%s", guildID, targetDay.Format("2006-01-02"))
	return int64(h.Sum64())
}
