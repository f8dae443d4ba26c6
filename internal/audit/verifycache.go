package audit

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/communityops/partnerbot/internal/domain"
)

// inviteVerifier is the external invite-lookup boundary.
type inviteVerifier interface {
	Verify(ctx context.Context, code domain.InviteCode) (domain.Verification, error)
}

// verifyCache deduplicates invite lookups for the lifetime of one run.
// Population is single-flighted per code, so concurrent records referencing
// the same code trigger exactly one external call. Results are never
// persisted across runs.
type verifyCache struct {
	upstream inviteVerifier
	log      *slog.Logger

	group   singleflight.Group
	mu      sync.RWMutex
	results map[domain.InviteCode]domain.Verification
}

func newVerifyCache(upstream inviteVerifier, log *slog.Logger) *verifyCache {
	return &verifyCache{
		upstream: upstream,
		log:      log,
		results:  make(map[domain.InviteCode]domain.Verification),
	}
}

// Get returns the verification outcome for code, performing at most one
// external lookup per code per run. Lookup errors degrade to a transient
// outcome: "cannot confirm" never aborts the run and never flags anything.
func (c *verifyCache) Get(ctx context.Context, code domain.InviteCode) domain.Verification {
	c.mu.RLock()
	v, ok := c.results[code]
	c.mu.RUnlock()
	if ok {
		return v
	}

	res, _, _ := c.group.Do(code.String(), func() (any, error) {
		v, err := c.upstream.Verify(ctx, code)
		if err != nil {
			c.log.WarnContext(ctx, "invite lookup failed",
				slog.String("code", code.String()),
				slog.String("error", err.Error()),
			)
			v = domain.Verification{Status: domain.VerificationTransient}
		}

		c.mu.Lock()
		c.results[code] = v
		c.mu.Unlock()
		return v, nil
	})

	return res.(domain.Verification)
}
