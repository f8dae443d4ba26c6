package audit

import (
	"time"

	"github.com/communityops/partnerbot/internal/domain"
)

// RunContext carries all per-run mutable state: the duplicate window index,
// the same-day seen set, the quota counters, and the invite verification
// cache. It is created at run start, passed explicitly to every rule, and
// discarded at run end; it is never reused across runs.
//
// One RunContext covers one scope unit: a single owner under owner scoping,
// or the whole run under global scoping. It is not safe for concurrent use;
// records are evaluated sequentially within a scope unit.
type RunContext struct {
	DayStart time.Time
	DayEnd   time.Time
	Cooldown time.Duration

	Window *WindowIndex
	Quota  *QuotaTracker

	seenDay       map[domain.InviteCode]struct{}
	verifications map[domain.InviteCode]domain.Verification
}

// NewRunContext creates the scratch state for one scope unit.
func NewRunContext(dayStart time.Time, cooldown time.Duration, quotaThreshold int) *RunContext {
	return &RunContext{
		DayStart:      dayStart,
		DayEnd:        dayStart.Add(24 * time.Hour),
		Cooldown:      cooldown,
		Window:        NewWindowIndex(),
		Quota:         NewQuotaTracker(quotaThreshold),
		seenDay:       make(map[domain.InviteCode]struct{}),
		verifications: make(map[domain.InviteCode]domain.Verification),
	}
}

// MarkSeenToday records a target-day appearance of code and reports whether
// the code had already appeared earlier in the scan. The first appearance is
// clean; every subsequent one is a same-day repeat.
func (rc *RunContext) MarkSeenToday(code domain.InviteCode) bool {
	if _, ok := rc.seenDay[code]; ok {
		return true
	}
	rc.seenDay[code] = struct{}{}
	return false
}

// SetVerification stores the cached lookup outcome for one code.
func (rc *RunContext) SetVerification(code domain.InviteCode, v domain.Verification) {
	rc.verifications[code] = v
}

// Verification returns the cached lookup outcome for one code. A missing
// entry is treated as "cannot confirm".
func (rc *RunContext) Verification(code domain.InviteCode) domain.Verification {
	if v, ok := rc.verifications[code]; ok {
		return v
	}
	return domain.Verification{Status: domain.VerificationTransient}
}
