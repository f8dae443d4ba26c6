package audit

import (
	"github.com/communityops/partnerbot/internal/domain"
)

// Evaluate runs every rule against one target-day CREATE record and returns
// an AuditFlag when at least one rule triggered, nil otherwise.
//
// Rules run in fixed order and each contributes its reason at most once:
// manager attribution, invite extraction, daily quota, same-day repeat,
// cooldown repeat, external link scan, cached verification outcomes.
// All locally computable rules are deterministic and always evaluated;
// a transient verification outcome contributes nothing (fail open for the
// expiry rule only).
func Evaluate(rctx *RunContext, rec domain.PartnershipRecord, text string) *domain.AuditFlag {
	norm := Normalize(text)
	fp := Fingerprint(text)

	var reasons []domain.Reason

	managers := ResolveManagers(norm, rec.ManagerID)
	if len(managers) == 0 {
		reasons = append(reasons, domain.ReasonMissingManager)
	}

	codes := ExtractRecordCodes(norm, rec.DeclaredInviteRef)
	if len(codes) == 0 {
		reasons = append(reasons, domain.ReasonMissingInvite)
	}

	if over := rctx.Quota.Record(managers); len(over) > 0 {
		reasons = append(reasons, domain.ReasonQuotaExceeded)
	}

	// Same-day repeat: the first appearance of each code is clean. Every
	// code is marked seen even once the rule has triggered, so later
	// records compare against the full set.
	sameDay := false
	for _, code := range codes {
		if rctx.MarkSeenToday(code) {
			sameDay = true
		}
	}
	if sameDay {
		reasons = append(reasons, domain.ReasonRepeatedSameDay)
	}

	// Cross-day cooldown, half-open boundary: a gap strictly less than the
	// cooldown is a violation; exactly the cooldown or more is not.
	for _, code := range codes {
		prev, ok := rctx.Window.LatestBefore(code, rec.CreatedAt, rec.ID)
		if ok && rec.CreatedAt.Sub(prev) < rctx.Cooldown {
			reasons = append(reasons, domain.ReasonRepeatedCooldown)
			break
		}
	}

	if HasExternalLinks(fp) {
		reasons = append(reasons, domain.ReasonExternalContent)
	}

	expired, nsfw := false, false
	for _, code := range codes {
		switch v := rctx.Verification(code); {
		case v.Status == domain.VerificationExpired:
			expired = true
		case v.Status == domain.VerificationValid && v.NSFW:
			nsfw = true
		}
	}
	if expired {
		reasons = append(reasons, domain.ReasonExpiredInvite)
	}
	if nsfw {
		reasons = append(reasons, domain.ReasonNSFWDestination)
	}

	if len(reasons) == 0 {
		return nil
	}

	return &domain.AuditFlag{
		RecordID:   rec.ID,
		OwnerID:    rec.OwnerID,
		ManagerIDs: managers,
		Reasons:    reasons,
	}
}
