package domain

import "github.com/google/uuid"

// Reason is one human-readable rule violation attached to an audit flag.
type Reason string

// Reasons in the fixed order the rule evaluator applies them.
const (
	ReasonMissingManager   Reason = "missing manager attribution"
	ReasonMissingInvite    Reason = "missing invite link"
	ReasonQuotaExceeded    Reason = "manager daily quota exceeded"
	ReasonRepeatedSameDay  Reason = "repeated same day"
	ReasonRepeatedCooldown Reason = "repeated within cooldown window"
	ReasonExternalContent  Reason = "disallowed external content"
	ReasonExpiredInvite    Reason = "expired/invalid invite"
	ReasonNSFWDestination  Reason = "disallowed destination (nsfw)"
)

// AuditFlag is the advisory output for one record whose evaluation triggered
// at least one rule. Reasons preserve rule order and contain no duplicates.
// Flags are forwarded for human review only; no automatic penalty is applied.
type AuditFlag struct {
	RecordID   uuid.UUID
	OwnerID    string
	ManagerIDs []string
	Reasons    []Reason
}
