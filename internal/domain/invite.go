package domain

import "strings"

// InviteCode is the short identifier portion of a platform server-invite
// link. Codes are lowercased at construction so equality is case-insensitive
// everywhere downstream.
type InviteCode string

// NewInviteCode normalizes a raw code into its canonical lowercase form.
func NewInviteCode(raw string) InviteCode {
	return InviteCode(strings.ToLower(strings.TrimSpace(raw)))
}

func (c InviteCode) String() string { return string(c) }

// VerificationStatus is the outcome of one external invite lookup.
// TRANSIENT_ERROR means "cannot confirm this run" and must never be
// collapsed into either VALID or EXPIRED by callers.
type VerificationStatus string

const (
	VerificationValid     VerificationStatus = "VALID"
	VerificationExpired   VerificationStatus = "EXPIRED"
	VerificationTransient VerificationStatus = "TRANSIENT_ERROR"
)

func (s VerificationStatus) String() string { return string(s) }

func (s VerificationStatus) IsValid() bool {
	switch s {
	case VerificationValid, VerificationExpired, VerificationTransient:
		return true
	}
	return false
}

// Verification is the cached result of one invite lookup.
// NSFW is meaningful only when Status is VALID.
type Verification struct {
	Status VerificationStatus
	NSFW   bool
}
