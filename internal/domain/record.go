package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActionType identifies what a partnership record describes.
// Only CREATE records are audited; other types are kept for history.
type ActionType string

const (
	ActionCreate ActionType = "CREATE"
	ActionEdit   ActionType = "EDIT"
	ActionDelete ActionType = "DELETE"
)

func (a ActionType) String() string { return string(a) }

func (a ActionType) IsValid() bool {
	switch a {
	case ActionCreate, ActionEdit, ActionDelete:
		return true
	}
	return false
}

// PartnershipRecord is one logged instance of a staff member publicizing a
// cross-promotion. GuildID, OwnerID, ManagerID, ChannelRef, and MessageRefs
// are platform snowflakes and stay opaque strings.
//
// ManagerID is the manager declared at logging time; the audit engine may
// attribute the record to different managers based on the message text.
// A record without any resolvable manager is still audited — missing
// attribution is a flaggable condition, not an error.
type PartnershipRecord struct {
	ID                uuid.UUID
	GuildID           string
	OwnerID           string
	ManagerID         *string
	ActionType        ActionType
	RawText           string
	DeclaredInviteRef *string
	ChannelRef        string
	MessageRefs       []string
	CreatedAt         time.Time
}
