package roster

import (
	"strings"
	"time"

	"github.com/communityops/partnerbot/internal/domain"
)

const maxRawTextLen = 8000

// RegisterInput holds the parameters for registering a partnership record.
type RegisterInput struct {
	GuildID           string
	OwnerID           string
	ManagerID         *string
	ActionType        domain.ActionType
	RawText           string
	DeclaredInviteRef *string
	ChannelRef        string
	MessageRefs       []string
	OccurredAt        time.Time
}

// Validate checks all fields and collects all errors.
func (i RegisterInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.GuildID) == "" {
		errs = append(errs, domain.FieldError{Field: "guild_id", Message: "required"})
	}
	if strings.TrimSpace(i.OwnerID) == "" {
		errs = append(errs, domain.FieldError{Field: "owner_id", Message: "required"})
	}
	if !i.ActionType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "action_type", Message: "unknown action type"})
	}
	if len(i.RawText) > maxRawTextLen {
		errs = append(errs, domain.FieldError{Field: "raw_text", Message: "too long"})
	}
	if strings.TrimSpace(i.ChannelRef) == "" {
		errs = append(errs, domain.FieldError{Field: "channel_ref", Message: "required"})
	}
	if i.OccurredAt.IsZero() {
		errs = append(errs, domain.FieldError{Field: "occurred_at", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListWindowInput holds the parameters for listing an owner's records.
type ListWindowInput struct {
	GuildID string
	OwnerID string
	From    time.Time
	To      time.Time
}

// Validate checks all fields and collects all errors.
func (i ListWindowInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.GuildID) == "" {
		errs = append(errs, domain.FieldError{Field: "guild_id", Message: "required"})
	}
	if strings.TrimSpace(i.OwnerID) == "" {
		errs = append(errs, domain.FieldError{Field: "owner_id", Message: "required"})
	}
	if !i.To.After(i.From) {
		errs = append(errs, domain.FieldError{Field: "to", Message: "must be after from"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
