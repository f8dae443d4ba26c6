package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/communityops/partnerbot/internal/domain"
)

// RecordOption mutates a seeded record before insertion.
type RecordOption func(*domain.PartnershipRecord)

// WithManager sets the declared manager.
func WithManager(id string) RecordOption {
	return func(r *domain.PartnershipRecord) { r.ManagerID = &id }
}

// WithActionType overrides the action type.
func WithActionType(a domain.ActionType) RecordOption {
	return func(r *domain.PartnershipRecord) { r.ActionType = a }
}

// WithDeclaredInviteRef sets the declared invite reference.
func WithDeclaredInviteRef(ref string) RecordOption {
	return func(r *domain.PartnershipRecord) { r.DeclaredInviteRef = &ref }
}

// SeedRecord inserts one partnership record and returns it.
func SeedRecord(t *testing.T, pool *pgxpool.Pool, guildID, ownerID string, createdAt time.Time, rawText string, opts ...RecordOption) domain.PartnershipRecord {
	t.Helper()

	rec := domain.PartnershipRecord{
		ID:          uuid.New(),
		GuildID:     guildID,
		OwnerID:     ownerID,
		ActionType:  domain.ActionCreate,
		RawText:     rawText,
		ChannelRef:  "chan-" + ownerID,
		MessageRefs: []string{"msg-" + uuid.New().String()[:8]},
		CreatedAt:   createdAt.UTC().Truncate(time.Microsecond),
	}
	for _, opt := range opts {
		opt(&rec)
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO partnership_records
		   (id, guild_id, owner_id, manager_id, action_type, raw_text,
		    declared_invite_ref, channel_ref, message_refs, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rec.ID, rec.GuildID, rec.OwnerID, rec.ManagerID, rec.ActionType.String(),
		rec.RawText, rec.DeclaredInviteRef, rec.ChannelRef, rec.MessageRefs, rec.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed partnership record: %v", err)
	}

	return rec
}
