package roster

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/communityops/partnerbot/internal/domain"
)

// Register validates and stores a partnership record observed on the platform.
func (s *Service) Register(ctx context.Context, input RegisterInput) (domain.PartnershipRecord, error) {
	if err := input.Validate(); err != nil {
		return domain.PartnershipRecord{}, err
	}

	rec := domain.PartnershipRecord{
		ID:                uuid.New(),
		GuildID:           strings.TrimSpace(input.GuildID),
		OwnerID:           strings.TrimSpace(input.OwnerID),
		ManagerID:         trimOrNil(input.ManagerID),
		ActionType:        input.ActionType,
		RawText:           input.RawText,
		DeclaredInviteRef: trimOrNil(input.DeclaredInviteRef),
		ChannelRef:        strings.TrimSpace(input.ChannelRef),
		MessageRefs:       input.MessageRefs,
		CreatedAt:         input.OccurredAt.UTC(),
	}

	var created domain.PartnershipRecord
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.records.Create(txCtx, rec)
		if err != nil {
			return fmt.Errorf("create partnership record: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.PartnershipRecord{}, err
	}

	s.log.InfoContext(ctx, "partnership record registered",
		slog.String("record_id", created.ID.String()),
		slog.String("guild_id", created.GuildID),
		slog.String("owner_id", created.OwnerID),
		slog.String("action_type", created.ActionType.String()),
	)

	return created, nil
}

// ListWindow returns an owner's stored records inside [from, to), oldest first.
func (s *Service) ListWindow(ctx context.Context, input ListWindowInput) ([]domain.PartnershipRecord, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	recs, err := s.records.ListWindow(ctx, input.GuildID, input.OwnerID, input.From.UTC(), input.To.UTC())
	if err != nil {
		return nil, fmt.Errorf("list partnership records: %w", err)
	}
	return recs, nil
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
