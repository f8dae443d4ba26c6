package roster

import (
	"context"
	"log/slog"
	"time"

	"github.com/communityops/partnerbot/internal/domain"
)

// recordRepo defines the record repository interface needed by roster service.
type recordRepo interface {
	Create(ctx context.Context, rec domain.PartnershipRecord) (domain.PartnershipRecord, error)
	ListWindow(ctx context.Context, guildID, ownerID string, from, to time.Time) ([]domain.PartnershipRecord, error)
}

// txManager defines the transaction manager interface needed by roster service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements partnership record intake operations.
type Service struct {
	log     *slog.Logger
	records recordRepo
	tx      txManager
}

// NewService creates a new roster service instance.
func NewService(
	logger *slog.Logger,
	records recordRepo,
	tx txManager,
) *Service {
	return &Service{
		log:     logger.With("service", "roster"),
		records: records,
		tx:      tx,
	}
}
