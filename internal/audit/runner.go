package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/communityops/partnerbot/internal/domain"
	"github.com/communityops/partnerbot/pkg/ctxutil"
)

// Scope selects how duplicate and quota state is shared across owners.
type Scope string

const (
	// ScopeOwner protects each roster independently: duplicate and quota
	// state is rebuilt per owner, and owners are evaluated in parallel.
	ScopeOwner Scope = "owner"
	// ScopeGlobal shares duplicate and quota state across all owners of
	// the run, evaluated as one sequential pass.
	ScopeGlobal Scope = "global"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type recordSource interface {
	ListOwners(ctx context.Context, guildID string, from, to time.Time) ([]string, error)
	ListWindow(ctx context.Context, guildID, ownerID string, from, to time.Time) ([]domain.PartnershipRecord, error)
}

type textResolver interface {
	ResolveText(ctx context.Context, channelRef string, messageRefs []string) (string, error)
}

type flagSink interface {
	Deliver(ctx context.Context, flag domain.AuditFlag, jumpLink string) error
}

// ---------------------------------------------------------------------------
// Runner
// ---------------------------------------------------------------------------

// Config holds the audit run parameters.
type Config struct {
	GuildID           string
	QuotaThreshold    int
	Cooldown          time.Duration
	Location          *time.Location
	Scope             Scope
	MaxParallelOwners int
}

// Stats summarizes one completed run.
type Stats struct {
	Owners  int
	Records int
	Flags   int
}

// Runner is the top-level orchestrator: it fetches records per owner, builds
// the run-scoped indices, evaluates every target-day CREATE record, and
// forwards non-empty flags to the sink. The engine holds no durable state;
// the worst failure mode is under-reporting for one run.
type Runner struct {
	log      *slog.Logger
	cfg      Config
	source   recordSource
	texts    textResolver
	verifier inviteVerifier
	sink     flagSink
}

// NewRunner creates a Runner.
func NewRunner(
	logger *slog.Logger,
	cfg Config,
	source recordSource,
	texts textResolver,
	verifier inviteVerifier,
	sink flagSink,
) *Runner {
	return &Runner{
		log:      logger,
		cfg:      cfg,
		source:   source,
		texts:    texts,
		verifier: verifier,
		sink:     sink,
	}
}

// Run audits every owner with target-day CREATE records. targetDay is any
// instant within the calendar day to audit, interpreted in the configured
// timezone. Only infrastructure failures (listing owners or records) abort
// the run; every per-record problem is recovered and logged.
func (r *Runner) Run(ctx context.Context, targetDay time.Time) (Stats, error) {
	ctx = ctxutil.WithRunID(ctx, uuid.NewString())

	local := targetDay.In(r.cfg.Location)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, r.cfg.Location)
	dayEnd := dayStart.Add(24 * time.Hour)
	lookbackStart := dayStart.Add(-24 * time.Hour)

	r.log.InfoContext(ctx, "audit run starting",
		slog.String("guild", r.cfg.GuildID),
		slog.Time("day_start", dayStart),
		slog.String("scope", string(r.cfg.Scope)),
	)

	owners, err := r.source.ListOwners(ctx, r.cfg.GuildID, dayStart, dayEnd)
	if err != nil {
		return Stats{}, fmt.Errorf("list owners: %w", err)
	}

	// One verification cache per run: codes are deduplicated globally so
	// every distinct code costs exactly one external call.
	cache := newVerifyCache(r.verifier, r.log)

	stats := Stats{Owners: len(owners)}

	if r.cfg.Scope == ScopeGlobal {
		var all []evalItem
		for _, owner := range owners {
			items, err := r.fetchOwner(ctx, owner, lookbackStart, dayEnd)
			if err != nil {
				return Stats{}, err
			}
			all = append(all, items...)
		}
		recs, flags := r.auditScope(ctx, cache, all, dayStart)
		stats.Records, stats.Flags = recs, flags
		r.logDone(ctx, stats)
		return stats, nil
	}

	// Owner scope: duplicate and quota state is per owner, so owners are
	// independent and can be audited in parallel.
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.MaxParallelOwners)

	for _, owner := range owners {
		g.Go(func() error {
			items, err := r.fetchOwner(gctx, owner, lookbackStart, dayEnd)
			if err != nil {
				return err
			}
			recs, flags := r.auditScope(gctx, cache, items, dayStart)

			mu.Lock()
			stats.Records += recs
			stats.Flags += flags
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	r.logDone(ctx, stats)
	return stats, nil
}

func (r *Runner) logDone(ctx context.Context, stats Stats) {
	r.log.InfoContext(ctx, "audit run completed",
		slog.Int("owners", stats.Owners),
		slog.Int("records", stats.Records),
		slog.Int("flags", stats.Flags),
	)
}

// evalItem pairs a record with its resolved text.
type evalItem struct {
	rec  domain.PartnershipRecord
	text string
}

// fetchOwner loads one owner's window records and resolves their text.
// A text-resolution failure degrades that record to an empty fingerprint.
func (r *Runner) fetchOwner(ctx context.Context, ownerID string, from, to time.Time) ([]evalItem, error) {
	recs, err := r.source.ListWindow(ctx, r.cfg.GuildID, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list records for owner %s: %w", ownerID, err)
	}

	items := make([]evalItem, 0, len(recs))
	for _, rec := range recs {
		if rec.ActionType != domain.ActionCreate {
			continue
		}
		items = append(items, evalItem{rec: rec, text: r.resolveText(ctx, rec)})
	}
	return items, nil
}

func (r *Runner) resolveText(ctx context.Context, rec domain.PartnershipRecord) string {
	if rec.RawText != "" || len(rec.MessageRefs) == 0 {
		return rec.RawText
	}

	text, err := r.texts.ResolveText(ctx, rec.ChannelRef, rec.MessageRefs)
	if err != nil {
		if !errors.Is(err, domain.ErrContentUnavailable) {
			r.log.WarnContext(ctx, "message text resolution failed",
				slog.String("record", rec.ID.String()),
				slog.String("error", err.Error()),
			)
		}
		return ""
	}
	return text
}

// auditScope evaluates one scope unit: the window index, quota counters and
// same-day state are built fresh, target-day records run through the rules
// in timestamp order, and non-empty flags go to the sink best-effort.
func (r *Runner) auditScope(ctx context.Context, cache *verifyCache, items []evalItem, dayStart time.Time) (records, flags int) {
	rctx := NewRunContext(dayStart, r.cfg.Cooldown, r.cfg.QuotaThreshold)

	var target []evalItem
	for _, it := range items {
		for _, code := range ExtractRecordCodes(Normalize(it.text), it.rec.DeclaredInviteRef) {
			rctx.Window.Add(code, it.rec.CreatedAt, it.rec.ID)
		}
		if !it.rec.CreatedAt.Before(rctx.DayStart) && it.rec.CreatedAt.Before(rctx.DayEnd) {
			target = append(target, it)
		}
	}
	sort.Slice(target, func(i, j int) bool {
		return target[i].rec.CreatedAt.Before(target[j].rec.CreatedAt)
	})

	// Populate verification outcomes for every code the target-day records
	// reference before the rules run, so evaluation itself does no I/O.
	for _, it := range target {
		for _, code := range ExtractRecordCodes(Normalize(it.text), it.rec.DeclaredInviteRef) {
			rctx.SetVerification(code, cache.Get(ctx, code))
		}
	}

	for _, it := range target {
		records++
		flag := r.evaluateSafe(ctx, rctx, it)
		if flag == nil {
			continue
		}
		flags++

		if err := r.sink.Deliver(ctx, *flag, jumpLink(r.cfg.GuildID, it.rec)); err != nil {
			r.log.WarnContext(ctx, "flag delivery failed",
				slog.String("record", it.rec.ID.String()),
				slog.String("error", err.Error()),
			)
		}
	}
	return records, flags
}

// evaluateSafe shields the run from a single bad record: an evaluation
// panic is logged and the run continues with the next record.
func (r *Runner) evaluateSafe(ctx context.Context, rctx *RunContext, it evalItem) (flag *domain.AuditFlag) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.ErrorContext(ctx, "record evaluation panicked",
				slog.String("record", it.rec.ID.String()),
				slog.Any("panic", rec),
			)
			flag = nil
		}
	}()
	return Evaluate(rctx, it.rec, it.text)
}

// jumpLink builds a human-followable reference to the original record.
func jumpLink(guildID string, rec domain.PartnershipRecord) string {
	if len(rec.MessageRefs) > 0 {
		return fmt.Sprintf("https://discord.com/channels/%s/%s/%s", guildID, rec.ChannelRef, rec.MessageRefs[0])
	}
	return fmt.Sprintf("https://discord.com/channels/%s/%s", guildID, rec.ChannelRef)
}
