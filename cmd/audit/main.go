// Command audit runs one retrospective partnership audit pass for a guild:
// it scans all partnership records created on the target day, evaluates them
// against the promotion rules, and forwards advisory flags to the review
// webhook. It is intended to be invoked by an external cron job shortly after
// the day closes.
//
// Exit codes: 0 = success (including a skipped run when another process holds
// the run lock), 1 = error.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/communityops/partnerbot/internal/adapter/discord"
	"github.com/communityops/partnerbot/internal/adapter/postgres"
	"github.com/communityops/partnerbot/internal/adapter/postgres/record"
	"github.com/communityops/partnerbot/internal/app"
	"github.com/communityops/partnerbot/internal/audit"
	"github.com/communityops/partnerbot/internal/config"
	"github.com/communityops/partnerbot/internal/domain"
)

func main() {
	dayFlag := flag.String("day", "", "target day to audit, YYYY-MM-DD (default: yesterday in the configured timezone)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)
	logger.Info("starting audit", slog.String("version", app.BuildVersion()))

	loc := cfg.Audit.Location()

	targetDay, err := resolveTargetDay(*dayFlag, time.Now(), loc)
	if err != nil {
		logger.Error("resolve target day", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Audit.RunTimeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	release, err := postgres.NewRunLock(pool).Acquire(ctx, cfg.Audit.GuildID, targetDay)
	if err != nil {
		if errors.Is(err, domain.ErrRunLocked) {
			logger.Info("audit run already in progress, skipping",
				slog.String("guild", cfg.Audit.GuildID),
				slog.Time("target_day", targetDay),
			)
			return
		}
		logger.Error("acquire run lock", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer release()

	client := discord.NewClientWithURL(
		cfg.Discord.APIBaseURL,
		cfg.Discord.BotToken,
		cfg.Discord.RequestTimeout,
		logger,
	)
	sink := discord.NewWebhookSink(cfg.Sink.WebhookURL, cfg.Sink.Timeout, logger)
	records := record.New(pool)

	runner := audit.NewRunner(
		logger,
		audit.Config{
			GuildID:           cfg.Audit.GuildID,
			QuotaThreshold:    cfg.Audit.QuotaThreshold,
			Cooldown:          cfg.Audit.Cooldown,
			Location:          loc,
			Scope:             audit.Scope(cfg.Audit.Scope),
			MaxParallelOwners: cfg.Audit.MaxParallelOwners,
		},
		records,
		client,
		client,
		sink,
	)

	stats, err := runner.Run(ctx, targetDay)
	if err != nil {
		logger.Error("audit run failed",
			slog.String("error", err.Error()),
			slog.Time("target_day", targetDay),
		)
		os.Exit(1)
	}

	logger.Info("audit run completed",
		slog.Time("target_day", targetDay),
		slog.Int("owners", stats.Owners),
		slog.Int("records", stats.Records),
		slog.Int("flags", stats.Flags),
	)
}

// resolveTargetDay parses the -day flag, defaulting to yesterday in loc.
// Yesterday is computed calendar-wise (time.Date normalizes Day()-1), not by
// subtracting 24h, so DST-shortened days resolve to the right calendar day.
func resolveTargetDay(day string, now time.Time, loc *time.Location) (time.Time, error) {
	if day == "" {
		local := now.In(loc)
		return time.Date(local.Year(), local.Month(), local.Day()-1, 0, 0, 0, 0, loc), nil
	}
	return time.ParseInLocation("2006-01-02", day, loc)
}
