package app

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/communityops/partnerbot/internal/config"
	"github.com/communityops/partnerbot/pkg/ctxutil"
)

// NewLogger creates the audit job's *slog.Logger from LogConfig and sets it
// as the default logger via slog.SetDefault. The handler is wrapped with
// NewRunIDHandler, so once the runner stamps a run ID into the context every
// *Context log call of that run carries a run_id attribute.
//
// Format "json" produces structured JSON output (production).
// Format "text" produces human-readable output with source info (development).
// Level is one of: debug, info, warn, error (case-insensitive); defaults to info.
// Output is always os.Stderr.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	level := parseLevel(cfg.Level)

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: strings.EqualFold(cfg.Format, "text"),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(NewRunIDHandler(handler))
	slog.SetDefault(logger)

	return logger
}

// NewRunIDHandler wraps h so every record logged with a context carrying an
// audit run ID (see ctxutil.WithRunID) gets a run_id attribute. Records
// logged without a run ID pass through unchanged.
func NewRunIDHandler(h slog.Handler) slog.Handler {
	return runIDHandler{Handler: h}
}

type runIDHandler struct {
	slog.Handler
}

func (h runIDHandler) Handle(ctx context.Context, rec slog.Record) error {
	if id := ctxutil.RunIDFromCtx(ctx); id != "" {
		rec.AddAttrs(slog.String("run_id", id))
	}
	return h.Handler.Handle(ctx, rec)
}

func (h runIDHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return runIDHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h runIDHandler) WithGroup(name string) slog.Handler {
	return runIDHandler{Handler: h.Handler.WithGroup(name)}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
